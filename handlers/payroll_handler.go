package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
	"github.com/captjay98/livestockai/payroll"
)

type PayrollHandler struct{}

func NewPayrollHandler() *PayrollHandler { return &PayrollHandler{} }

// GET /farms/:id/payroll/periods
func (h *PayrollHandler) ListPeriods(c echo.Context) error {
	farm := farmFromContext(c)
	var rows []models.PayrollPeriod
	if err := database.DB.
		Where("farm_id = ?", farm.ID).
		Order("start_date DESC, id DESC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type periodReq struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// POST /farms/:id/payroll/periods
func (h *PayrollHandler) CreatePeriod(c echo.Context) error {
	farm := farmFromContext(c)

	var req periodReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.StartDate == "" || req.EndDate == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if !validDate(req.StartDate) || !validDate(req.EndDate) || req.EndDate < req.StartDate {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_RANGE"})
	}

	// overlap with an existing period: (start <= end') AND (end >= start')
	var n int64
	database.DB.Model(&models.PayrollPeriod{}).
		Where("farm_id = ? AND start_date <= ? AND end_date >= ?", farm.ID, req.EndDate, req.StartDate).
		Count(&n)
	if n > 0 {
		return c.JSON(http.StatusConflict, map[string]any{"error": "PERIOD_OVERLAPS"})
	}

	rec := models.PayrollPeriod{
		FarmID:    farm.ID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    "open",
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "create", "payroll_period", rec.ID, rec.StartDate+".."+rec.EndDate)
	return c.JSON(http.StatusCreated, rec)
}

func (h *PayrollHandler) loadPeriod(c echo.Context) (*models.PayrollPeriod, error) {
	farm := farmFromContext(c)
	var row models.PayrollPeriod
	if err := database.DB.
		Where("farm_id = ?", farm.ID).
		First(&row, "id = ?", c.Param("periodID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return nil, c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return &row, nil
}

// workerTotals aggregates attendance for one worker over a period.
func workerTotals(w *models.WorkerProfile, start, end string) (hours float64, days int) {
	var rows []models.AttendanceRecord
	database.DB.
		Where("worker_id = ? AND date >= ? AND date <= ?", w.ID, start, end).
		Find(&rows)

	spans := make([][2]*time.Time, 0, len(rows))
	seen := map[string]struct{}{}
	for _, r := range rows {
		spans = append(spans, [2]*time.Time{r.CheckInAt, r.CheckOutAt})
		if _, ok := seen[r.Date]; !ok {
			seen[r.Date] = struct{}{}
			days++
		}
	}
	return payroll.WorkedHours(spans), days
}

type workerPayLine struct {
	WorkerID uint    `json:"worker_id"`
	Name     string  `json:"name"`
	WageType string  `json:"wage_type"`
	WageRate float64 `json:"wage_rate"`
	Hours    float64 `json:"hours"`
	Days     int     `json:"days"`
	Gross    float64 `json:"gross"`
	Paid     float64 `json:"paid"`
	Balance  float64 `json:"balance"`
}

func (h *PayrollHandler) buildLines(farmID uint, p *models.PayrollPeriod) ([]workerPayLine, float64) {
	var workers []models.WorkerProfile
	database.DB.Where("farm_id = ?", farmID).Order("id ASC").Find(&workers)

	periodDays := payroll.PeriodDays(p.StartDate, p.EndDate)
	lines := make([]workerPayLine, 0, len(workers))
	var total float64
	for i := range workers {
		w := &workers[i]
		hours, days := workerTotals(w, p.StartDate, p.EndDate)
		gross := payroll.Gross(w.WageType, w.WageRate, hours, days, periodDays)

		var paid float64
		database.DB.Model(&models.Payment{}).
			Where("period_id = ? AND worker_id = ?", p.ID, w.ID).
			Select("COALESCE(SUM(amount), 0)").Scan(&paid)

		lines = append(lines, workerPayLine{
			WorkerID: w.ID,
			Name:     w.FirstName + " " + w.LastName,
			WageType: w.WageType,
			WageRate: w.WageRate,
			Hours:    hours,
			Days:     days,
			Gross:    gross,
			Paid:     paid,
			Balance:  payroll.Balance(gross, paid),
		})
		total += gross
	}
	return lines, total
}

// POST /farms/:id/payroll/periods/:periodID/compute — re-aggregates hours
// and wages from attendance; allowed while the period is open or closed.
func (h *PayrollHandler) Compute(c echo.Context) error {
	farm := farmFromContext(c)
	p, err := h.loadPeriod(c)
	if p == nil {
		return err
	}
	if p.Status == "paid" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "PERIOD_NOT_OPEN"})
	}

	lines, total := h.buildLines(farm.ID, p)

	now := time.Now()
	if err := database.DB.Model(p).Updates(map[string]any{
		"gross_wages": total,
		"computed_at": &now,
	}).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "compute", "payroll_period", p.ID, "")

	return c.JSON(http.StatusOK, map[string]any{"period": p, "lines": lines})
}

// GET /farms/:id/payroll/periods/:periodID/summary
func (h *PayrollHandler) Summary(c echo.Context) error {
	farm := farmFromContext(c)
	p, err := h.loadPeriod(c)
	if p == nil {
		return err
	}

	lines, total := h.buildLines(farm.ID, p)
	var paid float64
	database.DB.Model(&models.Payment{}).
		Where("period_id = ?", p.ID).
		Select("COALESCE(SUM(amount), 0)").Scan(&paid)

	return c.JSON(http.StatusOK, map[string]any{
		"period":  p,
		"lines":   lines,
		"gross":   total,
		"paid":    paid,
		"balance": payroll.Balance(total, paid),
	})
}

type periodStatusReq struct {
	Status string `json:"status"`
}

// PATCH /farms/:id/payroll/periods/:periodID — open -> closed -> paid
func (h *PayrollHandler) UpdatePeriod(c echo.Context) error {
	farm := farmFromContext(c)
	p, err := h.loadPeriod(c)
	if p == nil {
		return err
	}

	var req periodStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	next := strings.TrimSpace(req.Status)
	ok := (p.Status == "open" && next == "closed") ||
		(p.Status == "closed" && next == "paid") ||
		(p.Status == "closed" && next == "open")
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_TRANSITION"})
	}

	if err := database.DB.Model(p).Update("status", next).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "update", "payroll_period", p.ID, next)
	return c.JSON(http.StatusOK, p)
}

type paymentReq struct {
	WorkerID  uint    `json:"worker_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Reference string  `json:"reference"`
}

// POST /farms/:id/payroll/periods/:periodID/payments
func (h *PayrollHandler) CreatePayment(c echo.Context) error {
	farm := farmFromContext(c)
	p, err := h.loadPeriod(c)
	if p == nil {
		return err
	}
	if p.Status == "paid" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "PERIOD_NOT_OPEN"})
	}

	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.WorkerID == 0 || req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	var worker models.WorkerProfile
	if err := database.DB.
		Where("farm_id = ?", farm.ID).
		First(&worker, req.WorkerID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "WORKER_NOT_FOUND"})
	}

	rec := models.Payment{
		FarmID:    farm.ID,
		PeriodID:  p.ID,
		WorkerID:  worker.ID,
		Amount:    req.Amount,
		Method:    strings.TrimSpace(req.Method),
		Reference: strings.TrimSpace(req.Reference),
		PaidAt:    time.Now(),
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "create", "payment", rec.ID, "")
	return c.JSON(http.StatusCreated, rec)
}

// GET /farms/:id/payroll/periods/:periodID/payments?workerId=
func (h *PayrollHandler) ListPayments(c echo.Context) error {
	p, err := h.loadPeriod(c)
	if p == nil {
		return err
	}

	tx := database.DB.Model(&models.Payment{}).Where("period_id = ?", p.ID)
	if workerID := strings.TrimSpace(c.QueryParam("workerId")); workerID != "" {
		tx = tx.Where("worker_id = ?", workerID)
	}

	var rows []models.Payment
	if err := tx.Order("paid_at ASC, id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}
