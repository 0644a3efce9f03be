package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
	"github.com/captjay98/livestockai/payroll"
)

type WorkerHandler struct{}

func NewWorkerHandler() *WorkerHandler { return &WorkerHandler{} }

type workerReq struct {
	UserID      *uint    `json:"user_id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Phone       string   `json:"phone"`
	JobTitle    string   `json:"job_title"`
	Permissions []string `json:"permissions"`
	WageType    string   `json:"wage_type"`
	WageRate    *float64 `json:"wage_rate"`
	Status      string   `json:"status"`
}

func validWageType(t string) bool {
	switch t {
	case payroll.WageHourly, payroll.WageDaily, payroll.WageMonthly:
		return true
	}
	return false
}

// GET /farms/:id/workers?status=&q=
func (h *WorkerHandler) List(c echo.Context) error {
	farm := farmFromContext(c)

	tx := database.DB.Model(&models.WorkerProfile{}).Where("farm_id = ?", farm.ID)
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		tx = tx.Where("status = ?", status)
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ?", like, like, "%"+q+"%")
	}

	var rows []models.WorkerProfile
	if err := tx.Order("last_name ASC, first_name ASC, id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /farms/:id/workers
func (h *WorkerHandler) Create(c echo.Context) error {
	farm := farmFromContext(c)

	var req workerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if first == "" || last == "" || req.WageType == "" || req.WageRate == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if !validWageType(req.WageType) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_WAGE_TYPE"})
	}
	if *req.WageRate < 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_WAGE_RATE"})
	}
	if req.UserID != nil {
		var dup models.WorkerProfile
		if err := database.DB.
			Where("farm_id = ? AND user_id = ?", farm.ID, *req.UserID).
			First(&dup).Error; err == nil {
			return c.JSON(http.StatusConflict, map[string]any{"error": "WORKER_EXISTS"})
		}
	}

	rec := models.WorkerProfile{
		FarmID:      farm.ID,
		UserID:      req.UserID,
		FirstName:   first,
		LastName:    last,
		Phone:       strings.TrimSpace(req.Phone),
		JobTitle:    strings.TrimSpace(req.JobTitle),
		Permissions: strings.Join(req.Permissions, ","),
		WageType:    req.WageType,
		WageRate:    *req.WageRate,
		Status:      "active",
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "create", "worker", rec.ID, first+" "+last)
	return c.JSON(http.StatusCreated, rec)
}

// PUT /farms/:id/workers/:workerID
func (h *WorkerHandler) Update(c echo.Context) error {
	farm := farmFromContext(c)

	var row models.WorkerProfile
	if err := database.DB.
		Where("farm_id = ?", farm.ID).
		First(&row, "id = ?", c.Param("workerID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var req workerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	updates := map[string]any{}
	if v := strings.TrimSpace(req.FirstName); v != "" {
		updates["first_name"] = v
	}
	if v := strings.TrimSpace(req.LastName); v != "" {
		updates["last_name"] = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		updates["phone"] = v
	}
	if v := strings.TrimSpace(req.JobTitle); v != "" {
		updates["job_title"] = v
	}
	if req.WageType != "" {
		if !validWageType(req.WageType) {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_WAGE_TYPE"})
		}
		updates["wage_type"] = req.WageType
	}
	if req.WageRate != nil {
		if *req.WageRate < 0 {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_WAGE_RATE"})
		}
		updates["wage_rate"] = *req.WageRate
	}
	if req.Status != "" {
		if req.Status != "active" && req.Status != "inactive" {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_STATUS"})
		}
		updates["status"] = req.Status
	}
	if req.Permissions != nil {
		updates["permissions"] = strings.Join(req.Permissions, ",")
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusOK, row)
	}

	if err := database.DB.Model(&row).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "update", "worker", row.ID, "")
	return c.JSON(http.StatusOK, row)
}

// DELETE /farms/:id/workers/:workerID
func (h *WorkerHandler) Delete(c echo.Context) error {
	farm := farmFromContext(c)

	var row models.WorkerProfile
	if err := database.DB.
		Where("farm_id = ?", farm.ID).
		First(&row, "id = ?", c.Param("workerID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	if err := database.DB.Delete(&row).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "delete", "worker", row.ID, row.FirstName+" "+row.LastName)
	return c.JSON(http.StatusOK, map[string]any{"deleted": row.ID})
}
