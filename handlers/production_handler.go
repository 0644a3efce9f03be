package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
)

// Egg and feed record-keeping share one handler; both are day-keyed
// farm-scoped rows with the same list/create/update/delete shape.
type ProductionHandler struct{}

func NewProductionHandler() *ProductionHandler { return &ProductionHandler{} }

func dateRangeQuery(c echo.Context, tx *gorm.DB) *gorm.DB {
	start := strings.TrimSpace(c.QueryParam("start"))
	end := strings.TrimSpace(c.QueryParam("end"))
	if start != "" && end != "" {
		tx = tx.Where("date >= ? AND date <= ?", start, end)
	}
	return tx
}

/* ====================== Eggs ====================== */

type eggReq struct {
	Date      string `json:"date"`
	Collected *int   `json:"collected"`
	Broken    *int   `json:"broken"`
	Notes     string `json:"notes"`
}

// GET /farms/:id/eggs?start=&end=
func (h *ProductionHandler) ListEggs(c echo.Context) error {
	farm := farmFromContext(c)
	tx := dateRangeQuery(c, database.DB.Model(&models.EggRecord{}).Where("farm_id = ?", farm.ID))

	var rows []models.EggRecord
	if err := tx.Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /farms/:id/eggs
func (h *ProductionHandler) CreateEgg(c echo.Context) error {
	farm := farmFromContext(c)

	var req eggReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.Date == "" || req.Collected == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if !validDate(req.Date) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}
	if *req.Collected < 0 || (req.Broken != nil && *req.Broken < 0) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_QUANTITY"})
	}

	rec := models.EggRecord{
		FarmID:    farm.ID,
		Date:      req.Date,
		Collected: *req.Collected,
		Notes:     strings.TrimSpace(req.Notes),
	}
	if req.Broken != nil {
		rec.Broken = *req.Broken
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "create", "egg_record", rec.ID, rec.Date)
	return c.JSON(http.StatusCreated, rec)
}

// PUT /farms/:id/eggs/:recordID
func (h *ProductionHandler) UpdateEgg(c echo.Context) error {
	farm := farmFromContext(c)

	var row models.EggRecord
	if err := database.DB.
		Where("farm_id = ?", farm.ID).
		First(&row, "id = ?", c.Param("recordID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var req eggReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	updates := map[string]any{}
	if req.Date != "" {
		if !validDate(req.Date) {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
		}
		updates["date"] = req.Date
	}
	if req.Collected != nil {
		if *req.Collected < 0 {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_QUANTITY"})
		}
		updates["collected"] = *req.Collected
	}
	if req.Broken != nil {
		if *req.Broken < 0 {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_QUANTITY"})
		}
		updates["broken"] = *req.Broken
	}
	if v := strings.TrimSpace(req.Notes); v != "" {
		updates["notes"] = v
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusOK, row)
	}

	if err := database.DB.Model(&row).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, row)
}

// DELETE /farms/:id/eggs/:recordID
func (h *ProductionHandler) DeleteEgg(c echo.Context) error {
	farm := farmFromContext(c)

	res := database.DB.
		Where("farm_id = ? AND id = ?", farm.ID, c.Param("recordID")).
		Delete(&models.EggRecord{})
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": c.Param("recordID")})
}

/* ====================== Feed ====================== */

type feedReq struct {
	Date       string   `json:"date"`
	FeedType   string   `json:"feed_type"`
	QuantityKg *float64 `json:"quantity_kg"`
	Cost       *float64 `json:"cost"`
	Notes      string   `json:"notes"`
}

// GET /farms/:id/feed?start=&end=
func (h *ProductionHandler) ListFeed(c echo.Context) error {
	farm := farmFromContext(c)
	tx := dateRangeQuery(c, database.DB.Model(&models.FeedRecord{}).Where("farm_id = ?", farm.ID))

	var rows []models.FeedRecord
	if err := tx.Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /farms/:id/feed
func (h *ProductionHandler) CreateFeed(c echo.Context) error {
	farm := farmFromContext(c)

	var req feedReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	feedType := strings.TrimSpace(req.FeedType)
	if req.Date == "" || feedType == "" || req.QuantityKg == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if !validDate(req.Date) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}
	if *req.QuantityKg <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_QUANTITY"})
	}

	rec := models.FeedRecord{
		FarmID:     farm.ID,
		Date:       req.Date,
		FeedType:   feedType,
		QuantityKg: *req.QuantityKg,
		Notes:      strings.TrimSpace(req.Notes),
	}
	if req.Cost != nil && *req.Cost > 0 {
		rec.Cost = *req.Cost
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "create", "feed_record", rec.ID, rec.Date)
	return c.JSON(http.StatusCreated, rec)
}

// PUT /farms/:id/feed/:recordID
func (h *ProductionHandler) UpdateFeed(c echo.Context) error {
	farm := farmFromContext(c)

	var row models.FeedRecord
	if err := database.DB.
		Where("farm_id = ?", farm.ID).
		First(&row, "id = ?", c.Param("recordID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var req feedReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	updates := map[string]any{}
	if req.Date != "" {
		if !validDate(req.Date) {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
		}
		updates["date"] = req.Date
	}
	if v := strings.TrimSpace(req.FeedType); v != "" {
		updates["feed_type"] = v
	}
	if req.QuantityKg != nil {
		if *req.QuantityKg <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_QUANTITY"})
		}
		updates["quantity_kg"] = *req.QuantityKg
	}
	if req.Cost != nil {
		updates["cost"] = *req.Cost
	}
	if v := strings.TrimSpace(req.Notes); v != "" {
		updates["notes"] = v
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusOK, row)
	}

	if err := database.DB.Model(&row).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, row)
}

// DELETE /farms/:id/feed/:recordID
func (h *ProductionHandler) DeleteFeed(c echo.Context) error {
	farm := farmFromContext(c)

	res := database.DB.
		Where("farm_id = ? AND id = ?", farm.ID, c.Param("recordID")).
		Delete(&models.FeedRecord{})
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": c.Param("recordID")})
}
