package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
)

type FarmHandler struct{}

func NewFarmHandler() *FarmHandler { return &FarmHandler{} }

type farmReq struct {
	Name            string `json:"name"`
	LivestockType   string `json:"livestock_type"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	DistrictID      *uint  `json:"district_id"`
	RequireGeofence *bool  `json:"require_geofence"`
}

// GET /farms — farms the caller owns or works on
func (h *FarmHandler) List(c echo.Context) error {
	uid, role := currentUser(c)

	tx := database.DB.Model(&models.Farm{})
	if role != "admin" {
		tx = tx.Where(
			"owner_id = ? OR id IN (SELECT farm_id FROM worker_profiles WHERE user_id = ?)",
			uid, uid,
		)
	}

	var rows []models.Farm
	if err := tx.Order("id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /farms
func (h *FarmHandler) Create(c echo.Context) error {
	uid, _ := currentUser(c)

	var req farmReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	name := strings.TrimSpace(req.Name)
	ltype := strings.TrimSpace(req.LivestockType)
	if name == "" || ltype == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if req.DistrictID != nil {
		var d models.District
		if err := database.DB.First(&d, *req.DistrictID).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "DISTRICT_NOT_FOUND"})
		}
	}

	rec := models.Farm{
		OwnerID:       uid,
		Name:          name,
		LivestockType: ltype,
		Address:       strings.TrimSpace(req.Address),
		Phone:         strings.TrimSpace(req.Phone),
		DistrictID:    req.DistrictID,
	}
	if req.RequireGeofence != nil {
		rec.RequireGeofence = *req.RequireGeofence
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &rec.ID, "create", "farm", rec.ID, rec.Name)
	return c.JSON(http.StatusCreated, rec)
}

// GET /farms/:id
func (h *FarmHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, farmFromContext(c))
}

// PUT /farms/:id — owner or admin only
func (h *FarmHandler) Update(c echo.Context) error {
	farm := farmFromContext(c)
	uid, role := currentUser(c)
	if role != "admin" && farm.OwnerID != uid {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}

	var req farmReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	updates := map[string]any{}
	if v := strings.TrimSpace(req.Name); v != "" {
		updates["name"] = v
	}
	if v := strings.TrimSpace(req.LivestockType); v != "" {
		updates["livestock_type"] = v
	}
	if v := strings.TrimSpace(req.Address); v != "" {
		updates["address"] = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		updates["phone"] = v
	}
	if req.DistrictID != nil {
		var d models.District
		if err := database.DB.First(&d, *req.DistrictID).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "DISTRICT_NOT_FOUND"})
		}
		updates["district_id"] = *req.DistrictID
	}
	if req.RequireGeofence != nil {
		updates["require_geofence"] = *req.RequireGeofence
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusOK, farm)
	}

	if err := database.DB.Model(farm).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "update", "farm", farm.ID, "")
	return c.JSON(http.StatusOK, farm)
}

// DELETE /farms/:id — owner or admin only; farm-scoped rows go with it
func (h *FarmHandler) Delete(c echo.Context) error {
	farm := farmFromContext(c)
	uid, role := currentUser(c)
	if role != "admin" && farm.OwnerID != uid {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&models.AttendanceRecord{}, &models.TaskAssignment{},
			&models.Payment{}, &models.PayrollPeriod{},
			&models.EggRecord{}, &models.FeedRecord{},
			&models.Geofence{}, &models.WorkerProfile{},
		} {
			if err := tx.Where("farm_id = ?", farm.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(farm).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "delete", "farm", farm.ID, farm.Name)
	return c.JSON(http.StatusOK, map[string]any{"deleted": farm.ID})
}
