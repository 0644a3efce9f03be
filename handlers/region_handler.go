package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
)

// Region/district administration for the extension service.
type RegionHandler struct{}

func NewRegionHandler() *RegionHandler { return &RegionHandler{} }

type regionReq struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// GET /extension/regions
func (h *RegionHandler) ListRegions(c echo.Context) error {
	var rows []models.Region
	if err := database.DB.Order("name ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /extension/regions
func (h *RegionHandler) CreateRegion(c echo.Context) error {
	var req regionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	name := strings.TrimSpace(req.Name)
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if name == "" || code == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var dup models.Region
	if err := database.DB.Where("code = ?", code).First(&dup).Error; err == nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "CODE_EXISTS"})
	}

	rec := models.Region{Name: name, Code: code}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, nil, "create", "region", rec.ID, code)
	return c.JSON(http.StatusCreated, rec)
}

// PUT /extension/regions/:regionID
func (h *RegionHandler) UpdateRegion(c echo.Context) error {
	var row models.Region
	if err := database.DB.First(&row, "id = ?", c.Param("regionID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var req regionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	updates := map[string]any{}
	if v := strings.TrimSpace(req.Name); v != "" {
		updates["name"] = v
	}
	if v := strings.ToUpper(strings.TrimSpace(req.Code)); v != "" && v != row.Code {
		var dup models.Region
		if err := database.DB.Where("code = ?", v).First(&dup).Error; err == nil {
			return c.JSON(http.StatusConflict, map[string]any{"error": "CODE_EXISTS"})
		}
		updates["code"] = v
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusOK, row)
	}

	if err := database.DB.Model(&row).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, row)
}

// DELETE /extension/regions/:regionID — refuses while districts remain
func (h *RegionHandler) DeleteRegion(c echo.Context) error {
	var row models.Region
	if err := database.DB.First(&row, "id = ?", c.Param("regionID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var n int64
	database.DB.Model(&models.District{}).Where("region_id = ?", row.ID).Count(&n)
	if n > 0 {
		return c.JSON(http.StatusConflict, map[string]any{"error": "REGION_HAS_DISTRICTS"})
	}

	if err := database.DB.Delete(&row).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, nil, "delete", "region", row.ID, row.Code)
	return c.JSON(http.StatusOK, map[string]any{"deleted": row.ID})
}

type districtReq struct {
	RegionID uint   `json:"region_id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
}

// GET /extension/districts?regionId=
func (h *RegionHandler) ListDistricts(c echo.Context) error {
	tx := database.DB.Model(&models.District{})
	if regionID := strings.TrimSpace(c.QueryParam("regionId")); regionID != "" {
		tx = tx.Where("region_id = ?", regionID)
	}

	var rows []models.District
	if err := tx.Order("name ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /extension/districts
func (h *RegionHandler) CreateDistrict(c echo.Context) error {
	var req districtReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	name := strings.TrimSpace(req.Name)
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if req.RegionID == 0 || name == "" || code == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var region models.Region
	if err := database.DB.First(&region, req.RegionID).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "REGION_NOT_FOUND"})
	}
	var dup models.District
	if err := database.DB.Where("code = ?", code).First(&dup).Error; err == nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "CODE_EXISTS"})
	}

	rec := models.District{RegionID: region.ID, Name: name, Code: code}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, nil, "create", "district", rec.ID, code)
	return c.JSON(http.StatusCreated, rec)
}

// PUT /extension/districts/:districtID
func (h *RegionHandler) UpdateDistrict(c echo.Context) error {
	var row models.District
	if err := database.DB.First(&row, "id = ?", c.Param("districtID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var req districtReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	updates := map[string]any{}
	if req.RegionID != 0 && req.RegionID != row.RegionID {
		var region models.Region
		if err := database.DB.First(&region, req.RegionID).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "REGION_NOT_FOUND"})
		}
		updates["region_id"] = req.RegionID
	}
	if v := strings.TrimSpace(req.Name); v != "" {
		updates["name"] = v
	}
	if v := strings.ToUpper(strings.TrimSpace(req.Code)); v != "" && v != row.Code {
		var dup models.District
		if err := database.DB.Where("code = ?", v).First(&dup).Error; err == nil {
			return c.JSON(http.StatusConflict, map[string]any{"error": "CODE_EXISTS"})
		}
		updates["code"] = v
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusOK, row)
	}

	if err := database.DB.Model(&row).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, row)
}

// DELETE /extension/districts/:districtID — farms keep their rows, the
// reference is nulled out
func (h *RegionHandler) DeleteDistrict(c echo.Context) error {
	var row models.District
	if err := database.DB.First(&row, "id = ?", c.Param("districtID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	if err := database.DB.Model(&models.Farm{}).
		Where("district_id = ?", row.ID).
		Update("district_id", nil).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	if err := database.DB.Delete(&row).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, nil, "delete", "district", row.ID, row.Code)
	return c.JSON(http.StatusOK, map[string]any{"deleted": row.ID})
}

// GET /extension/districts/:districtID/farms
func (h *RegionHandler) DistrictFarms(c echo.Context) error {
	var row models.District
	if err := database.DB.First(&row, "id = ?", c.Param("districtID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var farms []models.Farm
	if err := database.DB.
		Where("district_id = ?", row.ID).
		Order("name ASC").Find(&farms).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, farms)
}
