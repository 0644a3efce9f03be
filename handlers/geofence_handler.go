package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/geo"
	"github.com/captjay98/livestockai/models"
)

type GeofenceHandler struct{}

func NewGeofenceHandler() *GeofenceHandler { return &GeofenceHandler{} }

type geofenceReq struct {
	Name       string       `json:"name"`
	Kind       string       `json:"kind"` // circle | polygon
	CenterLat  *float64     `json:"center_lat"`
	CenterLng  *float64     `json:"center_lng"`
	RadiusM    *float64     `json:"radius_m"`
	Vertices   [][2]float64 `json:"vertices"` // [lat,lng]
	ToleranceM *float64     `json:"tolerance_m"`
	Active     *bool        `json:"active"`
}

// parseVertices decodes the stored JSON vertex list into geo points.
func parseVertices(raw string) []geo.Point {
	var pairs [][2]float64
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		return nil
	}
	pts := make([]geo.Point, 0, len(pairs))
	for _, p := range pairs {
		pts = append(pts, geo.Point{Lat: p[0], Lng: p[1]})
	}
	return pts
}

// fenceContains checks a coordinate against a stored geofence.
func fenceContains(f *models.Geofence, lat, lng float64) bool {
	p := geo.Point{Lat: lat, Lng: lng}
	if f.Kind == "circle" {
		return geo.InCircle(p, geo.Point{Lat: f.CenterLat, Lng: f.CenterLng}, f.RadiusM, f.ToleranceM)
	}
	return geo.InPolygon(p, parseVertices(f.Vertices), f.ToleranceM)
}

func validateGeofenceReq(req *geofenceReq) string {
	switch req.Kind {
	case "circle":
		if req.CenterLat == nil || req.CenterLng == nil || req.RadiusM == nil {
			return "MISSING_FIELDS"
		}
		if *req.RadiusM <= 0 {
			return "INVALID_RADIUS"
		}
	case "polygon":
		if len(req.Vertices) < 3 {
			return "POLYGON_TOO_SMALL"
		}
	default:
		return "INVALID_KIND"
	}
	return ""
}

// GET /farms/:id/geofences
func (h *GeofenceHandler) List(c echo.Context) error {
	farm := farmFromContext(c)
	var rows []models.Geofence
	if err := database.DB.
		Where("farm_id = ?", farm.ID).
		Order("id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /farms/:id/geofences
func (h *GeofenceHandler) Create(c echo.Context) error {
	farm := farmFromContext(c)

	var req geofenceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Kind == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if code := validateGeofenceReq(&req); code != "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": code})
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	// same rule as other cross-row uniqueness: checked here, not by the schema
	if active {
		var n int64
		database.DB.Model(&models.Geofence{}).
			Where("farm_id = ? AND active = true", farm.ID).Count(&n)
		if n > 0 {
			return c.JSON(http.StatusConflict, map[string]any{"error": "ACTIVE_GEOFENCE_EXISTS"})
		}
	}

	rec := models.Geofence{
		FarmID: farm.ID,
		Name:   name,
		Kind:   req.Kind,
		Active: active,
	}
	if req.ToleranceM != nil && *req.ToleranceM > 0 {
		rec.ToleranceM = *req.ToleranceM
	}
	if req.Kind == "circle" {
		rec.CenterLat = *req.CenterLat
		rec.CenterLng = *req.CenterLng
		rec.RadiusM = *req.RadiusM
	} else {
		raw, _ := json.Marshal(req.Vertices)
		rec.Vertices = string(raw)
	}

	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "create", "geofence", rec.ID, name)
	return c.JSON(http.StatusCreated, rec)
}

// PUT /farms/:id/geofences/:fenceID
func (h *GeofenceHandler) Update(c echo.Context) error {
	farm := farmFromContext(c)

	var row models.Geofence
	if err := database.DB.
		Where("farm_id = ?", farm.ID).
		First(&row, "id = ?", c.Param("fenceID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var req geofenceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	updates := map[string]any{}
	if v := strings.TrimSpace(req.Name); v != "" {
		updates["name"] = v
	}
	if req.Kind != "" && req.Kind != row.Kind {
		if code := validateGeofenceReq(&req); code != "" {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": code})
		}
		updates["kind"] = req.Kind
	}
	if req.CenterLat != nil {
		updates["center_lat"] = *req.CenterLat
	}
	if req.CenterLng != nil {
		updates["center_lng"] = *req.CenterLng
	}
	if req.RadiusM != nil {
		if *req.RadiusM <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_RADIUS"})
		}
		updates["radius_m"] = *req.RadiusM
	}
	if req.Vertices != nil {
		if len(req.Vertices) < 3 {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "POLYGON_TOO_SMALL"})
		}
		raw, _ := json.Marshal(req.Vertices)
		updates["vertices"] = string(raw)
	}
	if req.ToleranceM != nil {
		updates["tolerance_m"] = *req.ToleranceM
	}
	if req.Active != nil {
		if *req.Active && !row.Active {
			var n int64
			database.DB.Model(&models.Geofence{}).
				Where("farm_id = ? AND active = true AND id <> ?", farm.ID, row.ID).Count(&n)
			if n > 0 {
				return c.JSON(http.StatusConflict, map[string]any{"error": "ACTIVE_GEOFENCE_EXISTS"})
			}
		}
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusOK, row)
	}

	if err := database.DB.Model(&row).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "update", "geofence", row.ID, "")
	return c.JSON(http.StatusOK, row)
}

// DELETE /farms/:id/geofences/:fenceID
func (h *GeofenceHandler) Delete(c echo.Context) error {
	farm := farmFromContext(c)

	var row models.Geofence
	if err := database.DB.
		Where("farm_id = ?", farm.ID).
		First(&row, "id = ?", c.Param("fenceID")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	if err := database.DB.Delete(&row).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "delete", "geofence", row.ID, row.Name)
	return c.JSON(http.StatusOK, map[string]any{"deleted": row.ID})
}
