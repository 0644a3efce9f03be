package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
)

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler { return &AttendanceHandler{} }

// GET /farms/:id/attendance?start=YYYY-MM-DD&end=YYYY-MM-DD&workerId=&geo=&open=&page=&size=
func (h *AttendanceHandler) List(c echo.Context) error {
	farm := farmFromContext(c)

	start := strings.TrimSpace(c.QueryParam("start"))
	end := strings.TrimSpace(c.QueryParam("end"))
	workerID := strings.TrimSpace(c.QueryParam("workerId"))
	geoStatus := strings.TrimSpace(c.QueryParam("geo"))
	open := strings.TrimSpace(c.QueryParam("open"))

	tx := database.DB.Model(&models.AttendanceRecord{}).Where("farm_id = ?", farm.ID)
	if start != "" && end != "" {
		tx = tx.Where("date >= ? AND date <= ?", start, end)
	}
	if workerID != "" {
		tx = tx.Where("worker_id = ?", workerID)
	}
	if geoStatus != "" {
		tx = tx.Where("geo_status = ?", geoStatus)
	}
	if open == "true" {
		tx = tx.Where("check_out_at IS NULL")
	}

	page, size := pageSize(c)
	var rows []models.AttendanceRecord
	if err := tx.Order("date ASC, check_in_at ASC, id ASC").
		Offset((page - 1) * size).Limit(size).
		Find(&rows).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type checkInReq struct {
	WorkerID uint     `json:"worker_id"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Note     string   `json:"note"`
}

// checkInGeoStatus decides the verification status for a check-in. A farm
// that requires geofencing rejects check-ins without coordinates as well as
// ones outside the fence; otherwise the status is recorded and the check-in
// proceeds.
func checkInGeoStatus(farm *models.Farm, fence *models.Geofence, lat, lng *float64) (status, errCode string) {
	if fence == nil {
		return "unchecked", ""
	}
	if lat == nil || lng == nil {
		if farm.RequireGeofence {
			return "", "MISSING_COORDINATES"
		}
		return "unchecked", ""
	}
	if fenceContains(fence, *lat, *lng) {
		return "verified", ""
	}
	if farm.RequireGeofence {
		return "", "OUTSIDE_GEOFENCE"
	}
	return "outside", ""
}

// POST /farms/:id/attendance/check-in
// One open record per worker; location is verified against the farm's
// active geofence when one exists.
func (h *AttendanceHandler) CheckIn(c echo.Context) error {
	farm := farmFromContext(c)

	var req checkInReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.WorkerID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var worker models.WorkerProfile
	if err := database.DB.
		Where("farm_id = ?", farm.ID).
		First(&worker, req.WorkerID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "WORKER_NOT_FOUND"})
	}
	if worker.Status != "active" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "WORKER_INACTIVE"})
	}

	var openRec models.AttendanceRecord
	if err := database.DB.
		Where("worker_id = ? AND check_out_at IS NULL", worker.ID).
		First(&openRec).Error; err == nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "ALREADY_CHECKED_IN", "record_id": openRec.ID})
	}

	var fence *models.Geofence
	var f models.Geofence
	if err := database.DB.
		Where("farm_id = ? AND active = true", farm.ID).
		First(&f).Error; err == nil {
		fence = &f
	}

	geoStatus, errCode := checkInGeoStatus(farm, fence, req.Lat, req.Lng)
	if errCode != "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": errCode})
	}

	now := time.Now()
	rec := models.AttendanceRecord{
		FarmID:     farm.ID,
		WorkerID:   worker.ID,
		Date:       now.Format("2006-01-02"),
		CheckInAt:  &now,
		CheckInLat: req.Lat,
		CheckInLng: req.Lng,
		GeoStatus:  geoStatus,
		Note:       strings.TrimSpace(req.Note),
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "check_in", "attendance", rec.ID, geoStatus)
	return c.JSON(http.StatusCreated, rec)
}

type checkOutReq struct {
	WorkerID uint     `json:"worker_id"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Note     string   `json:"note"`
}

// POST /farms/:id/attendance/check-out — closes the worker's open record
func (h *AttendanceHandler) CheckOut(c echo.Context) error {
	farm := farmFromContext(c)

	var req checkOutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.WorkerID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var rec models.AttendanceRecord
	if err := database.DB.
		Where("farm_id = ? AND worker_id = ? AND check_out_at IS NULL", farm.ID, req.WorkerID).
		First(&rec).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_CHECKED_IN"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	now := time.Now()
	updates := map[string]any{
		"check_out_at":  &now,
		"check_out_lat": req.Lat,
		"check_out_lng": req.Lng,
	}
	if note := strings.TrimSpace(req.Note); note != "" {
		updates["note"] = note
	}
	if err := database.DB.Model(&rec).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	audit(c, &farm.ID, "check_out", "attendance", rec.ID, "")
	return c.JSON(http.StatusOK, rec)
}
