package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/captjay98/livestockai/database"
	"github.com/captjay98/livestockai/models"
)

func TestCheckInGeoStatus(t *testing.T) {
	strict := &models.Farm{RequireGeofence: true}
	lax := &models.Farm{RequireGeofence: false}
	fence := &models.Geofence{
		Kind:      "circle",
		CenterLat: 10.5105,
		CenterLng: 7.4165,
		RadiusM:   100,
	}
	inLat, inLng := 10.5106, 7.4166
	outLat, outLng := 10.5205, 7.4165

	// no fence configured: always unchecked
	status, code := checkInGeoStatus(strict, nil, nil, nil)
	assert.Equal(t, "unchecked", status)
	assert.Empty(t, code)

	// inside the fence
	status, code = checkInGeoStatus(strict, fence, &inLat, &inLng)
	assert.Equal(t, "verified", status)
	assert.Empty(t, code)

	// outside: strict farms reject, lax farms record it
	_, code = checkInGeoStatus(strict, fence, &outLat, &outLng)
	assert.Equal(t, "OUTSIDE_GEOFENCE", code)
	status, code = checkInGeoStatus(lax, fence, &outLat, &outLng)
	assert.Equal(t, "outside", status)
	assert.Empty(t, code)

	// missing coordinates cannot sidestep a required fence
	_, code = checkInGeoStatus(strict, fence, nil, nil)
	assert.Equal(t, "MISSING_COORDINATES", code)
	_, code = checkInGeoStatus(strict, fence, &inLat, nil)
	assert.Equal(t, "MISSING_COORDINATES", code)
	status, code = checkInGeoStatus(lax, fence, nil, nil)
	assert.Equal(t, "unchecked", status)
	assert.Empty(t, code)
}

func seedAttendanceFixtures(t *testing.T) (*models.Farm, *models.WorkerProfile) {
	t.Helper()
	owner := models.User{Email: "owner@farm.test", Password: "x", Role: "owner"}
	require.NoError(t, database.DB.Create(&owner).Error)
	farm := models.Farm{OwnerID: owner.ID, Name: "Kofar Gida", LivestockType: "poultry"}
	require.NoError(t, database.DB.Create(&farm).Error)
	worker := models.WorkerProfile{
		FarmID: farm.ID, FirstName: "Sani", LastName: "Bello",
		WageType: "daily", WageRate: 2500, Status: "active",
	}
	require.NoError(t, database.DB.Create(&worker).Error)
	return &farm, &worker
}

func TestCheckInOpenRecordConflict(t *testing.T) {
	setupTestDB(t)
	farm, worker := seedAttendanceFixtures(t)
	h := NewAttendanceHandler()
	body := fmt.Sprintf(`{"worker_id":%d}`, worker.ID)

	c, rec := newJSONContext(http.MethodPost, "/", body)
	farmContext(c, farm, farm.OwnerID, "owner")
	require.NoError(t, h.CheckIn(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// a second check-in while the first is still open is refused
	c, rec = newJSONContext(http.MethodPost, "/", body)
	farmContext(c, farm, farm.OwnerID, "owner")
	require.NoError(t, h.CheckIn(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "ALREADY_CHECKED_IN")

	// checking out closes the record and frees the worker to come back
	c, rec = newJSONContext(http.MethodPost, "/", body)
	farmContext(c, farm, farm.OwnerID, "owner")
	require.NoError(t, h.CheckOut(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newJSONContext(http.MethodPost, "/", body)
	farmContext(c, farm, farm.OwnerID, "owner")
	require.NoError(t, h.CheckIn(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var n int64
	require.NoError(t, database.DB.Model(&models.AttendanceRecord{}).
		Where("worker_id = ? AND check_out_at IS NULL", worker.ID).
		Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestCheckOutWithoutOpenRecord(t *testing.T) {
	setupTestDB(t)
	farm, worker := seedAttendanceFixtures(t)
	h := NewAttendanceHandler()

	c, rec := newJSONContext(http.MethodPost, "/", fmt.Sprintf(`{"worker_id":%d}`, worker.ID))
	farmContext(c, farm, farm.OwnerID, "owner")
	require.NoError(t, h.CheckOut(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_CHECKED_IN")
}

func TestCheckInRequiredFenceMissingCoordinates(t *testing.T) {
	setupTestDB(t)
	farm, worker := seedAttendanceFixtures(t)
	farm.RequireGeofence = true
	require.NoError(t, database.DB.Save(farm).Error)
	fence := models.Geofence{
		FarmID: farm.ID, Name: "Main yard", Kind: "circle",
		CenterLat: 10.5105, CenterLng: 7.4165, RadiusM: 100, Active: true,
	}
	require.NoError(t, database.DB.Create(&fence).Error)
	h := NewAttendanceHandler()

	// omitting coordinates must not slip past the fence requirement
	c, rec := newJSONContext(http.MethodPost, "/", fmt.Sprintf(`{"worker_id":%d}`, worker.ID))
	farmContext(c, farm, farm.OwnerID, "owner")
	require.NoError(t, h.CheckIn(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_COORDINATES")

	c, rec = newJSONContext(http.MethodPost, "/",
		fmt.Sprintf(`{"worker_id":%d,"lat":10.5205,"lng":7.4165}`, worker.ID))
	farmContext(c, farm, farm.OwnerID, "owner")
	require.NoError(t, h.CheckIn(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "OUTSIDE_GEOFENCE")

	c, rec = newJSONContext(http.MethodPost, "/",
		fmt.Sprintf(`{"worker_id":%d,"lat":10.5106,"lng":7.4166}`, worker.ID))
	farmContext(c, farm, farm.OwnerID, "owner")
	require.NoError(t, h.CheckIn(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var row models.AttendanceRecord
	require.NoError(t, database.DB.Where("worker_id = ?", worker.ID).First(&row).Error)
	assert.Equal(t, "verified", row.GeoStatus)
}
