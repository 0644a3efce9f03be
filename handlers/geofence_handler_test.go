package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/captjay98/livestockai/models"
)

func TestParseVertices(t *testing.T) {
	pts := parseVertices(`[[10.51,7.41],[10.52,7.41],[10.52,7.42]]`)
	assert.Len(t, pts, 3)
	assert.Equal(t, 10.51, pts[0].Lat)
	assert.Equal(t, 7.41, pts[0].Lng)

	assert.Nil(t, parseVertices("not json"))
	assert.Empty(t, parseVertices("[]"))
}

func TestFenceContainsCircle(t *testing.T) {
	fence := &models.Geofence{
		Kind:      "circle",
		CenterLat: 10.5105,
		CenterLng: 7.4165,
		RadiusM:   100,
	}

	assert.True(t, fenceContains(fence, 10.5106, 7.4166))
	assert.False(t, fenceContains(fence, 10.5205, 7.4165))

	// check-in just past the boundary passes once tolerance covers it
	fence.RadiusM = 90
	assert.False(t, fenceContains(fence, 10.5114, 7.4165))
	fence.ToleranceM = 20
	assert.True(t, fenceContains(fence, 10.5114, 7.4165))
}

func TestFenceContainsPolygon(t *testing.T) {
	fence := &models.Geofence{
		Kind:     "polygon",
		Vertices: `[[10.5100,7.4160],[10.5118,7.4160],[10.5118,7.4178],[10.5100,7.4178]]`,
	}

	assert.True(t, fenceContains(fence, 10.5109, 7.4169))
	assert.False(t, fenceContains(fence, 10.5150, 7.4169))

	fence.ToleranceM = 50
	assert.True(t, fenceContains(fence, 10.5120, 7.4169))
}

func TestFenceContainsBadVertices(t *testing.T) {
	fence := &models.Geofence{Kind: "polygon", Vertices: "oops"}
	assert.False(t, fenceContains(fence, 10.51, 7.41))
}

func TestValidateGeofenceReq(t *testing.T) {
	lat, lng, r := 10.51, 7.41, 100.0

	assert.Equal(t, "", validateGeofenceReq(&geofenceReq{
		Kind: "circle", CenterLat: &lat, CenterLng: &lng, RadiusM: &r,
	}))
	assert.Equal(t, "MISSING_FIELDS", validateGeofenceReq(&geofenceReq{Kind: "circle"}))

	bad := -5.0
	assert.Equal(t, "INVALID_RADIUS", validateGeofenceReq(&geofenceReq{
		Kind: "circle", CenterLat: &lat, CenterLng: &lng, RadiusM: &bad,
	}))

	assert.Equal(t, "POLYGON_TOO_SMALL", validateGeofenceReq(&geofenceReq{
		Kind: "polygon", Vertices: [][2]float64{{1, 2}, {3, 4}},
	}))
	assert.Equal(t, "", validateGeofenceReq(&geofenceReq{
		Kind: "polygon", Vertices: [][2]float64{{1, 2}, {3, 4}, {5, 6}},
	}))
	assert.Equal(t, "INVALID_KIND", validateGeofenceReq(&geofenceReq{Kind: "square"}))
}
