package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Roughly the poultry sheds of a test farm near Kaduna.
var center = Point{Lat: 10.5105, Lng: 7.4165}

func TestHaversineM(t *testing.T) {
	// ~111km per degree of latitude
	d := HaversineM(Point{Lat: 10.0, Lng: 7.0}, Point{Lat: 11.0, Lng: 7.0})
	assert.InDelta(t, 111195, d, 200)

	assert.Zero(t, HaversineM(center, center))
}

func TestInCircle(t *testing.T) {
	near := Point{Lat: 10.5106, Lng: 7.4166} // ~15m away
	far := Point{Lat: 10.5205, Lng: 7.4165}  // ~1.1km away

	assert.True(t, InCircle(near, center, 100, 0))
	assert.False(t, InCircle(far, center, 100, 0))

	// tolerance widens the boundary
	edge := Point{Lat: 10.5114, Lng: 7.4165} // ~100m away
	assert.True(t, InCircle(edge, center, 90, 20))
	assert.False(t, InCircle(edge, center, 90, 0))
}

func TestInPolygon(t *testing.T) {
	// ~200m square
	square := []Point{
		{Lat: 10.5100, Lng: 7.4160},
		{Lat: 10.5118, Lng: 7.4160},
		{Lat: 10.5118, Lng: 7.4178},
		{Lat: 10.5100, Lng: 7.4178},
	}

	assert.True(t, InPolygon(Point{Lat: 10.5109, Lng: 7.4169}, square, 0))
	assert.False(t, InPolygon(Point{Lat: 10.5150, Lng: 7.4169}, square, 0))

	// just outside the north edge, within 50m tolerance
	outside := Point{Lat: 10.5120, Lng: 7.4169}
	assert.False(t, InPolygon(outside, square, 0))
	assert.True(t, InPolygon(outside, square, 50))
}

func TestInPolygonDegenerate(t *testing.T) {
	assert.False(t, InPolygon(center, nil, 100))
	assert.False(t, InPolygon(center, []Point{center, center}, 100))
}
