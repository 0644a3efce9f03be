// Package geo answers "is this check-in inside the farm's geofence".
// Distances are meters on the WGS84 sphere.
package geo

import "math"

const earthRadiusM = 6371000.0

type Point struct {
	Lat float64
	Lng float64
}

// HaversineM returns the great-circle distance between two points in meters.
func HaversineM(a, b Point) float64 {
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(la1)*math.Cos(la2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(h))
}

// InCircle reports whether p lies within radiusM+toleranceM of center.
func InCircle(p, center Point, radiusM, toleranceM float64) bool {
	return HaversineM(p, center) <= radiusM+toleranceM
}

// InPolygon reports whether p lies inside the polygon (ray casting), or
// within toleranceM meters of any edge. Vertices are in order; the polygon
// closes itself.
func InPolygon(p Point, vertices []Point, toleranceM float64) bool {
	if len(vertices) < 3 {
		return false
	}
	if rayCast(p, vertices) {
		return true
	}
	if toleranceM <= 0 {
		return false
	}
	for i := 0; i < len(vertices); i++ {
		j := (i + 1) % len(vertices)
		if distToSegmentM(p, vertices[i], vertices[j]) <= toleranceM {
			return true
		}
	}
	return false
}

func rayCast(p Point, vs []Point) bool {
	inside := false
	j := len(vs) - 1
	for i := 0; i < len(vs); i++ {
		vi, vj := vs[i], vs[j]
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) {
			x := (vj.Lng-vi.Lng)*(p.Lat-vi.Lat)/(vj.Lat-vi.Lat) + vi.Lng
			if p.Lng < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// distToSegmentM projects onto an equirectangular plane around the segment;
// adequate at geofence scale (hundreds of meters).
func distToSegmentM(p, a, b Point) float64 {
	cosLat := math.Cos(a.Lat * math.Pi / 180)
	toXY := func(q Point) (float64, float64) {
		x := q.Lng * cosLat * math.Pi / 180 * earthRadiusM
		y := q.Lat * math.Pi / 180 * earthRadiusM
		return x, y
	}
	px, py := toXY(p)
	ax, ay := toXY(a)
	bx, by := toXY(b)

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((px-ax)*dx + (py-ay)*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}
	cx, cy := ax+t*dx, ay+t*dy
	return math.Hypot(px-cx, py-cy)
}
