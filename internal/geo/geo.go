// Package geo contains the pure geographic math the game runs on. All of it
// is planar approximation tuned for street-scale play: distances are used
// only for jitter and closure thresholds, and areas use a flat degrees-to-km²
// scaling rather than a geodesic computation. Every function is total and
// degrades to zero/false on degenerate input.
package geo

import "math"

// KmPerDegree is the flat scaling applied to shoelace areas: 111 km per
// degree, applied uniformly to both axes. Accuracy degrades away from the
// latitude band the game is calibrated for; that trade-off is accepted.
const KmPerDegree = 111.0

const earthRadiusM = 6371000.0

// Point is an immutable (latitude, longitude) pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance returns the approximate distance between a and b in meters using
// an equirectangular projection.
func Distance(a, b Point) float64 {
	midLat := (a.Lat + b.Lat) / 2 * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180 * math.Cos(midLat)
	return earthRadiusM * math.Hypot(dLat, dLng)
}

// DegreeDistance returns the euclidean distance between a and b in raw
// degrees. Trace closure operates in degree space.
func DegreeDistance(a, b Point) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Lng-b.Lng)
}

// SelfIntersects reports whether the newest segment of a trace (its last two
// points) properly crosses any earlier non-adjacent segment. Touching at an
// endpoint is not a crossing. Traces shorter than four points cannot
// self-intersect.
func SelfIntersects(points []Point) bool {
	n := len(points)
	if n < 4 {
		return false
	}
	a, b := points[n-2], points[n-1]
	for i := 0; i < n-3; i++ {
		if segmentsCross(a, b, points[i], points[i+1]) {
			return true
		}
	}
	return false
}

// segmentsCross reports a proper crossing of segments ab and cd, endpoints
// excluded.
func segmentsCross(a, b, c, d Point) bool {
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross(o, a, b Point) float64 {
	return (a.Lng-o.Lng)*(b.Lat-o.Lat) - (a.Lat-o.Lat)*(b.Lng-o.Lng)
}

// PointInRing reports whether p lies inside the ring, by ray casting: a
// horizontal ray from p crossing an odd number of edges means inside. Rings
// with fewer than three points contain nothing.
func PointInRing(p Point, ring []Point) bool {
	if len(ring) < 3 {
		return false
	}
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) &&
			p.Lng < (b.Lng-a.Lng)*(p.Lat-a.Lat)/(b.Lat-a.Lat)+a.Lng {
			inside = !inside
		}
	}
	return inside
}

// RingArea returns the ring's planar area in km²: |shoelace|/2 on raw degree
// coordinates, scaled by KmPerDegree². Winding direction does not matter.
// A duplicated closing vertex contributes nothing, so both open and closed
// rings yield the same area.
func RingArea(ring []Point) float64 {
	if len(ring) < 3 {
		return 0
	}
	var sum float64
	for i := range ring {
		j := (i + 1) % len(ring)
		sum += ring[i].Lat*ring[j].Lng - ring[j].Lat*ring[i].Lng
	}
	return math.Abs(sum) / 2 * KmPerDegree * KmPerDegree
}

// RingCenter returns the arithmetic mean of the ring's vertices. Not a true
// centroid, but adequate for marker placement and containment sampling. A
// duplicated closing vertex is dropped first so it does not bias the mean.
// Returns false for an empty ring.
func RingCenter(ring []Point) (Point, bool) {
	ring = OpenRing(ring)
	if len(ring) == 0 {
		return Point{}, false
	}
	var c Point
	for _, p := range ring {
		c.Lat += p.Lat
		c.Lng += p.Lng
	}
	c.Lat /= float64(len(ring))
	c.Lng /= float64(len(ring))
	return c, true
}
