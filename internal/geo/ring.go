package geo

// OpenRing strips the duplicated closing vertex, if present.
func OpenRing(ring []Point) []Point {
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		return ring[:len(ring)-1]
	}
	return ring
}

// CloseRing appends the first vertex to the end, unless the ring is already
// closed or too short to close.
func CloseRing(ring []Point) []Point {
	if len(ring) < 3 || ring[0] == ring[len(ring)-1] {
		return ring
	}
	closed := make([]Point, 0, len(ring)+1)
	closed = append(closed, ring...)
	return append(closed, ring[0])
}

// RingToPairs serializes a ring to the interchange form: a closed ring of
// [longitude, latitude] pairs, first pair repeated as the last.
func RingToPairs(ring []Point) [][2]float64 {
	ring = CloseRing(ring)
	pairs := make([][2]float64, len(ring))
	for i, p := range ring {
		pairs[i] = [2]float64{p.Lng, p.Lat}
	}
	return pairs
}

// RingFromPairs parses the [lng, lat] interchange form. An unclosed ring is
// tolerated and closed. A closed ring round-trips exactly.
func RingFromPairs(pairs [][2]float64) []Point {
	ring := make([]Point, len(pairs))
	for i, pr := range pairs {
		ring[i] = Point{Lat: pr[1], Lng: pr[0]}
	}
	return CloseRing(ring)
}

// UnionArea approximates the combined area of a set of rings without
// double-counting: a ring whose center lies inside a larger ring contributes
// nothing extra, mirroring the game's engulfment rule. Anything the overlap
// heuristic cannot resolve falls back to naive summation of that ring's
// area, accepting an over-count rather than failing the whole computation.
func UnionArea(rings [][]Point) float64 {
	areas := make([]float64, len(rings))
	for i, r := range rings {
		areas[i] = RingArea(r)
	}

	var total float64
	for i, r := range rings {
		if areas[i] == 0 {
			continue
		}
		engulfed := false
		for j, other := range rings {
			if i == j || areas[j] < areas[i] {
				continue
			}
			// Equal-area ties count only the first ring.
			if areas[j] == areas[i] && j > i {
				continue
			}
			c, ok := RingCenter(r)
			if ok && PointInRing(c, other) {
				engulfed = true
				break
			}
		}
		if !engulfed {
			total += areas[i]
		}
	}
	return total
}
