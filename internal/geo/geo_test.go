package geo

import (
	"math"
	"testing"
)

// unitSquare is an open 1°×1° ring anchored at the origin.
var unitSquare = []Point{
	{Lat: 0, Lng: 0},
	{Lat: 0, Lng: 1},
	{Lat: 1, Lng: 1},
	{Lat: 1, Lng: 0},
}

func reversed(ring []Point) []Point {
	out := make([]Point, len(ring))
	for i, p := range ring {
		out[len(ring)-1-i] = p
	}
	return out
}

func rotated(ring []Point, by int) []Point {
	out := make([]Point, 0, len(ring))
	out = append(out, ring[by:]...)
	return append(out, ring[:by]...)
}

func TestDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Point
		wantM     float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         Point{Lat: 41.1333, Lng: -8.6167},
			b:         Point{Lat: 41.1333, Lng: -8.6167},
			wantM:     0,
			tolerance: 0.001,
		},
		{
			name:      "one degree of latitude (~111km)",
			a:         Point{Lat: 41, Lng: -8.6},
			b:         Point{Lat: 42, Lng: -8.6},
			wantM:     111000,
			tolerance: 500,
		},
		{
			name:      "ten meter step",
			a:         Point{Lat: 41.1333, Lng: -8.6167},
			b:         Point{Lat: 41.1333 + 0.0001, Lng: -8.6167},
			wantM:     11.1,
			tolerance: 0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.wantM) > tt.tolerance {
				t.Errorf("Distance() = %f, want %f (±%f)", got, tt.wantM, tt.tolerance)
			}
		})
	}
}

func TestDistance_Symmetry(t *testing.T) {
	a := Point{Lat: 41.13, Lng: -8.61}
	b := Point{Lat: 41.15, Lng: -8.63}
	if d1, d2 := Distance(a, b), Distance(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance is not symmetric: %f vs %f", d1, d2)
	}
}

func TestRingArea(t *testing.T) {
	tests := []struct {
		name      string
		ring      []Point
		want      float64
		tolerance float64
	}{
		{
			name:      "unit degree square",
			ring:      unitSquare,
			want:      KmPerDegree * KmPerDegree,
			tolerance: 1e-6,
		},
		{
			name: "half unit triangle",
			ring: []Point{{0, 0}, {0, 1}, {1, 0}},
			want: KmPerDegree * KmPerDegree / 2,

			tolerance: 1e-6,
		},
		{name: "two points", ring: unitSquare[:2], want: 0, tolerance: 0},
		{name: "empty", ring: nil, want: 0, tolerance: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RingArea(tt.ring)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("RingArea() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRingArea_WindingIndependent(t *testing.T) {
	a1 := RingArea(unitSquare)
	a2 := RingArea(reversed(unitSquare))
	if a1 < 0 {
		t.Errorf("area must be non-negative, got %f", a1)
	}
	if a1 != a2 {
		t.Errorf("reversed ring area %f != %f", a2, a1)
	}
}

func TestRingArea_ClosedRingUnchanged(t *testing.T) {
	if open, closed := RingArea(unitSquare), RingArea(CloseRing(unitSquare)); open != closed {
		t.Errorf("closing the ring changed the area: %f vs %f", open, closed)
	}
}

func TestRingCenter_InsideBoundingBox(t *testing.T) {
	rings := [][]Point{
		unitSquare,
		CloseRing(unitSquare),
		{{41.13, -8.62}, {41.14, -8.60}, {41.16, -8.61}},
	}
	for _, ring := range rings {
		c, ok := RingCenter(ring)
		if !ok {
			t.Fatal("expected a center")
		}
		minLat, maxLat := math.Inf(1), math.Inf(-1)
		minLng, maxLng := math.Inf(1), math.Inf(-1)
		for _, p := range ring {
			minLat, maxLat = math.Min(minLat, p.Lat), math.Max(maxLat, p.Lat)
			minLng, maxLng = math.Min(minLng, p.Lng), math.Max(maxLng, p.Lng)
		}
		if c.Lat < minLat || c.Lat > maxLat || c.Lng < minLng || c.Lng > maxLng {
			t.Errorf("center %+v outside bounding box of %+v", c, ring)
		}
	}
}

func TestRingCenter_Empty(t *testing.T) {
	if _, ok := RingCenter(nil); ok {
		t.Error("empty ring should have no center")
	}
}

func TestPointInRing(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		ring []Point
		want bool
	}{
		{"center of square", Point{0.5, 0.5}, unitSquare, true},
		{"outside square", Point{1.5, 0.5}, unitSquare, false},
		{"far away", Point{-5, -5}, unitSquare, false},
		{"degenerate ring", Point{0.5, 0.5}, unitSquare[:2], false},
		{"closed ring", Point{0.5, 0.5}, CloseRing(unitSquare), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInRing(tt.p, tt.ring); got != tt.want {
				t.Errorf("PointInRing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointInRing_RotationInvariant(t *testing.T) {
	inside := Point{0.5, 0.5}
	outside := Point{2, 2}
	for by := range unitSquare {
		ring := rotated(unitSquare, by)
		if !PointInRing(inside, ring) {
			t.Errorf("rotation by %d lost inside point", by)
		}
		if PointInRing(outside, ring) {
			t.Errorf("rotation by %d gained outside point", by)
		}
	}
}

func TestSelfIntersects(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   bool
	}{
		{
			name:   "straight walk",
			points: []Point{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
			want:   false,
		},
		{
			name:   "open square",
			points: unitSquare,
			want:   false,
		},
		{
			// Last segment cuts back across the first one.
			name:   "figure eight",
			points: []Point{{0, 0}, {0, 2}, {1, 2}, {-1, 1}},
			want:   true,
		},
		{
			name:   "too short",
			points: []Point{{0, 0}, {1, 1}, {2, 0}},
			want:   false,
		},
		{
			// Shares the endpoint with the first segment but never crosses it.
			name:   "endpoint touch is not a crossing",
			points: []Point{{0, 0}, {0, 1}, {1, 1}, {0, 0}},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelfIntersects(tt.points); got != tt.want {
				t.Errorf("SelfIntersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRingPairs_RoundTrip(t *testing.T) {
	pairs := RingToPairs(unitSquare)
	if len(pairs) != len(unitSquare)+1 {
		t.Fatalf("expected closed interchange ring, got %d pairs", len(pairs))
	}
	if pairs[0] != pairs[len(pairs)-1] {
		t.Fatal("interchange ring must repeat the first pair last")
	}
	// Interchange order is [lng, lat].
	if pairs[1] != [2]float64{1, 0} {
		t.Fatalf("expected [lng lat] ordering, got %v", pairs[1])
	}

	ring := RingFromPairs(pairs)
	back := RingToPairs(ring)
	if len(back) != len(pairs) {
		t.Fatalf("round trip changed length: %d vs %d", len(back), len(pairs))
	}
	for i := range pairs {
		if back[i] != pairs[i] {
			t.Errorf("pair %d changed in round trip: %v vs %v", i, back[i], pairs[i])
		}
	}
}

func TestUnionArea(t *testing.T) {
	small := []Point{{0.4, 0.4}, {0.4, 0.6}, {0.6, 0.6}, {0.6, 0.4}}
	disjoint := []Point{{10, 10}, {10, 11}, {11, 11}, {11, 10}}

	tests := []struct {
		name      string
		rings     [][]Point
		want      float64
		tolerance float64
	}{
		{"empty", nil, 0, 0},
		{"single", [][]Point{unitSquare}, RingArea(unitSquare), 1e-9},
		{
			"disjoint pair sums",
			[][]Point{unitSquare, disjoint},
			RingArea(unitSquare) + RingArea(disjoint),
			1e-9,
		},
		{
			"engulfed ring not double counted",
			[][]Point{unitSquare, small},
			RingArea(unitSquare),
			1e-9,
		},
		{
			"identical rings count once",
			[][]Point{unitSquare, unitSquare},
			RingArea(unitSquare),
			1e-9,
		},
		{
			"degenerate ring ignored",
			[][]Point{unitSquare, unitSquare[:2]},
			RingArea(unitSquare),
			1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnionArea(tt.rings)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("UnionArea() = %f, want %f", got, tt.want)
			}
		})
	}
}
