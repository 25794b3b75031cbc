package core_test

import (
	"errors"
	"math"
	"testing"

	"dotglobe/core"
)

func TestGenerateSpiralPointsRadius(t *testing.T) {
	for _, radius := range []float64{1, 0.5, 6371} {
		points, err := core.GenerateSpiralPoints(500, radius)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		for _, p := range points {
			r := math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
			if math.Abs(r-radius) > radius*1e-12 {
				t.Fatalf("dot %d: |position| = %v, want %v", p.Index, r, radius)
			}
		}
	}
}

func TestGenerateSpiralPointsDeterminism(t *testing.T) {
	a, err := core.GenerateSpiralPoints(2000, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := core.GenerateSpiralPoints(2000, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("dot %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateSpiralPointsCoversPoles(t *testing.T) {
	points, err := core.GenerateSpiralPoints(100, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if points[0].Y != 1 {
		t.Errorf("first dot Y = %v, want 1 (north pole)", points[0].Y)
	}
	if points[len(points)-1].Y != -1 {
		t.Errorf("last dot Y = %v, want -1 (south pole)", points[len(points)-1].Y)
	}
	// Heights step strictly downward, so there is no pole clustering from
	// repeated Y values.
	for i := 1; i < len(points); i++ {
		if points[i].Y >= points[i-1].Y {
			t.Fatalf("dot %d: Y %v not below previous %v", i, points[i].Y, points[i-1].Y)
		}
	}
}

func TestGenerateSpiralPointsIndexAndLatLon(t *testing.T) {
	points, err := core.GenerateSpiralPoints(64, 2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i, p := range points {
		if p.Index != i {
			t.Fatalf("dot %d carries generator index %d", i, p.Index)
		}
		wantLat, wantLon := core.ToLatLon(p.X/2, p.Y/2, p.Z/2)
		if p.Lat != wantLat || p.Lon != wantLon {
			t.Fatalf("dot %d: stored (%g, %g), derived (%g, %g)", i, p.Lat, p.Lon, wantLat, wantLon)
		}
	}
}

func TestGenerateSpiralPointsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		radius float64
	}{
		{"zero dots", 0, 1},
		{"one dot is degenerate", 1, 1},
		{"negative count", -5, 1},
		{"zero radius", 10, 0},
		{"negative radius", 10, -1},
		{"NaN radius", 10, math.NaN()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.GenerateSpiralPoints(tc.n, tc.radius)
			if !errors.Is(err, core.ErrInvalidArgument) {
				t.Errorf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
}
