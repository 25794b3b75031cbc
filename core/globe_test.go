package core_test

import (
	"errors"
	"testing"

	"dotglobe/core"
)

func testGlobeConfig(dots int) core.GlobeConfig {
	return core.GlobeConfig{
		DotCount:     dots,
		Radius:       1,
		Threshold:    128,
		DefaultColor: testDefault,
		ActiveColor:  testActive,
	}
}

func TestNewGlobePipeline(t *testing.T) {
	globe, err := core.NewGlobe(testGlobeConfig(500), uniformRaster(t, 16, 8, 255))
	if err != nil {
		t.Fatalf("new globe: %v", err)
	}
	if globe.DotCount() != 500 {
		t.Fatalf("all-land raster retained %d of 500 dots", globe.DotCount())
	}
	states, err := globe.StateSnapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(states) != len(globe.Points()) {
		t.Fatalf("state store holds %d records for %d dots", len(states), len(globe.Points()))
	}
}

func TestNewGlobeRejectsBadConfig(t *testing.T) {
	raster := uniformRaster(t, 4, 2, 255)
	if _, err := core.NewGlobe(testGlobeConfig(1), raster); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("dot count 1: got %v, want ErrInvalidArgument", err)
	}
	cfg := testGlobeConfig(100)
	cfg.Radius = 0
	if _, err := core.NewGlobe(cfg, raster); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("zero radius: got %v, want ErrInvalidArgument", err)
	}
	if _, err := core.NewGlobe(testGlobeConfig(100), nil); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("nil raster: got %v, want ErrInvalidArgument", err)
	}
}

func TestGlobeSetActiveByCoordinate(t *testing.T) {
	globe, err := core.NewGlobe(testGlobeConfig(2000), uniformRaster(t, 16, 8, 255))
	if err != nil {
		t.Fatalf("new globe: %v", err)
	}

	red := core.RGB{R: 255}
	nyc := core.ActiveRequest{Lat: 40.7128, Lon: -74.0060, Color: &red}
	if err := globe.SetActive([]core.ActiveRequest{nyc}); err != nil {
		t.Fatalf("set active: %v", err)
	}

	idx, err := globe.Nearest(nyc.Lat, nyc.Lon)
	if err != nil {
		t.Fatalf("nearest: %v", err)
	}
	st, err := globe.State(idx)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if !st.Active || st.Color != red {
		t.Fatalf("nearest dot after activation: %+v, want active red", st)
	}

	// No other record was touched.
	states, err := globe.StateSnapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	for i, s := range states {
		if i == idx {
			continue
		}
		if s.Active || s.Color != testDefault {
			t.Fatalf("record %d disturbed by an unrelated activation: %+v", i, s)
		}
	}
}

func TestGlobeSetActiveComposes(t *testing.T) {
	globe, err := core.NewGlobe(testGlobeConfig(2000), uniformRaster(t, 16, 8, 255))
	if err != nil {
		t.Fatalf("new globe: %v", err)
	}

	first := core.ActiveRequest{Lat: 51.5, Lon: -0.12}
	second := core.ActiveRequest{Lat: -33.87, Lon: 151.21}
	if err := globe.SetActive([]core.ActiveRequest{first}); err != nil {
		t.Fatalf("first activation: %v", err)
	}
	if err := globe.SetActive([]core.ActiveRequest{second}); err != nil {
		t.Fatalf("second activation: %v", err)
	}

	// Consecutive partial updates accumulate; no implicit clear.
	for _, req := range []core.ActiveRequest{first, second} {
		idx, err := globe.Nearest(req.Lat, req.Lon)
		if err != nil {
			t.Fatalf("nearest: %v", err)
		}
		st, err := globe.State(idx)
		if err != nil {
			t.Fatalf("state: %v", err)
		}
		if !st.Active {
			t.Fatalf("dot for (%g, %g) lost its activation", req.Lat, req.Lon)
		}
	}

	if err := globe.ClearActive(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	states, err := globe.StateSnapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	for i, s := range states {
		if s.Active {
			t.Fatalf("record %d still active after clear", i)
		}
	}
}

func TestGlobeSetActiveRejectsBadCoordinate(t *testing.T) {
	globe, err := core.NewGlobe(testGlobeConfig(100), uniformRaster(t, 8, 4, 255))
	if err != nil {
		t.Fatalf("new globe: %v", err)
	}
	err = globe.SetActive([]core.ActiveRequest{{Lat: 120, Lon: 0}})
	if !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}

func TestGlobeNearestOnOceanOnlyGlobe(t *testing.T) {
	globe, err := core.NewGlobe(testGlobeConfig(100), uniformRaster(t, 8, 4, 0))
	if err != nil {
		t.Fatalf("new globe: %v", err)
	}
	if globe.DotCount() != 0 {
		t.Fatalf("all-ocean raster retained %d dots", globe.DotCount())
	}
	if _, err := globe.Nearest(0, 0); !errors.Is(err, core.ErrEmptyIndex) {
		t.Errorf("got %v, want ErrEmptyIndex", err)
	}
}

func TestGlobeReconfigureSwapsWholesale(t *testing.T) {
	globe, err := core.NewGlobe(testGlobeConfig(500), uniformRaster(t, 16, 8, 255))
	if err != nil {
		t.Fatalf("new globe: %v", err)
	}
	if err := globe.SetActive([]core.ActiveRequest{{Lat: 0, Lon: 0}}); err != nil {
		t.Fatalf("activate: %v", err)
	}

	if err := globe.Reconfigure(testGlobeConfig(1200), uniformRaster(t, 16, 8, 255)); err != nil {
		t.Fatalf("reconfigure: %v", err)
	}

	// Geometry, index and state all moved to the new generation together.
	if globe.DotCount() != 1200 {
		t.Fatalf("reconfigured dot count %d, want 1200", globe.DotCount())
	}
	states, err := globe.StateSnapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(states) != len(globe.Points()) {
		t.Fatalf("state store holds %d records for %d dots", len(states), len(globe.Points()))
	}
	for i, s := range states {
		if s.Active {
			t.Fatalf("record %d carried activation across a rebuild", i)
		}
	}
	idx, err := globe.Nearest(0, 0)
	if err != nil {
		t.Fatalf("nearest after reconfigure: %v", err)
	}
	if idx < 0 || idx >= globe.DotCount() {
		t.Fatalf("nearest returned %d outside the new point set", idx)
	}

	// A failed reconfigure leaves the previous generation intact.
	bad := testGlobeConfig(0)
	if err := globe.Reconfigure(bad, uniformRaster(t, 16, 8, 255)); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("bad reconfigure: got %v, want ErrInvalidArgument", err)
	}
	if globe.DotCount() != 1200 {
		t.Fatalf("failed reconfigure disturbed the live generation: %d dots", globe.DotCount())
	}
}
