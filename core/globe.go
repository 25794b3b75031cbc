package core

import (
	"fmt"
	"math"
	"sync"
)

// GlobeConfig is the immutable set of build parameters for one globe
// generation. Changing any field means building a new generation via
// Reconfigure; nothing mutates a live configuration in place.
type GlobeConfig struct {
	DotCount     int     // spiral dot count before land filtering, >= 2
	Radius       float64 // sphere radius, > 0
	Threshold    uint8   // land brightness cutoff, strict greater-than test
	DefaultColor RGB     // inactive dot color
	ActiveColor  RGB     // color applied by activation when none is given
}

// Validate rejects configurations the generator or filter would refuse.
func (c GlobeConfig) Validate() error {
	if c.DotCount < 2 {
		return fmt.Errorf("%w: dot count %d, need at least 2", ErrInvalidArgument, c.DotCount)
	}
	if c.Radius <= 0 || math.IsInf(c.Radius, 0) || math.IsNaN(c.Radius) {
		return fmt.Errorf("%w: radius %v, need a positive finite value", ErrInvalidArgument, c.Radius)
	}
	return nil
}

// generation bundles a retained point set with the index and state store
// built from it. It is assembled off to the side and swapped in whole, so
// the three are always mutually consistent.
type generation struct {
	cfg    GlobeConfig
	points []Point
	index  *PointIndex
	store  *DotStateStore
}

// Globe ties the pipeline together: spiral generation, land filtering,
// index build and state allocation run in that order at construction and
// at every reconfiguration, completing before any query is answered. The
// globe holds no rendering context and does no I/O; collaborators read
// geometry and state through it and request mutations through SetActive,
// ClearActive and UpdateState.
type Globe struct {
	mu  sync.RWMutex
	gen *generation
}

// NewGlobe builds the first generation from the configuration and an
// already-decoded land raster.
func NewGlobe(cfg GlobeConfig, raster *LandRaster) (*Globe, error) {
	g := &Globe{}
	if err := g.Reconfigure(cfg, raster); err != nil {
		return nil, err
	}
	return g, nil
}

// Reconfigure builds a complete replacement generation — dots, index and
// state records — and swaps it in as one unit. Callers never observe an
// index that disagrees with the state store. Prior dot state does not
// carry over; the new store starts at defaults.
func (g *Globe) Reconfigure(cfg GlobeConfig, raster *LandRaster) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	points, err := GenerateSpiralPoints(cfg.DotCount, cfg.Radius)
	if err != nil {
		return err
	}
	retained, err := FilterLand(points, raster, cfg.Threshold)
	if err != nil {
		return err
	}
	index, err := NewPointIndex(retained, cfg.Radius)
	if err != nil {
		return err
	}
	store := NewDotStateStore(cfg.DefaultColor, cfg.ActiveColor)
	if err := store.Initialize(len(retained)); err != nil {
		return err
	}

	g.mu.Lock()
	g.gen = &generation{cfg: cfg, points: retained, index: index, store: store}
	g.mu.Unlock()
	return nil
}

func (g *Globe) current() *generation {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.gen
}

// Config returns the configuration of the current generation.
func (g *Globe) Config() GlobeConfig {
	return g.current().cfg
}

// Points returns the retained point set. The slice is shared and read-only
// by contract; it stays valid for the lifetime of the current generation.
func (g *Globe) Points() []Point {
	return g.current().points
}

// DotCount reports how many dots survived the land filter.
func (g *Globe) DotCount() int {
	return len(g.current().points)
}

// Nearest resolves (lat, lon) to the position of the closest retained dot.
func (g *Globe) Nearest(lat, lon float64) (int, error) {
	return g.current().index.Nearest(lat, lon)
}

// SetActive resolves each request to its nearest dot and activates it.
// Requests apply in order with last-write-wins per dot; dots no request
// resolves to are left untouched, so partial updates compose. On a bad
// coordinate the error is returned and later entries are skipped; earlier
// entries stay applied.
func (g *Globe) SetActive(requests []ActiveRequest) error {
	gen := g.current()
	for _, req := range requests {
		idx, err := gen.index.Nearest(req.Lat, req.Lon)
		if err != nil {
			return err
		}
		if err := gen.store.Activate(idx, req.Color); err != nil {
			return err
		}
	}
	return nil
}

// ClearActive deactivates every dot and restores the default color.
func (g *Globe) ClearActive() error {
	return g.current().store.ClearActive()
}

// State returns a copy of one dot's record.
func (g *Globe) State(index int) (DotState, error) {
	return g.current().store.Get(index)
}

// UpdateState merges a partial record into one dot.
func (g *Globe) UpdateState(index int, patch StatePatch) error {
	return g.current().store.Update(index, patch)
}

// StateSnapshot returns a copy of every dot's record in dot order,
// matching the Points slice index-for-index.
func (g *Globe) StateSnapshot() ([]DotState, error) {
	return g.current().store.Snapshot()
}
