package core

import (
	"fmt"
	"math"
	"sort"
)

// distEps absorbs floating-point noise when ranking squared chord
// distances; candidates within this tolerance of each other count as tied
// and resolve to the lowest dot position.
const distEps = 1e-12

// kdNode is one tree node, stored by index in a flat slice to keep the
// whole structure in two allocations.
type kdNode struct {
	Point int32 // position in the retained point slice
	Left  int32 // node index, -1 when absent
	Right int32
	Axis  uint8 // 0=X, 1=Y, 2=Z
}

// PointIndex answers nearest-dot queries against a fixed retained point
// set. It is a k-d tree over the dots' Cartesian positions ranked by chord
// distance, which is the straight-line 3D distance and orders identically
// to great-circle distance on a sphere, so no inverse trigonometry runs in
// the search path. The index is never mutated in place: reconfiguration
// builds a fresh one, and rebuilding never changes results versus a linear
// scan.
type PointIndex struct {
	points []Point
	nodes  []kdNode
	root   int32
	radius float64
}

// NewPointIndex builds the tree over the retained points. An empty set is
// accepted; Nearest then fails with ErrEmptyIndex. Build cost is
// O(n log² n) from the per-level sorts, run once per reconfiguration.
func NewPointIndex(points []Point, radius float64) (*PointIndex, error) {
	if radius <= 0 || math.IsInf(radius, 0) || math.IsNaN(radius) {
		return nil, fmt.Errorf("%w: index radius %v, need a positive finite value", ErrInvalidArgument, radius)
	}
	idx := &PointIndex{points: points, radius: radius, root: -1}
	if len(points) == 0 {
		return idx, nil
	}
	order := make([]int32, len(points))
	for i := range order {
		order[i] = int32(i)
	}
	idx.nodes = make([]kdNode, 0, len(points))
	idx.root = idx.build(order, 0)
	return idx, nil
}

// Size reports how many dots the index covers.
func (idx *PointIndex) Size() int {
	return len(idx.points)
}

func (idx *PointIndex) build(order []int32, depth int) int32 {
	if len(order) == 0 {
		return -1
	}
	axis := uint8(depth % 3)
	sort.Slice(order, func(i, j int) bool {
		return axisValue(idx.points[order[i]], axis) < axisValue(idx.points[order[j]], axis)
	})
	mid := len(order) / 2

	pos := int32(len(idx.nodes))
	idx.nodes = append(idx.nodes, kdNode{}) // reserve before recursing
	node := kdNode{Point: order[mid], Axis: axis}
	node.Left = idx.build(order[:mid], depth+1)
	node.Right = idx.build(order[mid+1:], depth+1)
	idx.nodes[pos] = node
	return pos
}

// Nearest returns the position in the retained point set of the dot
// closest to (lat, lon). Equidistant candidates resolve to the lowest
// position, so repeated queries are reproducible.
func (idx *PointIndex) Nearest(lat, lon float64) (int, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return 0, fmt.Errorf("%w: latitude %v, need [-90, 90]", ErrInvalidArgument, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return 0, fmt.Errorf("%w: longitude %v, need [-180, 180]", ErrInvalidArgument, lon)
	}
	if len(idx.points) == 0 {
		return 0, fmt.Errorf("%w: no dots to search", ErrEmptyIndex)
	}

	qx, qy, qz := LatLonToCartesian(lat, lon, idx.radius)
	best := int32(-1)
	bestDist := math.Inf(1)
	idx.search(idx.root, qx, qy, qz, &best, &bestDist)
	return int(best), nil
}

func (idx *PointIndex) search(node int32, qx, qy, qz float64, best *int32, bestDist *float64) {
	if node < 0 {
		return
	}
	n := idx.nodes[node]
	p := idx.points[n.Point]

	d := sqChordDist(p, qx, qy, qz)
	switch {
	case d < *bestDist-distEps:
		*bestDist = d
		*best = n.Point
	case d <= *bestDist+distEps:
		if d < *bestDist {
			*bestDist = d
		}
		if *best < 0 || n.Point < *best {
			*best = n.Point
		}
	}

	var q float64
	switch n.Axis {
	case 0:
		q = qx
	case 1:
		q = qy
	default:
		q = qz
	}
	diff := q - axisValue(p, n.Axis)

	near, far := n.Left, n.Right
	if diff > 0 {
		near, far = far, near
	}
	idx.search(near, qx, qy, qz, best, bestDist)
	// The far side can only matter if the splitting plane is closer than
	// the current best; the eps slack keeps tie candidates reachable.
	if diff*diff <= *bestDist+distEps {
		idx.search(far, qx, qy, qz, best, bestDist)
	}
}

func axisValue(p Point, axis uint8) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

func sqChordDist(p Point, qx, qy, qz float64) float64 {
	dx := p.X - qx
	dy := p.Y - qy
	dz := p.Z - qz
	return dx*dx + dy*dy + dz*dz
}
