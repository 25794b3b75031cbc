package core

// Point is a single dot on the sphere surface. Index is assigned at
// generation time and never changes: filtering removes dots from the
// retained set but does not renumber the survivors.
type Point struct {
	Index int     // generator index, stable across filtering
	X     float64 // points at the 0° meridian on the equator
	Y     float64 // points at the north pole
	Z     float64 // points at 90°E on the equator
	Lat   float64 // derived latitude in degrees, [-90, 90]
	Lon   float64 // derived longitude in degrees, (-180, 180]
}

// RGB is a per-dot display color.
type RGB struct {
	R, G, B uint8
}

// DotState is the mutable display state of one retained dot. Metadata is
// opaque to the core; callers attach whatever the rendering or data layer
// needs.
type DotState struct {
	Active   bool
	Color    RGB
	Metadata any
}

// StatePatch carries a partial update for one dot. Nil fields leave the
// existing value untouched.
type StatePatch struct {
	Active   *bool
	Color    *RGB
	Metadata any
}

// ActiveRequest asks for the dot nearest (Lat, Lon) to be activated.
// A nil Color selects the configured active color.
type ActiveRequest struct {
	Lat   float64
	Lon   float64
	Color *RGB
}
