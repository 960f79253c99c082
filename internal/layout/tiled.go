package layout

import (
	"errors"
	"fmt"

	"github.com/talgya/hamlet/internal/geom"
)

const (
	// DefaultSnapPadding is the gap kept between neighbouring areas.
	DefaultSnapPadding = 1.0

	// MinStep nudges snap probes past the boundary they were placed against.
	// Area sides must be at least twice this long.
	MinStep = 0.1

	// MaxSnapIterations caps a single snap search.
	MaxSnapIterations = 100_000
)

var (
	// ErrSnapExhausted is returned when a snap search hits its iteration cap
	// or keeps landing on the same area.
	ErrSnapExhausted = errors.New("snap search exhausted")

	// ErrNotColliding is returned when a snap is requested for a candidate
	// that overlaps nothing in the tiled area.
	ErrNotColliding = errors.New("candidate does not collide with tiled area")
)

// SnapError describes a failed snap search.
type SnapError struct {
	Reason     string    // "iteration cap" or "cycle"
	Start      geom.Vec3 // candidate center the search began from
	At         geom.Vec3 // center of the last blocking area
	Iterations int
}

func (e *SnapError) Error() string {
	return fmt.Sprintf("snap from %v: %s after %d steps at %v", e.Start, e.Reason, e.Iterations, e.At)
}

func (e *SnapError) Unwrap() error {
	return ErrSnapExhausted
}

// TiledArea is a cluster of areas that share one orientation and never
// overlap. It only grows.
type TiledArea struct {
	ID            TileID        `json:"id"`
	Anchor        geom.Rotation `json:"anchor"`
	SnapPadding   float64       `json:"snap_padding"`
	MaxIterations int           `json:"-"`

	members []AreaID
}

// Members returns the member areas in placement order.
func (t *TiledArea) Members() []AreaID {
	out := make([]AreaID, len(t.members))
	copy(out, t.members)
	return out
}

// Len returns the number of member areas.
func (t *TiledArea) Len() int {
	return len(t.members)
}

func (t *TiledArea) iterationCap() int {
	if t.MaxIterations > 0 {
		return t.MaxIterations
	}
	return MaxSnapIterations
}

// leaningDirection picks the anchor axis (forward, backward, right, left)
// onto which delta projects most strongly. forward reports whether the
// chosen axis is the forward/backward one.
func (t *TiledArea) leaningDirection(delta geom.Vec3) (dir geom.Vec3, forward bool) {
	fw := t.Anchor.Forward()
	rg := t.Anchor.Right()
	candidates := []struct {
		dir     geom.Vec3
		forward bool
	}{
		{fw, true},
		{fw.Neg(), true},
		{rg, false},
		{rg.Neg(), false},
	}

	best := 0
	bestMag := delta.Dot(candidates[0].dir)
	for i := 1; i < len(candidates); i++ {
		if mag := delta.Dot(candidates[i].dir); mag > bestMag {
			best, bestMag = i, mag
		}
	}
	return candidates[best].dir, candidates[best].forward
}

// march steps outward along dir from the blocking area until collide
// reports a free probe. Each step places the candidate just beyond the
// area currently in the way.
func (t *TiledArea) march(candidate geom.Box, start AreaID, dir geom.Vec3, forward bool,
	areaOf func(AreaID) Area, collide func(geom.Vec3) (AreaID, bool)) (geom.Vec3, error) {

	candHalf := candidate.Dimensions.X / 2
	if forward {
		candHalf = candidate.Dimensions.Z / 2
	}

	limit := t.iterationCap()
	current := start
	for iter := 1; ; iter++ {
		blocking := areaOf(current)
		target := blocking.Center().Add(dir.Scale(blocking.halfExtentAlong(forward) + candHalf + t.SnapPadding))

		next, hit := collide(target.Add(dir.Scale(MinStep)))
		if !hit {
			return target, nil
		}
		if iter >= limit {
			return geom.Vec3{}, &SnapError{Reason: "iteration cap", Start: candidate.Center, At: blocking.Center(), Iterations: iter}
		}
		if next == current {
			return geom.Vec3{}, &SnapError{Reason: "cycle", Start: candidate.Center, At: blocking.Center(), Iterations: iter}
		}
		current = next
	}
}
