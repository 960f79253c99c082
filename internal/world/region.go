// Package world provides the circular regions that partition a chunk, the
// link graph between placed entities, and the terrain ground-height service.
package world

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/hamlet/internal/geom"
)

// NodeID identifies any placed entity: region, hut, tree or villager.
type NodeID = uuid.UUID

// RegionLabel is what a region holds.
type RegionLabel uint8

const (
	LabelVillage RegionLabel = iota
	LabelForest
)

func (l RegionLabel) String() string {
	switch l {
	case LabelVillage:
		return "village"
	case LabelForest:
		return "forest"
	default:
		return fmt.Sprintf("RegionLabel(%d)", uint8(l))
	}
}

// RegionShape is the closed set of region geometries. Only circles exist.
type RegionShape uint8

const (
	ShapeCircle RegionShape = iota
)

// Region is a circular claim on the chunk plane. Center and radius are
// fixed once set up.
type Region struct {
	ID     NodeID      `json:"id"`
	Name   string      `json:"name"`
	Label  RegionLabel `json:"label"`
	Shape  RegionShape `json:"shape"`
	Center geom.Vec3   `json:"center"`
	Radius float64     `json:"radius"`

	links *Graph
}

// NewRegion returns a provisional region. It is not linked to anything and
// belongs to no chunk until committed.
func NewRegion(label RegionLabel, name string, center geom.Vec3, radius float64) *Region {
	r := &Region{ID: uuid.New(), Name: name}
	r.SetUp(label, radius, center)
	return r
}

// SetUp sets label, radius and center. Panics on a non-positive radius.
func (r *Region) SetUp(label RegionLabel, radius float64, center geom.Vec3) {
	if radius <= 0 {
		panic(fmt.Sprintf("world: region radius must be positive, got %v", radius))
	}
	r.Label = label
	r.Shape = ShapeCircle
	r.Radius = radius
	r.Center = center
}

// ContainsPoint reports whether p lies within the region's circle.
func (r *Region) ContainsPoint(p geom.Vec3) bool {
	return geom.PointInCircle(p, r.Center, r.Radius)
}

// CollidesWith reports whether the two regions touch or overlap. Only
// circle-circle pairs can collide.
func (r *Region) CollidesWith(other *Region) bool {
	if r.Shape != ShapeCircle || other.Shape != ShapeCircle {
		return false
	}
	return geom.CirclesOverlap(r.Center, r.Radius, other.Center, other.Radius)
}

// Attach binds the region to a link graph. A region created on its own gets
// a private graph the first time it links.
func (r *Region) Attach(g *Graph) {
	r.links = g
}

// Graph returns the region's link graph.
func (r *Region) Graph() *Graph {
	if r.links == nil {
		r.links = NewGraph()
	}
	return r.links
}

// Link connects the region and node in both directions.
func (r *Region) Link(node NodeID) {
	r.Graph().Link(r.ID, node)
}

// Unlink removes the connection in both directions.
func (r *Region) Unlink(node NodeID) {
	r.Graph().Unlink(r.ID, node)
}

// Linked returns the nodes connected to the region.
func (r *Region) Linked() []NodeID {
	return r.Graph().Linked(r.ID)
}

func (r *Region) String() string {
	return fmt.Sprintf("%s %q at %v r=%.1f", r.Label, r.Name, r.Center, r.Radius)
}
