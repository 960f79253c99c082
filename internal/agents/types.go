// Package agents provides the villager data model and the spawner that
// creates a village's population.
package agents

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/hamlet/internal/geom"
)

// VillagerID is a unique identifier for a villager.
type VillagerID = uuid.UUID

// Sex represents biological sex for demographic variety.
type Sex uint8

const (
	SexMale   Sex = 0
	SexFemale Sex = 1
)

// Villager is a resident of a village. Index is the villager's position in
// its village's population and is stable for the village's lifetime.
type Villager struct {
	ID    VillagerID `json:"id"`
	Index int        `json:"index"`
	Tag   string     `json:"tag"`  // "<village>.Villager.<index>"
	Name  string     `json:"name"` // Personal name
	Age   uint16     `json:"age"`
	Sex   Sex        `json:"sex"`
	Elder bool       `json:"elder"`

	Position geom.Vec3     `json:"position"`
	Facing   geom.Rotation `json:"facing"`

	// Home is the index of the hut the villager lives in, -1 while unhoused.
	Home int `json:"home"`
}

// Housed reports whether the villager has been assigned a hut.
func (v *Villager) Housed() bool {
	return v.Home >= 0
}

func (v *Villager) String() string {
	role := "villager"
	if v.Elder {
		role = "elder"
	}
	return fmt.Sprintf("%s (%s, %s, age %d)", v.Tag, v.Name, role, v.Age)
}
