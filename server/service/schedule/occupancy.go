package schedule

import (
	"github.com/zhao-stanley/6.1040-a3/store"
)

// Occupant identifies the activity occupying a slot.
type Occupant struct {
	ActivityUID string
	Title       string
}

// Occupancy is a derived, ephemeral view mapping each slot of the day to the
// assignment currently occupying it. It is rebuilt from the store on demand,
// used only for conflict detection, and never persisted.
type Occupancy struct {
	slots [store.SlotsPerDay]*Occupant
}

// BuildOccupancy sweeps the store's existing assignments once and marks every
// slot in each assignment's duration range.
func BuildOccupancy(s *store.Store) *Occupancy {
	occ := &Occupancy{}
	for _, assignment := range s.ListAssignments() {
		activity := s.GetActivity(assignment.ActivityUID)
		if activity == nil {
			continue
		}
		occ.Mark(assignment.StartTime, activity.Duration, Occupant{
			ActivityUID: activity.UID,
			Title:       activity.Title,
		})
	}
	return occ
}

// Mark occupies the half-open slot range [start, start+duration).
func (o *Occupancy) Mark(start, duration int, occ Occupant) {
	for slot := start; slot < start+duration && slot < store.SlotsPerDay; slot++ {
		if slot < 0 {
			continue
		}
		cp := occ
		o.slots[slot] = &cp
	}
}

// FirstConflict returns the first occupied slot in [start, start+duration)
// and its occupant, or (-1, nil) when the whole range is free.
func (o *Occupancy) FirstConflict(start, duration int) (int, *Occupant) {
	for slot := start; slot < start+duration && slot < store.SlotsPerDay; slot++ {
		if slot < 0 {
			continue
		}
		if o.slots[slot] != nil {
			return slot, o.slots[slot]
		}
	}
	return -1, nil
}

// At returns the occupant of a single slot, or nil.
func (o *Occupancy) At(slot int) *Occupant {
	if slot < 0 || slot >= store.SlotsPerDay {
		return nil
	}
	return o.slots[slot]
}
