// Package store owns the canonical set of activities and their assignments
// for a single scheduling session. State is in-memory only; nothing survives
// the process.
//
// The store enforces per-mutation invariants (valid references, one
// assignment per activity, assignments fit inside the day) but deliberately
// does NOT check slot overlap on the direct assign path. Disjointness of
// occupied slot ranges is enforced only by the validated batch path in
// server/service/schedule; changing that here would change the observable
// behavior of manual assignment.
package store

import (
	"sync"

	errcode "github.com/zhao-stanley/6.1040-a3/internal/errors"
	"github.com/zhao-stanley/6.1040-a3/internal/util"
)

// Store provides access to all activities and assignments of one session.
type Store struct {
	mu sync.RWMutex

	activities  map[string]*Activity
	order       []string // activity UIDs in creation order
	assignments map[string]*Assignment
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		activities:  make(map[string]*Activity),
		assignments: make(map[string]*Assignment),
	}
}

// AddActivity creates a fresh activity with the given title and duration.
func (s *Store) AddActivity(title string, duration int) (*Activity, error) {
	if title == "" {
		return nil, errcode.InvalidArgument("title must not be empty")
	}
	if duration < 0 || duration > MaxDuration {
		return nil, errcode.InvalidArgumentf("duration must be between 0 and %d slots, got %d", MaxDuration, duration)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	activity := &Activity{
		UID:      util.GenUUID(),
		Title:    title,
		Duration: duration,
	}
	s.activities[activity.UID] = activity
	s.order = append(s.order, activity.UID)

	return activity, nil
}

// RemoveActivity drops an activity and cascades to its assignment, if any.
func (s *Store) RemoveActivity(uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.activities[uid]; !ok {
		return errcode.NotFound(uid)
	}

	delete(s.assignments, uid)
	delete(s.activities, uid)
	for i, id := range s.order {
		if id == uid {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return nil
}

// AssignActivity places an activity at startTime, replacing any prior
// assignment for that activity. Overlap with other activities' assignments is
// not checked here: this is the direct, unchecked write path. The validated
// batch path is the only one that guarantees disjoint slot ranges.
func (s *Store) AssignActivity(uid string, startTime int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, ok := s.activities[uid]
	if !ok {
		return errcode.NotFound(uid)
	}
	if startTime < 0 || startTime >= SlotsPerDay {
		return errcode.InvalidArgumentf("startTime must be between 0 and %d, got %d", SlotsPerDay-1, startTime)
	}
	if startTime+activity.Duration > SlotsPerDay {
		return errcode.InvalidArgumentf("assignment extends past end of day: slot %d + duration %d > %d",
			startTime, activity.Duration, SlotsPerDay)
	}

	s.assignments[uid] = &Assignment{
		ActivityUID: uid,
		StartTime:   startTime,
	}

	return nil
}

// UnassignActivity removes the activity's assignment. Removing an assignment
// that does not exist is a tolerated no-op: the remove-activity cascade and
// callers that retract speculative placements both rely on it.
func (s *Store) UnassignActivity(uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.activities[uid]; !ok {
		return errcode.NotFound(uid)
	}

	delete(s.assignments, uid)
	return nil
}

// GetActivity returns the activity for uid, or nil if unknown.
func (s *Store) GetActivity(uid string) *Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities[uid]
}

// AssignmentFor returns the activity's current assignment, or nil.
func (s *Store) AssignmentFor(uid string) *Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.assignments[uid]; ok {
		cp := *a
		return &cp
	}
	return nil
}

// ListActivities returns all activities in creation order.
func (s *Store) ListActivities() []*Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*Activity, 0, len(s.order))
	for _, uid := range s.order {
		cp := *s.activities[uid]
		list = append(list, &cp)
	}
	return list
}

// ListAssignments returns all assignments, ordered by their activity's
// creation order so views and prompts stay deterministic.
func (s *Store) ListAssignments() []*Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*Assignment, 0, len(s.assignments))
	for _, uid := range s.order {
		if a, ok := s.assignments[uid]; ok {
			cp := *a
			list = append(list, &cp)
		}
	}
	return list
}

// UnassignedActivities returns activities without an assignment, in creation
// order. This is the eligible pool snapshot for a batch-assignment call.
func (s *Store) UnassignedActivities() []*Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*Activity
	for _, uid := range s.order {
		if _, assigned := s.assignments[uid]; !assigned {
			cp := *s.activities[uid]
			list = append(list, &cp)
		}
	}
	return list
}

// GetSchedule expands every assignment across its duration and returns a
// derived slot-to-occupants view. The result is a fresh copy each call;
// mutating it never touches the store. A slot may list several occupants
// because the direct assign path does not check overlap.
func (s *Store) GetSchedule() map[int][]*Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedule := make(map[int][]*Activity)
	for _, uid := range s.order {
		assignment, ok := s.assignments[uid]
		if !ok {
			continue
		}
		activity := s.activities[uid]
		for slot := assignment.StartTime; slot < assignment.StartTime+activity.Duration; slot++ {
			cp := *activity
			schedule[slot] = append(schedule[slot], &cp)
		}
	}
	return schedule
}
