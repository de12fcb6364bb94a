package schedule

import (
	"context"

	"github.com/zhao-stanley/6.1040-a3/store"
)

// Service defines the core business logic interface for day-slot scheduling.
// This is the only boundary surrounding layers (CLI, display) may use; the
// result of GetSchedule is read-only derived data.
type Service interface {
	// AddActivity creates a fresh activity with a duration in half-hour slots.
	AddActivity(title string, duration int) (*store.Activity, error)

	// RemoveActivity drops the activity and cascades to its assignment.
	RemoveActivity(uid string) error

	// AssignActivity places the activity at startTime, replacing any prior
	// assignment. This is the direct, unchecked write path: it does not verify
	// overlap with other assignments.
	AssignActivity(uid string, startTime int) error

	// UnassignActivity removes the activity's assignment if present.
	UnassignActivity(uid string) error

	// GetSchedule returns a derived slot-to-occupants view of the day.
	GetSchedule() map[int][]*store.Activity

	// RequestAutoAssignment asks the external planner for time proposals for
	// every currently-unassigned activity, validates the whole batch, and
	// applies it all-or-nothing.
	RequestAutoAssignment(ctx context.Context) (*AutoAssignResult, error)
}

// AppliedAssignment records one assignment committed by a batch apply.
type AppliedAssignment struct {
	ActivityUID string
	Title       string
	StartTime   int
	EndTime     int
}

// AutoAssignResult is the outcome of a successful auto-assignment request.
// An empty Applied list means the eligible pool was empty and the call was a
// documented no-op: no planner round-trip happened.
type AutoAssignResult struct {
	Applied []AppliedAssignment
}
