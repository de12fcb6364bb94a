// Package schedule organizes discrete activities into non-overlapping
// half-hour slots of a fixed 48-slot day.
//
// Key pieces:
//   - Occupancy: a derived slot-to-occupant view used only for conflict checks
//   - ExtractProposals/validateProposals: the extract-then-validate pipeline
//     for the untrusted planner payload, aggregating every issue found
//   - applyAssignments: the all-or-nothing batch commit
//
// The service layer assumes exclusive single-session use of its store: the
// snapshot of unassigned activities taken at the start of an auto-assignment
// call stays valid only because nothing else mutates the store while the call
// is in flight. Making this concurrent would need an explicit session lock
// held from snapshot through apply.
package schedule

import (
	"context"
	"log/slog"
	"time"

	errcode "github.com/zhao-stanley/6.1040-a3/internal/errors"
	"github.com/zhao-stanley/6.1040-a3/plugin/ai"
	"github.com/zhao-stanley/6.1040-a3/store"
)

type service struct {
	store *store.Store
	llm   ai.LLMService
}

// NewService creates a new scheduling service on top of an activity store and
// a planner transport.
func NewService(st *store.Store, llm ai.LLMService) Service {
	return &service{store: st, llm: llm}
}

func (s *service) AddActivity(title string, duration int) (*store.Activity, error) {
	return s.store.AddActivity(title, duration)
}

func (s *service) RemoveActivity(uid string) error {
	return s.store.RemoveActivity(uid)
}

func (s *service) AssignActivity(uid string, startTime int) error {
	return s.store.AssignActivity(uid, startTime)
}

func (s *service) UnassignActivity(uid string) error {
	return s.store.UnassignActivity(uid)
}

func (s *service) GetSchedule() map[int][]*store.Activity {
	return s.store.GetSchedule()
}

// RequestAutoAssignment snapshots the unassigned activities, asks the
// external planner for a proposal batch, validates it as a whole, and applies
// either the entire batch or none of it. Any failure before the apply step
// leaves the store byte-for-byte unchanged.
func (s *service) RequestAutoAssignment(ctx context.Context) (*AutoAssignResult, error) {
	startedAt := time.Now()

	// Snapshot the eligible pool. The single-session model guarantees the
	// snapshot stays accurate through the planner round-trip below.
	unassigned := s.store.UnassignedActivities()
	if len(unassigned) == 0 {
		slog.Info("auto-assignment skipped, nothing to schedule")
		return &AutoAssignResult{}, nil
	}

	messages := composePlannerMessages(unassigned, s.existingAssignments())

	raw, err := s.llm.Chat(ctx, messages)
	if err != nil {
		return nil, errcode.PlannerUnavailable("planner call failed", err)
	}

	proposals, err := ExtractProposals(raw)
	if err != nil {
		return nil, err
	}

	// The working occupancy view is seeded from existing assignments only and
	// lives for the duration of this validation.
	occupancy := BuildOccupancy(s.store)
	pool := newTitlePool(unassigned)

	validated, issues := validateProposals(proposals, pool, occupancy)
	if len(issues) > 0 {
		slog.Warn("proposal batch rejected",
			"proposals", len(proposals),
			"issues", len(issues),
		)
		return nil, &ValidationError{Issues: issues}
	}

	applied, err := s.applyAssignments(validated)
	if err != nil {
		return nil, err
	}

	slog.Info("auto-assignment applied",
		"assignments", len(applied),
		"duration_ms", time.Since(startedAt).Milliseconds(),
	)

	return &AutoAssignResult{Applied: applied}, nil
}

// existingAssignments builds the prompt inventory of fixed assignments.
func (s *service) existingAssignments() []existingAssignment {
	var existing []existingAssignment
	for _, assignment := range s.store.ListAssignments() {
		activity := s.store.GetActivity(assignment.ActivityUID)
		if activity == nil {
			continue
		}
		existing = append(existing, existingAssignment{
			Title:     activity.Title,
			StartTime: assignment.StartTime,
			EndTime:   assignment.EndTime(activity),
		})
	}
	return existing
}
