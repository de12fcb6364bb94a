package schedule

import (
	"fmt"
	"log/slog"
)

// applyAssignments commits a fully validated list to the store, in payload
// order. Safe to route through the unchecked assign path: the validator
// already guaranteed every placement is in range and disjoint from both the
// existing assignments and each other.
func (s *service) applyAssignments(validated []placement) ([]AppliedAssignment, error) {
	applied := make([]AppliedAssignment, 0, len(validated))

	for _, pl := range validated {
		if err := s.store.AssignActivity(pl.Activity.UID, pl.StartTime); err != nil {
			// The validator vouched for this batch; failing here means the
			// store changed underneath the session.
			return nil, fmt.Errorf("failed to apply validated assignment %q: %w", pl.Activity.Title, err)
		}

		endTime := pl.StartTime + pl.Activity.Duration
		slog.Info("assignment applied",
			"title", pl.Activity.Title,
			"activity_uid", pl.Activity.UID,
			"start_slot", pl.StartTime,
			"end_slot", endTime,
		)

		applied = append(applied, AppliedAssignment{
			ActivityUID: pl.Activity.UID,
			Title:       pl.Activity.Title,
			StartTime:   pl.StartTime,
			EndTime:     endTime,
		})
	}

	return applied, nil
}
