package schedule

import (
	"fmt"
	"strings"

	"github.com/zhao-stanley/6.1040-a3/store"
)

// Issue is one problem found while validating a proposal batch.
type Issue struct {
	// Index is the zero-based position of the proposal in the payload.
	Index int
	// Title is the proposal's title as the planner wrote it.
	Title string
	// StartTime is the proposal's slot, nil when missing or not an integer.
	StartTime *int
	// Reason is a human-readable description of the problem.
	Reason string
}

func (i Issue) String() string {
	start := "?"
	if i.StartTime != nil {
		start = fmt.Sprintf("%d", *i.StartTime)
	}
	return fmt.Sprintf("proposal %d (%q at slot %s): %s", i.Index, i.Title, start, i.Reason)
}

// ValidationError aggregates every issue found while validating a batch -
// never just the first. The batch is rejected as a whole and the store is
// left unchanged.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("proposal batch rejected with %d issue(s): %s",
		len(e.Issues), strings.Join(parts, "; "))
}

// titlePool groups the activities that were unassigned at request time into
// one FIFO queue per title, in the order the activities were created.
// Duplicate titles resolve by queue order, never by re-ordering proposals.
// A pool is built fresh for each batch call and discarded afterward.
type titlePool struct {
	queues map[string][]*store.Activity
}

func newTitlePool(unassigned []*store.Activity) *titlePool {
	pool := &titlePool{queues: make(map[string][]*store.Activity)}
	for _, activity := range unassigned {
		pool.queues[activity.Title] = append(pool.queues[activity.Title], activity)
	}
	return pool
}

// pop removes and returns the next queued activity for title, or nil when the
// title's queue is empty.
func (p *titlePool) pop(title string) *store.Activity {
	queue := p.queues[title]
	if len(queue) == 0 {
		return nil
	}
	activity := queue[0]
	p.queues[title] = queue[1:]
	return activity
}

// pushFront returns an activity to the front of its queue so that later
// same-title proposals diagnose against the activity they would actually get.
func (p *titlePool) pushFront(title string, activity *store.Activity) {
	p.queues[title] = append([]*store.Activity{activity}, p.queues[title]...)
}

// placement is one validated (activity, startTime) pair awaiting apply.
type placement struct {
	Activity  *store.Activity
	StartTime int
}

// validateProposals checks every proposal in payload order against the
// eligible pool and the working occupancy view. The view is seeded from the
// store's existing assignments and updated as proposals are accepted, so
// proposals also may not overlap one another. Nothing here mutates the store.
func validateProposals(proposals []Proposal, pool *titlePool, occ *Occupancy) ([]placement, []Issue) {
	var validated []placement
	var issues []Issue

	for idx, prop := range proposals {
		activity := pool.pop(prop.Title)
		if activity == nil {
			issues = append(issues, Issue{
				Index:     idx,
				Title:     prop.Title,
				StartTime: prop.Start,
				Reason:    "no eligible unassigned activity for this title",
			})
			continue
		}

		if prop.Start == nil || *prop.Start < 0 || *prop.Start >= store.SlotsPerDay {
			issues = append(issues, Issue{
				Index:     idx,
				Title:     prop.Title,
				StartTime: prop.Start,
				Reason:    fmt.Sprintf("startTime is not an integer between 0 and %d", store.SlotsPerDay-1),
			})
			pool.pushFront(prop.Title, activity)
			continue
		}
		start := *prop.Start

		if start+activity.Duration > store.SlotsPerDay {
			issues = append(issues, Issue{
				Index:     idx,
				Title:     prop.Title,
				StartTime: prop.Start,
				Reason: fmt.Sprintf("extends past end of day: slot %d + duration %d > %d",
					start, activity.Duration, store.SlotsPerDay),
			})
			pool.pushFront(prop.Title, activity)
			continue
		}

		if slot, occupant := occ.FirstConflict(start, activity.Duration); occupant != nil {
			issues = append(issues, Issue{
				Index:     idx,
				Title:     prop.Title,
				StartTime: prop.Start,
				Reason:    fmt.Sprintf("overlaps %q at slot %d", occupant.Title, slot),
			})
			pool.pushFront(prop.Title, activity)
			continue
		}

		occ.Mark(start, activity.Duration, Occupant{
			ActivityUID: activity.UID,
			Title:       activity.Title,
		})
		validated = append(validated, placement{Activity: activity, StartTime: start})
	}

	return validated, issues
}
