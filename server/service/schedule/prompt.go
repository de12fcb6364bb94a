package schedule

import (
	"fmt"
	"strings"

	"github.com/zhao-stanley/6.1040-a3/plugin/ai"
	"github.com/zhao-stanley/6.1040-a3/store"
)

const plannerSystemPrompt = `You are a day-planning assistant. The day is divided into 48 half-hour slots numbered 0 (00:00) through 47 (23:30). An activity with duration d occupies the slot range [startTime, startTime+d).

Assign a start slot to every activity listed under UNASSIGNED ACTIVITIES.

Rules:
1. Assigned ranges must not overlap each other.
2. Assigned ranges must not touch any range listed under EXISTING ASSIGNMENTS - those are fixed and must stay untouched.
3. Every assignment must fit inside the day: startTime + duration <= 48.
4. Schedule each listed activity exactly once. When several activities share a title, include that title once per copy.

Output ONLY a JSON array (no wrapper, no markdown, no prose):
[
  {"title": "<activity title>", "startTime": <integer slot>}
]`

// existingAssignment is the inventory row for one fixed assignment.
type existingAssignment struct {
	Title     string
	StartTime int
	EndTime   int
}

// composePlannerMessages builds the instruction sent to the external planner.
// It inventories the currently-unassigned activities and the existing
// assignments so the planner can avoid touching them.
func composePlannerMessages(unassigned []*store.Activity, existing []existingAssignment) []ai.Message {
	var sb strings.Builder

	sb.WriteString("UNASSIGNED ACTIVITIES:\n")
	for _, activity := range unassigned {
		fmt.Fprintf(&sb, "- %q, duration %d slot(s) (%s)\n",
			activity.Title, activity.Duration, formatDuration(activity.Duration))
	}

	sb.WriteString("\nEXISTING ASSIGNMENTS (fixed, do not touch):\n")
	if len(existing) == 0 {
		sb.WriteString("- none\n")
	}
	for _, e := range existing {
		fmt.Fprintf(&sb, "- %q occupies slots %d-%d (%s to %s)\n",
			e.Title, e.StartTime, e.EndTime-1, formatSlot(e.StartTime), formatSlot(e.EndTime))
	}

	return []ai.Message{
		ai.SystemPrompt(plannerSystemPrompt),
		ai.UserMessage(sb.String()),
	}
}

// formatSlot renders a slot index as clock time, e.g. 26 -> "13:00".
func formatSlot(slot int) string {
	return fmt.Sprintf("%02d:%02d", slot/2, (slot%2)*30)
}

// formatDuration renders a duration in slots as hours and minutes.
func formatDuration(slots int) string {
	minutes := slots * 30
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
