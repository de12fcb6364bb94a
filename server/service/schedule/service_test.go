package schedule

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errcode "github.com/zhao-stanley/6.1040-a3/internal/errors"
	"github.com/zhao-stanley/6.1040-a3/plugin/ai"
	"github.com/zhao-stanley/6.1040-a3/store"
)

// mockLLM is a canned planner transport for testing.
type mockLLM struct {
	reply    string
	err      error
	calls    int
	messages []ai.Message
}

func (m *mockLLM) Chat(_ context.Context, messages []ai.Message) (string, error) {
	m.calls++
	m.messages = messages
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

// snapshotAssignments captures the store's assignments for unchanged checks.
func snapshotAssignments(s *store.Store) map[string]int {
	snap := make(map[string]int)
	for _, a := range s.ListAssignments() {
		snap[a.ActivityUID] = a.StartTime
	}
	return snap
}

func TestRequestAutoAssignmentEndToEnd(t *testing.T) {
	st := store.New()
	gym1 := mustAdd(t, st, "Gym", 2)
	gym2 := mustAdd(t, st, "Gym", 2)

	llm := &mockLLM{reply: `Here is your plan:
[{"title": "Gym", "startTime": 10}, {"title": "Gym", "startTime": 14}]`}
	svc := NewService(st, llm)

	result, err := svc.RequestAutoAssignment(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Applied, 2)

	// First-created Gym binds the first proposal.
	assert.Equal(t, gym1.UID, result.Applied[0].ActivityUID)
	assert.Equal(t, 10, result.Applied[0].StartTime)
	assert.Equal(t, 12, result.Applied[0].EndTime)
	assert.Equal(t, gym2.UID, result.Applied[1].ActivityUID)
	assert.Equal(t, 14, result.Applied[1].StartTime)

	schedule := svc.GetSchedule()
	for _, slot := range []int{10, 11, 14, 15} {
		require.Len(t, schedule[slot], 1, "slot %d", slot)
	}
	assert.Equal(t, gym1.UID, schedule[10][0].UID)
	assert.Equal(t, gym2.UID, schedule[14][0].UID)
	for _, slot := range []int{9, 12, 13, 16} {
		assert.Empty(t, schedule[slot], "slot %d", slot)
	}
}

func TestRequestAutoAssignmentAllOrNothing(t *testing.T) {
	st := store.New()
	mustAdd(t, st, "Gym", 2)
	mustAdd(t, st, "Hike", 4)

	// The Gym proposal alone would be valid; the Hike one overflows the day.
	llm := &mockLLM{reply: `[{"title": "Gym", "startTime": 10}, {"title": "Hike", "startTime": 46}]`}
	svc := NewService(st, llm)

	_, err := svc.RequestAutoAssignment(context.Background())
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Issues, 1)
	assert.Contains(t, verr.Issues[0].Reason, "extends past end of day")

	// Even one invalid proposal leaves the store's assignments unchanged.
	assert.Empty(t, st.ListAssignments())
}

func TestRequestAutoAssignmentOverlapRejection(t *testing.T) {
	st := store.New()
	lunch := mustAdd(t, st, "Lunch", 1)
	require.NoError(t, st.AssignActivity(lunch.UID, 26))
	mustAdd(t, st, "Snack", 2)

	before := snapshotAssignments(st)

	llm := &mockLLM{reply: `[{"title": "Snack", "startTime": 25}]`}
	svc := NewService(st, llm)

	_, err := svc.RequestAutoAssignment(context.Background())
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Issues, 1)
	assert.Contains(t, verr.Issues[0].Reason, `overlaps "Lunch" at slot 26`)

	// Lunch is untouched and Snack stays unassigned.
	assert.Equal(t, before, snapshotAssignments(st))
}

func TestRequestAutoAssignmentAggregatesAllIssues(t *testing.T) {
	st := store.New()
	mustAdd(t, st, "Gym", 2)

	llm := &mockLLM{reply: `[
		{"title": "Swim", "startTime": 2},
		{"title": "Gym", "startTime": "noon"},
		{"title": "Gym", "startTime": 50}
	]`}
	svc := NewService(st, llm)

	_, err := svc.RequestAutoAssignment(context.Background())
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	// The complete list, never just the first problem.
	assert.Len(t, verr.Issues, 3)
	assert.Empty(t, st.ListAssignments())
}

func TestRequestAutoAssignmentEmptyPoolIsNoOp(t *testing.T) {
	st := store.New()
	gym := mustAdd(t, st, "Gym", 2)
	require.NoError(t, st.AssignActivity(gym.UID, 10))

	llm := &mockLLM{reply: `[{"title": "Gym", "startTime": 20}]`}
	svc := NewService(st, llm)

	result, err := svc.RequestAutoAssignment(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Applied)
	// No planner round-trip when there is nothing to schedule.
	assert.Equal(t, 0, llm.calls)

	got := st.AssignmentFor(gym.UID)
	require.NotNil(t, got)
	assert.Equal(t, 10, got.StartTime)
}

func TestRequestAutoAssignmentPlannerTransportError(t *testing.T) {
	st := store.New()
	mustAdd(t, st, "Gym", 2)

	llm := &mockLLM{err: fmt.Errorf("connection refused")}
	svc := NewService(st, llm)

	_, err := svc.RequestAutoAssignment(context.Background())
	require.Error(t, err)
	assert.True(t, errcode.IsCode(err, errcode.ErrCodePlannerUnavailable))
	assert.Empty(t, st.ListAssignments())
}

func TestRequestAutoAssignmentParseFailure(t *testing.T) {
	st := store.New()
	mustAdd(t, st, "Gym", 2)

	llm := &mockLLM{reply: "I cannot schedule that, sorry."}
	svc := NewService(st, llm)

	_, err := svc.RequestAutoAssignment(context.Background())
	require.Error(t, err)
	assert.True(t, errcode.IsCode(err, errcode.ErrCodeParseFailed))
	assert.Empty(t, st.ListAssignments())
}

func TestRequestAutoAssignmentPromptInventory(t *testing.T) {
	st := store.New()
	lunch := mustAdd(t, st, "Lunch", 1)
	require.NoError(t, st.AssignActivity(lunch.UID, 26))
	mustAdd(t, st, "Gym", 2)

	llm := &mockLLM{reply: `[{"title": "Gym", "startTime": 10}]`}
	svc := NewService(st, llm)

	_, err := svc.RequestAutoAssignment(context.Background())
	require.NoError(t, err)

	require.Len(t, llm.messages, 2)
	assert.Equal(t, "system", llm.messages[0].Role)
	assert.Contains(t, llm.messages[0].Content, "48 half-hour slots")

	inventory := llm.messages[1].Content
	assert.Contains(t, inventory, `"Gym", duration 2 slot(s) (1h)`)
	assert.Contains(t, inventory, `"Lunch" occupies slots 26-26 (13:00 to 13:30)`)
}

func TestServiceDirectMutationsDelegate(t *testing.T) {
	st := store.New()
	svc := NewService(st, &mockLLM{})

	a, err := svc.AddActivity("Gym", 2)
	require.NoError(t, err)

	require.NoError(t, svc.AssignActivity(a.UID, 10))
	require.NoError(t, svc.UnassignActivity(a.UID))
	require.NoError(t, svc.RemoveActivity(a.UID))

	err = svc.AssignActivity(a.UID, 10)
	assert.True(t, errcode.IsCode(err, errcode.ErrCodeNotFound))
}
