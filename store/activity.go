package store

// Slot arithmetic. The day is divided into 48 half-hour slots, indexed 0-47.
const (
	// SlotsPerDay is the number of half-hour slots in one day.
	SlotsPerDay = 48
	// MaxDuration is the largest allowed activity duration in slots.
	MaxDuration = SlotsPerDay - 1
)

// Activity is a discrete piece of work with a duration measured in half-hour
// slots. The UID is a stable opaque handle; two activities may carry the same
// title and remain distinct.
type Activity struct {
	UID      string
	Title    string
	Duration int
}

// Assignment places exactly one activity at a start slot. It occupies the
// half-open slot range [StartTime, StartTime+Duration). The reference to its
// activity is non-owning: removing the activity drops the assignment.
type Assignment struct {
	ActivityUID string
	StartTime   int
}

// EndTime returns the first slot past the occupied range.
func (a *Assignment) EndTime(act *Activity) int {
	return a.StartTime + act.Duration
}
