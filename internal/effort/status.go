package effort

import "time"

// Status classifies a week for the logging workflow.
type Status string

const (
	// StatusLocked marks a future week that has not yet begun.
	StatusLocked Status = "LOCKED"
	// StatusOpen marks a week that is editable and awaiting submission.
	StatusOpen Status = "OPEN"
	// StatusCompleted marks a week whose summary exists; permanently read-only.
	StatusCompleted Status = "COMPLETED"
)

// Classify evaluates the lock state of a week.
//
// Summary existence dominates: a completed week stays completed regardless of
// how today relates to its dates (the persisted summary, not the client's
// transition history, is the source of truth, e.g. after a page reload or
// under clock skew). Otherwise a week that has not started is locked, and
// anything else is open.
func Classify(week Week, today time.Time, hasSummary bool) Status {
	if hasSummary {
		return StatusCompleted
	}
	if week.StartDate.After(truncateToDay(today)) {
		return StatusLocked
	}
	return StatusOpen
}

// CurrentWeek picks the default selection: the week whose interval contains
// today, or the first week when none matches (e.g. the cohort has ended).
// The second return is false only when weeks is empty.
func CurrentWeek(weeks []Week, today time.Time) (Week, bool) {
	if len(weeks) == 0 {
		return Week{}, false
	}
	for _, w := range weeks {
		if w.Contains(today) {
			return w, true
		}
	}
	return weeks[0], true
}
