package effort

import "errors"

// --- Error Definitions ---
// Validation errors are resolved entirely on the caller's side and never
// reach the remote store; none of them is fatal.
var (
	ErrInvalidRange  = errors.New("cohort start date is after end date")
	ErrHourBounds    = errors.New("daily effort hours must be between 0 and 9")
	ErrDayTotal      = errors.New("cumulative effort hours for a day cannot exceed 9")
	ErrIncompleteLog = errors.New("all non-holiday weekdays must be saved before submitting the week")
	ErrWeekCompleted = errors.New("week is already completed and read-only")
	ErrUnknownDay    = errors.New("date is not a weekday of the selected week")
	ErrUnknownRole   = errors.New("unknown effort role")
)

// MaxDailyHours is the hard business cap on effort per person per day
// (10 working hours minus a 1 hour break).
const MaxDailyHours = 9.0

// CheckHours validates a single hours value against the daily cap.
func CheckHours(hours float64) error {
	if hours < 0 || hours > MaxDailyHours {
		return ErrHourBounds
	}
	return nil
}
