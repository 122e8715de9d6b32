package remind

import (
	"fmt"
	"time"
)

// NextTrigger resolves a daily "HH:MM" reminder time to its next
// occurrence after now, in now's location. If today's slot has already
// passed it rolls to tomorrow.
func NextTrigger(now time.Time, remindTime string) (time.Time, error) {
	parsed, err := time.Parse("15:04", remindTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTriggerTime, remindTime)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}
