package auction

import (
	"fmt"
	"time"
)

// TimeLeft is the discrete classification of the time remaining until an
// expiry timestamp. It carries no cached state; callers needing a live
// countdown re-evaluate it on their own schedule.
type TimeLeft struct {
	Expired bool `json:"expired"`
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
}

// Remaining classifies the interval between now and expiry. The boundary is
// inclusive: now == expiry already counts as expired. Whole days, then whole
// hours within the remaining day, then whole minutes, all floor division.
func Remaining(expiry, now time.Time) TimeLeft {
	diff := expiry.Sub(now)
	if diff <= 0 {
		return TimeLeft{Expired: true}
	}

	days := int(diff / (24 * time.Hour))
	diff -= time.Duration(days) * 24 * time.Hour
	hours := int(diff / time.Hour)
	diff -= time.Duration(hours) * time.Hour
	minutes := int(diff / time.Minute)

	return TimeLeft{Days: days, Hours: hours, Minutes: minutes}
}

// Label renders the duration bucket. The most significant non-zero unit
// decides the format; the final minute before expiry may render as
// "0 minutes", which is accepted boundary behavior rather than rounded up.
func (t TimeLeft) Label() string {
	switch {
	case t.Expired:
		return "Expired"
	case t.Days > 0:
		return fmt.Sprintf("%s %s", plural(t.Days, "day"), plural(t.Hours, "hour"))
	case t.Hours > 0:
		return fmt.Sprintf("%s %s", plural(t.Hours, "hour"), plural(t.Minutes, "minute"))
	default:
		return plural(t.Minutes, "minute")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
