package utils

import "fmt"

// HumanizeMinutes renders a raw minute total as a display string like
// "2 hours 15 minutes". Pure formatting; the ledger itself only ever deals
// in minute totals.
func HumanizeMinutes(total int) string {
	if total <= 0 {
		return "0 minutes"
	}

	hours := total / 60
	minutes := total % 60

	switch {
	case hours == 0:
		return fmt.Sprintf("%d %s", minutes, plural(minutes, "minute"))
	case minutes == 0:
		return fmt.Sprintf("%d %s", hours, plural(hours, "hour"))
	default:
		return fmt.Sprintf("%d %s %d %s", hours, plural(hours, "hour"), minutes, plural(minutes, "minute"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
