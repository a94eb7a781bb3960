package clock

import "time"

const dateLayout = "January 2, 2006"

func Now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

// Date formats t as a long calendar date, e.g. "March 4, 2025"; zero time gives "".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// DateTime formats t the way the feedback summary shows submission time.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Monday, January 2, 2006 at 03:04 PM")
}
