package util

import "time"

const (
	DateTimeFormat = "2006-01-02 15:04:05"
)

// FormatDateTime renders timestamps in the human form shown at the gate
// ("already used at ...") and in order listings.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeFormat)
}

func ParseDateTime(s string) (time.Time, error) {
	return time.Parse(DateTimeFormat, s)
}
