package domain

import (
	"fmt"
	"time"
)

// DateLayout is the accepted layout for window boundaries.
const DateLayout = "2006-01-02"

// Window is an inclusive contribution window in UTC.
type Window struct {
	From time.Time
	To   time.Time
}

// ParseWindow parses two YYYY-MM-DD dates into a window that starts at
// 00:00:00Z on the first day and ends at 23:59:59Z on the last one.
// The order of the boundaries is not checked.
func ParseWindow(from, to string) (Window, error) {
	fromDay, err := time.Parse(DateLayout, from)
	if err != nil {
		return Window{}, &ConfigError{Msg: fmt.Sprintf("invalid from date %q, use YYYY-MM-DD", from), Err: err}
	}
	toDay, err := time.Parse(DateLayout, to)
	if err != nil {
		return Window{}, &ConfigError{Msg: fmt.Sprintf("invalid to date %q, use YYYY-MM-DD", to), Err: err}
	}
	return Window{
		From: fromDay.UTC(),
		To:   toDay.UTC().Add(24*time.Hour - time.Second),
	}, nil
}

// String formats the window the way it is sent to the API.
func (w Window) String() string {
	return w.From.Format(time.RFC3339) + ".." + w.To.Format(time.RFC3339)
}
