package query

import (
	"fmt"
	"time"
)

// Window is a recency filter: events with timestamp >= now - Span.
type Window struct {
	Label string
	Span  time.Duration
}

// Today covers the last 24 hours.
func Today() Window {
	return Window{Label: "Today", Span: 24 * time.Hour}
}

// LastNDays covers the last n*24 hours.
func LastNDays(n int) Window {
	label := fmt.Sprintf("Last %d Days", n)
	if n == 7 {
		label = "Weekly"
	}
	return Window{Label: label, Span: time.Duration(n) * 24 * time.Hour}
}
