package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// SpanSeparator joins the two ends of a schedule time interval.
const SpanSeparator = " ~ "

const clockLayout = "15:04"

// Span is a schedule time: empty (all day), a single instant, or an interval.
type Span struct {
	Start    string
	End      string
	hasStart bool
}

// ParseSpan accepts "", "HH:MM" or "HH:MM ~ HH:MM". Single-digit hours are
// padded, so "9:30" becomes "09:30". An interval whose end is earlier than
// its start runs past midnight.
func ParseSpan(s string) (Span, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Span{}, nil
	}
	first, second, interval := strings.Cut(trimmed, "~")
	start, err := parseClock(first)
	if err != nil {
		return Span{}, err
	}
	out := Span{Start: start.Format(clockLayout), hasStart: true}
	if !interval {
		return out, nil
	}
	end, err := parseClock(second)
	if err != nil {
		return Span{}, err
	}
	out.End = end.Format(clockLayout)
	return out, nil
}

func parseClock(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	t, err := time.Parse("15:04", trimmed)
	if err != nil {
		t, err = time.Parse("3:04", trimmed)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, want HH:MM", trimmed)
	}
	return t, nil
}

// AllDay reports whether the span carries no time at all.
func (s Span) AllDay() bool {
	return !s.hasStart
}

// IsInterval reports whether the span has an end time.
func (s Span) IsInterval() bool {
	return s.End != ""
}

// Overnight reports whether the interval ends on the following day.
func (s Span) Overnight() bool {
	return s.IsInterval() && s.End < s.Start
}

// Clock returns the hour and minute of the start, or of the end when end is set.
func (s Span) Clock(end bool) (int, int) {
	v := s.Start
	if end {
		v = s.End
	}
	t, err := time.Parse(clockLayout, v)
	if err != nil {
		return 0, 0
	}
	return t.Hour(), t.Minute()
}

// String is the stored form.
func (s Span) String() string {
	switch {
	case s.AllDay():
		return ""
	case s.IsInterval():
		return s.Start + SpanSeparator + s.End
	default:
		return s.Start
	}
}

// SortKey returns minutes after midnight of the first token of a stored time
// string, and false when the string has no readable first token.
func SortKey(s string) (int, bool) {
	first, _, _ := strings.Cut(strings.TrimSpace(s), "~")
	if strings.TrimSpace(first) == "" {
		return 0, false
	}
	t, err := parseClock(first)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
