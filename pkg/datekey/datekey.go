// Package datekey provides the canonical calendar-date identifier used to
// index journal items, plus inclusive date ranges over it.
package datekey

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Layout is the only accepted textual form of a DateKey.
const Layout = "2006-01-02"

// DateKey identifies a calendar date with no time-of-day and no timezone.
// Valid keys sort lexically in calendar order.
type DateKey string

// Parse validates s and returns its canonical DateKey.
func Parse(s string) (DateKey, error) {
	trimmed := strings.TrimSpace(s)
	t, err := time.Parse(Layout, trimmed)
	if err != nil {
		return "", fmt.Errorf("datekey: invalid date %q, want YYYY-MM-DD", s)
	}
	return Of(t), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) DateKey {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Of returns the calendar date of t in t's own location.
func Of(t time.Time) DateKey {
	return DateKey(t.Format(Layout))
}

// Today is the local calendar date.
func Today() DateKey {
	return Of(time.Now())
}

// Time returns midnight UTC of the date. The zero time is returned for
// invalid keys.
func (d DateKey) Time() time.Time {
	t, err := time.Parse(Layout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Valid reports whether d is a canonical date.
func (d DateKey) Valid() bool {
	t, err := time.Parse(Layout, string(d))
	return err == nil && Of(t) == d
}

// AddDays moves the date by n calendar days.
func (d DateKey) AddDays(n int) DateKey {
	return Of(d.Time().AddDate(0, 0, n))
}

// Next is the following calendar day.
func (d DateKey) Next() DateKey {
	return d.AddDays(1)
}

// Before reports whether d is strictly earlier than o.
func (d DateKey) Before(o DateKey) bool {
	return d < o
}

func (d DateKey) String() string {
	return string(d)
}

// Set is an unordered collection of dates.
type Set map[DateKey]struct{}

// NewSet builds a Set from the given dates.
func NewSet(dates ...DateKey) Set {
	s := make(Set, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

func (s Set) Add(d DateKey) {
	s[d] = struct{}{}
}

func (s Set) Has(d DateKey) bool {
	_, ok := s[d]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns the dates in ascending calendar order.
func (s Set) Sorted() []DateKey {
	out := make([]DateKey, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal reports whether both sets hold the same dates.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for d := range s {
		if !o.Has(d) {
			return false
		}
	}
	return true
}
