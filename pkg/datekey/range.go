package datekey

import (
	"errors"
	"fmt"
	"strings"
)

// RangeSeparator joins the two ends of a textual range, as in 2026-03-01..2026-03-05.
const RangeSeparator = ".."

// ErrReversed is returned when a range starts after it ends.
var ErrReversed = errors.New("datekey: range start is after end")

// Range is an inclusive span of calendar dates.
type Range struct {
	Start DateKey `json:"start" yaml:"start"`
	End   DateKey `json:"end" yaml:"end"`
}

// Single is the one-day range of d.
func Single(d DateKey) Range {
	return Range{Start: d, End: d}
}

// ParseRange reads START..END, or a lone date meaning a one-day range.
func ParseRange(s string) (Range, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Range{}, errors.New("datekey: empty range")
	}
	start, end, found := strings.Cut(trimmed, RangeSeparator)
	if !found {
		end = start
	}
	from, err := Parse(start)
	if err != nil {
		return Range{}, err
	}
	to, err := Parse(end)
	if err != nil {
		return Range{}, err
	}
	r := Range{Start: from, End: to}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Validate checks both ends and their order.
func (r Range) Validate() error {
	if !r.Start.Valid() {
		return fmt.Errorf("datekey: invalid range start %q", string(r.Start))
	}
	if !r.End.Valid() {
		return fmt.Errorf("datekey: invalid range end %q", string(r.End))
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("%w: %s", ErrReversed, r)
	}
	return nil
}

// Days lists every date of a valid range in ascending order. Invalid ranges
// yield nothing.
func (r Range) Days() []DateKey {
	if r.Validate() != nil {
		return nil
	}
	var out []DateKey
	for d := r.Start; !r.End.Before(d); d = d.Next() {
		out = append(out, d)
	}
	return out
}

// Len is the number of days covered.
func (r Range) Len() int {
	if r.Validate() != nil {
		return 0
	}
	return int(r.End.Time().Sub(r.Start.Time()).Hours()/24) + 1
}

// Contains reports whether d falls within the range, ends included.
func (r Range) Contains(d DateKey) bool {
	return !d.Before(r.Start) && !r.End.Before(d)
}

func (r Range) String() string {
	if r.Start == r.End {
		return string(r.Start)
	}
	return string(r.Start) + RangeSeparator + string(r.End)
}

// Expand is the union of the inclusive expansion of every range. Invalid
// ranges contribute nothing.
func Expand(ranges ...Range) Set {
	out := make(Set)
	for _, r := range ranges {
		for _, d := range r.Days() {
			out.Add(d)
		}
	}
	return out
}

// Collapse turns a set of dates into the minimal ordered list of maximal
// contiguous ranges. No two returned ranges overlap or touch.
func Collapse(dates Set) []Range {
	sorted := dates.Sorted()
	if len(sorted) == 0 {
		return nil
	}
	out := make([]Range, 0, 1)
	cur := Single(sorted[0])
	for _, d := range sorted[1:] {
		if d == cur.End.Next() {
			cur.End = d
			continue
		}
		out = append(out, cur)
		cur = Single(d)
	}
	return append(out, cur)
}
