package journal

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
)

// Mode selects how much of a group a delete removes.
type Mode string

const (
	// ModeSingle removes only the item with the target's id.
	ModeSingle Mode = "single"
	// ModeGroup removes every member of the target's group.
	ModeGroup Mode = "group"
	// ModeRange removes the members dated within an explicit range.
	ModeRange Mode = "range"
)

// Modes lists the deletion modes in the order they are offered.
func Modes() []Mode {
	return []Mode{ModeSingle, ModeGroup, ModeRange}
}

// ParseMode reads a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeSingle, ModeGroup, ModeRange:
		return m, nil
	case "one", "this":
		return ModeSingle, nil
	case "all":
		return ModeGroup, nil
	default:
		return "", Invalid("mode", s, fmt.Errorf("want one of %s, %s, %s", ModeSingle, ModeGroup, ModeRange))
	}
}

// Delete removes items according to mode. within is required for ModeRange
// and ignored otherwise. A target whose group is gone yields NoMatch.
func (s *Store) Delete(target item.Item, mode Mode, within *datekey.Range) (Report, error) {
	var rep Report
	if err := s.checkKind(target); err != nil {
		return rep, err
	}
	switch mode {
	case ModeSingle, ModeGroup:
	case ModeRange:
		if within == nil {
			return rep, Invalid("range", "", errors.New("range mode needs a date range"))
		}
		if err := within.Validate(); err != nil {
			return rep, Invalid("range", within.String(), err)
		}
	default:
		return rep, Invalid("mode", string(mode), errors.New("unknown deletion mode"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == ModeSingle {
		id := target.Meta().ID
		it, on, ok := s.days.find(id)
		if !ok {
			rep.NoMatch = true
			return rep, nil
		}
		rep.GroupID = it.Meta().GroupID
		next := s.days.clone()
		next.set(on, removeWhere(next[on], func(cur item.Item) bool { return cur.Meta().ID == id }, &rep))
		s.days = next
		rep.Dates = next.footprint(it)
		return rep, nil
	}

	ref, ok := s.days.canonical(target)
	if !ok {
		rep.NoMatch = true
		return rep, nil
	}
	rep.GroupID = ref.Meta().GroupID
	next := s.days.clone()
	for d := range next.footprint(ref) {
		if mode == ModeRange && !within.Contains(d) {
			continue
		}
		next.set(d, removeWhere(next[d], func(cur item.Item) bool { return item.Matches(cur, ref) }, &rep))
	}
	s.days = next
	rep.Dates = next.footprint(ref)
	return rep, nil
}

func removeWhere(list []item.Item, drop func(item.Item) bool, rep *Report) []item.Item {
	kept := list[:0]
	for _, it := range list {
		if drop(it) {
			rep.Removed++
			continue
		}
		kept = append(kept, it)
	}
	return kept
}
