package journal

import (
	"errors"

	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
)

// Report describes what a reconcile or delete changed.
type Report struct {
	// GroupID of the group acted on.
	GroupID string
	// NoMatch is set when the group no longer occupies any date; nothing
	// was changed.
	NoMatch bool
	Added   int
	Removed int
	Updated int
	// Skipped holds the ranges that were ignored, one error each.
	Skipped []error
	// Dates is the footprint after the call.
	Dates datekey.Set
}

// Changed reports whether any date gained or lost a member.
func (r Report) Changed() bool {
	return r.Added > 0 || r.Removed > 0
}

// Reconcile moves target's group from its current footprint to exactly the
// dates covered by desired, and writes f onto every member.
//
// Members on dates kept by desired are updated in place and keep their id,
// creation instant and completion. Members on dropped dates are removed.
// Dates new to the footprint get a fresh, uncompleted member. Invalid ranges
// are skipped and reported.
//
// An empty desired list, or one where every range is invalid, is rejected
// with an InputError and leaves the store unchanged; it never empties the
// group. Remove a whole group with Delete and ModeGroup.
func (s *Store) Reconcile(target item.Item, desired []datekey.Range, f item.Fields) (Report, error) {
	var rep Report
	if err := s.checkKind(target); err != nil {
		return rep, err
	}
	color, err := item.NormalizeColor(f.Color)
	if err != nil {
		return rep, Invalid("color", f.Color, err)
	}
	f.Color = color
	if s.kind != item.KindSchedule {
		f.Time = ""
	}

	newDates := make(datekey.Set)
	for _, r := range desired {
		if err := r.Validate(); err != nil {
			rep.Skipped = append(rep.Skipped, Invalid("range", r.String(), err))
			continue
		}
		for _, d := range r.Days() {
			newDates.Add(d)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ref, ok := s.days.canonical(target)
	if !ok {
		rep.NoMatch = true
		return rep, nil
	}
	oldDates := s.days.footprint(ref)
	if oldDates.Len() == 0 {
		rep.NoMatch = true
		return rep, nil
	}
	if newDates.Len() == 0 {
		return rep, Invalid("ranges", "", errors.New("at least one valid date range is required"))
	}

	next := s.days.clone()
	// Members matched only by text and creation instant get a real group
	// first, so the members spawned below belong to it too.
	group := ref.Meta().GroupID
	if group == "" {
		group = item.NewGroupID()
		for d := range oldDates {
			for i, it := range next[d] {
				if item.Matches(it, ref) {
					next[d][i] = item.Regroup(it, group)
				}
			}
		}
		ref = item.Regroup(ref, group)
	}
	rep.GroupID = group

	for d := range oldDates {
		list := next[d]
		if !newDates.Has(d) {
			kept := list[:0]
			for _, it := range list {
				if item.Matches(it, ref) {
					rep.Removed++
					continue
				}
				kept = append(kept, it)
			}
			next.set(d, kept)
			continue
		}
		for i, it := range list {
			if item.Matches(it, ref) {
				list[i] = it.WithFields(f)
				rep.Updated++
			}
		}
	}

	now := s.now()
	for _, d := range newDates.Sorted() {
		if oldDates.Has(d) {
			continue
		}
		next[d] = prepend(next[d], ref.Spawn(d, f, now))
		rep.Added++
	}

	s.days = next
	rep.Dates = newDates
	return rep, nil
}
