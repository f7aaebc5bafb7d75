package app

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/journal"
	"tableflip.dev/daybook/pkg/log"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/timeutil"
)

// Add creates a one-date item. on is a YYYY-MM-DD date.
func (s *Service) Add(ctx context.Context, k item.Kind, on string, d journal.Draft) (item.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	j, err := s.Journal(k)
	if err != nil {
		return nil, err
	}
	date, err := datekey.Parse(on)
	if err != nil {
		return nil, journal.Invalid("date", on, err)
	}
	if d.Fields.Time, err = canonicalTime(k, d.Fields.Time); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := j.Add(date, d)
	if err != nil {
		return nil, err
	}
	log.Debug("added item", "kind", k, "id", it.Meta().ID, "date", date)
	if err := s.saveJournal(k); err != nil {
		return it, err
	}
	return it, s.recordBulk(false)
}

// AddPeriod creates one item per date from..to, sharing a new group.
func (s *Service) AddPeriod(ctx context.Context, k item.Kind, from, to string, d journal.Draft) (string, []item.Item, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	j, err := s.Journal(k)
	if err != nil {
		return "", nil, err
	}
	start, err := datekey.Parse(from)
	if err != nil {
		return "", nil, journal.Invalid("from", from, err)
	}
	end, err := datekey.Parse(to)
	if err != nil {
		return "", nil, journal.Invalid("to", to, err)
	}
	if d.Fields.Time, err = canonicalTime(k, d.Fields.Time); err != nil {
		return "", nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	group, created, err := j.AddPeriod(datekey.Range{Start: start, End: end}, d)
	if err != nil {
		return "", nil, err
	}
	log.Debug("added period", "kind", k, "group", group, "from", start, "to", end, "items", len(created))
	if err := s.saveJournal(k); err != nil {
		return group, created, err
	}
	return group, created, s.recordBulk(true)
}

// Toggle flips completion of the todo with the given id.
func (s *Service) Toggle(ctx context.Context, id string) (item.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.journals[item.KindTodo].Toggle(id)
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			if _, _, locErr := s.Locate(id); locErr == nil {
				return nil, journal.Invalid("id", id, errors.New("only todos can be completed"))
			}
		}
		return nil, err
	}
	log.Debug("toggled todo", "id", id, "completed", item.IsCompleted(it))
	return it, s.saveJournal(item.KindTodo)
}

// Day lists the items of kind k on date on.
func (s *Service) Day(k item.Kind, on datekey.DateKey) ([]item.Item, error) {
	j, err := s.Journal(k)
	if err != nil {
		return nil, err
	}
	if !on.Valid() {
		return nil, journal.Invalid("date", string(on), errors.New("want YYYY-MM-DD"))
	}
	return j.Day(on), nil
}

// Period is the footprint of one item's group.
type Period struct {
	Item   item.Item         `json:"-" yaml:"-"`
	Dates  []datekey.DateKey `json:"dates" yaml:"dates"`
	Ranges []datekey.Range   `json:"ranges" yaml:"ranges"`
}

// Periods returns the dates and collapsed ranges of id's group.
func (s *Service) Periods(id string) (Period, error) {
	it, _, err := s.Locate(id)
	if err != nil {
		return Period{}, err
	}
	j := s.journals[it.Kind()]
	return Period{
		Item:   it,
		Dates:  j.Footprint(it).Sorted(),
		Ranges: j.Periods(it),
	}, nil
}

// ReshapeOptions describe the desired state of a group. Nil fields keep the
// group's current value.
type ReshapeOptions struct {
	Ranges []string
	Color  *string
	Time   *string
}

// Reshape moves id's group onto exactly the dates of opts.Ranges. Ranges
// that fail to parse are skipped and reported alongside the journal's own
// skips.
func (s *Service) Reshape(ctx context.Context, id string, opts ReshapeOptions) (journal.Report, error) {
	if err := ctx.Err(); err != nil {
		return journal.Report{}, err
	}
	it, _, err := s.Locate(id)
	if err != nil {
		return journal.Report{}, err
	}
	k := it.Kind()

	var (
		ranges  []datekey.Range
		skipped []error
	)
	for _, raw := range opts.Ranges {
		r, err := datekey.ParseRange(raw)
		if err != nil {
			skipped = append(skipped, journal.Invalid("range", raw, err))
			continue
		}
		ranges = append(ranges, r)
	}

	f := it.Fields()
	if opts.Color != nil {
		f.Color = *opts.Color
	}
	if opts.Time != nil {
		if f.Time, err = canonicalTime(k, *opts.Time); err != nil {
			return journal.Report{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rep, err := s.journals[k].Reconcile(it, ranges, f)
	rep.Skipped = append(skipped, rep.Skipped...)
	for _, skip := range rep.Skipped {
		log.Error("skipped range", skip, "id", id)
	}
	if err != nil || rep.NoMatch {
		return rep, err
	}
	log.Debug("reshaped group", "group", rep.GroupID, "added", rep.Added, "removed", rep.Removed, "updated", rep.Updated)
	return rep, s.saveJournal(k)
}

// canonicalTime validates a schedule time. Todos carry no time.
func canonicalTime(k item.Kind, raw string) (string, error) {
	if k != item.KindSchedule {
		return "", nil
	}
	span, err := timeutil.ParseSpan(raw)
	if err != nil {
		return "", journal.Invalid("time", raw, err)
	}
	return span.String(), nil
}

// recordBulk persists the last-used add mode. Callers hold s.mu.
func (s *Service) recordBulk(on bool) error {
	if s.bulk == on {
		return nil
	}
	s.bulk = on
	return s.saveJSON(store.SlotBulkMode, on)
}

// Repeats reports whether the group of it occupies more than one date.
func (s *Service) Repeats(it item.Item) bool {
	j, ok := s.journals[it.Kind()]
	return ok && j.Footprint(it).Len() > 1
}

// GroupPeriod is Periods looked up by group id instead of member id.
func (s *Service) GroupPeriod(k item.Kind, group string) (Period, error) {
	j, err := s.Journal(k)
	if err != nil {
		return Period{}, err
	}
	for _, d := range j.Dates() {
		for _, it := range j.Day(d) {
			if it.Meta().GroupID == group {
				return s.Periods(it.Meta().ID)
			}
		}
	}
	return Period{}, fmt.Errorf("%w: group %s", journal.ErrNotFound, group)
}
