package app

import (
	"context"
	"errors"
	"sort"

	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/journal"
)

// OverdueTodo is an open todo left on a past date.
type OverdueTodo struct {
	Item item.Item
	Date datekey.DateKey
}

// Overdue lists open todos dated before the given date, oldest first.
func (s *Service) Overdue(before datekey.DateKey) []OverdueTodo {
	j := s.journals[item.KindTodo]
	var out []OverdueTodo
	for _, d := range j.Dates() {
		if !d.Before(before) {
			break
		}
		for _, it := range j.Day(d) {
			if item.IsCompleted(it) {
				continue
			}
			out = append(out, OverdueTodo{Item: it, Date: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Migrate moves a one-date item to another date. The moved item is a fresh
// member of the same group. Items repeating on several dates are reshaped
// instead.
func (s *Service) Migrate(ctx context.Context, id, to string) (journal.Report, error) {
	it, _, err := s.Locate(id)
	if err != nil {
		return journal.Report{}, err
	}
	if s.journals[it.Kind()].Footprint(it).Len() > 1 {
		return journal.Report{}, journal.Invalid("id", id, errors.New("item repeats on several dates, reshape it instead"))
	}
	target, err := datekey.Parse(to)
	if err != nil {
		return journal.Report{}, journal.Invalid("date", to, err)
	}
	return s.Reshape(ctx, id, ReshapeOptions{Ranges: []string{target.String()}})
}
