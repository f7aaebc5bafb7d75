// Package mcp provides the Model Context Protocol server integration for daybook.
package mcp

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/journal"
)

// Service projects app operations into transport-friendly values.
type Service struct {
	App *app.Service
}

// ItemDTO is a transport-friendly projection of an item.
type ItemDTO struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Date      string `json:"date"`
	Text      string `json:"text"`
	GroupID   string `json:"groupId"`
	Color     string `json:"color,omitempty"`
	Time      string `json:"time,omitempty"`
	Completed bool   `json:"completed,omitempty"`
	Repeats   bool   `json:"repeats"`
	Created   string `json:"created"`
}

// DayDTO lists both kinds of one date.
type DayDTO struct {
	Date      string    `json:"date"`
	Schedules []ItemDTO `json:"schedules"`
	Todos     []ItemDTO `json:"todos"`
}

// PeriodDTO describes the footprint of a group.
type PeriodDTO struct {
	GroupID string   `json:"groupId"`
	Text    string   `json:"text"`
	Dates   []string `json:"dates"`
	Ranges  []string `json:"ranges"`
}

// ChangeDTO summarizes a reshape or delete.
type ChangeDTO struct {
	GroupID string   `json:"groupId,omitempty"`
	NoMatch bool     `json:"noMatch,omitempty"`
	Added   int      `json:"added"`
	Removed int      `json:"removed"`
	Updated int      `json:"updated"`
	Skipped []string `json:"skipped,omitempty"`
}

// AddItemOptions captures the parameters used to create items.
type AddItemOptions struct {
	Kind  string
	Date  string
	From  string
	To    string
	Text  string
	Color string
	Time  string
}

// NewService builds a service wrapper around a.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) ready() error {
	if s.App == nil {
		return errors.New("daybook service is not configured")
	}
	return nil
}

func (s *Service) draft(opts AddItemOptions) (item.Kind, journal.Draft, error) {
	k, err := item.ParseKind(opts.Kind)
	if err != nil {
		return "", journal.Draft{}, err
	}
	hex, err := s.App.ResolveColor(opts.Color)
	if err != nil {
		return "", journal.Draft{}, err
	}
	return k, journal.Draft{Text: opts.Text, Fields: item.Fields{Color: hex, Time: opts.Time}}, nil
}

// AddItem creates a one-date item.
func (s *Service) AddItem(ctx context.Context, opts AddItemOptions) (ItemDTO, error) {
	if err := s.ready(); err != nil {
		return ItemDTO{}, err
	}
	k, d, err := s.draft(opts)
	if err != nil {
		return ItemDTO{}, err
	}
	it, err := s.App.Add(ctx, k, opts.Date, d)
	if err != nil {
		return ItemDTO{}, err
	}
	_, on, err := s.App.Locate(it.Meta().ID)
	if err != nil {
		return ItemDTO{}, err
	}
	return s.toDTO(it, on), nil
}

// AddPeriod creates one item per date of opts.From..opts.To.
func (s *Service) AddPeriod(ctx context.Context, opts AddItemOptions) (PeriodDTO, error) {
	if err := s.ready(); err != nil {
		return PeriodDTO{}, err
	}
	k, d, err := s.draft(opts)
	if err != nil {
		return PeriodDTO{}, err
	}
	_, created, err := s.App.AddPeriod(ctx, k, opts.From, opts.To, d)
	if err != nil {
		return PeriodDTO{}, err
	}
	return s.Periods(created[0].Meta().ID)
}

// Day lists the items of date. kind may be empty for both kinds.
func (s *Service) Day(date, kind string) (DayDTO, error) {
	if err := s.ready(); err != nil {
		return DayDTO{}, err
	}
	on, err := datekey.Parse(date)
	if err != nil {
		return DayDTO{}, err
	}
	out := DayDTO{Date: on.String(), Schedules: []ItemDTO{}, Todos: []ItemDTO{}}
	for _, k := range item.Kinds() {
		if kind != "" && !strings.EqualFold(kind, string(k)) {
			continue
		}
		items, err := s.App.Day(k, on)
		if err != nil {
			return DayDTO{}, err
		}
		for _, it := range items {
			if k == item.KindSchedule {
				out.Schedules = append(out.Schedules, s.toDTO(it, on))
			} else {
				out.Todos = append(out.Todos, s.toDTO(it, on))
			}
		}
	}
	return out, nil
}

// Periods describes the group of id.
func (s *Service) Periods(id string) (PeriodDTO, error) {
	if err := s.ready(); err != nil {
		return PeriodDTO{}, err
	}
	p, err := s.App.Periods(id)
	if err != nil {
		return PeriodDTO{}, err
	}
	return toPeriodDTO(p), nil
}

// Reshape moves the group of id onto ranges. Nil color or time keeps the
// current value.
func (s *Service) Reshape(ctx context.Context, id string, ranges []string, color, at *string) (ChangeDTO, error) {
	if err := s.ready(); err != nil {
		return ChangeDTO{}, err
	}
	opts := app.ReshapeOptions{Ranges: ranges, Time: at}
	if color != nil {
		hex, err := s.App.ResolveColor(*color)
		if err != nil {
			return ChangeDTO{}, err
		}
		opts.Color = &hex
	}
	rep, err := s.App.Reshape(ctx, id, opts)
	if err != nil {
		return ChangeDTO{}, err
	}
	return toChangeDTO(rep), nil
}

// Delete removes items of id's group according to mode.
func (s *Service) Delete(ctx context.Context, id, mode, rangeArg string) (ChangeDTO, error) {
	if err := s.ready(); err != nil {
		return ChangeDTO{}, err
	}
	var m journal.Mode
	if strings.TrimSpace(mode) != "" {
		var err error
		if m, err = journal.ParseMode(mode); err != nil {
			return ChangeDTO{}, err
		}
	}
	rep, err := s.App.Delete(ctx, id, m, rangeArg)
	if err != nil {
		return ChangeDTO{}, err
	}
	return toChangeDTO(rep), nil
}

// Toggle flips a todo's completion.
func (s *Service) Toggle(ctx context.Context, id string) (ItemDTO, error) {
	if err := s.ready(); err != nil {
		return ItemDTO{}, err
	}
	it, err := s.App.Toggle(ctx, id)
	if err != nil {
		return ItemDTO{}, err
	}
	_, on, err := s.App.Locate(id)
	if err != nil {
		return ItemDTO{}, err
	}
	return s.toDTO(it, on), nil
}

func (s *Service) toDTO(it item.Item, on datekey.DateKey) ItemDTO {
	meta := it.Meta()
	f := it.Fields()
	return ItemDTO{
		ID:        meta.ID,
		Kind:      string(it.Kind()),
		Date:      on.String(),
		Text:      meta.Text,
		GroupID:   meta.GroupID,
		Color:     f.Color,
		Time:      f.Time,
		Completed: item.IsCompleted(it),
		Repeats:   s.App.Repeats(it),
		Created:   meta.Created.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

func toPeriodDTO(p app.Period) PeriodDTO {
	meta := p.Item.Meta()
	out := PeriodDTO{GroupID: meta.GroupID, Text: meta.Text}
	for _, d := range p.Dates {
		out.Dates = append(out.Dates, d.String())
	}
	for _, r := range p.Ranges {
		out.Ranges = append(out.Ranges, r.String())
	}
	return out
}

func toChangeDTO(rep journal.Report) ChangeDTO {
	out := ChangeDTO{
		GroupID: rep.GroupID,
		NoMatch: rep.NoMatch,
		Added:   rep.Added,
		Removed: rep.Removed,
		Updated: rep.Updated,
	}
	for _, skip := range rep.Skipped {
		out.Skipped = append(out.Skipped, skip.Error())
	}
	return out
}
