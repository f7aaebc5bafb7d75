package app

import (
	"errors"

	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/journal"
)

// AgendaDay holds both kinds of items for one date.
type AgendaDay struct {
	Date      datekey.DateKey `json:"date" yaml:"date"`
	Schedules []item.Item     `json:"-" yaml:"-"`
	Todos     []item.Item     `json:"-" yaml:"-"`
}

// Agenda covers days consecutive dates starting at from.
type Agenda struct {
	From  datekey.DateKey `json:"from" yaml:"from"`
	To    datekey.DateKey `json:"to" yaml:"to"`
	Days  []AgendaDay     `json:"days" yaml:"days"`
	Todos int             `json:"todos" yaml:"todos"`
	Done  int             `json:"done" yaml:"done"`
}

// Agenda collects the non-empty dates of the window, schedules in time order.
func (s *Service) Agenda(from datekey.DateKey, days int) (Agenda, error) {
	if !from.Valid() {
		return Agenda{}, journal.Invalid("date", string(from), errors.New("want YYYY-MM-DD"))
	}
	if days < 1 {
		return Agenda{}, journal.Invalid("days", "", errors.New("window must cover at least one day"))
	}
	out := Agenda{From: from, To: from.AddDays(days - 1)}
	for d := from; !out.To.Before(d); d = d.Next() {
		day := AgendaDay{
			Date:      d,
			Schedules: s.journals[item.KindSchedule].Day(d),
			Todos:     s.journals[item.KindTodo].Day(d),
		}
		if len(day.Schedules) == 0 && len(day.Todos) == 0 {
			continue
		}
		for _, t := range day.Todos {
			out.Todos++
			if item.IsCompleted(t) {
				out.Done++
			}
		}
		out.Days = append(out.Days, day)
	}
	return out, nil
}
