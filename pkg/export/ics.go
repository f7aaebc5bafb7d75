// Package export renders journals as iCalendar.
package export

import (
	"fmt"
	"io"
	"sort"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/journal"
	"tableflip.dev/daybook/pkg/timeutil"
)

// ProductID identifies daybook as the calendar producer.
const ProductID = "-//tableflip.dev//daybook//EN"

const (
	floatingLayout = "20060102T150405"
	propertyColor  = ical.ComponentProperty("COLOR")
)

// Options select what is exported.
type Options struct {
	// Todos adds one all-day event per todo date.
	Todos bool
}

// group is one item group with its footprint.
type group struct {
	ref   item.Item
	dates datekey.Set
	first datekey.DateKey
}

// Calendar builds a calendar from the schedule snapshot and, when asked,
// the todo snapshot. Each contiguous run of a schedule group is one event
// repeating daily.
func Calendar(schedules, todos journal.Snapshot, opts Options) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ical.MethodPublish)

	for _, g := range groups(schedules) {
		for _, r := range datekey.Collapse(g.dates) {
			if err := addSchedule(cal, g.ref, r); err != nil {
				return nil, err
			}
		}
	}
	if !opts.Todos {
		return cal, nil
	}
	for _, d := range sortedDates(todos) {
		for _, it := range todos[d] {
			addTodo(cal, it, d)
		}
	}
	return cal, nil
}

// Write serializes the calendar to w.
func Write(w io.Writer, schedules, todos journal.Snapshot, opts Options) error {
	cal, err := Calendar(schedules, todos, opts)
	if err != nil {
		return err
	}
	return cal.SerializeTo(w)
}

func addSchedule(cal *ical.Calendar, ref item.Item, r datekey.Range) error {
	meta := ref.Meta()
	span, err := timeutil.ParseSpan(ref.Fields().Time)
	if err != nil {
		return fmt.Errorf("export: %s: %w", meta.ID, err)
	}

	ev := cal.AddEvent(meta.GroupID + "-" + r.Start.String())
	ev.SetDtStampTime(meta.Created)
	ev.SetSummary(meta.Text)
	day := r.Start.Time()
	if span.AllDay() {
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
	} else {
		sh, sm := span.Clock(false)
		eh, em := sh, sm
		if span.IsInterval() {
			eh, em = span.Clock(true)
		}
		start := day.Add(time.Duration(sh)*time.Hour + time.Duration(sm)*time.Minute)
		end := day.Add(time.Duration(eh)*time.Hour + time.Duration(em)*time.Minute)
		if span.Overnight() {
			end = end.AddDate(0, 0, 1)
		}
		// floating local times: no zone is stored with schedules
		ev.SetProperty(ical.ComponentPropertyDtStart, start.Format(floatingLayout))
		ev.SetProperty(ical.ComponentPropertyDtEnd, end.Format(floatingLayout))
	}
	if n := r.Len(); n > 1 {
		opt := rrule.ROption{Freq: rrule.DAILY, Count: n}
		ev.SetProperty(ical.ComponentPropertyRrule, opt.RRuleString())
	}
	if meta.Color != "" {
		ev.SetProperty(propertyColor, meta.Color)
	}
	return nil
}

func addTodo(cal *ical.Calendar, it item.Item, on datekey.DateKey) {
	meta := it.Meta()
	ev := cal.AddEvent(meta.GroupID + "-" + on.String())
	ev.SetDtStampTime(meta.Created)
	ev.SetSummary(meta.Text)
	ev.SetAllDayStartAt(on.Time())
	ev.SetAllDayEndAt(on.Next().Time())
	if item.IsCompleted(it) {
		ev.SetProperty(ical.ComponentPropertyStatus, "COMPLETED")
	}
	if meta.Color != "" {
		ev.SetProperty(propertyColor, meta.Color)
	}
}

// groups gathers the footprint of every group in snap, ordered by first
// date then group id.
func groups(snap journal.Snapshot) []*group {
	byID := make(map[string]*group)
	for _, d := range sortedDates(snap) {
		for _, it := range snap[d] {
			id := it.Meta().GroupID
			if id == "" {
				id = item.SoloGroupID(it.Meta().ID)
			}
			g, ok := byID[id]
			if !ok {
				g = &group{ref: item.Regroup(it, id), dates: make(datekey.Set), first: d}
				byID[id] = g
			}
			g.dates.Add(d)
		}
	}
	out := make([]*group, 0, len(byID))
	for _, g := range byID {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].first != out[j].first {
			return out[i].first.Before(out[j].first)
		}
		return out[i].ref.Meta().GroupID < out[j].ref.Meta().GroupID
	})
	return out
}

func sortedDates(snap journal.Snapshot) []datekey.DateKey {
	set := make(datekey.Set, len(snap))
	for d := range snap {
		set.Add(d)
	}
	return set.Sorted()
}
