package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/journal"
)

var created = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func schedule(id, group, text, at, color string) item.Item {
	return item.Schedule{
		Base: item.Base{ID: id, Text: text, GroupID: group, Created: created, Color: color},
		Time: at,
	}
}

func TestCalendarCollapsesGroups(t *testing.T) {
	snap := journal.Snapshot{
		"2026-03-01": {schedule("a1", "g1", "gym", "07:00 ~ 08:00", "#ff0000")},
		"2026-03-02": {schedule("a2", "g1", "gym", "07:00 ~ 08:00", "#ff0000")},
		"2026-03-03": {schedule("a3", "g1", "gym", "07:00 ~ 08:00", "#ff0000")},
		"2026-03-05": {
			schedule("a5", "g1", "gym", "07:00 ~ 08:00", "#ff0000"),
			schedule("b1", "g2", "holiday", "", ""),
		},
	}

	cal, err := Calendar(snap, nil, Options{})
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	byUID := map[string]*ical.VEvent{}
	for _, ev := range events {
		byUID[ev.Id()] = ev
	}
	run, ok := byUID["g1-2026-03-01"]
	if !ok {
		t.Fatalf("missing event for first run, have %v", byUID)
	}
	rule := run.GetProperty(ical.ComponentPropertyRrule)
	if rule == nil {
		t.Fatal("expected RRULE on a three day run")
	}
	parsed, err := rrule.StrToRRule(rule.Value)
	if err != nil {
		t.Fatalf("parse rrule %q: %v", rule.Value, err)
	}
	if parsed.OrigOptions.Freq != rrule.DAILY || parsed.OrigOptions.Count != 3 {
		t.Fatalf("unexpected rrule %q", rule.Value)
	}
	if p := run.GetProperty(ical.ComponentPropertyDtStart); p == nil || p.Value != "20260301T070000" {
		t.Fatalf("unexpected DTSTART %+v", p)
	}
	if p := run.GetProperty(propertyColor); p == nil || p.Value != "#ff0000" {
		t.Fatalf("expected color, got %+v", p)
	}

	lone := byUID["g1-2026-03-05"]
	if lone == nil || lone.GetProperty(ical.ComponentPropertyRrule) != nil {
		t.Fatal("single day run should not repeat")
	}
	holiday := byUID["g2-2026-03-05"]
	if holiday == nil {
		t.Fatal("missing all-day event")
	}
	if p := holiday.GetProperty(ical.ComponentPropertyDtStart); p == nil || p.Value != "20260305" {
		t.Fatalf("expected all-day DTSTART, got %+v", p)
	}
}

func TestCalendarOvernightEndsNextDay(t *testing.T) {
	snap := journal.Snapshot{
		"2026-03-02": {schedule("n1", "g3", "night shift", "22:00 ~ 06:00", "")},
	}
	cal, err := Calendar(snap, nil, Options{})
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if p := ev.GetProperty(ical.ComponentPropertyDtStart); p == nil || p.Value != "20260302T220000" {
		t.Fatalf("unexpected DTSTART %+v", p)
	}
	if p := ev.GetProperty(ical.ComponentPropertyDtEnd); p == nil || p.Value != "20260303T060000" {
		t.Fatalf("unexpected DTEND %+v", p)
	}
}

func TestWriteIncludesTodosWhenAsked(t *testing.T) {
	todos := journal.Snapshot{
		datekey.MustParse("2026-03-02"): {
			item.Todo{Base: item.Base{ID: "t1", Text: "pay rent", GroupID: "g9", Created: created}, Completed: true},
		},
	}

	var without bytes.Buffer
	if err := Write(&without, nil, todos, Options{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.Contains(without.String(), "pay rent") {
		t.Fatal("todos should be left out by default")
	}

	var with bytes.Buffer
	if err := Write(&with, nil, todos, Options{Todos: true}); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := with.String()
	for _, want := range []string{"BEGIN:VCALENDAR", "UID:g9-2026-03-02", "SUMMARY:pay rent", "STATUS:COMPLETED", ProductID} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	if _, err := ical.ParseCalendar(strings.NewReader(out)); err != nil {
		t.Fatalf("output should parse back: %v", err)
	}
}
