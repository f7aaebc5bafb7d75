package printers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
)

func init() {
	color.NoColor = true
}

var created = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestItemsMarksRepeatsAndTimes(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{
		Out:     &buf,
		Repeats: func(it item.Item) bool { return it.Meta().GroupID == "g1" },
	}
	pp.Items(
		item.Schedule{Base: item.Base{ID: "s1", Text: "gym", GroupID: "g1", Created: created}, Time: "07:00"},
		item.Todo{Base: item.Base{ID: "t1", Text: "pay rent", GroupID: "g2", Created: created}, Completed: true},
	)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "○↻") || !strings.Contains(lines[0], "07:00 gym") {
		t.Fatalf("unexpected schedule line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "✘ ") || !strings.HasSuffix(lines[1], "pay rent") {
		t.Fatalf("unexpected todo line %q", lines[1])
	}
}

func TestItemsWrapsLongText(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, Width: 10}
	pp.Items(item.Todo{Base: item.Base{ID: "t1", Text: "remember to buy milk and bread", GroupID: "g"}})
	if got := strings.Count(strings.TrimSpace(buf.String()), "\n"); got < 2 {
		t.Fatalf("expected wrapped output, got %q", buf.String())
	}
}

func TestEmptyItems(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Items()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected placeholder, got %q", buf.String())
	}
}

func TestMonthGrid(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Month(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), datekey.NewSet("2026-02-14"), "2026-02-10")
	out := buf.String()
	if !strings.Contains(out, "February 2026") {
		t.Fatalf("missing title in %q", out)
	}
	// February 2026 starts on a Sunday, so the first week is unpadded.
	if !strings.Contains(out, "\n 1  2  3  4  5  6  7 \n") {
		t.Fatalf("unexpected first week in %q", out)
	}
	if !strings.Contains(out, "28") || strings.Contains(out, "29") {
		t.Fatalf("unexpected month length in %q", out)
	}
}

func TestMonthListsHolidays(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Month(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), nil, "2026-03-10")
	out := buf.String()
	for _, want := range []string{" 1 Independence Movement Day\n", " 2 Substitute Holiday\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}

	buf.Reset()
	pp.Month(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), nil, "2026-04-01")
	if strings.Contains(buf.String(), "Holiday") {
		t.Fatalf("April 2026 has no holidays, got %q", buf.String())
	}
}

func TestDayKinds(t *testing.T) {
	for day, want := range map[datekey.DateKey]dayKind{
		"2026-03-01": holiday, // a Sunday, holiday wins
		"2026-03-02": holiday,
		"2026-03-07": saturday,
		"2026-03-08": sunday,
		"2026-03-09": weekday,
	} {
		if got := kindOf(day); got != want {
			t.Fatalf("kindOf(%s) = %d, want %d", day, got, want)
		}
	}
}

func TestPeriodTable(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Period(app.Period{
		Item:   item.Todo{Base: item.Base{ID: "t1", Text: "run", GroupID: "g7"}},
		Dates:  []datekey.DateKey{"2026-03-01", "2026-03-02", "2026-03-05"},
		Ranges: []datekey.Range{{Start: "2026-03-01", End: "2026-03-02"}, {Start: "2026-03-05", End: "2026-03-05"}},
	})
	out := buf.String()
	for _, want := range []string{"run - 3 items", "2026-03-01..2026-03-02", "2026-03-05", "group g7"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestStructured(t *testing.T) {
	view := NewDayView("2026-03-02", nil, []item.Item{
		item.Todo{Base: item.Base{ID: "t1", Text: "pay rent", GroupID: "g2", Created: created}},
	})

	var js bytes.Buffer
	if err := Structured(&js, FormatJSON, view); err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	todos := decoded["todos"].([]any)
	first := todos[0].(map[string]any)
	if first["id"] != "t1" || first["groupId"] != "g2" || first["kind"] != "todo" {
		t.Fatalf("unexpected json item %v", first)
	}
	if sched := decoded["schedules"].([]any); len(sched) != 0 {
		t.Fatalf("expected empty schedules, got %v", sched)
	}

	var ym bytes.Buffer
	if err := Structured(&ym, FormatYAML, view); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var back DayView
	if err := yaml.Unmarshal(ym.Bytes(), &back); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if len(back.Todos) != 1 || back.Todos[0].GroupID != "g2" || back.Todos[0].Text != "pay rent" {
		t.Fatalf("unexpected yaml round trip %+v", back)
	}

	if err := Structured(&ym, FormatText, view); err == nil {
		t.Fatal("expected error for text format")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "JSON": FormatJSON, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error")
	}
}
