package item

import (
	"encoding/json"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/datekey"
)

func TestMatches(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	grouped := Todo{Base: Base{ID: "a", Text: "walk", GroupID: "g1", Created: created}}
	sameGroup := Todo{Base: Base{ID: "b", Text: "renamed", GroupID: "g1", Created: created.Add(time.Hour)}}
	otherGroup := Todo{Base: Base{ID: "c", Text: "walk", GroupID: "g2", Created: created}}
	loose := Todo{Base: Base{ID: "d", Text: "walk", Created: created}}
	looseTwin := Todo{Base: Base{ID: "e", Text: "walk", Created: created}}
	looseLater := Todo{Base: Base{ID: "f", Text: "walk", Created: created.Add(time.Second)}}

	tests := []struct {
		name string
		a, b Item
		want bool
	}{
		{"same group", grouped, sameGroup, true},
		{"different group same text", grouped, otherGroup, false},
		{"group against loose", grouped, loose, false},
		{"loose same text and instant", loose, looseTwin, true},
		{"loose different instant", loose, looseLater, false},
		{"nil", grouped, nil, false},
	}
	for _, tt := range tests {
		if got := Matches(tt.a, tt.b); got != tt.want {
			t.Fatalf("%s: Matches() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewIDUniqueWithinMillisecond(t *testing.T) {
	now := time.Now()
	on := datekey.MustParse("2026-03-01")
	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		id := NewID(on, now)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestSpawnKeepsGroupAndResetsState(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	src := Todo{Base: Base{ID: "a", Text: "walk", GroupID: "g1", Color: "#ff0000"}, Completed: true}

	spawned := src.Spawn("2026-03-04", Fields{Color: "#00ff00"}, now)
	todo, ok := spawned.(Todo)
	if !ok {
		t.Fatalf("expected a Todo, got %T", spawned)
	}
	if todo.Completed {
		t.Fatalf("spawned item must not be completed")
	}
	if todo.GroupID != "g1" || todo.Text != "walk" {
		t.Fatalf("spawned item lost its group: %+v", todo)
	}
	if todo.ID == src.ID || !todo.Created.Equal(now) {
		t.Fatalf("spawned item must have a fresh identity: %+v", todo)
	}
	if todo.Color != "#00ff00" {
		t.Fatalf("expected new color, got %s", todo.Color)
	}
}

func TestScheduleWithFieldsKeepsIdentity(t *testing.T) {
	s := Schedule{Base: Base{ID: "s1", Text: "standup", GroupID: "g"}, Time: "09:00"}
	updated := s.WithFields(Fields{Color: "#123456", Time: "10:00 ~ 10:15"}).(Schedule)
	if updated.ID != "s1" || updated.GroupID != "g" {
		t.Fatalf("identity changed: %+v", updated)
	}
	if updated.Time != "10:00 ~ 10:15" || updated.Color != "#123456" {
		t.Fatalf("fields not applied: %+v", updated)
	}
}

func TestFromRecordAssignsSoloGroup(t *testing.T) {
	it := FromRecord(KindTodo, Record{ID: "x1", Text: "legacy"})
	if got := it.Meta().GroupID; got != SoloGroupID("x1") {
		t.Fatalf("expected solo group id, got %q", got)
	}
	sched := FromRecord(KindSchedule, Record{ID: "x2", Text: "dentist", Time: "14:00", GroupID: "g"})
	if s, ok := sched.(Schedule); !ok || s.Time != "14:00" {
		t.Fatalf("unexpected schedule %#v", sched)
	}
	if r := ToRecord(sched); !r.IsSchedule {
		t.Fatalf("schedule record must carry the schedule marker")
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := map[string]string{
		"":        "",
		"#FF8800": "#ff8800",
		"ff8800":  "#ff8800",
		"#f80":    "#ff8800",
	}
	for in, want := range tests {
		got, err := NormalizeColor(in)
		if err != nil {
			t.Fatalf("NormalizeColor(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("NormalizeColor(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := NormalizeColor("blurple"); err == nil {
		t.Fatalf("expected error for invalid color")
	}
}

func TestRecordAcceptsNumericID(t *testing.T) {
	var records []Record
	data := `[{"id":1767225600000,"text":"old","completed":true},{"id":"x","text":"new"},{"text":"no id"}]`
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if records[0].ID != "1767225600000" || !records[0].Completed || records[0].Text != "old" {
		t.Fatalf("unexpected numeric record %+v", records[0])
	}
	if want := time.UnixMilli(1767225600000).UTC(); !records[0].CreatedAt.Equal(want) {
		t.Fatalf("created = %v, want %v", records[0].CreatedAt, want)
	}
	if records[1].ID != "x" || !records[1].CreatedAt.IsZero() {
		t.Fatalf("unexpected string record %+v", records[1])
	}
	if records[2].ID != "" {
		t.Fatalf("missing id should stay empty, got %q", records[2].ID)
	}

	var bad Record
	if err := json.Unmarshal([]byte(`{"id":{"nested":true}}`), &bad); err == nil {
		t.Fatal("expected an error for an object id")
	}
}
