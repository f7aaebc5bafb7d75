package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/journal"
	"tableflip.dev/daybook/pkg/store"
)

type memoryPersistence struct {
	mu      sync.Mutex
	slots   map[store.Slot][]byte
	saves   map[store.Slot]int
	failing bool
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{
		slots: make(map[store.Slot][]byte),
		saves: make(map[store.Slot]int),
	}
}

func (m *memoryPersistence) Load(_ context.Context, slot store.Slot) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.slots[slot]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *memoryPersistence) Save(slot store.Slot, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("disk full")
	}
	m.slots[slot] = append([]byte(nil), data...)
	m.saves[slot]++
	return nil
}

func (m *memoryPersistence) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (m *memoryPersistence) Close() error { return nil }

func (m *memoryPersistence) saveCount(slot store.Slot) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves[slot]
}

func testClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Millisecond)
		return t
	}
}

func newService(t *testing.T, mp *memoryPersistence, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithClock(testClock())}, opts...)
	svc, err := Open(context.Background(), mp, opts...)
	if err != nil {
		t.Fatalf("open service: %v", err)
	}
	return svc
}

func TestAddPersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	svc := newService(t, mp)

	todo, err := svc.Add(ctx, item.KindTodo, "2026-03-02", journal.Draft{Text: "water plants"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, item.KindSchedule, "2026-03-02", journal.Draft{Text: "standup", Fields: item.Fields{Time: "9:30"}}); err != nil {
		t.Fatalf("add schedule: %v", err)
	}
	if mp.saveCount(store.SlotTodos) != 1 || mp.saveCount(store.SlotSchedules) != 1 {
		t.Fatalf("expected one save per slot, got todos=%d schedules=%d", mp.saveCount(store.SlotTodos), mp.saveCount(store.SlotSchedules))
	}

	reopened := newService(t, mp)
	it, on, err := reopened.Locate(todo.Meta().ID)
	if err != nil {
		t.Fatalf("locate after reload: %v", err)
	}
	if on != "2026-03-02" || it.Meta().Text != "water plants" || it.Meta().GroupID != todo.Meta().GroupID {
		t.Fatalf("unexpected reloaded item %+v on %s", it.Meta(), on)
	}
	day, err := reopened.Day(item.KindSchedule, "2026-03-02")
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if len(day) != 1 || day[0].Fields().Time != "09:30" {
		t.Fatalf("expected canonical schedule time, got %+v", day)
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	svc := newService(t, mp)

	if _, err := svc.Add(ctx, item.KindTodo, "2026-02-30", journal.Draft{Text: "x"}); !errors.Is(err, journal.ErrInvalidInput) {
		t.Fatalf("expected invalid date, got %v", err)
	}
	if _, err := svc.Add(ctx, item.KindSchedule, "2026-03-02", journal.Draft{Text: "x", Fields: item.Fields{Time: "18:00 ~ 25:00"}}); !errors.Is(err, journal.ErrInvalidInput) {
		t.Fatalf("expected invalid time, got %v", err)
	}
	if _, _, err := svc.AddPeriod(ctx, item.KindTodo, "2026-03-05", "2026-03-01", journal.Draft{Text: "x"}); !errors.Is(err, journal.ErrInvalidInput) {
		t.Fatalf("expected reversed range error, got %v", err)
	}
	if mp.saveCount(store.SlotTodos) != 0 || mp.saveCount(store.SlotSchedules) != 0 {
		t.Fatal("rejected input must not be saved")
	}
}

func TestOvernightSchedules(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, newMemoryPersistence())

	it, err := svc.Add(ctx, item.KindSchedule, "2026-03-02", journal.Draft{Text: "night shift", Fields: item.Fields{Time: "22:00 ~ 6:00"}})
	if err != nil {
		t.Fatalf("add overnight schedule: %v", err)
	}
	if got := it.Fields().Time; got != "22:00 ~ 06:00" {
		t.Fatalf("time = %q, want canonical overnight span", got)
	}
	_, created, err := svc.AddPeriod(ctx, item.KindSchedule, "2026-03-09", "2026-03-11", journal.Draft{Text: "on call", Fields: item.Fields{Time: "23:00 ~ 01:00"}})
	if err != nil {
		t.Fatalf("add overnight period: %v", err)
	}
	at := "21:30 ~ 05:30"
	if _, err := svc.Reshape(ctx, created[0].Meta().ID, ReshapeOptions{Ranges: []string{"2026-03-09..2026-03-10"}, Time: &at}); err != nil {
		t.Fatalf("reshape overnight: %v", err)
	}
	p, err := svc.Periods(created[0].Meta().ID)
	if err != nil {
		t.Fatalf("periods: %v", err)
	}
	if got := p.Item.Fields().Time; got != at {
		t.Fatalf("time after reshape = %q, want %q", got, at)
	}
}

func TestBulkModeFollowsLastAdd(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	svc := newService(t, mp)

	if _, _, err := svc.AddPeriod(ctx, item.KindTodo, "2026-03-01", "2026-03-03", journal.Draft{Text: "stretch"}); err != nil {
		t.Fatalf("add period: %v", err)
	}
	if !svc.BulkMode() {
		t.Fatal("expected bulk mode after adding a period")
	}
	if !newService(t, mp).BulkMode() {
		t.Fatal("bulk mode should persist")
	}
	if _, err := svc.Add(ctx, item.KindTodo, "2026-03-04", journal.Draft{Text: "once"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if svc.BulkMode() {
		t.Fatal("expected bulk mode off after a single add")
	}
}

func TestDeleteAutoMode(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	svc := newService(t, mp)

	single, err := svc.Add(ctx, item.KindTodo, "2026-03-02", journal.Draft{Text: "call bank"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	modes, err := svc.DeleteModes(single.Meta().ID)
	if err != nil || len(modes) != 1 {
		t.Fatalf("expected no choice for a one-date item, got %v, %v", modes, err)
	}
	rep, err := svc.Delete(ctx, single.Meta().ID, "", "")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rep.Removed != 1 {
		t.Fatalf("expected one removal, got %+v", rep)
	}

	_, created, err := svc.AddPeriod(ctx, item.KindTodo, "2026-03-01", "2026-03-05", journal.Draft{Text: "run"})
	if err != nil {
		t.Fatalf("add period: %v", err)
	}
	id := created[2].Meta().ID
	if _, err := svc.Delete(ctx, id, "", ""); !errors.Is(err, ErrModeRequired) {
		t.Fatalf("expected ErrModeRequired, got %v", err)
	}
	if modes, _ := svc.DeleteModes(id); len(modes) != 3 {
		t.Fatalf("expected every mode to be offered, got %v", modes)
	}

	rep, err = svc.Delete(ctx, id, journal.ModeRange, "2026-03-02..2026-03-03")
	if err != nil {
		t.Fatalf("range delete: %v", err)
	}
	if rep.Removed != 2 {
		t.Fatalf("expected two removals, got %+v", rep)
	}
	p, err := svc.Periods(created[0].Meta().ID)
	if err != nil {
		t.Fatalf("periods: %v", err)
	}
	want := []datekey.Range{
		{Start: "2026-03-01", End: "2026-03-01"},
		{Start: "2026-03-04", End: "2026-03-05"},
	}
	if len(p.Ranges) != 2 || p.Ranges[0] != want[0] || p.Ranges[1] != want[1] {
		t.Fatalf("unexpected ranges %v", p.Ranges)
	}

	if _, err := svc.Delete(ctx, created[0].Meta().ID, journal.ModeRange, "nope"); !errors.Is(err, journal.ErrInvalidInput) {
		t.Fatalf("expected invalid range, got %v", err)
	}
	rep, err = svc.Delete(ctx, created[0].Meta().ID, journal.ModeGroup, "")
	if err != nil || rep.Removed != 3 {
		t.Fatalf("expected group delete of three, got %+v, %v", rep, err)
	}
	if _, _, err := svc.Locate(created[4].Meta().ID); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("expected group gone, got %v", err)
	}
}

func TestReshapeSkipsBadRanges(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	svc := newService(t, mp)

	_, created, err := svc.AddPeriod(ctx, item.KindSchedule, "2026-03-01", "2026-03-03", journal.Draft{
		Text:   "gym",
		Fields: item.Fields{Color: "#f00", Time: "07:00"},
	})
	if err != nil {
		t.Fatalf("add period: %v", err)
	}
	id := created[0].Meta().ID
	before := mp.saveCount(store.SlotSchedules)

	rep, err := svc.Reshape(ctx, id, ReshapeOptions{Ranges: []string{"2026-03-02..2026-03-04", "2026-03-09..2026-03-08"}})
	if err != nil {
		t.Fatalf("reshape: %v", err)
	}
	if len(rep.Skipped) != 1 || rep.Added != 1 || rep.Removed != 1 || rep.Updated != 2 {
		t.Fatalf("unexpected report %+v", rep)
	}
	if mp.saveCount(store.SlotSchedules) != before+1 {
		t.Fatal("expected reshape to save once")
	}
	day, _ := svc.Day(item.KindSchedule, "2026-03-04")
	if len(day) != 1 || day[0].Fields().Color != "#ff0000" || day[0].Fields().Time != "07:00" {
		t.Fatalf("spawned member should keep the group's fields, got %+v", day)
	}

	if _, err := svc.Reshape(ctx, created[1].Meta().ID, ReshapeOptions{Ranges: []string{"garbage"}}); !errors.Is(err, journal.ErrInvalidInput) {
		t.Fatalf("expected all-invalid reshape to be rejected, got %v", err)
	}
	if p, _ := svc.Periods(created[1].Meta().ID); len(p.Dates) != 3 {
		t.Fatalf("rejected reshape must not change the footprint, got %v", p.Dates)
	}

	newTime := "18:00 ~ 19:30"
	if _, err := svc.Reshape(ctx, created[1].Meta().ID, ReshapeOptions{Ranges: []string{"2026-03-02..2026-03-04"}, Time: &newTime}); err != nil {
		t.Fatalf("reshape time: %v", err)
	}
	for _, d := range []datekey.DateKey{"2026-03-02", "2026-03-03", "2026-03-04"} {
		day, _ := svc.Day(item.KindSchedule, d)
		if len(day) != 1 || day[0].Fields().Time != newTime {
			t.Fatalf("expected new time on %s, got %+v", d, day)
		}
	}
}

func TestToggleOnlyTodos(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, newMemoryPersistence())

	sched, err := svc.Add(ctx, item.KindSchedule, "2026-03-02", journal.Draft{Text: "dentist"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Toggle(ctx, sched.Meta().ID); !errors.Is(err, journal.ErrInvalidInput) {
		t.Fatalf("expected invalid input toggling a schedule, got %v", err)
	}
	if _, err := svc.Toggle(ctx, "missing"); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	todo, _ := svc.Add(ctx, item.KindTodo, "2026-03-02", journal.Draft{Text: "pay rent"})
	toggled, err := svc.Toggle(ctx, todo.Meta().ID)
	if err != nil || !item.IsCompleted(toggled) {
		t.Fatalf("expected completed todo, got %v, %v", toggled, err)
	}
}

func TestPalette(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	svc := newService(t, mp, WithSeedPalette([]string{"#ABC", "nope", "#aabbcc"}))

	if got := svc.Palette(); len(got) != 1 || got[0] != "#aabbcc" {
		t.Fatalf("expected normalized seed palette, got %v", got)
	}
	if _, err := svc.AddColor(ctx, "00ff00"); err != nil {
		t.Fatalf("add color: %v", err)
	}
	if _, err := svc.AddColor(ctx, "#00FF00"); err != nil {
		t.Fatalf("re-add color: %v", err)
	}
	if got := svc.Palette(); len(got) != 2 {
		t.Fatalf("expected duplicate to be ignored, got %v", got)
	}

	c, err := svc.ResolveColor("2")
	if err != nil || c != "#00ff00" {
		t.Fatalf("resolve index: %q, %v", c, err)
	}
	if _, err := svc.ResolveColor("7"); !errors.Is(err, journal.ErrInvalidInput) {
		t.Fatalf("expected out of range index error, got %v", err)
	}
	if c, _ := svc.ResolveColor(""); c != "" {
		t.Fatalf("empty color should stay empty, got %q", c)
	}

	if _, err := svc.RemoveColor(ctx, "1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.RemoveColor(ctx, "#123456"); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if got := newService(t, mp, WithSeedPalette([]string{"#aabbcc"})).Palette(); len(got) != 1 || got[0] != "#00ff00" {
		t.Fatalf("saved palette should win over the seed, got %v", got)
	}
}

func TestCorruptSlotStartsEmpty(t *testing.T) {
	mp := newMemoryPersistence()
	mp.slots[store.SlotTodos] = []byte("{not json")
	mp.slots[store.SlotBulkMode] = []byte("maybe")

	svc := newService(t, mp)
	j, err := svc.Journal(item.KindTodo)
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	if j.Len() != 0 || svc.BulkMode() {
		t.Fatal("expected unreadable slots to start empty")
	}
}

func TestUnreadableSlotIsBackedUpBeforeOverwrite(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	mp.slots[store.SlotTodos] = []byte("{not json")
	svc := newService(t, mp)

	mp.failing = true
	if _, err := svc.Add(ctx, item.KindTodo, "2026-03-02", journal.Draft{Text: "first"}); err == nil {
		t.Fatal("expected an error when the backup cannot be written")
	}
	if got := string(mp.slots[store.SlotTodos]); got != "{not json" {
		t.Fatalf("slot must stay untouched until backed up, got %q", got)
	}

	mp.failing = false
	if _, err := svc.Add(ctx, item.KindTodo, "2026-03-03", journal.Draft{Text: "second"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := string(mp.slots[store.SlotTodos.Backup()]); got != "{not json" {
		t.Fatalf("backup = %q, want the unreadable data", got)
	}
	if _, err := svc.Add(ctx, item.KindTodo, "2026-03-04", journal.Draft{Text: "third"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if n := mp.saveCount(store.SlotTodos.Backup()); n != 1 {
		t.Fatalf("backup written %d times, want 1", n)
	}
	snap, err := journal.Decode(item.KindTodo, mp.slots[store.SlotTodos])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snap) != 3 {
		t.Fatalf("expected three dates after the overwrite, got %v", snap)
	}
}

func TestLegacyNumericIDsSurviveSave(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	mp.slots[store.SlotTodos] = []byte(`{"2026-02-01":[{"id":1767225600000,"text":"legacy","completed":true}],` +
		`"2026-02-02":[{"id":"x","text":"keep me","completed":false}]}`)
	svc := newService(t, mp)

	if _, err := svc.Add(ctx, item.KindTodo, "2026-03-02", journal.Draft{Text: "new"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, ok := mp.slots[store.SlotTodos.Backup()]; ok {
		t.Fatal("a readable slot must not be backed up")
	}

	reopened := newService(t, mp)
	j, err := reopened.Journal(item.KindTodo)
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	if j.Len() != 3 {
		t.Fatalf("expected 3 todos, got %d", j.Len())
	}
	legacy, on, err := reopened.Locate("1767225600000")
	if err != nil {
		t.Fatalf("locate legacy todo: %v", err)
	}
	if on != "2026-02-01" || !item.IsCompleted(legacy) || legacy.Meta().GroupID == "" {
		t.Fatalf("unexpected legacy todo %+v on %s", legacy, on)
	}
	if _, _, err := reopened.Locate("x"); err != nil {
		t.Fatalf("locate kept todo: %v", err)
	}
}

func TestSaveFailureIsReturned(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	svc := newService(t, mp)
	mp.failing = true

	if _, err := svc.Add(ctx, item.KindTodo, "2026-03-02", journal.Draft{Text: "x"}); err == nil {
		t.Fatal("expected save error")
	}
}

func TestAgendaAndOverdue(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, newMemoryPersistence())

	old, _ := svc.Add(ctx, item.KindTodo, "2026-02-27", journal.Draft{Text: "taxes"})
	done, _ := svc.Add(ctx, item.KindTodo, "2026-02-28", journal.Draft{Text: "laundry"})
	if _, err := svc.Toggle(ctx, done.Meta().ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	svc.Add(ctx, item.KindSchedule, "2026-03-02", journal.Draft{Text: "late", Fields: item.Fields{Time: "17:00"}})
	svc.Add(ctx, item.KindSchedule, "2026-03-02", journal.Draft{Text: "early", Fields: item.Fields{Time: "08:00"}})

	agenda, err := svc.Agenda("2026-02-27", 7)
	if err != nil {
		t.Fatalf("agenda: %v", err)
	}
	if len(agenda.Days) != 3 || agenda.Todos != 2 || agenda.Done != 1 || agenda.To != "2026-03-05" {
		t.Fatalf("unexpected agenda %+v", agenda)
	}
	if got := agenda.Days[2].Schedules[0].Meta().Text; got != "early" {
		t.Fatalf("expected schedules in time order, first is %q", got)
	}
	if _, err := svc.Agenda("2026-02-27", 0); !errors.Is(err, journal.ErrInvalidInput) {
		t.Fatalf("expected invalid window, got %v", err)
	}

	overdue := svc.Overdue("2026-03-01")
	if len(overdue) != 1 || overdue[0].Item.Meta().ID != old.Meta().ID {
		t.Fatalf("expected only the open past todo, got %+v", overdue)
	}

	rep, err := svc.Migrate(ctx, old.Meta().ID, "2026-03-01")
	if err != nil || rep.Added != 1 || rep.Removed != 1 {
		t.Fatalf("migrate: %+v, %v", rep, err)
	}
	if got := svc.Overdue("2026-03-01"); len(got) != 0 {
		t.Fatalf("expected nothing overdue after migration, got %+v", got)
	}
}
