// Package journal is the system of record for one kind of dated item. It
// owns creation, group footprint queries, period reconciliation and the
// deletion policies.
package journal

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/timeutil"
)

// Snapshot maps each date to its items, most recently added first.
type Snapshot map[datekey.DateKey][]item.Item

// clone copies the map and every list so the result can be changed freely.
func (s Snapshot) clone() Snapshot {
	out := make(Snapshot, len(s))
	for d, list := range s {
		out[d] = append([]item.Item(nil), list...)
	}
	return out
}

// Draft is the user input for a new item.
type Draft struct {
	Text   string
	Fields item.Fields
}

// Store holds one kind's snapshot. Mutations build a complete new snapshot
// and swap it in under the lock.
type Store struct {
	mu   sync.RWMutex
	kind item.Kind
	days Snapshot
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the creation clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New returns a store for kind k seeded with snap.
func New(k item.Kind, snap Snapshot, opts ...Option) *Store {
	s := &Store{kind: k, days: snap.clone(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Kind() item.Kind {
	return s.kind
}

// Snapshot returns a private copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.days.clone()
}

// Replace swaps in snap wholesale, as after an external reload.
func (s *Store) Replace(snap Snapshot) {
	next := snap.clone()
	s.mu.Lock()
	s.days = next
	s.mu.Unlock()
}

// Len counts every item.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, list := range s.days {
		n += len(list)
	}
	return n
}

// Dates lists the dates holding at least one item, ascending.
func (s *Store) Dates() []datekey.DateKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := make(datekey.Set, len(s.days))
	for d, list := range s.days {
		if len(list) > 0 {
			set.Add(d)
		}
	}
	return set.Sorted()
}

// Day returns the items of date on. Schedules are ordered by the first token
// of their time, untimed ones last, ties keeping stored order.
func (s *Store) Day(on datekey.DateKey) []item.Item {
	s.mu.RLock()
	list := append([]item.Item(nil), s.days[on]...)
	s.mu.RUnlock()
	if s.kind == item.KindSchedule {
		SortSchedules(list)
	}
	return list
}

// SortSchedules orders items in place by schedule start time.
func SortSchedules(list []item.Item) {
	sort.SliceStable(list, func(i, j int) bool {
		ki, oki := timeKey(list[i])
		kj, okj := timeKey(list[j])
		switch {
		case oki && okj:
			return ki < kj
		default:
			return oki && !okj
		}
	})
}

func timeKey(it item.Item) (int, bool) {
	return timeutil.SortKey(it.Fields().Time)
}

// Find locates an item by id.
func (s *Store) Find(id string) (item.Item, datekey.DateKey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.days.find(id)
}

func (s Snapshot) find(id string) (item.Item, datekey.DateKey, bool) {
	for d, list := range s {
		for _, it := range list {
			if it.Meta().ID == id {
				return it, d, true
			}
		}
	}
	return nil, "", false
}

// Footprint is the set of dates holding a member of target's group.
func (s *Store) Footprint(target item.Item) datekey.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.days.footprint(target)
}

func (s Snapshot) footprint(target item.Item) datekey.Set {
	out := make(datekey.Set)
	for d, list := range s {
		for _, it := range list {
			if item.Matches(it, target) {
				out.Add(d)
				break
			}
		}
	}
	return out
}

// Periods is the footprint of target's group collapsed into ranges.
func (s *Store) Periods(target item.Item) []datekey.Range {
	return datekey.Collapse(s.Footprint(target))
}

// canonical resolves target to a stored member of its group, preferring the
// item with the same id.
func (s Snapshot) canonical(target item.Item) (item.Item, bool) {
	if target == nil {
		return nil, false
	}
	if it, _, ok := s.find(target.Meta().ID); ok {
		return it, true
	}
	for _, list := range s {
		for _, it := range list {
			if item.Matches(it, target) {
				return it, true
			}
		}
	}
	return nil, false
}

func (s *Store) checkKind(target item.Item) error {
	if target == nil {
		return Invalid("item", "", errors.New("no item given"))
	}
	if target.Kind() != s.kind {
		return Invalid("kind", string(target.Kind()), errors.New("item belongs to the "+string(target.Kind())+" journal"))
	}
	return nil
}

func (s *Store) validateDraft(d Draft) (Draft, error) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return d, Invalid("text", d.Text, errors.New("text is required"))
	}
	color, err := item.NormalizeColor(d.Fields.Color)
	if err != nil {
		return d, Invalid("color", d.Fields.Color, err)
	}
	d.Text = text
	d.Fields.Color = color
	if s.kind != item.KindSchedule {
		d.Fields.Time = ""
	}
	return d, nil
}

// Add creates a single-date item at the front of its date, in a new group
// of one.
func (s *Store) Add(on datekey.DateKey, d Draft) (item.Item, error) {
	if !on.Valid() {
		return nil, Invalid("date", string(on), errors.New("want YYYY-MM-DD"))
	}
	d, err := s.validateDraft(d)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	it := item.New(s.kind, on, d.Text, item.NewGroupID(), d.Fields, s.now())
	next := s.days.clone()
	next[on] = prepend(next[on], it)
	s.days = next
	return it, nil
}

// AddPeriod materializes one item per date of r, all sharing a fresh group
// id. Nothing is written when the input is invalid.
func (s *Store) AddPeriod(r datekey.Range, d Draft) (string, []item.Item, error) {
	if err := r.Validate(); err != nil {
		return "", nil, Invalid("range", r.String(), err)
	}
	d, err := s.validateDraft(d)
	if err != nil {
		return "", nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	group := item.NewGroupID()
	now := s.now()
	next := s.days.clone()
	created := make([]item.Item, 0, r.Len())
	for _, on := range r.Days() {
		it := item.New(s.kind, on, d.Text, group, d.Fields, now)
		next[on] = prepend(next[on], it)
		created = append(created, it)
	}
	s.days = next
	return group, created, nil
}

// Toggle flips the completion flag of a todo.
func (s *Store) Toggle(id string) (item.Item, error) {
	if s.kind != item.KindTodo {
		return nil, Invalid("kind", string(s.kind), errors.New("only todos can be completed"))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it, on, ok := s.days.find(id)
	if !ok {
		return nil, ErrNotFound
	}
	todo, ok := it.(item.Todo)
	if !ok {
		return nil, Invalid("kind", string(it.Kind()), errors.New("only todos can be completed"))
	}
	toggled := todo.Toggled()
	next := s.days.clone()
	for i, cur := range next[on] {
		if cur.Meta().ID == id {
			next[on][i] = toggled
		}
	}
	s.days = next
	return toggled, nil
}

func prepend(list []item.Item, it item.Item) []item.Item {
	return append([]item.Item{it}, list...)
}

// set stores list under on, dropping the date when it becomes empty.
func (s Snapshot) set(on datekey.DateKey, list []item.Item) {
	if len(list) == 0 {
		delete(s, on)
		return
	}
	s[on] = list
}
