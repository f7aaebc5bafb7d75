// Package app wires the todo and schedule journals to persistence. Every
// mutating call saves the affected slot before returning, so CLIs and the
// MCP server share one consistent write path.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/journal"
	"tableflip.dev/daybook/pkg/log"
	"tableflip.dev/daybook/pkg/store"
)

var (
	// ErrModeRequired is returned by Delete when no mode was given and the
	// group occupies more than one date.
	ErrModeRequired  = errors.New("app: item repeats on several dates, choose a deletion mode")
	ErrNoPersistence = errors.New("app: no persistence configured")
)

// Service owns both journals, the color palette and the bulk-mode flag.
type Service struct {
	persistence store.Persistence
	journals    map[item.Kind]*journal.Store
	now         func() time.Time
	seed        []string

	// mu serializes mutate-then-save so slots are written in order.
	mu      sync.Mutex
	palette []string
	bulk    bool
	// unreadable holds the raw data of slots that failed to decode. It is
	// copied to the slot's backup before the slot is first overwritten.
	unreadable map[store.Slot][]byte
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for ids and creation instants.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithSeedPalette sets the colors used while the palette slot is empty.
func WithSeedPalette(colors []string) Option {
	return func(s *Service) {
		s.seed = append([]string(nil), colors...)
	}
}

// Open loads every slot from p. Missing slots start empty. Unreadable ones
// are logged and start empty, and their data is kept in the slot's backup
// once the slot is next saved.
func Open(ctx context.Context, p store.Persistence, opts ...Option) (*Service, error) {
	if p == nil {
		return nil, ErrNoPersistence
	}
	s := &Service{persistence: p, now: time.Now, unreadable: make(map[store.Slot][]byte)}
	for _, opt := range opts {
		opt(s)
	}
	s.journals = make(map[item.Kind]*journal.Store, 2)
	for _, k := range item.Kinds() {
		s.journals[k] = journal.New(k, nil, journal.WithClock(s.now))
	}
	for _, slot := range store.Slots() {
		if err := s.Reload(ctx, slot); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Close releases the underlying persistence.
func (s *Service) Close() error {
	return s.persistence.Close()
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	return s.persistence.Watch(ctx)
}

// Reload re-reads one slot, as after a change made by another process.
func (s *Service) Reload(ctx context.Context, slot store.Slot) error {
	data, err := s.persistence.Load(ctx, slot)
	if err != nil {
		return fmt.Errorf("app: load %s: %w", slot, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.unreadable, slot)
	unreadable := func(err error) {
		log.Error("unreadable slot starts empty", err, "slot", slot, "backup", slot.Backup())
		s.unreadable[slot] = data
	}
	switch slot {
	case store.SlotTodos, store.SlotSchedules:
		k := kindFor(slot)
		snap, err := journal.Decode(k, data)
		if err != nil {
			unreadable(err)
			snap = journal.Snapshot{}
		}
		s.journals[k].Replace(snap)
	case store.SlotPalette:
		var colors []string
		if len(data) == 0 {
			colors = s.seed
		} else if err := json.Unmarshal(data, &colors); err != nil {
			unreadable(err)
			colors = nil
		}
		s.palette = normalizePalette(colors)
	case store.SlotBulkMode:
		var on bool
		if len(data) > 0 {
			if err := json.Unmarshal(data, &on); err != nil {
				unreadable(err)
				on = false
			}
		}
		s.bulk = on
	default:
		return fmt.Errorf("app: unknown slot %q", slot)
	}
	log.Debug("loaded slot", "slot", slot, "bytes", len(data))
	return nil
}

// Journal returns the store for kind k.
func (s *Service) Journal(k item.Kind) (*journal.Store, error) {
	j, ok := s.journals[k]
	if !ok {
		return nil, journal.Invalid("kind", string(k), errors.New("unknown kind"))
	}
	return j, nil
}

// Locate finds an item by id in either journal.
func (s *Service) Locate(id string) (item.Item, datekey.DateKey, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, "", journal.Invalid("id", id, errors.New("id is required"))
	}
	for _, k := range item.Kinds() {
		if it, on, ok := s.journals[k].Find(id); ok {
			return it, on, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %s", journal.ErrNotFound, id)
}

func slotFor(k item.Kind) store.Slot {
	if k == item.KindSchedule {
		return store.SlotSchedules
	}
	return store.SlotTodos
}

func kindFor(slot store.Slot) item.Kind {
	if slot == store.SlotSchedules {
		return item.KindSchedule
	}
	return item.KindTodo
}

// saveJournal writes the complete slot of kind k. Callers hold s.mu.
func (s *Service) saveJournal(k item.Kind) error {
	data, err := journal.Encode(s.journals[k].Snapshot())
	if err != nil {
		return fmt.Errorf("app: encode %s: %w", k, err)
	}
	return s.save(slotFor(k), data)
}

func (s *Service) saveJSON(slot store.Slot, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("app: encode %s: %w", slot, err)
	}
	return s.save(slot, data)
}

func (s *Service) save(slot store.Slot, data []byte) error {
	if raw, ok := s.unreadable[slot]; ok {
		if err := s.persistence.Save(slot.Backup(), raw); err != nil {
			log.Error("backup failed, slot left untouched", err, "slot", slot)
			return fmt.Errorf("app: back up %s: %w", slot, err)
		}
		delete(s.unreadable, slot)
		log.Info("kept unreadable slot data", "slot", slot, "backup", slot.Backup())
	}
	if err := s.persistence.Save(slot, data); err != nil {
		log.Error("save failed", err, "slot", slot)
		return fmt.Errorf("app: save %s: %w", slot, err)
	}
	return nil
}
