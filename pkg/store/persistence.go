// Package store persists daybook state as opaque blobs in named slots.
package store

import (
	"context"
	"fmt"
	"strings"
)

// Slot names one independently persisted value.
type Slot string

const (
	SlotTodos     Slot = "todos"
	SlotSchedules Slot = "schedules"
	SlotPalette   Slot = "palette"
	SlotBulkMode  Slot = "bulk-mode"
)

// Slots lists every slot.
func Slots() []Slot {
	return []Slot{SlotTodos, SlotSchedules, SlotPalette, SlotBulkMode}
}

// backupSuffix marks the slot holding a copy of data that failed to decode.
const backupSuffix = ".corrupt"

// Backup is the slot that keeps an unreadable copy of s before it is
// overwritten.
func (s Slot) Backup() Slot {
	return s + backupSuffix
}

// valid accepts every primary slot and its backup.
func (s Slot) valid() bool {
	if base, ok := strings.CutSuffix(string(s), backupSuffix); ok {
		return Slot(base).primary()
	}
	return s.primary()
}

func (s Slot) primary() bool {
	for _, known := range Slots() {
		if s == known {
			return true
		}
	}
	return false
}

// Persistence defines the load/save contract for slots. Every Save replaces
// the whole slot.
type Persistence interface {
	// Load returns nil, nil when the slot was never saved.
	Load(ctx context.Context, slot Slot) ([]byte, error)
	Save(slot Slot, data []byte) error
	// Watch streams a change event per slot written, also by other
	// processes, until ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

// Event is emitted by Persistence.Watch when a slot changed.
type Event struct {
	Slot Slot
}

// Load opens persistence using cfg, or the config found on disk when cfg is nil.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	switch cfg.Backend() {
	case BackendSQLite:
		return openSQLite(cfg.BasePath())
	case BackendDiskv, "":
		return openDiskv(cfg.BasePath())
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}
