// Package item defines the records a journal attaches to calendar dates.
//
// Todos and schedules are separate variants sharing a Base that carries the
// group identity. Items are plain values: every change yields a new value.
package item

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/daybook/pkg/datekey"
)

// Kind discriminates the item variants. Each kind lives in its own journal.
type Kind string

const (
	KindTodo     Kind = "todo"
	KindSchedule Kind = "schedule"
)

// Kinds lists every kind in display order.
func Kinds() []Kind {
	return []Kind{KindTodo, KindSchedule}
}

// ParseKind accepts the kind names and a few aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo", "todos", "task", "tasks", "t":
		return KindTodo, nil
	case "schedule", "schedules", "event", "events", "s":
		return KindSchedule, nil
	default:
		return "", fmt.Errorf("unknown item kind %q", s)
	}
}

func (k Kind) String() string {
	return string(k)
}

// Base is the group-identity substructure shared by every variant.
type Base struct {
	ID      string
	Text    string
	GroupID string
	Created time.Time
	Color   string
}

// Fields are the values kept identical across all members of a group.
type Fields struct {
	Color string
	Time  string
}

// Item is implemented by Todo and Schedule.
type Item interface {
	Meta() Base
	Kind() Kind
	Fields() Fields
	// WithFields returns a copy carrying the shared fields f. Identity and
	// per-date state are untouched.
	WithFields(f Fields) Item
	// Spawn returns a fresh, uncompleted member of the same group for date on.
	Spawn(on datekey.DateKey, f Fields, now time.Time) Item
}

// Todo is a task attached to one date.
type Todo struct {
	Base
	Completed bool
}

func (t Todo) Meta() Base { return t.Base }
func (t Todo) Kind() Kind { return KindTodo }

func (t Todo) Fields() Fields {
	return Fields{Color: t.Color}
}

func (t Todo) WithFields(f Fields) Item {
	t.Color = f.Color
	return t
}

func (t Todo) Spawn(on datekey.DateKey, f Fields, now time.Time) Item {
	return Todo{Base: t.Base.spawn(on, f, now)}
}

// Toggled flips the completion flag.
func (t Todo) Toggled() Todo {
	t.Completed = !t.Completed
	return t
}

// Schedule is an appointment attached to one date, optionally at a time.
type Schedule struct {
	Base
	// Time is empty for all-day items, "HH:MM", or "HH:MM ~ HH:MM".
	Time string
}

func (s Schedule) Meta() Base { return s.Base }
func (s Schedule) Kind() Kind { return KindSchedule }

func (s Schedule) Fields() Fields {
	return Fields{Color: s.Color, Time: s.Time}
}

func (s Schedule) WithFields(f Fields) Item {
	s.Color = f.Color
	s.Time = f.Time
	return s
}

func (s Schedule) Spawn(on datekey.DateKey, f Fields, now time.Time) Item {
	return Schedule{Base: s.Base.spawn(on, f, now), Time: f.Time}
}

func (b Base) spawn(on datekey.DateKey, f Fields, now time.Time) Base {
	return Base{
		ID:      NewID(on, now),
		Text:    b.Text,
		GroupID: b.GroupID,
		Created: now,
		Color:   f.Color,
	}
}

// New builds a fresh item of kind k for date on.
func New(k Kind, on datekey.DateKey, text, groupID string, f Fields, now time.Time) Item {
	b := Base{
		ID:      NewID(on, now),
		Text:    text,
		GroupID: groupID,
		Created: now,
		Color:   f.Color,
	}
	if k == KindSchedule {
		return Schedule{Base: b, Time: f.Time}
	}
	return Todo{Base: b}
}

// NewID embeds the date, the creation instant and a random suffix so ids stay
// unique even when a whole period is created within one millisecond.
func NewID(on datekey.DateKey, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return fmt.Sprintf("%s-%d-%s", on, now.UnixMilli(), suffix)
}

// NewGroupID returns a fresh group identity.
func NewGroupID() string {
	return uuid.NewString()
}

// Matches reports whether a and b belong to the same group. A group id on
// either side decides alone; without one, text and creation instant must
// both be equal.
func Matches(a, b Item) bool {
	if a == nil || b == nil {
		return false
	}
	ma, mb := a.Meta(), b.Meta()
	if ma.GroupID != "" || mb.GroupID != "" {
		return ma.GroupID == mb.GroupID
	}
	return ma.Text == mb.Text && ma.Created.Equal(mb.Created)
}

// IsCompleted is true only for completed todos.
func IsCompleted(it Item) bool {
	t, ok := it.(Todo)
	return ok && t.Completed
}

// Regroup returns it moved into group.
func Regroup(it Item, group string) Item {
	switch v := it.(type) {
	case Todo:
		v.GroupID = group
		return v
	case Schedule:
		v.GroupID = group
		return v
	default:
		return it
	}
}
