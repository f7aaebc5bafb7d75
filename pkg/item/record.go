package item

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Record is the stored form of an item, shared by both kinds.
type Record struct {
	ID         string    `json:"id" yaml:"id"`
	Text       string    `json:"text" yaml:"text"`
	Completed  bool      `json:"completed,omitempty" yaml:"completed,omitempty"`
	GroupID    string    `json:"groupId,omitempty" yaml:"groupId,omitempty"`
	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt"`
	Color      string    `json:"color,omitempty" yaml:"color,omitempty"`
	Time       string    `json:"time,omitempty" yaml:"time,omitempty"`
	IsSchedule bool      `json:"isSchedule,omitempty" yaml:"isSchedule,omitempty"`
}

// UnmarshalJSON accepts numeric ids, as written by older clients that used
// a millisecond timestamp for the id. Such records without a creation
// instant take it from the id.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var aux struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Record(aux.plain)

	raw := bytes.TrimSpace(aux.ID)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		r.ID = ""
	case raw[0] == '"':
		if err := json.Unmarshal(raw, &r.ID); err != nil {
			return err
		}
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("item: id %s is neither a string nor a number", raw)
		}
		r.ID = n.String()
		if ms, err := strconv.ParseInt(r.ID, 10, 64); err == nil && r.CreatedAt.IsZero() {
			r.CreatedAt = time.UnixMilli(ms).UTC()
		}
	}
	return nil
}

// ToRecord flattens an item.
func ToRecord(it Item) Record {
	m := it.Meta()
	r := Record{
		ID:        m.ID,
		Text:      m.Text,
		GroupID:   m.GroupID,
		CreatedAt: m.Created,
		Color:     m.Color,
	}
	switch v := it.(type) {
	case Todo:
		r.Completed = v.Completed
	case Schedule:
		r.Time = v.Time
		r.IsSchedule = true
	}
	return r
}

// FromRecord builds the variant for kind k. Records without a group id get
// the single-member group "g-<id>".
func FromRecord(k Kind, r Record) Item {
	b := Base{
		ID:      r.ID,
		Text:    r.Text,
		GroupID: r.GroupID,
		Created: r.CreatedAt,
		Color:   r.Color,
	}
	if b.GroupID == "" && b.ID != "" {
		b.GroupID = SoloGroupID(b.ID)
	}
	if k == KindSchedule {
		return Schedule{Base: b, Time: r.Time}
	}
	return Todo{Base: b, Completed: r.Completed}
}

// SoloGroupID is the deterministic group id of a lone legacy item.
func SoloGroupID(id string) string {
	return "g-" + id
}
