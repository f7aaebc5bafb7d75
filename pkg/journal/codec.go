package journal

import (
	"encoding/json"
	"fmt"
	"strings"

	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
)

// Encode serializes a snapshot as a JSON object of date to record list.
func Encode(snap Snapshot) ([]byte, error) {
	out := make(map[string][]item.Record, len(snap))
	for d, list := range snap {
		if len(list) == 0 {
			continue
		}
		records := make([]item.Record, 0, len(list))
		for _, it := range list {
			records = append(records, item.ToRecord(it))
		}
		out[string(d)] = records
	}
	return json.Marshal(out)
}

// Decode reads what Encode wrote, building kind k items. Empty input is an
// empty snapshot. Records without an id get one, and every item ends up with
// a group id.
func Decode(k item.Kind, data []byte) (Snapshot, error) {
	snap := make(Snapshot)
	if len(strings.TrimSpace(string(data))) == 0 {
		return snap, nil
	}
	raw := make(map[string][]item.Record)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("journal: decode %s: %w", k, err)
	}
	for key, records := range raw {
		on, err := datekey.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("journal: decode %s: %w", k, err)
		}
		list := make([]item.Item, 0, len(records))
		for _, r := range records {
			if r.ID == "" {
				r.ID = item.NewID(on, r.CreatedAt)
			}
			list = append(list, item.FromRecord(k, r))
		}
		snap.set(on, list)
	}
	return snap, nil
}
