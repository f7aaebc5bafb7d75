package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
)

// Format selects a machine readable encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q, want text, json or yaml", s)
	}
}

// ItemView is an item as emitted by structured output.
type ItemView struct {
	Date        datekey.DateKey `json:"date" yaml:"date"`
	Kind        item.Kind       `json:"kind" yaml:"kind"`
	item.Record `yaml:",inline"`
}

// DayView lists both kinds for one date.
type DayView struct {
	Date      datekey.DateKey `json:"date" yaml:"date"`
	Schedules []ItemView      `json:"schedules" yaml:"schedules"`
	Todos     []ItemView      `json:"todos" yaml:"todos"`
}

// PeriodView is the footprint of a group.
type PeriodView struct {
	ID      string            `json:"id" yaml:"id"`
	GroupID string            `json:"groupId" yaml:"groupId"`
	Text    string            `json:"text" yaml:"text"`
	Dates   []datekey.DateKey `json:"dates" yaml:"dates"`
	Ranges  []datekey.Range   `json:"ranges" yaml:"ranges"`
}

func NewItemView(on datekey.DateKey, it item.Item) ItemView {
	return ItemView{Date: on, Kind: it.Kind(), Record: item.ToRecord(it)}
}

func NewDayView(on datekey.DateKey, schedules, todos []item.Item) DayView {
	v := DayView{Date: on, Schedules: []ItemView{}, Todos: []ItemView{}}
	for _, it := range schedules {
		v.Schedules = append(v.Schedules, NewItemView(on, it))
	}
	for _, it := range todos {
		v.Todos = append(v.Todos, NewItemView(on, it))
	}
	return v
}

func NewAgendaView(a app.Agenda) []DayView {
	out := make([]DayView, 0, len(a.Days))
	for _, d := range a.Days {
		out = append(out, NewDayView(d.Date, d.Schedules, d.Todos))
	}
	return out
}

func NewPeriodView(p app.Period) PeriodView {
	meta := p.Item.Meta()
	return PeriodView{ID: meta.ID, GroupID: meta.GroupID, Text: meta.Text, Dates: p.Dates, Ranges: p.Ranges}
}

// Structured writes v as json or yaml.
func Structured(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not structured", f)
	}
}
