// Package glyph holds the markers printed in front of items.
package glyph

import (
	"fmt"

	"tableflip.dev/daybook/pkg/item"
)

type Glyph struct {
	Symbol  string
	Meaning string
	Order   int
}

const (
	escape     = "\x1b"
	resetCode  = 0
	boldCode   = 1
	strikeCode = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

type Bullet int

const (
	Todo Bullet = iota
	Completed
	Schedule
	Repeats
)

func DefaultGlyphs() []Glyph {
	return []Glyph{
		Todo:      {Symbol: "●", Meaning: "todo", Order: 0},
		Completed: {Symbol: "✘", Meaning: "todo completed", Order: 1},
		Schedule:  {Symbol: "○", Meaning: "schedule", Order: 2},
		Repeats:   {Symbol: "↻", Meaning: "repeats on other dates", Order: 3},
	}
}

// ByOrder sorts glyphs for the legend.
type ByOrder []Glyph

func (a ByOrder) Len() int           { return len(a) }
func (a ByOrder) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByOrder) Less(i, j int) bool { return a[i].Order < a[j].Order }

func (g Glyph) String() string {
	return g.Symbol
}

func (b Bullet) Glyph() Glyph {
	return DefaultGlyphs()[b]
}

func (b Bullet) String() string {
	return b.Glyph().String()
}

// For picks the bullet of an item.
func For(it item.Item) Bullet {
	switch {
	case it.Kind() == item.KindSchedule:
		return Schedule
	case item.IsCompleted(it):
		return Completed
	default:
		return Todo
	}
}
