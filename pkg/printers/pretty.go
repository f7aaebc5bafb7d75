package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/glyph"
	"tableflip.dev/daybook/pkg/item"
)

type PrettyPrint struct {
	ShowID bool
	// Width wraps item text; zero disables wrapping.
	Width int
	Out   io.Writer
	// Repeats marks items whose group spans several dates.
	Repeats func(item.Item) bool
}

var (
	spacing = strings.Repeat(" ", len("2026-03-01-1772355600000-0123456789  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

// Items prints one line per item, in the order given.
func (pp *PrettyPrint) Items(items ...item.Item) {
	w := pp.out()
	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(w, spacing)
		}
		_, _ = f.Fprint(w, " none\n\n")
		return
	}

	t := color.New()
	done := color.New(color.Faint, color.CrossedOut)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	tm := color.New(color.FgCyan)

	for _, it := range items {
		meta := it.Meta()
		prefix := ""
		if pp.ShowID {
			_, _ = y.Fprint(w, meta.ID)
			pad := len(spacing) - len(meta.ID)
			if pad < 1 {
				pad = 1
			}
			_, _ = y.Fprint(w, strings.Repeat(" ", pad))
			prefix = spacing
		}

		repeat := " "
		if pp.Repeats != nil && pp.Repeats(it) {
			repeat = glyph.Repeats.String()
		}
		_, _ = t.Fprintf(w, "%s%s %s ", glyph.For(it), repeat, pp.Swatch(meta.Color))

		text := meta.Text
		if at := it.Fields().Time; at != "" {
			_, _ = tm.Fprint(w, at+" ")
		}
		if pp.Width > 0 {
			indent := "\n" + prefix + strings.Repeat(" ", 5)
			text = strings.ReplaceAll(wordwrap.String(text, pp.Width), "\n", indent)
		}
		if item.IsCompleted(it) {
			_, _ = done.Fprintln(w, text)
		} else {
			_, _ = t.Fprintln(w, text)
		}
	}
	_, _ = t.Fprintln(w, "")
}

// Swatch renders a small block in color hex, or a blank for no color.
func (pp *PrettyPrint) Swatch(hex string) string {
	if hex == "" {
		return " "
	}
	o := termenv.NewOutput(pp.out())
	return o.String("■").Foreground(o.Color(hex)).String()
}

// Day prints the schedules then the todos of one date.
func (pp *PrettyPrint) Day(on datekey.DateKey, schedules, todos []item.Item) {
	pp.Title(Heading(on))
	if len(schedules) > 0 {
		pp.Items(schedules...)
	}
	if len(todos) > 0 || len(schedules) == 0 {
		pp.Items(todos...)
	}
}

// Agenda prints every non-empty date of the window.
func (pp *PrettyPrint) Agenda(a app.Agenda) {
	c := color.New(color.Faint)
	_, _ = c.Fprintf(pp.out(), "%s .. %s, %d/%d todos done\n\n", a.From, a.To, a.Done, a.Todos)
	if len(a.Days) == 0 {
		pp.Items()
		return
	}
	for _, d := range a.Days {
		pp.Day(d.Date, d.Schedules, d.Todos)
	}
}

// Period prints the footprint of a group as a range table.
func (pp *PrettyPrint) Period(p app.Period) {
	bold := color.New(color.Bold)
	meta := p.Item.Meta()
	pp.TitleWithCount(meta.Text, len(p.Dates))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Range"), bold.Sprint("Days"))
	for _, r := range p.Ranges {
		tbl.AddRow(r.String(), r.Len())
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = color.New(color.Faint).Fprintf(pp.out(), "group %s\n\n", meta.GroupID)
}

// Palette lists colors with their 1-based index.
func (pp *PrettyPrint) Palette(colors []string) {
	if len(colors) == 0 {
		pp.Items()
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("#"), "", bold.Sprint("Color"))
	for i, c := range colors {
		tbl.AddRow(i+1, pp.Swatch(c), c)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Overdue prints open todos left on past dates.
func (pp *PrettyPrint) Overdue(list []app.OverdueTodo) {
	pp.TitleWithCount("Overdue", len(list))
	var last datekey.DateKey
	for _, o := range list {
		if o.Date != last {
			_, _ = color.New(color.Faint).Fprintln(pp.out(), Heading(o.Date))
			last = o.Date
		}
		pp.Items(o.Item)
	}
}

// Legend prints what each glyph means.
func (pp *PrettyPrint) Legend(glyphs []glyph.Glyph) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Glyph"), bold.Sprint("Meaning"))
	for _, g := range glyphs {
		tbl.AddRow(g.Symbol, g.Meaning)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Heading formats a date as "Monday, March 2, 2026".
func Heading(d datekey.DateKey) string {
	return d.Time().Format("Monday, January 2, 2006")
}
