package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/datekey"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a calendar grid of the month holding then. Dates in marked
// are bold and today is underlined. Holidays and Sundays are red, Saturdays
// blue, and the month's holidays are listed under the grid.
func (pp *PrettyPrint) Month(then time.Time, marked datekey.Set, today datekey.DateKey) {
	w := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)
	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))
	_, _ = color.New(color.Faint).Fprintln(w, "Su Mo Tu We Th Fr Sa")

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(w, "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	first := datekey.Of(time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, time.UTC))
	for i := 0; i < DaysIn(then); i++ {
		day := first.AddDays(i)
		printer := l1
		if marked.Has(day) {
			printer = l2
		}
		switch kindOf(day) {
		case holiday, sunday:
			printer = color.New(color.FgRed)
			if marked.Has(day) {
				printer.Add(color.Bold)
			}
		case saturday:
			printer = color.New(color.FgBlue)
			if marked.Has(day) {
				printer.Add(color.Bold)
			}
		}
		if day == today {
			printer = color.New(color.Bold, color.Underline)
		}
		_, _ = printer.Fprintf(w, "%2d", i+1)
		_, _ = fmt.Fprint(w, " ")

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n")

	red := color.New(color.FgRed, color.Faint)
	for i := 0; i < DaysIn(then); i++ {
		day := first.AddDays(i)
		if name, ok := Holidays[day]; ok {
			_, _ = red.Fprintf(w, "%2d %s\n", i+1, name)
		}
	}
	_, _ = fmt.Fprint(w, "\n")
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
