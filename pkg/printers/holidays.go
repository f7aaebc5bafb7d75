package printers

import (
	"time"

	"tableflip.dev/daybook/pkg/datekey"
)

// Holidays are the public holidays shaded in the month grid.
var Holidays = map[datekey.DateKey]string{
	"2026-01-01": "New Year's Day",
	"2026-02-16": "Seollal",
	"2026-02-17": "Seollal",
	"2026-02-18": "Seollal",
	"2026-03-01": "Independence Movement Day",
	"2026-03-02": "Substitute Holiday",
	"2026-05-05": "Children's Day",
	"2026-05-24": "Buddha's Birthday",
	"2026-05-25": "Substitute Holiday",
	"2026-06-06": "Memorial Day",
	"2026-08-15": "Liberation Day",
	"2026-08-17": "Substitute Holiday",
	"2026-09-24": "Chuseok",
	"2026-09-25": "Chuseok",
	"2026-09-26": "Chuseok",
	"2026-10-03": "National Foundation Day",
	"2026-10-05": "Substitute Holiday",
	"2026-10-09": "Hangul Day",
	"2026-12-25": "Christmas Day",
}

type dayKind int

const (
	weekday dayKind = iota
	saturday
	sunday
	holiday
)

// kindOf ranks holidays above weekends.
func kindOf(d datekey.DateKey) dayKind {
	if _, ok := Holidays[d]; ok {
		return holiday
	}
	switch d.Time().Weekday() {
	case time.Sunday:
		return sunday
	case time.Saturday:
		return saturday
	}
	return weekday
}
