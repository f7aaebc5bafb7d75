package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/datekey"
)

const (
	layoutShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "today",
		`Specify a date, example: --on="2026-02-28", --on="2/28" or --on=tomorrow.`)
}

// GetOn resolves the flag against today's date.
func (o *OnOptions) GetOn() (datekey.DateKey, error) {
	return ParseDay(o.OnString, time.Now())
}

// ParseDay accepts YYYY-MM-DD, M/D, today, tomorrow and yesterday.
func ParseDay(s string, now time.Time) (datekey.DateKey, error) {
	today := datekey.Of(now)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.Next(), nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	if d, err := datekey.Parse(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(layoutShort, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD or M/D", s)
	}
	d := datekey.Of(time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	if d.Before(today) {
		// I am gonna assume if you said 1/3 on 12/5, you meant next year, not 11 months ago.
		d = datekey.Of(time.Date(now.Year()+1, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	}
	return d, nil
}
