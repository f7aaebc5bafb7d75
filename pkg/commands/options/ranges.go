package options

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RangeList collects repeated --range flags. Values are kept verbatim so
// that a bad one can be skipped without losing the rest.
type RangeList []string

var _ pflag.Value = (*RangeList)(nil)

func (r *RangeList) String() string {
	return strings.Join(*r, ",")
}

// Set accepts one range, or several separated by commas.
func (r *RangeList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*r = append(*r, part)
		}
	}
	return nil
}

func (r *RangeList) Type() string {
	return "range"
}

// ReshapeOptions
type ReshapeOptions struct {
	Ranges RangeList
	Color  string
	Time   string
}

func AddReshapeArgs(cmd *cobra.Command, o *ReshapeOptions) {
	cmd.Flags().VarP(&o.Ranges, "range", "r",
		`Date range START..END or a single date. Repeat for several ranges.`)
	cmd.Flags().StringVarP(&o.Color, "color", "c", "",
		`New hex color or 1-based palette index.`)
	cmd.Flags().StringVarP(&o.Time, "time", "t", "",
		`New time for schedules; "" clears it.`)
}
