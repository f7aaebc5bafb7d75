package options

import (
	"errors"

	"github.com/spf13/cobra"
)

// AddOptions
type AddOptions struct {
	Text  string
	On    OnOptions
	From  string
	To    string
	Color string
	Time  string
}

func AddAddArgs(cmd *cobra.Command, o *AddOptions, schedule bool) {
	AddOnArgs(cmd, &o.On)
	cmd.Flags().StringVar(&o.From, "from", "",
		`First date of a period, example: --from=2026-03-01. Needs --to.`)
	cmd.Flags().StringVar(&o.To, "to", "",
		`Last date of a period, example: --to=2026-03-05. Needs --from.`)
	cmd.Flags().StringVarP(&o.Color, "color", "c", "",
		`Hex color or 1-based palette index.`)
	if schedule {
		cmd.Flags().StringVarP(&o.Time, "time", "t", "",
			`Time of day, example: --time=9:30 or --time="18:00 ~ 19:30".`)
	}
}

// Period reports whether a from/to period was requested.
func (o *AddOptions) Period() (bool, error) {
	switch {
	case o.From == "" && o.To == "":
		return false, nil
	case o.From == "" || o.To == "":
		return false, errors.New("--from and --to must be given together")
	default:
		return true, nil
	}
}
