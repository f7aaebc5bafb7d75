package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/timeutil"
)

// WindowOptions
type WindowOptions struct {
	Window  string
	Overdue bool
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVarP(&o.Window, "window", "w", timeutil.DefaultWindow,
		`How far ahead to look, example: --window=2w3d.`)
	cmd.Flags().BoolVar(&o.Overdue, "overdue", false,
		"Also list open todos from past dates.")
}

// Days parses the window.
func (o *WindowOptions) Days() (int, error) {
	days, _, err := timeutil.ParseWindow(o.Window)
	return days, err
}
