package options

import (
	"github.com/spf13/cobra"
)

// DeleteOptions
type DeleteOptions struct {
	Mode  string
	Range string
}

func AddDeleteArgs(cmd *cobra.Command, o *DeleteOptions) {
	cmd.Flags().StringVarP(&o.Mode, "mode", "m", "",
		`What to delete: single, group or range. Asked for when the item repeats.`)
	cmd.Flags().StringVarP(&o.Range, "range", "r", "",
		`Range for --mode=range, example: --range=2026-03-01..2026-03-05.`)
}
