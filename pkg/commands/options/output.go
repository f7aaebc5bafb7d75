package options

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/printers"
)

// OutputOptions extends the shared --json flag with -o for yaml.
type OutputOptions struct {
	base.OutputOptions
	Output string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	base.AddOutputArg(cmd, &po.OutputOptions)
	cmd.Flags().StringVarP(&po.Output, "output", "o", "",
		"Output format. One of 'text', 'json' or 'yaml'.")
}

// Format resolves --json and --output into one format.
func (o *OutputOptions) Format() (printers.Format, error) {
	if o.JSON {
		return printers.FormatJSON, nil
	}
	return printers.ParseFormat(o.Output)
}

// Structured reports whether output is machine readable.
func (o *OutputOptions) Structured() bool {
	f, err := o.Format()
	return err == nil && f != printers.FormatText
}
