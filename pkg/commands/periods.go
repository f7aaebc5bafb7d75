package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/periods"
)

func addPeriods(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "periods <id>",
		Aliases: []string{"period", "ranges"},
		Short:   "Show the date ranges an item repeats over",
		Example: `
daybook periods <item id>
daybook periods <item id> -o yaml
`,
		Args: func(_ *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(nil, args); err != nil {
				return err
			}
			io.ID = args[0]
			return nil
		},
		ValidArgsFunction: idCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			format, err := output.Format()
			if err != nil {
				return err
			}
			ctx := context.Background()
			svc, err := openService(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			s := periods.Periods{
				ID:      io.ID,
				Format:  format,
				Service: svc,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
