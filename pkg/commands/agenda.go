package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/agenda"
)

func addAgenda(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	wo := &options.WindowOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "agenda",
		Aliases: []string{"upcoming"},
		Short:   "Show the coming days",
		Example: `
daybook agenda
daybook agenda --window 2w --overdue
daybook agenda --on 3/1 -w 1m --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			from, err := on.GetOn()
			if err != nil {
				return err
			}
			days, err := wo.Days()
			if err != nil {
				return err
			}
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

			s := agenda.Agenda{
				From:    from,
				Days:    days,
				Overdue: wo.Overdue,
				ShowID:  io.ShowID,
				Format:  format,
				Service: svc,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddWindowArgs(cmd, wo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
