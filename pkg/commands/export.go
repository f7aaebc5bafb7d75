package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	var todos bool

	cmd := &cobra.Command{
		Use:   "export [file.ics]",
		Short: "Write schedules as an iCalendar file",
		Example: `
daybook export > daybook.ics
daybook export --todos ~/calendar/daybook.ics
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			svc, err := openService(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			s := export.Export{
				Todos:   todos,
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				s.Path = args[0]
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&todos, "todos", false, "Include todos as all-day events.")

	topLevel.AddCommand(cmd)
}
