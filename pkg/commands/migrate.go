package commands

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/migrate"
)

func addMigrate(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var to string

	cmd := &cobra.Command{
		Use:     "migrate <id> [date]",
		Aliases: []string{"mv"},
		Short:   "Move an open todo to another day",
		Example: `
daybook migrate <todo id>
daybook migrate <todo id> 3/14
`,
		Args: func(_ *cobra.Command, args []string) error {
			switch len(args) {
			case 1:
				to = "tomorrow"
			case 2:
				to = args[1]
			default:
				return errors.New("requires a todo id and an optional date")
			}
			io.ID = args[0]
			return nil
		},
		ValidArgsFunction: idCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			day, err := options.ParseDay(to, time.Now())
			if err != nil {
				return err
			}
			ctx := context.Background()
			svc, err := openService(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			s := migrate.Migrate{
				ID:      io.ID,
				To:      day,
				Service: svc,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
