package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "complete <id>",
		Aliases: []string{"completed", "done", "toggle"},
		Short:   "Complete a todo, or reopen a completed one",
		Example: `
daybook complete <todo id>
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a todo id")
			}
			io.ID = strings.Join(args, " ")

			return nil
		},
		ValidArgsFunction: idCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			svc, err := openService(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			s := complete.Complete{
				ID:      io.ID,
				Service: svc,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
