package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/journal"
	"tableflip.dev/daybook/pkg/runner/remove"
	"tableflip.dev/daybook/pkg/snake"
)

func addDelete(topLevel *cobra.Command) {
	do := &options.DeleteOptions{}
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm", "remove"},
		Short:   "Delete an item, its group, or part of its group",
		Example: `
daybook delete <id>
daybook delete <id> --mode group
daybook delete <id> --mode range --range 2026-03-04..2026-03-06
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
			var mode journal.Mode
			if strings.TrimSpace(do.Mode) != "" {
				m, err := journal.ParseMode(do.Mode)
				if err != nil {
					return err
				}
				mode = m
			}

			ctx := context.Background()
			svc, err := openService(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			s := remove.Remove{
				ID:      io.ID,
				Mode:    mode,
				Range:   do.Range,
				Prompt:  i.Interactive || snake.Interactive(),
				Service: svc,
				In:      os.Stdin,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddDeleteArgs(cmd, do)
	options.InteractiveArgs(cmd, i)
	_ = cmd.RegisterFlagCompletionFunc("mode", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		modes := journal.Modes()
		out := make([]string, 0, len(modes))
		for _, m := range modes {
			out = append(out, string(m))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
