package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/reshape"
)

func addReshape(topLevel *cobra.Command) {
	ro := &options.ReshapeOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "reshape <id>",
		Aliases: []string{"edit", "move"},
		Short:   "Move a repeating item onto new date ranges",
		Long: base.Wrap80("Replace the dates an item and the rest of its group occupy with the given ranges. " +
			"Dates that stay keep their item, completion included. Dropped dates lose theirs and new dates get a fresh copy. " +
			"Ranges that do not parse are skipped with a warning."),
		Example: `
daybook reshape <id> -r 2026-03-02..2026-03-06
daybook reshape <id> -r 2026-03-02..2026-03-04 -r 2026-03-09..2026-03-11 -c 2
daybook reshape <id> -r 2026-03-05 --time 14:00
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
			if len(ro.Ranges) == 0 {
				return errors.New("requires at least one --range")
			}
			ctx := context.Background()
			svc, err := openService(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			s := reshape.Reshape{
				ID:      io.ID,
				Ranges:  ro.Ranges,
				Service: svc,
			}
			if cmd.Flags().Changed("color") {
				s.Color = &ro.Color
			}
			if cmd.Flags().Changed("time") {
				s.Time = &ro.Time
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddReshapeArgs(cmd, ro)
	_ = cmd.RegisterFlagCompletionFunc("color", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return paletteCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
