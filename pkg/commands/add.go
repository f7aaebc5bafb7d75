package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add something",
		Example: `
daybook add todo water the plants
daybook add schedule --on 3/14 --time 9:30 dentist
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addItem(cmd, item.KindTodo, []string{"task", "t"}, `
daybook add todo water the plants
daybook add todo --from 2026-03-01 --to 2026-03-07 stretch
`)
	addItem(cmd, item.KindSchedule, []string{"event", "s"}, `
daybook add schedule --on tomorrow --time "9:30 ~ 10:00" standup
daybook add schedule --from 2026-03-02 --to 2026-03-06 -c 1 conference
`)

	topLevel.AddCommand(cmd)
}

func addItem(topLevel *cobra.Command, kind item.Kind, aliases []string, example string) {
	ao := &options.AddOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     string(kind) + " <text>",
		Aliases: aliases,
		Short:   "Add a " + string(kind),
		Example: example,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires the " + string(kind) + " text")
			}
			ao.Text = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			period, err := ao.Period()
			if err != nil {
				return err
			}
			var on datekey.DateKey
			if !period {
				if on, err = ao.On.GetOn(); err != nil {
					return err
				}
			}

			ctx := context.Background()
			svc, err := openService(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			s := add.Add{
				Kind:    kind,
				On:      on,
				Text:    ao.Text,
				From:    ao.From,
				To:      ao.To,
				Color:   ao.Color,
				Time:    ao.Time,
				Period:  period,
				ShowID:  io.ShowID,
				Service: svc,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddAddArgs(cmd, ao, kind == item.KindSchedule)
	options.AddShowIDArgs(cmd, io)
	_ = cmd.RegisterFlagCompletionFunc("color", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return paletteCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
