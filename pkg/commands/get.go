package commands

import (
	"context"
	"fmt"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	var (
		month  bool
		follow bool
		kind   item.Kind
	)

	cmd := &cobra.Command{
		Use:   "get [todos|schedules]",
		Short: "Show the items of a day",
		Long: base.Wrap80("Show the schedules and todos of one day, or only one kind of them. " +
			"With --month a calendar of the month is printed first, marking the days that have items."),
		Example: `
daybook get
daybook get todos --on tomorrow
daybook get --on 2026-03-14 --month
daybook get -o yaml
`,
		ValidArgs: []string{"todos", "schedules"},
		Args: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				return nil
			case 1:
				k, err := item.ParseKind(args[0])
				if err != nil {
					return err
				}
				kind = k
				return nil
			default:
				return fmt.Errorf("expected at most one kind, got %d arguments", len(args))
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			day, err := on.GetOn()
			if err != nil {
				return err
			}
			format, err := output.Format()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			svc, err := openService(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			s := get.Get{
				On:      day,
				Kind:    kind,
				Month:   month,
				Follow:  follow,
				ShowID:  io.ShowID,
				Format:  format,
				Service: svc,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVarP(&month, "month", "M", false,
		"Print the month calendar above the day.")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false,
		"Keep running and redraw when the journal changes.")

	topLevel.AddCommand(cmd)
}
