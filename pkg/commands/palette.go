package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/palette"
)

func addPalette(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "palette",
		Aliases: []string{"colors"},
		Short:   "Show the saved colors",
		Example: `
daybook palette
daybook palette add "#4287f5"
daybook palette rm 2
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPalette(cmd, palette.Palette{})
		},
	}
	options.AddOutputArg(cmd, output)

	add := &cobra.Command{
		Use:   "add <hex>",
		Short: "Save a color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPalette(cmd, palette.Palette{Add: args[0]})
		},
	}
	rm := &cobra.Command{
		Use:     "rm <hex|index>",
		Aliases: []string{"remove", "delete"},
		Short:   "Forget a color",
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return paletteCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPalette(cmd, palette.Palette{Remove: args[0]})
		},
	}
	cmd.AddCommand(add, rm)

	topLevel.AddCommand(cmd)
}

func runPalette(cmd *cobra.Command, s palette.Palette) error {
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

	s.Format = format
	s.Service = svc
	err = s.Do(ctx)
	return output.HandleError(err)
}

func addBulk(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "bulk [on|off]",
		Short: "Show or set whether the last add was a period",
		Example: `
daybook bulk
daybook bulk on
`,
		ValidArgs: []string{"on", "off"},
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s := palette.Bulk{}
			if len(args) == 1 {
				var on bool
				switch args[0] {
				case "on", "true", "yes":
					on = true
				case "off", "false", "no":
				default:
					return errors.New(`expected "on" or "off"`)
				}
				s.Set = &on
			}

			ctx := context.Background()
			svc, err := openService(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			s.Service = svc
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
