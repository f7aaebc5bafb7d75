package commands

import (
	"context"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/item"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(daybook completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(daybook completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// idCompletions offers item ids for commands that take one as their first
// argument.
func idCompletions(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	svc, err := openService(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer svc.Close()

	var ids []string
	for _, k := range item.Kinds() {
		j, err := svc.Journal(k)
		if err != nil {
			continue
		}
		for _, list := range j.Snapshot() {
			for _, it := range list {
				meta := it.Meta()
				if strings.HasPrefix(meta.ID, toComplete) {
					ids = append(ids, meta.ID+"\t"+meta.Text)
				}
			}
		}
	}
	sort.Strings(ids)
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func paletteCompletions(toComplete string) []string {
	svc, err := openService(context.Background())
	if err != nil {
		return nil
	}
	defer svc.Close()

	var cs []string
	for i, c := range svc.Palette() {
		if n := strconv.Itoa(i + 1); strings.HasPrefix(n, toComplete) {
			cs = append(cs, n+"\t"+c)
		}
		if strings.HasPrefix(c, toComplete) {
			cs = append(cs, c)
		}
	}
	return cs
}
