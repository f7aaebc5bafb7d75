// Package reshape moves an item's group onto new date ranges.
package reshape

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
)

type Reshape struct {
	ID     string
	Ranges []string
	// Color and Time are nil when unchanged.
	Color *string
	Time  *string

	Service *app.Service
	Out     io.Writer
}

func (n *Reshape) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not reshape, no service")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	it, _, err := n.Service.Locate(n.ID)
	if err != nil {
		return err
	}
	opts := app.ReshapeOptions{Ranges: n.Ranges, Time: n.Time}
	if n.Color != nil {
		hex, err := n.Service.ResolveColor(*n.Color)
		if err != nil {
			return err
		}
		opts.Color = &hex
	}

	rep, err := n.Service.Reshape(ctx, n.ID, opts)
	warn := color.New(color.FgRed)
	for _, skip := range rep.Skipped {
		_, _ = warn.Fprintf(out, "skipped: %v\n", skip)
	}
	if err != nil {
		return err
	}
	if rep.NoMatch {
		return fmt.Errorf("item %s no longer occurs on any date", n.ID)
	}

	_, _ = color.New(color.Faint).Fprintf(out, "\n+%d -%d ~%d\n", rep.Added, rep.Removed, rep.Updated)
	p, err := n.Service.GroupPeriod(it.Kind(), rep.GroupID)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Period(p)
	return nil
}
