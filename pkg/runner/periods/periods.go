// Package periods prints where an item's group occurs.
package periods

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
)

type Periods struct {
	ID     string
	Format printers.Format

	Service *app.Service
	Out     io.Writer
}

func (n *Periods) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not list periods, no service")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	p, err := n.Service.Periods(n.ID)
	if err != nil {
		return err
	}
	if n.Format != "" && n.Format != printers.FormatText {
		return printers.Structured(out, n.Format, printers.NewPeriodView(p))
	}
	_, _ = fmt.Fprintln(out, "")
	pp := printers.PrettyPrint{Out: out}
	pp.Period(p)
	return nil
}
