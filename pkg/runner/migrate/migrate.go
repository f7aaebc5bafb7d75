// Package migrate moves a one-date item to another date.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/printers"
)

type Migrate struct {
	ID string
	To datekey.DateKey

	Service *app.Service
	Out     io.Writer
}

func (n *Migrate) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not migrate, no service")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	it, _, err := n.Service.Locate(n.ID)
	if err != nil {
		return err
	}
	if _, err := n.Service.Migrate(ctx, n.ID, n.To.String()); err != nil {
		return err
	}
	items, err := n.Service.Day(it.Kind(), n.To)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, "")
	pp := printers.PrettyPrint{ShowID: true, Out: out, Repeats: n.Service.Repeats}
	pp.Title(printers.Heading(n.To))
	pp.Items(items...)
	return nil
}
