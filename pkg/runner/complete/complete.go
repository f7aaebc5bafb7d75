// Package complete provides the runner logic for toggling todos.
package complete

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/printers"
)

// Complete flips a todo between open and completed.
type Complete struct {
	ID      string
	Service *app.Service
	Out     io.Writer
}

// Do toggles the configured todo and prints its date.
func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no service")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	if _, err := n.Service.Toggle(ctx, n.ID); err != nil {
		return err
	}
	_, on, err := n.Service.Locate(n.ID)
	if err != nil {
		return err
	}
	todos, err := n.Service.Day(item.KindTodo, on)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true, Out: out, Repeats: n.Service.Repeats}
	_, _ = fmt.Fprintln(out, "")
	pp.Title(printers.Heading(on))
	pp.Items(todos...)
	return nil
}
