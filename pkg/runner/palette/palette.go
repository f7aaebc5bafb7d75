// Package palette manages saved colors and the bulk add preference.
package palette

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
)

type Palette struct {
	Add    string
	Remove string
	Format printers.Format

	Service *app.Service
	Out     io.Writer
}

func (n *Palette) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit palette, no service")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.Add != "" {
		if _, err := n.Service.AddColor(ctx, n.Add); err != nil {
			return err
		}
	}
	if n.Remove != "" {
		if _, err := n.Service.RemoveColor(ctx, n.Remove); err != nil {
			return err
		}
	}

	colors := n.Service.Palette()
	if n.Format != "" && n.Format != printers.FormatText {
		return printers.Structured(out, n.Format, colors)
	}
	_, _ = fmt.Fprintln(out, "")
	pp := printers.PrettyPrint{Out: out}
	pp.Palette(colors)
	return nil
}

// Bulk shows or sets whether adds default to periods.
type Bulk struct {
	// Set is nil to only show the current value.
	Set *bool

	Service *app.Service
	Out     io.Writer
}

func (n *Bulk) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not read bulk mode, no service")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.Set != nil {
		if err := n.Service.SetBulkMode(ctx, *n.Set); err != nil {
			return err
		}
	}
	state := "off"
	if n.Service.BulkMode() {
		state = "on"
	}
	_, _ = fmt.Fprintf(out, "bulk mode %s\n", state)
	return nil
}
