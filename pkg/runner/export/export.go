// Package export writes the journals as an iCalendar file.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	ics "tableflip.dev/daybook/pkg/export"
	"tableflip.dev/daybook/pkg/item"
)

type Export struct {
	// Path is the output file; empty writes to Out.
	Path  string
	Todos bool

	Service *app.Service
	Out     io.Writer
}

func (n *Export) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}
	schedules, err := n.Service.Journal(item.KindSchedule)
	if err != nil {
		return err
	}
	todos, err := n.Service.Journal(item.KindTodo)
	if err != nil {
		return err
	}

	w := n.Out
	if w == nil {
		w = os.Stdout
	}
	if n.Path != "" {
		f, err := os.Create(n.Path)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := ics.Write(w, schedules.Snapshot(), todos.Snapshot(), ics.Options{Todos: n.Todos}); err != nil {
		return err
	}
	if n.Path != "" {
		_, _ = fmt.Fprintf(color.Output, "wrote %s\n", n.Path)
	}
	return nil
}
