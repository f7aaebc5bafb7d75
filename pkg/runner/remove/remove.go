// Package remove deletes items under a deletion mode.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/journal"
	"tableflip.dev/daybook/pkg/snake"
)

type Remove struct {
	ID    string
	Mode  journal.Mode
	Range string
	// Prompt allows asking for a mode or range that was not given.
	Prompt bool

	Service *app.Service
	In      io.Reader
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no service")
	}
	in, out := n.In, n.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = color.Output
	}

	if n.Mode == "" {
		modes, err := n.Service.DeleteModes(n.ID)
		if err != nil {
			return err
		}
		if len(modes) > 1 {
			if !n.Prompt {
				return fmt.Errorf("%w: pass --mode single, group or range", app.ErrModeRequired)
			}
			if n.Mode, err = snake.SelectDeleteMode(in, out, modes); err != nil {
				return err
			}
		}
	}
	if n.Mode == journal.ModeRange && n.Range == "" {
		if !n.Prompt {
			return errors.New("--mode range needs --range START..END")
		}
		r, err := snake.PromptRange(in, out, "Range to delete")
		if err != nil {
			return err
		}
		n.Range = r.String()
	}

	rep, err := n.Service.Delete(ctx, n.ID, n.Mode, n.Range)
	if err != nil {
		return err
	}
	if rep.NoMatch || rep.Removed == 0 {
		_, _ = color.New(color.Faint).Fprintln(out, "nothing deleted")
		return nil
	}
	noun := "items"
	if rep.Removed == 1 {
		noun = "item"
	}
	_, _ = fmt.Fprintf(out, "deleted %d %s\n", rep.Removed, noun)
	return nil
}
