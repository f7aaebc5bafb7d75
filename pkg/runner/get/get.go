package get

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/log"
	"tableflip.dev/daybook/pkg/printers"
)

type Get struct {
	On datekey.DateKey
	// Kind limits output to one kind; empty shows both.
	Kind   item.Kind
	Month  bool
	Follow bool
	ShowID bool
	Format printers.Format

	Service *app.Service
	Out     io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	if err := n.render(); err != nil {
		return err
	}
	if !n.Follow {
		return nil
	}

	events, err := n.Service.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := n.Service.Reload(ctx, ev.Slot); err != nil {
				log.Error("reload failed", err, "slot", ev.Slot)
				continue
			}
			_, _ = fmt.Fprintf(n.Out, "\n-- %s changed at %s --\n", ev.Slot, time.Now().Format("15:04:05"))
			if err := n.render(); err != nil {
				return err
			}
		}
	}
}

func (n *Get) render() error {
	schedules, todos, err := n.items()
	if err != nil {
		return err
	}
	if n.Format != "" && n.Format != printers.FormatText {
		return printers.Structured(n.Out, n.Format, printers.NewDayView(n.On, schedules, todos))
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out, Repeats: n.Service.Repeats}
	_, _ = fmt.Fprintln(n.Out, "")
	if n.Month {
		pp.Month(n.On.Time(), n.marked(), datekey.Today())
	}
	pp.Day(n.On, schedules, todos)
	return nil
}

func (n *Get) items() ([]item.Item, []item.Item, error) {
	var schedules, todos []item.Item
	var err error
	if n.Kind == "" || n.Kind == item.KindSchedule {
		if schedules, err = n.Service.Day(item.KindSchedule, n.On); err != nil {
			return nil, nil, err
		}
	}
	if n.Kind == "" || n.Kind == item.KindTodo {
		if todos, err = n.Service.Day(item.KindTodo, n.On); err != nil {
			return nil, nil, err
		}
	}
	return schedules, todos, nil
}

// marked collects the dates of the shown month holding items.
func (n *Get) marked() datekey.Set {
	out := make(datekey.Set)
	month := n.On.String()[:7]
	for _, k := range item.Kinds() {
		if n.Kind != "" && n.Kind != k {
			continue
		}
		j, err := n.Service.Journal(k)
		if err != nil {
			continue
		}
		for _, d := range j.Dates() {
			if d.String()[:7] == month {
				out.Add(d)
			}
		}
	}
	return out
}
