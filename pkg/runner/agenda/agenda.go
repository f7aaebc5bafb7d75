// Package agenda prints the coming days.
package agenda

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

type Agenda struct {
	From    datekey.DateKey
	Days    int
	Overdue bool
	ShowID  bool
	Format  printers.Format

	Service *app.Service
	Out     io.Writer
}

func (n *Agenda) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not list agenda, no service")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	a, err := n.Service.Agenda(n.From, n.Days)
	if err != nil {
		return err
	}
	var overdue []app.OverdueTodo
	if n.Overdue {
		overdue = n.Service.Overdue(n.From)
	}

	if n.Format != "" && n.Format != printers.FormatText {
		view := struct {
			Days    []printers.DayView  `json:"days" yaml:"days"`
			Overdue []printers.ItemView `json:"overdue,omitempty" yaml:"overdue,omitempty"`
		}{Days: printers.NewAgendaView(a)}
		for _, o := range overdue {
			view.Overdue = append(view.Overdue, printers.NewItemView(o.Date, o.Item))
		}
		return printers.Structured(out, n.Format, view)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out, Repeats: n.Service.Repeats}
	_, _ = fmt.Fprintln(out, "")
	if n.Overdue && len(overdue) > 0 {
		pp.Overdue(overdue)
	}
	pp.Agenda(a)
	return nil
}
