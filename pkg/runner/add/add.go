package add

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/journal"
	"tableflip.dev/daybook/pkg/printers"
)

type Add struct {
	Kind  item.Kind
	Text  string
	On    datekey.DateKey
	From  string
	To    string
	Color string
	Time  string
	// Period adds From..To instead of On.
	Period bool
	ShowID bool

	Service *app.Service
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	hex, err := n.Service.ResolveColor(n.Color)
	if err != nil {
		return err
	}
	draft := journal.Draft{Text: n.Text, Fields: item.Fields{Color: hex, Time: n.Time}}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out, Repeats: n.Service.Repeats}
	if !n.Period {
		if _, err := n.Service.Add(ctx, n.Kind, n.On.String(), draft); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, "")
		return n.printDay(pp, n.On)
	}

	_, created, err := n.Service.AddPeriod(ctx, n.Kind, n.From, n.To, draft)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, "")
	p, err := n.Service.Periods(created[0].Meta().ID)
	if err != nil {
		return err
	}
	pp.Period(p)
	return nil
}

func (n *Add) printDay(pp printers.PrettyPrint, on datekey.DateKey) error {
	items, err := n.Service.Day(n.Kind, on)
	if err != nil {
		return err
	}
	pp.Title(printers.Heading(on))
	pp.Items(items...)
	return nil
}
