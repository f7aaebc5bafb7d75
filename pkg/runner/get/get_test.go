package get

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/journal"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

func TestGetJSON(t *testing.T) {
	ctx := context.Background()
	p, err := store.Load(store.NewConfig(t.TempDir(), store.BackendSQLite))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	defer p.Close()
	svc, err := app.Open(ctx, p)
	if err != nil {
		t.Fatalf("open service: %v", err)
	}
	if _, err := svc.Add(ctx, item.KindSchedule, "2026-03-02", journal.Draft{Text: "late", Fields: item.Fields{Time: "17:00"}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, item.KindSchedule, "2026-03-02", journal.Draft{Text: "early", Fields: item.Fields{Time: "08:00"}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, item.KindTodo, "2026-03-02", journal.Draft{Text: "email"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	var out bytes.Buffer
	g := Get{On: "2026-03-02", Format: printers.FormatJSON, Service: svc, Out: &out}
	if err := g.Do(ctx); err != nil {
		t.Fatalf("get: %v", err)
	}
	var view printers.DayView
	if err := json.Unmarshal(out.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if len(view.Schedules) != 2 || view.Schedules[0].Text != "early" || len(view.Todos) != 1 {
		t.Fatalf("unexpected view %+v", view)
	}

	out.Reset()
	g = Get{On: "2026-03-02", Kind: item.KindTodo, Format: printers.FormatJSON, Service: svc, Out: &out}
	if err := g.Do(ctx); err != nil {
		t.Fatalf("get todos: %v", err)
	}
	view = printers.DayView{}
	if err := json.Unmarshal(out.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Schedules) != 0 || len(view.Todos) != 1 {
		t.Fatalf("expected only todos, got %+v", view)
	}
}
