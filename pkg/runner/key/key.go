// Package key provides CLI helpers to display the glyph legend.
package key

import (
	"context"
	"fmt"
	"sort"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/glyph"
	"tableflip.dev/daybook/pkg/printers"
)

// Key prints a glyph legend.
type Key struct{}

// Do renders the legend to stdout.
func (k *Key) Do(_ context.Context) error {
	_, _ = fmt.Fprintln(color.Output, "")
	gl := glyph.DefaultGlyphs()
	sort.Sort(glyph.ByOrder(gl))
	pp := printers.PrettyPrint{}
	pp.Legend(gl)
	return nil
}
