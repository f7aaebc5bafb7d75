package item

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// NormalizeColor validates a hex color and returns it as lowercase #rrggbb.
// The empty string means the default presentation and is returned as is.
func NormalizeColor(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", nil
	}
	if !strings.HasPrefix(trimmed, "#") {
		trimmed = "#" + trimmed
	}
	if len(trimmed) == 4 {
		// #rgb shorthand
		trimmed = "#" + strings.Repeat(trimmed[1:2], 2) + strings.Repeat(trimmed[2:3], 2) + strings.Repeat(trimmed[3:4], 2)
	}
	c, err := colorful.Hex(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c.Hex(), nil
}
