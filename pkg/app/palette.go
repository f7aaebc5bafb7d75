package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/daybook/pkg/item"
	"tableflip.dev/daybook/pkg/journal"
	"tableflip.dev/daybook/pkg/log"
	"tableflip.dev/daybook/pkg/store"
)

// Palette returns the saved colors in insertion order.
func (s *Service) Palette() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.palette...)
}

// AddColor appends a color to the palette. Adding a known color is a no-op.
func (s *Service) AddColor(ctx context.Context, color string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	hex, err := item.NormalizeColor(color)
	if err != nil {
		return "", journal.Invalid("color", color, err)
	}
	if hex == "" {
		return "", journal.Invalid("color", color, errors.New("color is required"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.palette {
		if c == hex {
			return hex, nil
		}
	}
	s.palette = append(s.palette, hex)
	log.Debug("added color", "color", hex)
	return hex, s.saveJSON(store.SlotPalette, s.palette)
}

// RemoveColor drops a palette color given as hex or 1-based index.
func (s *Service) RemoveColor(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.paletteIndex(ref)
	if err != nil {
		return "", err
	}
	removed := s.palette[idx]
	s.palette = append(s.palette[:idx:idx], s.palette[idx+1:]...)
	log.Debug("removed color", "color", removed)
	return removed, s.saveJSON(store.SlotPalette, s.palette)
}

// ResolveColor turns user input into a stored color: empty stays empty, a
// number picks from the palette, anything else must be a hex color.
func (s *Service) ResolveColor(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}
	if _, err := strconv.Atoi(ref); err == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		idx, err := s.paletteIndex(ref)
		if err != nil {
			return "", err
		}
		return s.palette[idx], nil
	}
	hex, err := item.NormalizeColor(ref)
	if err != nil {
		return "", journal.Invalid("color", ref, err)
	}
	return hex, nil
}

// paletteIndex resolves a 1-based index or hex color. Callers hold s.mu.
func (s *Service) paletteIndex(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(s.palette) {
			return 0, journal.Invalid("color", ref, fmt.Errorf("palette has %d colors", len(s.palette)))
		}
		return n - 1, nil
	}
	hex, err := item.NormalizeColor(ref)
	if err != nil {
		return 0, journal.Invalid("color", ref, err)
	}
	for i, c := range s.palette {
		if c == hex {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: color %s is not in the palette", journal.ErrNotFound, hex)
}

// BulkMode reports whether the last add created a period.
func (s *Service) BulkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bulk
}

// SetBulkMode records the preferred add mode.
func (s *Service) SetBulkMode(ctx context.Context, on bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bulk = on
	return s.saveJSON(store.SlotBulkMode, on)
}

// normalizePalette drops invalid and repeated colors.
func normalizePalette(colors []string) []string {
	out := make([]string, 0, len(colors))
	seen := make(map[string]bool, len(colors))
	for _, c := range colors {
		hex, err := item.NormalizeColor(c)
		if err != nil || hex == "" {
			log.Debug("ignoring palette color", "color", c)
			continue
		}
		if seen[hex] {
			continue
		}
		seen[hex] = true
		out = append(out, hex)
	}
	return out
}
