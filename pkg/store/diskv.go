package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

const tempDirName = ".tmp"

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func openDiskv(basePath string) (Persistence, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		TempDir:      filepath.Join(basePath, tempDirName),
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

func (p *persistence) Load(ctx context.Context, slot Slot) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !slot.valid() {
		return nil, fmt.Errorf("store: unknown slot %q", slot)
	}
	if !p.d.Has(string(slot)) {
		return nil, nil
	}
	// Bypass the cache: another process may have rewritten the slot.
	rc, err := p.d.ReadStream(string(slot), true)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", slot, err)
	}
	defer rc.Close()
	val, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", slot, err)
	}
	return val, nil
}

func (p *persistence) Save(slot Slot, data []byte) error {
	if !slot.valid() {
		return fmt.Errorf("store: unknown slot %q", slot)
	}
	if err := p.d.Write(string(slot), data); err != nil {
		return fmt.Errorf("store: write %s: %w", slot, err)
	}
	return nil
}

func (p *persistence) Close() error {
	return nil
}

// slotForPath maps a file under the base path back to its slot.
func (p *persistence) slotForPath(path string) (Slot, bool) {
	if filepath.Dir(filepath.Clean(path)) != filepath.Clean(p.basePath) {
		return "", false
	}
	s := Slot(filepath.Base(path))
	return s, s.primary()
}
