package commands

import (
	"context"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/log"
	"tableflip.dev/daybook/pkg/store"
)

// openService loads the configured store and opens the journals on it.
func openService(ctx context.Context) (*app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log.SetLevel(log.ParseLevel(cfg.LogLevel()))

	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	return app.Open(ctx, p, app.WithSeedPalette(cfg.Palette()))
}
