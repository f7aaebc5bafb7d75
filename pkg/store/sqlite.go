package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteFile is the database file name inside the base path.
const SQLiteFile = "daybook.sqlite"

const schema = `CREATE TABLE IF NOT EXISTS slots (
	name TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);`

var pollInterval = 500 * time.Millisecond

type sqlitePersistence struct {
	db *sql.DB
}

func openSQLite(basePath string) (Persistence, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(basePath, SQLiteFile))
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migrate sqlite: %w", err)
	}
	return &sqlitePersistence{db: db}, nil
}

func (p *sqlitePersistence) Load(ctx context.Context, slot Slot) ([]byte, error) {
	if !slot.valid() {
		return nil, fmt.Errorf("store: unknown slot %q", slot)
	}
	var data []byte
	err := p.db.QueryRowContext(ctx, `SELECT data FROM slots WHERE name = ?`, string(slot)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", slot, err)
	}
	return data, nil
}

func (p *sqlitePersistence) Save(slot Slot, data []byte) error {
	if !slot.valid() {
		return fmt.Errorf("store: unknown slot %q", slot)
	}
	if data == nil {
		data = []byte{}
	}
	return WithTx(context.Background(), p.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO slots (name, data, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
			string(slot), data, time.Now().UnixNano())
		if err != nil {
			return fmt.Errorf("store: write %s: %w", slot, err)
		}
		return nil
	})
}

// Watch polls slot timestamps, so writes from other processes are seen too.
func (p *sqlitePersistence) Watch(ctx context.Context) (<-chan Event, error) {
	seen, err := p.versions(ctx)
	if err != nil {
		return nil, err
	}
	events := make(chan Event, 16)
	go func() {
		defer close(events)
		send := nonBlockingSend(events)
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				current, err := p.versions(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					continue
				}
				for _, slot := range Slots() {
					if current[slot] != seen[slot] {
						send(Event{Slot: slot})
					}
				}
				seen = current
			}
		}
	}()
	return events, nil
}

func (p *sqlitePersistence) versions(ctx context.Context) (map[Slot]int64, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT name, updated_at FROM slots`)
	if err != nil {
		return nil, fmt.Errorf("store: poll slots: %w", err)
	}
	defer rows.Close()

	out := make(map[Slot]int64)
	for rows.Next() {
		var (
			name string
			at   int64
		)
		if err := rows.Scan(&name, &at); err != nil {
			return nil, fmt.Errorf("store: scan slot: %w", err)
		}
		out[Slot(name)] = at
	}
	return out, rows.Err()
}

func (p *sqlitePersistence) Close() error {
	return p.db.Close()
}
