package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SnapshotRepo stores and retrieves whole-world snapshot documents.
type SnapshotRepo struct {
	db *DB
}

func NewSnapshotRepo(db *DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Save writes one snapshot row.
func (r *SnapshotRepo) Save(ctx context.Context, doc *SnapshotDoc) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if _, err := r.db.Pool.Exec(ctx,
		`INSERT INTO snapshots (tick, doc) VALUES ($1, $2)`,
		int64(doc.Tick), raw,
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// LoadLatest returns the most recent snapshot, or ok=false when none exists
// yet (fresh database).
func (r *SnapshotRepo) LoadLatest(ctx context.Context) (*SnapshotDoc, bool, error) {
	var raw []byte
	err := r.db.Pool.QueryRow(ctx,
		`SELECT doc FROM snapshots ORDER BY tick DESC, id DESC LIMIT 1`,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}

	var doc SnapshotDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &doc, true, nil
}

// Prune keeps the newest keep snapshots and deletes the rest.
func (r *SnapshotRepo) Prune(ctx context.Context, keep int) error {
	if keep < 1 {
		keep = 1
	}
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM snapshots
		 WHERE id NOT IN (SELECT id FROM snapshots ORDER BY tick DESC, id DESC LIMIT $1)`,
		keep,
	)
	return err
}
