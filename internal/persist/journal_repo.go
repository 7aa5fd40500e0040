package persist

import (
	"context"
	"fmt"
)

// JournalEntry is one durable simulation event: worker unassignments,
// starvation alerts, visitor departures. The journal is an audit trail,
// not a replay log.
type JournalEntry struct {
	Tick    uint64
	Kind    string
	Payload []byte // JSON
}

type JournalRepo struct {
	db *DB
}

func NewJournalRepo(db *DB) *JournalRepo {
	return &JournalRepo{db: db}
}

// Append atomically writes a batch of journal entries in a single
// transaction. Returns nil on success; on failure the caller keeps the
// batch buffered and retries at the next flush.
func (r *JournalRepo) Append(ctx context.Context, entries []JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		payload := e.Payload
		if len(payload) == 0 {
			payload = []byte("{}")
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO event_journal (tick, kind, payload) VALUES ($1, $2, $3)`,
			int64(e.Tick), e.Kind, payload,
		); err != nil {
			return fmt.Errorf("journal insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// MarkProcessed flags every pending entry at or below tick as processed.
// Called after a snapshot lands: the snapshot supersedes those entries for
// recovery, leaving them in place purely as history.
func (r *JournalRepo) MarkProcessed(ctx context.Context, upToTick uint64) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE event_journal SET processed = TRUE WHERE processed = FALSE AND tick <= $1`,
		int64(upToTick),
	)
	return err
}
