package persist

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/emberhollow/settlement/internal/world"
)

// keepSnapshots bounds the snapshot table; older rows are pruned after
// every successful save.
const keepSnapshots = 5

// Saver ties the repositories to the live world: it buffers journal
// entries between flushes and writes snapshot + journal together on
// autosave. Single-goroutine use from the game loop.
type Saver struct {
	state   *world.State
	snaps   *SnapshotRepo
	journal *JournalRepo
	log     *zap.Logger

	pending []JournalEntry
}

func NewSaver(state *world.State, db *DB, log *zap.Logger) *Saver {
	return &Saver{
		state:   state,
		snaps:   NewSnapshotRepo(db),
		journal: NewJournalRepo(db),
		log:     log,
	}
}

// Record buffers one journal entry for the next flush. Marshal failures are
// logged and dropped; the journal is an audit trail, never load-bearing.
func (s *Saver) Record(tick uint64, kind string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.log.Warn("journal payload marshal failed", zap.String("kind", kind), zap.Error(err))
		raw = nil
	}
	s.pending = append(s.pending, JournalEntry{Tick: tick, Kind: kind, Payload: raw})
}

// Autosave writes the current world snapshot, prunes old ones, and flushes
// the buffered journal. The journal buffer survives a failed flush and is
// retried on the next call.
func (s *Saver) Autosave(ctx context.Context, tick uint64, throttleCounter int) error {
	doc := BuildSnapshot(s.state, tick, throttleCounter)
	if err := s.snaps.Save(ctx, doc); err != nil {
		return err
	}
	if err := s.snaps.Prune(ctx, keepSnapshots); err != nil {
		s.log.Warn("snapshot prune failed", zap.Error(err))
	}
	if err := s.journal.Append(ctx, s.pending); err != nil {
		s.log.Warn("journal flush failed", zap.Error(err), zap.Int("entries", len(s.pending)))
		return nil // snapshot landed; keep the buffer for next time
	}
	s.pending = s.pending[:0]
	// Entries up to the snapshot tick are now superseded for recovery.
	if err := s.journal.MarkProcessed(ctx, tick); err != nil {
		s.log.Warn("journal mark failed", zap.Error(err))
	}
	return nil
}

// LoadLatest restores the newest snapshot into the state, returning the
// saved tick and throttle counter. ok=false means a fresh database.
func (s *Saver) LoadLatest(ctx context.Context) (tick uint64, throttleCounter int, ok bool, err error) {
	doc, found, err := s.snaps.LoadLatest(ctx)
	if err != nil || !found {
		return 0, 0, false, err
	}
	RestoreSnapshot(s.state, doc)
	return doc.Tick, doc.ThrottleCounter, true, nil
}
