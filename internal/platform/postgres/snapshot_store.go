package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/degen-journal/internal/platform/logger"
	"github.com/phrazzld/degen-journal/internal/store"
)

const (
	loadSnapshotQuery = `SELECT data FROM snapshots WHERE name = $1`

	upsertSnapshotQuery = `
		INSERT INTO snapshots (name, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`
)

// SnapshotStore implements store.SnapshotStore on the snapshots table.
// SaveAll writes every snapshot in one transaction.
type SnapshotStore struct {
	db     store.DBTX
	txer   store.TxBeginner
	logger *slog.Logger
}

var (
	_ store.SnapshotStore = (*SnapshotStore)(nil)
	_ store.BatchSaver    = (*SnapshotStore)(nil)
)

// NewSnapshotStore creates a store on db. If logger is nil, a default logger will be used.
func NewSnapshotStore(db *sql.DB, logger *slog.Logger) *SnapshotStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotStore{
		db:     db,
		txer:   db,
		logger: logger.With(slog.String("component", "snapshot_store")),
	}
}

// Load implements store.SnapshotStore.
func (s *SnapshotStore) Load(ctx context.Context, name string) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := store.ValidateName(name); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.QueryRowContext(ctx, loadSnapshotQuery, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NewStoreError(name, "load", "no snapshot saved", store.ErrSnapshotNotFound)
	}
	if err != nil {
		log.Error("failed to load snapshot",
			slog.String("snapshot", name),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError(name, "load", "failed to load snapshot", classify(err))
	}

	log.Debug("snapshot loaded", slog.String("snapshot", name), slog.Int("bytes", len(data)))
	return data, nil
}

// Save implements store.SnapshotStore.
func (s *SnapshotStore) Save(ctx context.Context, name string, data []byte) error {
	return s.save(ctx, s.db, name, data)
}

// SaveAll implements store.BatchSaver.
func (s *SnapshotStore) SaveAll(ctx context.Context, snapshots map[string][]byte) error {
	for name := range snapshots {
		if err := store.ValidateName(name); err != nil {
			return err
		}
	}

	return store.RunInTransaction(ctx, s.txer, func(ctx context.Context, tx *sql.Tx) error {
		for _, name := range store.OrderedNames(snapshots) {
			if err := s.save(ctx, tx, name, snapshots[name]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SnapshotStore) save(ctx context.Context, db store.DBTX, name string, data []byte) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := store.ValidateName(name); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, upsertSnapshotQuery, name, data); err != nil {
		log.Error("failed to save snapshot",
			slog.String("snapshot", name),
			slog.String("error", err.Error()))
		return store.NewStoreError(name, "save", "failed to save snapshot", classify(err))
	}

	log.Debug("snapshot saved", slog.String("snapshot", name), slog.Int("bytes", len(data)))
	return nil
}

// classify reduces a database error to the store sentinel it maps to, so
// driver details never reach callers.
func classify(err error) error {
	mapped := MapError(err)
	for _, sentinel := range []error{
		store.ErrNotFound,
		store.ErrInvalidEntity,
		store.ErrTransactionFailed,
		context.Canceled,
		context.DeadlineExceeded,
	} {
		if errors.Is(mapped, sentinel) {
			return sentinel
		}
	}
	return store.ErrInternal
}
