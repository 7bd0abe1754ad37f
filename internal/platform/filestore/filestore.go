// Package filestore keeps journal snapshots as JSON files in a directory.
// Each snapshot is written atomically; a batch of snapshots is not, so after
// a crash the files can be one save apart. Restoring reconciles derived
// state, which covers that gap.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/phrazzld/degen-journal/internal/store"
)

const (
	fileExt        = ".json"
	tempFilePrefix = "journal-tmp-"
	filePerm       = 0o600
	dirPerm        = 0o700
)

// Store is a store.SnapshotStore backed by one file per snapshot.
type Store struct {
	mu     sync.Mutex
	dir    string
	logger *slog.Logger
}

var _ store.SnapshotStore = (*Store)(nil)

// New creates the directory if needed and returns a store rooted at dir.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("snapshot directory cannot be empty")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dir:    dir,
		logger: logger.With(slog.String("component", "filestore")),
	}, nil
}

// Dir returns the directory snapshots are written to.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// Load implements store.SnapshotStore.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.NewStoreError(name, "load", "no snapshot saved", store.ErrSnapshotNotFound)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read snapshot",
			slog.String("snapshot", name),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError(name, "load", "failed to read snapshot", store.ErrInternal)
	}
	return data, nil
}

// Save implements store.SnapshotStore. The previous file stays intact until
// the new content is fully on disk.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(s.path(name), data, filePerm); err != nil {
		s.logger.ErrorContext(ctx, "failed to write snapshot",
			slog.String("snapshot", name),
			slog.String("error", err.Error()))
		return store.NewStoreError(name, "save", "failed to write snapshot", store.ErrInternal)
	}
	return nil
}

// writeFileAtomic writes to a temp file in the target directory, syncs it
// and renames it over filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", filename, err)
	}
	return nil
}
