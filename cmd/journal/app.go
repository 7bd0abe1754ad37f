package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/degen-journal/internal/catalog"
	"github.com/phrazzld/degen-journal/internal/clock"
	"github.com/phrazzld/degen-journal/internal/config"
	"github.com/phrazzld/degen-journal/internal/events"
	"github.com/phrazzld/degen-journal/internal/journal"
	"github.com/phrazzld/degen-journal/internal/notes"
	"github.com/phrazzld/degen-journal/internal/platform/filestore"
	"github.com/phrazzld/degen-journal/internal/platform/postgres"
	"github.com/phrazzld/degen-journal/internal/scheduler"
	"github.com/phrazzld/degen-journal/internal/store"
)

// application holds the wired journal and everything that must be shut
// down with it.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	clock     clock.Clock
	journal   *journal.Journal
	notes     *notes.Catalog
	persister *journal.Persister
	scheduler *scheduler.Scheduler

	closers []func() error
}

// newApplication restores the journal from the configured store, imports
// the note vault and registers the persister.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	app := &application{config: cfg, logger: log}

	loc, err := cfg.Clock.Location()
	if err != nil {
		return nil, err
	}
	app.clock = clock.System(loc)

	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		if cat, err = catalog.LoadFile(cfg.Catalog.Path); err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	st, err := app.openStore(ctx)
	if err != nil {
		return nil, err
	}

	emitter := events.NewInMemoryEventEmitter(log)
	emitter.RegisterHandler(events.NewLoggingHandler(log))

	app.journal, err = journal.New(cat, app.clock, log,
		journal.WithEmitter(emitter),
		journal.WithRewards(journal.Rewards{
			NoteRead:   cfg.Rewards.NoteReadXP,
			ReviewPass: cfg.Rewards.ReviewPassXP,
			ReviewFail: cfg.Rewards.ReviewFailXP,
		}),
	)
	if err != nil {
		_ = app.Close(ctx)
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	if err := app.journal.Restore(ctx, st); err != nil {
		_ = app.Close(ctx)
		return nil, fmt.Errorf("failed to restore journal: %w", err)
	}

	app.persister = journal.NewPersister(app.journal, st, log)
	emitter.RegisterHandler(app.persister)
	if err := app.persister.Flush(ctx); err != nil {
		_ = app.Close(ctx)
		return nil, fmt.Errorf("failed to save restored journal: %w", err)
	}

	if err := app.loadNotes(ctx); err != nil {
		_ = app.Close(ctx)
		return nil, err
	}

	if cfg.Scheduler.Enabled {
		app.scheduler = scheduler.New(app.journal, app.clock, scheduler.NewLogNotifier(log),
			cfg.Scheduler.ReminderInterval, log)
	}

	log.Info("journal ready",
		slog.Uint64("version", app.journal.Version()),
		slog.Int("notes", app.notes.Len()),
		slog.Int("xp", app.journal.Progress().XP))
	return app, nil
}

func (app *application) openStore(ctx context.Context) (store.SnapshotStore, error) {
	cfg := app.config.Storage
	switch cfg.Driver {
	case config.DriverMemory:
		app.logger.Warn("using in-memory storage, state is lost on exit")
		return store.NewMemoryStore(), nil

	case config.DriverFile:
		st, err := filestore.New(cfg.Dir, app.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open file store: %w", err)
		}
		return st, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL, app.logger)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db, postgres.MigrateUp, app.logger); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		app.closers = append(app.closers, db.Close)
		return postgres.NewSnapshotStore(db, app.logger), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// loadNotes reads the vault and feeds each note's Q&A pairs into the deck.
// Notes that fail to import are logged and skipped.
func (app *application) loadNotes(ctx context.Context) error {
	var err error
	if app.config.Vault.Dir == "" {
		app.notes, err = notes.New(nil)
		return err
	}

	app.notes, err = notes.LoadVault(app.config.Vault.Dir, app.logger)
	if err != nil {
		return fmt.Errorf("failed to load vault: %w", err)
	}

	added := 0
	for _, n := range app.notes.List("") {
		count, err := app.journal.ImportNote(ctx, n)
		if err != nil {
			app.logger.Warn("skipping note",
				slog.String("note_id", n.ID),
				slog.String("error", err.Error()))
			continue
		}
		added += count
	}
	app.logger.Info("vault imported",
		slog.String("dir", app.config.Vault.Dir),
		slog.Int("notes", app.notes.Len()),
		slog.Int("cards_added", added))
	return nil
}

// Close stops the scheduler, saves any unsaved state and releases
// resources. It is safe to call more than once.
func (app *application) Close(ctx context.Context) error {
	var errs []error
	if app.scheduler != nil {
		app.scheduler.Stop()
	}
	if app.persister != nil {
		if err := app.persister.Flush(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to save journal: %w", err))
		}
	}
	for _, c := range app.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	return errors.Join(errs...)
}
