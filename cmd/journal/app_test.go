package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/degen-journal/internal/config"
	"github.com/phrazzld/degen-journal/internal/platform/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:  config.ServerConfig{Port: 8080, LogLevel: "debug"},
		Storage: config.StorageConfig{Driver: config.DriverFile, Dir: t.TempDir()},
		Clock:   config.ClockConfig{Timezone: "UTC"},
		Rewards: config.RewardsConfig{NoteReadXP: 10, ReviewPassXP: 5, ReviewFailXP: 2},
	}
}

func TestNewApplication_ImportsVaultAndPersists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Vault.Dir = t.TempDir()
	note := "---\nid: solana-basics\ntitle: Solana Basics\nflashcards:\n  - question: What is rent?\n    answer: A storage deposit\n---\n# Solana Basics\n"
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Vault.Dir, "solana"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Vault.Dir, "solana", "basics.md"), []byte(note), 0o600))

	app, err := newApplication(ctx, cfg, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, 1, app.notes.Len())
	assert.Len(t, app.journal.DueCards(), 1)

	_, err = app.journal.ReadNote(ctx, "solana-basics")
	require.NoError(t, err)
	require.NoError(t, app.Close(ctx))

	reopened, err := newApplication(ctx, cfg, logger.Discard())
	require.NoError(t, err)
	defer func() { _ = reopened.Close(ctx) }()

	assert.Equal(t, 10, reopened.journal.Progress().XP)
	assert.Len(t, reopened.journal.DueCards(), 1, "imported cards are deduplicated on reopen")
}

func TestNewApplication_MemoryDriver(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Storage = config.StorageConfig{Driver: config.DriverMemory}

	app, err := newApplication(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	assert.Nil(t, app.scheduler)
	assert.Zero(t, app.notes.Len())
	assert.NoError(t, app.Close(context.Background()))
}

func TestNewApplication_BadCatalog(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := newApplication(context.Background(), cfg, logger.Discard())
	assert.Error(t, err)
}
