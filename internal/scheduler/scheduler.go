// Package scheduler runs the periodic due-card reminder.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/phrazzld/degen-journal/internal/clock"
	"github.com/phrazzld/degen-journal/internal/platform/logger"
)

// ErrInvalidInterval is returned by Start when the reminder interval is not positive.
var ErrInvalidInterval = errors.New("reminder interval must be positive")

// DueCounter reports how many flashcards are due at t.
type DueCounter interface {
	DueCount(t time.Time) int
}

// Notifier delivers a reminder that count cards are waiting for review.
type Notifier interface {
	NotifyDue(ctx context.Context, count int) error
}

// Scheduler checks for due cards on a fixed interval and notifies when
// any are waiting.
type Scheduler struct {
	cron     *gocron.Scheduler
	counter  DueCounter
	clock    clock.Clock
	notifier Notifier
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// New creates a scheduler. Start must be called to begin running checks.
func New(counter DueCounter, clk clock.Clock, notifier Notifier, interval time.Duration, log *slog.Logger) *Scheduler {
	if counter == nil || clk == nil || notifier == nil {
		panic("scheduler: counter, clock and notifier are required") // ALLOW-PANIC
	}
	if log == nil {
		log = slog.Default()
	}

	cron := gocron.NewScheduler(time.UTC)
	cron.SingletonModeAll()

	return &Scheduler{
		cron:     cron,
		counter:  counter,
		clock:    clk,
		notifier: notifier,
		interval: interval,
		logger:   log.With(slog.String("component", "scheduler")),
	}
}

// Start schedules the reminder job and runs it in the background. The
// first check happens after one interval.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if s.interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, s.interval)
	}

	_, err := s.cron.Every(s.interval).WaitForSchedule().Do(func() {
		if _, err := s.CheckDue(context.Background()); err != nil {
			s.logger.Error("due card reminder failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder job: %w", err)
	}

	s.cron.StartAsync()
	s.running = true
	s.logger.Info("scheduler started", slog.Duration("interval", s.interval))
	return nil
}

// Stop halts the job and waits for a running check to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	s.logger.Info("scheduler stopped")
}

// CheckDue runs one reminder check immediately and returns the number of
// due cards. Nothing is sent when no cards are due.
func (s *Scheduler) CheckDue(ctx context.Context) (int, error) {
	count := s.counter.DueCount(s.clock.Now())
	if count == 0 {
		logger.FromContextOrDefault(ctx, s.logger).Debug("no cards due")
		return 0, nil
	}
	if err := s.notifier.NotifyDue(ctx, count); err != nil {
		return count, fmt.Errorf("failed to send reminder for %d cards: %w", count, err)
	}
	return count, nil
}

// LogNotifier writes reminders to the log.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a Notifier that logs each reminder at info level.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{logger: log}
}

// NotifyDue implements Notifier.
func (n *LogNotifier) NotifyDue(ctx context.Context, count int) error {
	logger.FromContextOrDefault(ctx, n.logger).Info("flashcards due for review", slog.Int("count", count))
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
