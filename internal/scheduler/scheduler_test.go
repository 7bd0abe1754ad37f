package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/degen-journal/internal/clock"
	"github.com/phrazzld/degen-journal/internal/platform/logger"
)

type fixedCounter int

func (c fixedCounter) DueCount(time.Time) int { return int(c) }

type recordingNotifier struct {
	mu     sync.Mutex
	counts []int
	err    error
}

func (n *recordingNotifier) NotifyDue(_ context.Context, count int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.counts = append(n.counts, count)
	return n.err
}

func (n *recordingNotifier) calls() []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]int(nil), n.counts...)
}

func newClock() clock.Clock {
	return clock.Fixed(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
}

func TestCheckDue(t *testing.T) {
	t.Parallel()

	t.Run("notifies when cards are due", func(t *testing.T) {
		t.Parallel()
		n := &recordingNotifier{}
		s := New(fixedCounter(3), newClock(), n, time.Hour, logger.Discard())

		count, err := s.CheckDue(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.Equal(t, []int{3}, n.calls())
	})

	t.Run("stays quiet when nothing is due", func(t *testing.T) {
		t.Parallel()
		n := &recordingNotifier{}
		s := New(fixedCounter(0), newClock(), n, time.Hour, logger.Discard())

		count, err := s.CheckDue(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, n.calls())
	})

	t.Run("wraps notifier failures", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		s := New(fixedCounter(2), newClock(), &recordingNotifier{err: boom}, time.Hour, logger.Discard())

		_, err := s.CheckDue(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}

func TestStart_RunsOnInterval(t *testing.T) {
	t.Parallel()

	n := &recordingNotifier{}
	s := New(fixedCounter(1), newClock(), n, 20*time.Millisecond, logger.Discard())
	require.NoError(t, s.Start())
	require.NoError(t, s.Start(), "second start is a no-op")
	defer s.Stop()

	assert.Eventually(t, func() bool { return len(n.calls()) >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestStart_InvalidInterval(t *testing.T) {
	t.Parallel()

	s := New(fixedCounter(1), newClock(), &recordingNotifier{}, 0, logger.Discard())
	assert.ErrorIs(t, s.Start(), ErrInvalidInterval)
	s.Stop()
}

func TestLogNotifier(t *testing.T) {
	t.Parallel()

	log, buf := logger.NewTestLogger(t)
	require.NoError(t, NewLogNotifier(log).NotifyDue(context.Background(), 4))
	assert.Contains(t, buf.String(), "flashcards due for review")
	assert.Contains(t, buf.String(), `"count":4`)
}
