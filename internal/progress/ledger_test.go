package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/degen-journal/internal/domain"
)

func TestAddXP(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	require.NoError(t, l.AddXP(40))
	require.NoError(t, l.AddXP(0))
	assert.Equal(t, 40, l.XP())

	err := l.AddXP(-1)
	assert.ErrorIs(t, err, ErrNegativeXP)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 40, l.XP())
}

func TestMarkNoteRead_Idempotent(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	assert.True(t, l.MarkNoteRead("solana-basics", NoteReadBonus))
	assert.False(t, l.MarkNoteRead("solana-basics", NoteReadBonus))

	s := l.Snapshot()
	assert.Equal(t, 10, s.XP)
	assert.Equal(t, []string{"solana-basics"}, s.NotesRead)
}

func TestCompleteSkillAndUnlockAchievement_GrantOnce(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	assert.True(t, l.CompleteSkill("skill-gmgn", 150))
	assert.False(t, l.CompleteSkill("skill-gmgn", 150))
	assert.True(t, l.UnlockAchievement("first-blood", 50))
	assert.False(t, l.UnlockAchievement("first-blood", 50))

	assert.Equal(t, 200, l.XP())
	assert.True(t, l.HasCompletedSkill("skill-gmgn"))
	assert.True(t, l.HasUnlocked("first-blood"))
	assert.False(t, l.HasReadNote("skill-gmgn"))
}

func TestUpdateStreak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		last       domain.Day
		streak     int
		today      domain.Day
		wantStreak int
		wantChange bool
	}{
		{"first activity", "", 0, "2024-03-10", 1, true},
		{"same day is a no-op", "2024-03-10", 4, "2024-03-10", 4, false},
		{"consecutive day extends", "2024-03-10", 4, "2024-03-11", 5, true},
		{"gap restarts", "2024-03-10", 4, "2024-03-12", 1, true},
		{"month boundary", "2024-02-29", 2, "2024-03-01", 3, true},
		{"year boundary", "2023-12-31", 9, "2024-01-01", 10, true},
		{"clock moved backwards restarts", "2024-03-10", 4, "2024-03-08", 1, true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			snap := domain.NewProgressSnapshot()
			snap.LastActiveDate = tc.last
			snap.Streak = tc.streak
			l, err := FromSnapshot(snap)
			require.NoError(t, err)

			changed, err := l.UpdateStreak(tc.today)
			require.NoError(t, err)
			assert.Equal(t, tc.wantChange, changed)
			assert.Equal(t, tc.wantStreak, l.Streak())
			assert.Equal(t, tc.today, l.Snapshot().LastActiveDate)
		})
	}
}

func TestUpdateStreak_RejectsBadDay(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	_, err := l.UpdateStreak("")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = l.UpdateStreak("10/03/2024")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	l.MarkNoteRead("a", 0)
	s := l.Snapshot()
	s.NotesRead[0] = "mutated"

	assert.True(t, l.HasReadNote("a"))
}

func TestFromSnapshot_Validation(t *testing.T) {
	t.Parallel()

	bad := domain.NewProgressSnapshot()
	bad.XP = -5
	_, err := FromSnapshot(bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	dup := domain.NewProgressSnapshot()
	dup.NotesRead = []string{"a", "a"}
	_, err = FromSnapshot(dup)
	assert.ErrorIs(t, err, domain.ErrValidation)

	ok := domain.NewProgressSnapshot()
	ok.XP = 120
	ok.LastActiveDate = "2024-01-02"
	l, err := FromSnapshot(ok)
	require.NoError(t, err)
	assert.Equal(t, 120, l.XP())
}
