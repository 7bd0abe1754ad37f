package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/phrazzld/degen-journal/internal/progress"
	"github.com/phrazzld/degen-journal/internal/skilltree"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c := Default()
	require.NoError(t, c.Validate())
	assert.Len(t, c.Skills, 12)
	assert.Len(t, c.Achievements, 8)
	assert.Len(t, c.Levels, 10)

	roots := 0
	for _, s := range c.Skills {
		if len(s.Prerequisites) == 0 {
			roots++
			assert.Equal(t, domain.SkillStatusAvailable, s.Status, s.ID)
		} else {
			assert.Equal(t, domain.SkillStatusLocked, s.Status, s.ID)
		}
	}
	assert.Equal(t, 3, roots)

	top := c.Levels[len(c.Levels)-1]
	assert.True(t, top.IsUnbounded())
	assert.Equal(t, "Degen Master", top.Title)

	lvl := progress.LevelFor(250, c.Levels)
	assert.Equal(t, 2, lvl.Level)
	assert.InDelta(t, 75.0, lvl.Progress, 1e-9)
}

func TestDefault_ReturnsFreshCopies(t *testing.T) {
	t.Parallel()

	a := Default()
	a.Skills[0].Status = domain.SkillStatusCompleted
	assert.Equal(t, domain.SkillStatusAvailable, Default().Skills[0].Status)
}

func TestDefault_StrategyNeedsAllTracks(t *testing.T) {
	t.Parallel()

	strategy, err := skilltree.Find(Default().Skills, "skill-strategy")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"skill-smart-money", "skill-pumpfun", "skill-fourmeme"}, strategy.Prerequisites)
}

func TestLoad_OverridesSections(t *testing.T) {
	t.Parallel()

	doc := `
levels:
  - {level: 1, title: Fresh, min_xp: 0, max_xp: 50}
  - {level: 2, title: Seasoned, min_xp: 50, max_xp: -1}
`
	c, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Len(t, c.Levels, 2)
	assert.Equal(t, "Seasoned", c.Levels[1].Title)
	assert.Len(t, c.Skills, 12, "skills fall back to the built-in catalog")
	assert.Len(t, c.Achievements, 8)
}

func TestLoad_EmptyDocumentIsDefault(t *testing.T) {
	t.Parallel()

	c, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad_Rejects(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"cycle": `
skills:
  - {id: a, title: A, status: locked, prerequisites: [b], xp_reward: 1}
  - {id: b, title: B, status: locked, prerequisites: [a], xp_reward: 1}
`,
		"unknown prerequisite": `
skills:
  - {id: a, title: A, status: locked, prerequisites: [ghost], xp_reward: 1}
`,
		"bad metric": `
achievements:
  - {id: x, title: X, condition: {metric: karma, target: 1}, xp_reward: 1}
`,
		"level gap": `
levels:
  - {level: 1, title: A, min_xp: 0, max_xp: 10}
  - {level: 2, title: B, min_xp: 20, max_xp: -1}
`,
		"unknown field": `
skills:
  - {id: a, title: A, status: available, xp_reward: 1, colour: red}
`,
		"not yaml": "skills: [",
	}

	for name, doc := range tests {
		doc := doc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(strings.NewReader(doc))
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	c, err := LoadFile("")
	require.NoError(t, err)
	assert.Len(t, c.Skills, 12)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("achievements:\n  - {id: one, title: One, condition: {metric: xp, target: 5}, xp_reward: 0}\n"), 0o600))
	c, err = LoadFile(path)
	require.NoError(t, err)
	require.Len(t, c.Achievements, 1)
	assert.Equal(t, domain.MetricXP, c.Achievements[0].Condition.Metric)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSkillsCopy(t *testing.T) {
	t.Parallel()

	c := Default()
	cp := c.SkillsCopy()
	cp[0].Prerequisites = append(cp[0].Prerequisites, "x")
	assert.Empty(t, c.Skills[0].Prerequisites)
}
