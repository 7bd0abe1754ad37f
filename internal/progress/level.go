package progress

import (
	"fmt"

	"github.com/phrazzld/degen-journal/internal/domain"
)

// Level is the derived rank for an XP total.
type Level struct {
	Level    int     `json:"level"`
	Title    string  `json:"title"`
	XP       int     `json:"xp"`
	MinXP    int     `json:"min_xp"`
	MaxXP    int     `json:"max_xp"`
	Progress float64 `json:"progress"` // Percent through the bracket, 0..100
}

// LevelFor locates the bracket [MinXP, MaxXP) containing xp. If no bracket
// matches, the last (top) bracket is used. Progress through an unbounded top
// bracket is always 0.
//
// thresholds must be non-empty; use ValidateLevels before handing a catalog
// to the ledger.
func LevelFor(xp int, thresholds []domain.LevelThreshold) Level {
	bracket := thresholds[len(thresholds)-1]
	for _, t := range thresholds {
		if t.Contains(xp) {
			bracket = t
			break
		}
	}

	lvl := Level{
		Level: bracket.Level,
		Title: bracket.Title,
		XP:    xp,
		MinXP: bracket.MinXP,
		MaxXP: bracket.MaxXP,
	}
	if !bracket.IsUnbounded() && bracket.MaxXP > bracket.MinXP {
		pct := float64(xp-bracket.MinXP) / float64(bracket.MaxXP-bracket.MinXP) * 100
		lvl.Progress = min(max(pct, 0), 100)
	}
	return lvl
}

// Level derives the ledger's current level.
func (l *Ledger) Level(thresholds []domain.LevelThreshold) Level {
	return LevelFor(l.state.XP, thresholds)
}

// ValidateLevels checks that thresholds start at 0, are ordered and
// contiguous with no gap or overlap, and end in a single unbounded bracket.
func ValidateLevels(thresholds []domain.LevelThreshold) error {
	if len(thresholds) == 0 {
		return fmt.Errorf("%w: at least one level is required", domain.ErrValidation)
	}
	if thresholds[0].MinXP != 0 {
		return fmt.Errorf("%w: first level must start at 0 xp", domain.ErrValidation)
	}

	last := len(thresholds) - 1
	for i, t := range thresholds {
		if i < last {
			if t.IsUnbounded() {
				return fmt.Errorf("%w: level %d is unbounded but not last", domain.ErrValidation, t.Level)
			}
			if t.MaxXP <= t.MinXP {
				return fmt.Errorf("%w: level %d has an empty range", domain.ErrValidation, t.Level)
			}
			if next := thresholds[i+1]; next.MinXP != t.MaxXP {
				return fmt.Errorf("%w: level %d ends at %d but level %d starts at %d",
					domain.ErrValidation, t.Level, t.MaxXP, next.Level, next.MinXP)
			}
		}
		if i > 0 && t.Level <= thresholds[i-1].Level {
			return fmt.Errorf("%w: levels must be strictly increasing", domain.ErrValidation)
		}
	}
	if !thresholds[last].IsUnbounded() {
		return fmt.Errorf("%w: top level must be unbounded", domain.ErrValidation)
	}
	return nil
}
