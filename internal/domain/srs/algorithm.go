package srs

import (
	"math"
	"time"

	"github.com/phrazzld/degen-journal/internal/domain"
)

// calculateNewEaseFactor applies the SM-2 ease update:
//
//	EF' = EF + 0.1 - (5-q) * (0.08 + (5-q) * 0.02)
//
// The result is clamped to params.MinEaseFactor. There is no ceiling, so a run
// of perfect answers keeps growing the factor by 0.1 per review.
func calculateNewEaseFactor(currentEF float64, quality int, params *Params) float64 {
	miss := float64(MaxQuality - quality)
	newEF := currentEF + (0.1 - miss*(0.08+miss*0.02))

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return newEF
}

// calculateNewInterval determines the next interval in days and the new
// repetition count.
//
// A passing grade walks the classic SM-2 ladder: the first success schedules
// FirstInterval days out, the second SecondInterval days, and from then on the
// previous interval is multiplied by the card's ease factor before this review
// and rounded to whole days. A failing grade resets both the repetition count
// and the interval, so nothing of the earlier ladder survives a lapse.
func calculateNewInterval(
	currentInterval int,
	repetitions int,
	easeFactor float64,
	quality int,
	params *Params,
) (interval int, newRepetitions int) {
	if quality < params.PassThreshold {
		return params.FirstInterval, 0
	}

	switch repetitions {
	case 0:
		interval = params.FirstInterval
	case 1:
		interval = params.SecondInterval
	default:
		interval = int(math.Round(float64(currentInterval) * easeFactor))
	}

	return interval, repetitions + 1
}

// calculateNextReviewDate converts the interval into the next due timestamp.
// Intervals are whole calendar days; fractional days are not modelled.
func calculateNextReviewDate(interval int, now time.Time) time.Time {
	return now.AddDate(0, 0, interval)
}

// calculateNextCard returns a graded copy of card. The input is not modified.
func calculateNextCard(
	card *domain.Flashcard,
	quality int,
	now time.Time,
	params *Params,
) *domain.Flashcard {
	next := card.Clone()

	next.Interval, next.Repetitions = calculateNewInterval(
		card.Interval,
		card.Repetitions,
		card.EaseFactor,
		quality,
		params,
	)
	next.EaseFactor = calculateNewEaseFactor(card.EaseFactor, quality, params)
	next.NextReview = calculateNextReviewDate(next.Interval, now)

	reviewed := now
	next.LastReview = &reviewed

	return next
}
