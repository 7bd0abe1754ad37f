package srs

import (
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/degen-journal/internal/domain"
)

// Common errors
var (
	ErrNilCard = errors.New("flashcard cannot be nil")

	// ErrInvalidQuality is returned for grades outside [MinQuality, MaxQuality].
	// Out-of-range grades are rejected rather than clamped.
	ErrInvalidQuality = fmt.Errorf("%w: quality must be between %d and %d",
		domain.ErrValidation, MinQuality, MaxQuality)
)

// Service defines the interface for SRS algorithm operations
type Service interface {
	// Grade returns the card rescheduled for a recall of the given quality
	// (0..5) at now. It is a pure function of its inputs.
	Grade(card *domain.Flashcard, quality int, now time.Time) (*domain.Flashcard, error)

	// IsPass reports whether quality counts as a successful recall.
	IsPass(quality int) bool

	// IsDue reports whether card should be reviewed at now.
	IsDue(card *domain.Flashcard, now time.Time) bool
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	return &defaultService{
		params: params,
	}
}

// Grade implements Service.Grade
func (s *defaultService) Grade(
	card *domain.Flashcard,
	quality int,
	now time.Time,
) (*domain.Flashcard, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	if !IsValidQuality(quality) {
		return nil, ErrInvalidQuality
	}

	return calculateNextCard(card, quality, now, s.params), nil
}

// IsPass implements Service.IsPass
func (s *defaultService) IsPass(quality int) bool {
	return quality >= s.params.PassThreshold
}

// IsDue implements Service.IsDue
func (s *defaultService) IsDue(card *domain.Flashcard, now time.Time) bool {
	return card != nil && card.IsDue(now)
}

// IsValidQuality checks if the given quality is inside the SM-2 grading scale
func IsValidQuality(quality int) bool {
	return quality >= MinQuality && quality <= MaxQuality
}
