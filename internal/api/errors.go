package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/degen-journal/internal/api/shared"
	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/phrazzld/degen-journal/internal/domain/srs"
	"github.com/phrazzld/degen-journal/internal/flashcard"
	"github.com/phrazzld/degen-journal/internal/journal"
	"github.com/phrazzld/degen-journal/internal/notes"
	"github.com/phrazzld/degen-journal/internal/skilltree"
	"github.com/phrazzld/degen-journal/internal/trade"
)

// MapErrorToStatusCode maps an error to a status code by its domain category.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Raw error
// text is never returned.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, trade.ErrTradeNotFound):
		return "Trade not found"
	case errors.Is(err, flashcard.ErrCardNotFound):
		return "Flashcard not found"
	case errors.Is(err, skilltree.ErrSkillNotFound):
		return "Skill not found"
	case errors.Is(err, notes.ErrNoteNotFound):
		return "Note not found"

	case errors.Is(err, trade.ErrTradeAlreadyClosed):
		return "Trade is already closed"
	case errors.Is(err, journal.ErrSkillLocked):
		return "Skill is locked"
	case errors.Is(err, skilltree.ErrSkillNotStartable):
		return "Skill cannot be started"

	case errors.Is(err, srs.ErrInvalidQuality):
		return fmt.Sprintf("Quality must be between %d and %d", srs.MinQuality, srs.MaxQuality)
	case errors.Is(err, trade.ErrInvalidInput):
		return "Invalid trade data"
	case errors.Is(err, flashcard.ErrInvalidCard):
		return "Invalid flashcard"
	case errors.Is(err, domain.ErrValidation):
		return "Invalid request"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError describes the first failed field of a validator
// error without exposing struct names.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte", "gt":
		return "too small"
	case "max", "lte", "lt":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// respondError writes the status and safe message for err and logs the
// redacted details.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
