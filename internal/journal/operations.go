package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/phrazzld/degen-journal/internal/events"
	"github.com/phrazzld/degen-journal/internal/skilltree"
	"github.com/phrazzld/degen-journal/internal/trade"
)

// Command names used in errors and logs.
const (
	CmdCheckIn       = "check_in"
	CmdReadNote      = "read_note"
	CmdNoteProgress  = "note_progress"
	CmdAddXP         = "add_xp"
	CmdStartSkill    = "start_skill"
	CmdCompleteSkill = "complete_skill"
	CmdAddFlashcard  = "add_flashcard"
	CmdImportNote    = "import_note"
	CmdReviewCard    = "review_card"
	CmdOpenTrade     = "open_trade"
	CmdCloseTrade    = "close_trade"
	CmdAnnotateTrade = "annotate_trade"
)

// ErrSkillLocked is returned when completing a skill whose prerequisites
// are not all completed.
var ErrSkillLocked = fmt.Errorf("%w: skill is locked", domain.ErrInvalidState)

// CheckIn registers activity for today's calendar day and updates the streak.
func (j *Journal) CheckIn(ctx context.Context) (Outcome, error) {
	return j.run(ctx, CmdCheckIn, func(tx *txn) error {
		return j.checkIn(tx)
	})
}

func (j *Journal) checkIn(tx *txn) error {
	today := domain.DayOf(tx.now)
	changed, err := j.ledger.UpdateStreak(today)
	if err != nil {
		return newCommandError(CmdCheckIn, "failed to update streak", err)
	}
	if changed {
		tx.emit(events.TypeStreakUpdated, streakPayload{Day: today, Streak: j.ledger.Streak()})
	}
	return nil
}

// ReadNote marks a note as read, granting the first-read bonus once, and
// counts as activity for the streak.
func (j *Journal) ReadNote(ctx context.Context, noteID string) (Outcome, error) {
	noteID = strings.TrimSpace(noteID)
	return j.run(ctx, CmdReadNote, func(tx *txn) error {
		if noteID == "" {
			return newCommandError(CmdReadNote, "note id is required", domain.ErrValidation)
		}
		if j.ledger.MarkNoteRead(noteID, j.rewards.NoteRead) {
			tx.emit(events.TypeNoteRead, notePayload{NoteID: noteID, Reward: j.rewards.NoteRead})
		}
		return j.checkIn(tx)
	})
}

// UpdateNoteProgress records how far through a note the reader is (0 to
// 100) and stamps it as viewed now. It grants no XP.
func (j *Journal) UpdateNoteProgress(ctx context.Context, noteID string, pct int) (domain.NoteProgress, Outcome, error) {
	noteID = strings.TrimSpace(noteID)
	var np domain.NoteProgress
	out, err := j.run(ctx, CmdNoteProgress, func(tx *txn) error {
		if noteID == "" {
			return newCommandError(CmdNoteProgress, "note id is required", domain.ErrValidation)
		}
		if pct < 0 || pct > 100 {
			return newCommandError(CmdNoteProgress, "invalid progress",
				fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidProgress))
		}
		np = domain.NoteProgress{Progress: pct, LastViewed: tx.now}
		j.notes[noteID] = np
		tx.emit(events.TypeNoteProgress, noteProgressPayload{NoteID: noteID, Progress: pct})
		return nil
	})
	return np, out, err
}

// AddXP grants amount XP directly.
func (j *Journal) AddXP(ctx context.Context, amount int, reason string) (Outcome, error) {
	return j.run(ctx, CmdAddXP, func(tx *txn) error {
		if amount < 0 {
			return newCommandError(CmdAddXP, "amount cannot be negative", domain.ErrValidation)
		}
		GrantXP{Amount: amount, Reason: reason}.apply(j, tx)
		return nil
	})
}

// StartSkill moves an available skill to in_progress.
func (j *Journal) StartSkill(ctx context.Context, skillID string) (domain.SkillNode, Outcome, error) {
	var node domain.SkillNode
	out, err := j.run(ctx, CmdStartSkill, func(tx *txn) error {
		next, changed, err := skilltree.Start(j.skills, skillID)
		if err != nil {
			return newCommandError(CmdStartSkill, "cannot start skill", err)
		}
		if changed {
			j.skills = next
			tx.emit(events.TypeSkillStarted, skillPayload{ID: skillID, Status: string(domain.SkillStatusInProgress)})
		}
		node, _ = skilltree.Find(j.skills, skillID)
		return nil
	})
	return node, out, err
}

// CompleteSkill records a skill as completed and grants its reward once.
// Locked skills cannot be completed; completing an already completed skill
// is a no-op.
func (j *Journal) CompleteSkill(ctx context.Context, skillID string) (domain.SkillNode, Outcome, error) {
	var node domain.SkillNode
	out, err := j.run(ctx, CmdCompleteSkill, func(tx *txn) error {
		current, err := skilltree.Find(j.skills, skillID)
		if err != nil {
			return newCommandError(CmdCompleteSkill, "unknown skill", err)
		}
		if current.Status == domain.SkillStatusLocked {
			return newCommandError(CmdCompleteSkill, "cannot complete skill", fmt.Errorf("%w: %s", ErrSkillLocked, skillID))
		}
		if j.ledger.CompleteSkill(skillID, current.XPReward) {
			tx.emit(events.TypeSkillCompleted, skillRewardPayload{ID: skillID, Reward: current.XPReward, Total: j.ledger.XP()})
		}
		return nil
	})
	if err == nil {
		node, _ = j.Skill(skillID)
	}
	return node, out, err
}

// AddFlashcard adds a card for a note unless the note already has a card
// with the same question. created reports which happened.
func (j *Journal) AddFlashcard(ctx context.Context, noteID, question, answer string) (*domain.Flashcard, bool, error) {
	var (
		card    *domain.Flashcard
		created bool
	)
	_, err := j.run(ctx, CmdAddFlashcard, func(tx *txn) error {
		var err error
		card, created, err = j.addCard(tx, noteID, question, answer)
		if err != nil {
			return newCommandError(CmdAddFlashcard, "invalid flashcard", err)
		}
		return nil
	})
	return card, created, err
}

func (j *Journal) addCard(tx *txn, noteID, question, answer string) (*domain.Flashcard, bool, error) {
	card, created, err := j.deck.Add(noteID, question, answer, tx.now)
	if err != nil {
		return nil, false, err
	}
	if created {
		tx.emit(events.TypeCardAdded, cardPayload{CardID: card.ID, NoteID: card.NoteID})
	}
	return card, created, nil
}

// ImportNote feeds every extracted question/answer pair of a note through
// the flashcard dedupe and returns how many cards were new.
func (j *Journal) ImportNote(ctx context.Context, note domain.Note) (int, error) {
	created := 0
	_, err := j.run(ctx, CmdImportNote, func(tx *txn) error {
		if err := note.Validate(); err != nil {
			return newCommandError(CmdImportNote, "invalid note", fmt.Errorf("%w: %w", domain.ErrValidation, err))
		}
		for _, qa := range note.Flashcards {
			_, isNew, err := j.addCard(tx, note.ID, qa.Question, qa.Answer)
			if err != nil {
				j.logger.Warn("skipping invalid flashcard",
					slog.String("note_id", note.ID),
					slog.String("error", err.Error()))
				continue
			}
			if isNew {
				created++
			}
		}
		return nil
	})
	return created, err
}

// ReviewCard grades a card, reschedules it and grants review XP.
func (j *Journal) ReviewCard(ctx context.Context, cardID uuid.UUID, quality int) (*domain.Flashcard, Outcome, error) {
	var card *domain.Flashcard
	out, err := j.run(ctx, CmdReviewCard, func(tx *txn) error {
		next, err := j.deck.Review(cardID, quality, tx.now)
		if err != nil {
			return newCommandError(CmdReviewCard, "failed to review card", err)
		}
		card = next

		passed := j.deck.IsPass(quality)
		tx.emit(events.TypeCardReviewed, reviewPayload{
			CardID:     next.ID,
			Quality:    quality,
			Passed:     passed,
			Interval:   next.Interval,
			NextReview: next.NextReview,
		})

		reward := j.rewards.ReviewFail
		if passed {
			reward = j.rewards.ReviewPass
		}
		GrantXP{Amount: reward, Reason: CmdReviewCard}.apply(j, tx)
		return nil
	})
	return card, out, err
}

// OpenTrade records a new open trade.
func (j *Journal) OpenTrade(ctx context.Context, in domain.TradeInput) (*domain.Trade, Outcome, error) {
	var t *domain.Trade
	out, err := j.run(ctx, CmdOpenTrade, func(tx *txn) error {
		added, err := j.trades.Add(in, tx.now)
		if err != nil {
			return newCommandError(CmdOpenTrade, "invalid trade", err)
		}
		t = added
		tx.emit(events.TypeTradeOpened, tradePayload{TradeID: added.ID, Token: added.Token, Chain: added.Chain})
		return nil
	})
	return t, out, err
}

// CloseTrade closes an open trade at sellPrice, freezing its P&L.
func (j *Journal) CloseTrade(ctx context.Context, id uuid.UUID, sellPrice float64) (*domain.Trade, Outcome, error) {
	var t *domain.Trade
	out, err := j.run(ctx, CmdCloseTrade, func(tx *txn) error {
		closed, err := j.trades.Close(id, sellPrice, tx.now)
		if err != nil {
			return newCommandError(CmdCloseTrade, "cannot close trade", err)
		}
		t = closed
		tx.emit(events.TypeTradeClosed, tradePayload{
			TradeID: closed.ID, Token: closed.Token, Chain: closed.Chain, PnL: closed.PnL,
		})
		return nil
	})
	return t, out, err
}

// AnnotateTrade updates the notes, emotion or related notes of a trade.
func (j *Journal) AnnotateTrade(ctx context.Context, id uuid.UUID, a trade.Annotation) (*domain.Trade, error) {
	var t *domain.Trade
	_, err := j.run(ctx, CmdAnnotateTrade, func(tx *txn) error {
		updated, err := j.trades.Annotate(id, a)
		if err != nil {
			return newCommandError(CmdAnnotateTrade, "cannot annotate trade", err)
		}
		t = updated
		tx.emit(events.TypeTradeAnnotated, tradePayload{TradeID: updated.ID, Token: updated.Token, Chain: updated.Chain})
		return nil
	})
	return t, err
}

type streakPayload struct {
	Day    domain.Day `json:"day"`
	Streak int        `json:"streak"`
}

type notePayload struct {
	NoteID string `json:"note_id"`
	Reward int    `json:"reward"`
}

type noteProgressPayload struct {
	NoteID   string `json:"note_id"`
	Progress int    `json:"progress"`
}

type skillRewardPayload struct {
	ID     string `json:"id"`
	Reward int    `json:"reward"`
	Total  int    `json:"total"`
}

type cardPayload struct {
	CardID uuid.UUID `json:"card_id"`
	NoteID string    `json:"note_id"`
}

type reviewPayload struct {
	CardID     uuid.UUID `json:"card_id"`
	Quality    int       `json:"quality"`
	Passed     bool      `json:"passed"`
	Interval   int       `json:"interval"`
	NextReview time.Time `json:"next_review"`
}

type tradePayload struct {
	TradeID uuid.UUID    `json:"trade_id"`
	Token   string       `json:"token"`
	Chain   domain.Chain `json:"chain"`
	PnL     *float64     `json:"pnl,omitempty"`
}
