package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// TradeStatus represents the lifecycle of a trade. The only transition is
// open -> closed.
type TradeStatus string

// Possible trade status values
const (
	TradeStatusOpen   TradeStatus = "open"
	TradeStatusClosed TradeStatus = "closed"
)

// Chain identifies the network a token trades on.
type Chain string

// Supported chains
const (
	ChainSolana Chain = "solana"
	ChainBSC    Chain = "bsc"
	ChainBase   Chain = "base"
	ChainETH    Chain = "eth"
)

// Chains lists every supported chain in display order.
var Chains = []Chain{ChainSolana, ChainBSC, ChainBase, ChainETH}

// Emotion records the trader's state of mind when opening a position.
type Emotion string

// Supported emotions
const (
	EmotionConfident Emotion = "confident"
	EmotionFOMO      Emotion = "fomo"
	EmotionFear      Emotion = "fear"
	EmotionNeutral   Emotion = "neutral"
)

// Trade validation errors
var (
	ErrTradeIDEmpty      = errors.New("trade ID cannot be empty")
	ErrTradeTokenEmpty   = errors.New("trade token cannot be empty")
	ErrInvalidChain      = errors.New("invalid chain")
	ErrInvalidEmotion    = errors.New("invalid emotion")
	ErrInvalidPrice      = errors.New("price must be a finite number")
	ErrInvalidAmount     = errors.New("amount must be a finite number")
	ErrInvalidTradeState = errors.New("invalid trade status")
)

// TradeInput carries the caller-supplied fields of a new trade.
type TradeInput struct {
	Token          string   `json:"token" validate:"required"`
	Chain          Chain    `json:"chain" validate:"required,oneof=solana bsc base eth"`
	Contract       string   `json:"contract,omitempty"`
	BuyPrice       float64  `json:"buy_price"`
	Amount         float64  `json:"amount"`
	Notes          string   `json:"notes,omitempty"`
	Emotion        Emotion  `json:"emotion,omitempty" validate:"omitempty,oneof=confident fomo fear neutral"`
	RelatedNoteIDs []string `json:"related_note_ids,omitempty"`
}

// Trade is a journal entry for one position. PnL and PnLPercent are computed
// when the trade closes and never change afterwards.
type Trade struct {
	ID             uuid.UUID   `json:"id"`
	OpenedAt       time.Time   `json:"opened_at"`
	ClosedAt       *time.Time  `json:"closed_at,omitempty"`
	Token          string      `json:"token"`
	Chain          Chain       `json:"chain"`
	Contract       string      `json:"contract,omitempty"`
	BuyPrice       float64     `json:"buy_price"`
	Amount         float64     `json:"amount"` // Position size in quote currency
	SellPrice      *float64    `json:"sell_price,omitempty"`
	PnL            *float64    `json:"pnl,omitempty"`
	PnLPercent     *float64    `json:"pnl_percent,omitempty"`
	Status         TradeStatus `json:"status"`
	Notes          string      `json:"notes,omitempty"`
	Emotion        Emotion     `json:"emotion,omitempty"`
	RelatedNoteIDs []string    `json:"related_note_ids,omitempty"`
}

// NewTrade creates an open trade from the input.
func NewTrade(in TradeInput, now time.Time) (*Trade, error) {
	trade := &Trade{
		ID:             uuid.New(),
		OpenedAt:       now,
		Token:          in.Token,
		Chain:          in.Chain,
		Contract:       in.Contract,
		BuyPrice:       in.BuyPrice,
		Amount:         in.Amount,
		Status:         TradeStatusOpen,
		Notes:          in.Notes,
		Emotion:        in.Emotion,
		RelatedNoteIDs: append([]string(nil), in.RelatedNoteIDs...),
	}

	if err := trade.Validate(); err != nil {
		return nil, err
	}

	return trade, nil
}

// Validate checks the trade's identity, enumerations and numeric fields.
// Prices are not range checked beyond being finite numbers.
func (t *Trade) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTradeIDEmpty
	}
	if t.Token == "" {
		return ErrTradeTokenEmpty
	}
	if !IsValidChain(t.Chain) {
		return ErrInvalidChain
	}
	if t.Emotion != "" && !IsValidEmotion(t.Emotion) {
		return ErrInvalidEmotion
	}
	if !isFinite(t.BuyPrice) {
		return ErrInvalidPrice
	}
	if !isFinite(t.Amount) {
		return ErrInvalidAmount
	}
	if t.Status != TradeStatusOpen && t.Status != TradeStatusClosed {
		return ErrInvalidTradeState
	}
	return nil
}

// Close freezes the trade at sellPrice. It does not check the current status;
// the trade ledger is responsible for rejecting a second close.
func (t *Trade) Close(sellPrice float64, now time.Time) error {
	if !isFinite(sellPrice) {
		return ErrInvalidPrice
	}

	pnl := (sellPrice - t.BuyPrice) * t.Amount
	var pnlPercent float64
	if t.BuyPrice != 0 {
		pnlPercent = (sellPrice - t.BuyPrice) / t.BuyPrice * 100
	}

	t.SellPrice = &sellPrice
	t.PnL = &pnl
	t.PnLPercent = &pnlPercent
	t.ClosedAt = &now
	t.Status = TradeStatusClosed
	return nil
}

// IsClosed reports whether the trade has been closed.
func (t *Trade) IsClosed() bool {
	return t.Status == TradeStatusClosed
}

// PnLValue returns the frozen PnL, or 0 for open trades.
func (t *Trade) PnLValue() float64 {
	if t.PnL == nil {
		return 0
	}
	return *t.PnL
}

// Clone returns a deep copy of the trade.
func (t *Trade) Clone() *Trade {
	cp := *t
	cp.ClosedAt = clonePtr(t.ClosedAt)
	cp.SellPrice = clonePtr(t.SellPrice)
	cp.PnL = clonePtr(t.PnL)
	cp.PnLPercent = clonePtr(t.PnLPercent)
	cp.RelatedNoteIDs = append([]string(nil), t.RelatedNoteIDs...)
	return &cp
}

// IsValidChain checks if the given chain is supported.
func IsValidChain(c Chain) bool {
	for _, known := range Chains {
		if c == known {
			return true
		}
	}
	return false
}

// IsValidEmotion checks if the given emotion is supported.
func IsValidEmotion(e Emotion) bool {
	switch e {
	case EmotionConfident, EmotionFOMO, EmotionFear, EmotionNeutral:
		return true
	default:
		return false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
