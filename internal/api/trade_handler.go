package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/degen-journal/internal/api/shared"
	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/phrazzld/degen-journal/internal/journal"
	"github.com/phrazzld/degen-journal/internal/platform/logger"
	"github.com/phrazzld/degen-journal/internal/trade"
)

// OpenTradeRequest is the body of POST /api/trades.
type OpenTradeRequest struct {
	Token          string         `json:"token" validate:"required,max=64"`
	Chain          domain.Chain   `json:"chain" validate:"required,oneof=solana bsc base eth"`
	Contract       string         `json:"contract" validate:"max=128"`
	BuyPrice       float64        `json:"buy_price"`
	Amount         float64        `json:"amount"`
	Notes          string         `json:"notes" validate:"max=4000"`
	Emotion        domain.Emotion `json:"emotion" validate:"omitempty,oneof=confident fomo fear neutral"`
	RelatedNoteIDs []string       `json:"related_note_ids" validate:"max=50,dive,required"`
}

// CloseTradeRequest is the body of POST /api/trades/{id}/close.
type CloseTradeRequest struct {
	SellPrice *float64 `json:"sell_price" validate:"required"`
}

// AnnotateTradeRequest is the body of PATCH /api/trades/{id}. Absent fields
// are left unchanged.
type AnnotateTradeRequest struct {
	Notes          *string         `json:"notes" validate:"omitempty,max=4000"`
	Emotion        *domain.Emotion `json:"emotion" validate:"omitempty,oneof=confident fomo fear neutral"`
	RelatedNoteIDs []string        `json:"related_note_ids" validate:"omitempty,max=50,dive,required"`
}

// TradeResponse carries a trade after a command.
type TradeResponse struct {
	Trade   *domain.Trade   `json:"trade"`
	Outcome journal.Outcome `json:"outcome"`
}

// ListTrades handles GET /api/trades.
func (h *Handler) ListTrades(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(h.journal.Trades()))
}

// TradeStats handles GET /api/trades/stats.
func (h *Handler) TradeStats(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.journal.TradeStats())
}

// GetTrade handles GET /api/trades/{id}.
func (h *Handler) GetTrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	t, err := h.journal.Trade(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, t)
}

// OpenTrade handles POST /api/trades.
func (h *Handler) OpenTrade(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req OpenTradeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	t, out, err := h.journal.OpenTrade(r.Context(), domain.TradeInput{
		Token:          req.Token,
		Chain:          req.Chain,
		Contract:       req.Contract,
		BuyPrice:       req.BuyPrice,
		Amount:         req.Amount,
		Notes:          req.Notes,
		Emotion:        req.Emotion,
		RelatedNoteIDs: req.RelatedNoteIDs,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Info("trade opened",
		slog.String("trade_id", t.ID.String()),
		slog.String("chain", string(t.Chain)))
	shared.RespondWithJSON(w, r, http.StatusCreated, TradeResponse{Trade: t, Outcome: out})
}

// CloseTrade handles POST /api/trades/{id}/close.
func (h *Handler) CloseTrade(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	var req CloseTradeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	t, out, err := h.journal.CloseTrade(r.Context(), id, *req.SellPrice)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Info("trade closed", slog.String("trade_id", t.ID.String()), slog.Float64("pnl", t.PnLValue()))
	shared.RespondWithJSON(w, r, http.StatusOK, TradeResponse{Trade: t, Outcome: out})
}

// AnnotateTrade handles PATCH /api/trades/{id}.
func (h *Handler) AnnotateTrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}
	var req AnnotateTradeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	t, err := h.journal.AnnotateTrade(r.Context(), id, trade.Annotation{
		Notes:          req.Notes,
		Emotion:        req.Emotion,
		RelatedNoteIDs: req.RelatedNoteIDs,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, t)
}
