package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/degen-journal/internal/achievement"
	"github.com/phrazzld/degen-journal/internal/api/shared"
	"github.com/phrazzld/degen-journal/internal/catalog"
	"github.com/phrazzld/degen-journal/internal/clock"
	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/phrazzld/degen-journal/internal/journal"
	"github.com/phrazzld/degen-journal/internal/notes"
	"github.com/phrazzld/degen-journal/internal/platform/logger"
	"github.com/phrazzld/degen-journal/internal/trade"
)

type testServer struct {
	router  http.Handler
	journal *journal.Journal
	clock   *clock.Manual
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.Discard()
	clk := clock.NewManual(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	j, err := journal.New(catalog.Default(), clk, log)
	require.NoError(t, err)

	cat, err := notes.New([]domain.Note{
		{
			ID:          "solana-basics",
			Title:       "Solana Basics",
			Category:    "solana",
			Content:     "# Solana Basics",
			Connections: []string{"solana-pumpfun", "gone"},
			Flashcards:  []domain.QAPair{{Question: "What is rent?", Answer: "A storage deposit"}},
		},
		{ID: "solana-pumpfun", Title: "PumpFun", Category: "solana"},
		{ID: "evm-basics", Title: "EVM Basics", Category: "evm"},
	})
	require.NoError(t, err)
	for _, n := range cat.List("") {
		_, err := j.ImportNote(context.Background(), n)
		require.NoError(t, err)
	}

	return &testServer{router: NewRouter(NewHandler(j, cat, log), log), journal: j, clock: clk}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(shared.TraceIDHeader))
}

func TestProgressFlow(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/checkin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[CommandResponse](t, w)
	assert.Equal(t, 1, resp.Progress.Streak)

	w = s.do(t, http.MethodPost, "/api/xp", XPRequest{Amount: 240, Reason: "backfill"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/notes/solana-basics/read", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[CommandResponse](t, w)
	assert.Equal(t, 10, resp.Outcome.XPGained)

	w = s.do(t, http.MethodGet, "/api/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	progress := decode[journal.ProgressView](t, w)
	assert.Equal(t, 250, progress.XP)
	assert.Equal(t, 2, progress.Level.Level)
	assert.InDelta(t, 75, progress.Level.Progress, 1e-9)
}

func TestAddXP_Validation(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/xp", XPRequest{Amount: -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid amount: too small", decode[shared.ErrorResponse](t, w).Error)

	w = s.do(t, http.MethodPost, "/api/xp", `{"amount": "lots"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request format", decode[shared.ErrorResponse](t, w).Error)
}

func TestNotes(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/notes?category=solana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]NoteSummary](t, w), 2)

	w = s.do(t, http.MethodGet, "/api/notes/solana-basics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	note := decode[NoteResponse](t, w)
	assert.False(t, note.Read)
	require.Len(t, note.Related, 1)
	assert.Equal(t, "solana-pumpfun", note.Related[0].ID)

	w = s.do(t, http.MethodGet, "/api/notes/solana-basics/cards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Flashcard](t, w), 1)

	for _, path := range []string{"/api/notes/missing", "/api/notes/missing/cards"} {
		w = s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "Note not found", decode[shared.ErrorResponse](t, w).Error)
	}

	w = s.do(t, http.MethodPost, "/api/notes/missing/read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoteProgress(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/notes/solana-basics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[NoteResponse](t, w).LastViewed)

	w = s.do(t, http.MethodPut, "/api/notes/solana-basics/progress", map[string]int{"progress": 55})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[NoteProgressResponse](t, w)
	assert.Equal(t, "solana-basics", resp.NoteID)
	assert.Equal(t, 55, resp.Progress)
	assert.True(t, resp.LastViewed.Equal(s.clock.Now()))

	w = s.do(t, http.MethodGet, "/api/notes/solana-basics", nil)
	note := decode[NoteResponse](t, w)
	assert.Equal(t, 55, note.Progress)
	require.NotNil(t, note.LastViewed)

	w = s.do(t, http.MethodGet, "/api/notes?category=solana", nil)
	for _, n := range decode[[]NoteSummary](t, w) {
		if n.ID == "solana-basics" {
			assert.Equal(t, 55, n.Progress)
		}
	}

	w = s.do(t, http.MethodPut, "/api/notes/solana-basics/progress", map[string]int{"progress": 120})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid progress: too large", decode[shared.ErrorResponse](t, w).Error)

	w = s.do(t, http.MethodPut, "/api/notes/missing/progress", map[string]int{"progress": 10})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewCard(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/cards/due", nil)
	require.Equal(t, http.StatusOK, w.Code)
	due := decode[[]domain.Flashcard](t, w)
	require.Len(t, due, 1)
	path := "/api/cards/" + due[0].ID.String() + "/review"

	w = s.do(t, http.MethodPost, path, map[string]int{"quality": 5})
	require.Equal(t, http.StatusOK, w.Code)
	review := decode[ReviewResponse](t, w)
	assert.InDelta(t, 2.6, review.Card.EaseFactor, 1e-9)
	assert.Equal(t, 1, review.Card.Interval)
	assert.Equal(t, 5, review.Outcome.XPGained)

	w = s.do(t, http.MethodGet, "/api/cards/due", nil)
	assert.Empty(t, decode[[]domain.Flashcard](t, w))

	w = s.do(t, http.MethodPost, path, map[string]int{"quality": 7})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, path, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid quality: required field", decode[shared.ErrorResponse](t, w).Error)

	w = s.do(t, http.MethodPost, "/api/cards/not-a-uuid/review", map[string]int{"quality": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/cards/"+uuid.NewString()+"/review", map[string]int{"quality": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Flashcard not found", decode[shared.ErrorResponse](t, w).Error)
}

func TestSkills(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/skills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.SkillNode](t, w), 12)

	w = s.do(t, http.MethodPost, "/api/skills/skill-gmgn/complete", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Skill is locked", decode[shared.ErrorResponse](t, w).Error)

	w = s.do(t, http.MethodPost, "/api/skills/skill-trading-basics/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.SkillStatusInProgress, decode[SkillResponse](t, w).Skill.Status)

	w = s.do(t, http.MethodPost, "/api/skills/skill-trading-basics/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[SkillResponse](t, w)
	assert.Equal(t, domain.SkillStatusCompleted, resp.Skill.Status)
	assert.Contains(t, resp.Outcome.SkillsChanged, "skill-gmgn")

	w = s.do(t, http.MethodPost, "/api/skills/skill-nope/start", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/achievements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, a := range decode[[]achievement.Progress](t, w) {
		if a.ID == "smart-money" {
			assert.True(t, a.Unlocked)
		}
	}
}

func TestTrades(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/trades", OpenTradeRequest{
		Token: "PEPE", Chain: domain.ChainETH, BuyPrice: 100, Amount: 50, Emotion: domain.EmotionFOMO,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	opened := decode[TradeResponse](t, w)
	assert.Equal(t, []string{"first-blood"}, opened.Outcome.AchievementsUnlocked)
	base := "/api/trades/" + opened.Trade.ID.String()

	w = s.do(t, http.MethodPost, base+"/close", map[string]float64{"sell_price": 120})
	require.Equal(t, http.StatusOK, w.Code)
	closed := decode[TradeResponse](t, w)
	require.NotNil(t, closed.Trade.PnL)
	assert.InDelta(t, 1000, *closed.Trade.PnL, 1e-9)
	assert.InDelta(t, 20, *closed.Trade.PnLPercent, 1e-9)

	w = s.do(t, http.MethodPost, base+"/close", map[string]float64{"sell_price": 130})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Trade is already closed", decode[shared.ErrorResponse](t, w).Error)

	w = s.do(t, http.MethodPatch, base, map[string]string{"notes": "sold into strength"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sold into strength", decode[domain.Trade](t, w).Notes)

	w = s.do(t, http.MethodPatch, base, map[string]string{"emotion": "greedy"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/trades", nil)
	assert.Len(t, decode[[]domain.Trade](t, w), 1)

	w = s.do(t, http.MethodGet, "/api/trades/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[trade.Stats](t, w)
	assert.Equal(t, 1, stats.Wins)
	assert.InDelta(t, 1000, stats.TotalPnL, 1e-9)

	w = s.do(t, http.MethodPost, "/api/trades", OpenTradeRequest{Token: "X", Chain: "dogechain"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid chain: invalid value", decode[shared.ErrorResponse](t, w).Error)

	w = s.do(t, http.MethodGet, "/api/trades/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
