package trade

import (
	"github.com/phrazzld/degen-journal/internal/domain"
)

// Stats aggregates the ledger. Best and Worst are nil when nothing has
// closed yet.
type Stats struct {
	Total    int                      `json:"total"`
	Open     int                      `json:"open"`
	Closed   int                      `json:"closed"`
	Wins     int                      `json:"wins"`
	WinRate  float64                  `json:"win_rate"` // Percent of closed trades with positive P&L
	TotalPnL float64                  `json:"total_pnl"`
	Best     *domain.Trade            `json:"best,omitempty"`
	Worst    *domain.Trade            `json:"worst,omitempty"`
	ByChain  map[domain.Chain]int     `json:"by_chain"`
	PnLChain map[domain.Chain]float64 `json:"pnl_by_chain"`
}

// Stats computes aggregate statistics over every trade.
func (l *Ledger) Stats() Stats {
	return Compute(l.List())
}

// Compute aggregates trades. Win rate is 0 when no trade has closed.
func Compute(trades []*domain.Trade) Stats {
	s := Stats{
		Total:    len(trades),
		ByChain:  make(map[domain.Chain]int, len(domain.Chains)),
		PnLChain: make(map[domain.Chain]float64, len(domain.Chains)),
	}
	for _, c := range domain.Chains {
		s.ByChain[c] = 0
		s.PnLChain[c] = 0
	}

	for _, t := range trades {
		s.ByChain[t.Chain]++
		if !t.IsClosed() {
			s.Open++
			continue
		}

		s.Closed++
		pnl := t.PnLValue()
		s.TotalPnL += pnl
		s.PnLChain[t.Chain] += pnl
		if pnl > 0 {
			s.Wins++
		}
		if s.Best == nil || pnl > s.Best.PnLValue() {
			s.Best = t.Clone()
		}
		if s.Worst == nil || pnl < s.Worst.PnLValue() {
			s.Worst = t.Clone()
		}
	}

	if s.Closed > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Closed) * 100
	}
	return s
}
