// Package engine implements the economy and game rules: progression,
// jobs and crimes, the shared stock market, and the casino state
// machines. All randomness comes from the injected rng.Provider and all
// account mutation goes through the ledger.
package engine

import (
	"time"

	"pausenhof-backend/internal/models"
	"pausenhof-backend/internal/rng"
	"pausenhof-backend/internal/store"
)

// Broadcaster pushes live events to connected clients. A nil broadcaster
// disables the feed.
type Broadcaster interface {
	BroadcastMarket(instruments []Instrument)
	BroadcastCrashResult(account string, crashPoint float64)
}

type Engine struct {
	ledger      *store.Ledger
	market      *Market
	rng         rng.Provider
	broadcaster Broadcaster
	dailyBonus  float64

	// now is split out so tests can pin the clock.
	now func() time.Time
}

func New(ledger *store.Ledger, market *Market, provider rng.Provider, dailyBonus float64) *Engine {
	return &Engine{
		ledger:     ledger,
		market:     market,
		rng:        provider,
		dailyBonus: dailyBonus,
		now:        time.Now,
	}
}

func (e *Engine) SetBroadcaster(b Broadcaster) {
	e.broadcaster = b
}

func (e *Engine) Ledger() *store.Ledger {
	return e.ledger
}

// AccountState is the slice of account data echoed back by every
// operation result.
type AccountState struct {
	Balance     float64 `json:"balance"`
	XP          int     `json:"xp"`
	Level       int     `json:"level"`
	GamesPlayed int     `json:"games_played"`
	GamesWon    int     `json:"games_won"`
}

func stateOf(acc *models.Account) AccountState {
	return AccountState{
		Balance:     acc.Balance,
		XP:          acc.XP,
		Level:       acc.Level,
		GamesPlayed: acc.GamesPlayed,
		GamesWon:    acc.GamesWon,
	}
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// recordGame updates lifetime stats on a resolved casino game. A game
// counts as won only when the payout exceeds the stake, so a push is not
// a win.
func recordGame(acc *models.Account, payout, stake float64) {
	acc.GamesPlayed++
	if payout > stake {
		acc.GamesWon++
	}
}
