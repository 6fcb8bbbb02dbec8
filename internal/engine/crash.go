package engine

import (
	"fmt"
	"math"

	"pausenhof-backend/internal/models"
)

const (
	// Probability of an instant 1.00x crash; this is the house edge on
	// top of the heavy-tailed curve below.
	instantCrashChance = 0.03
	crashEdgeFactor    = 0.97
	maxCrashPoint      = 100.0
)

type CrashResult struct {
	AccountState
	Status     string  `json:"status"`
	Multiplier float64 `json:"multiplier,omitempty"`
	CrashPoint float64 `json:"crash_point,omitempty"`
	Payout     float64 `json:"payout,omitempty"`
	Message    string  `json:"message"`
}

// rollCrashPoint draws the hidden multiplier at which the game busts.
// 1 / (1 - U) gives the heavy tail; the edge factor and the instant
// crash skew expectation toward the house.
func (e *Engine) rollCrashPoint() float64 {
	if e.rng.Float64() < instantCrashChance {
		return 1.0
	}
	point := crashEdgeFactor / (1 - e.rng.Float64())
	point = math.Floor(point*100) / 100
	if point < 1.0 {
		point = 1.0
	}
	if point > maxCrashPoint {
		point = maxCrashPoint
	}
	return point
}

// StartCrash deducts the stake and fixes the crash point server-side.
// The crash point is not part of the response.
func (e *Engine) StartCrash(name string, stake float64) (*CrashResult, error) {
	if stake <= 0 {
		return nil, ErrInvalidStake
	}

	var res *CrashResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		if acc.Crash != nil {
			return ErrGameInProgress
		}
		if acc.Balance < stake {
			return ErrInsufficientFunds
		}

		acc.Balance -= stake
		acc.Crash = &models.CrashGame{
			Bet:        stake,
			CrashPoint: e.rollCrashPoint(),
			StartedAt:  e.now().Unix(),
		}

		res = &CrashResult{
			AccountState: stateOf(acc),
			Status:       "active",
			Message:      "The rocket is climbing. Cash out before it crashes!",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CashoutCrash settles the game against the claimed multiplier. The
// claim is trusted only up to the server-held crash point: anything above
// it is a loss. Below the ceiling it pays stake × claimed exactly; the
// server does not verify elapsed-time-to-multiplier correspondence.
func (e *Engine) CashoutCrash(name string, claimed float64) (*CrashResult, error) {
	if claimed < 1.0 {
		return nil, ErrInvalidBet
	}

	var res *CrashResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		game := acc.Crash
		if game == nil {
			return ErrNoActiveGame
		}
		acc.Crash = nil

		if claimed > game.CrashPoint {
			recordGame(acc, 0, game.Bet)
			res = &CrashResult{
				AccountState: stateOf(acc),
				Status:       models.CrashCrashed,
				CrashPoint:   game.CrashPoint,
				Message:      fmt.Sprintf("Crashed at %.2fx before you cashed out.", game.CrashPoint),
			}
			return nil
		}

		payout := game.Bet * claimed
		acc.Balance += payout
		recordGame(acc, payout, game.Bet)
		res = &CrashResult{
			AccountState: stateOf(acc),
			Status:       models.CrashCashedOut,
			Multiplier:   claimed,
			Payout:       payout,
			Message:      fmt.Sprintf("Cashed out at %.2fx: +%s", claimed, models.FormatCurrency(payout)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Status == models.CrashCrashed && e.broadcaster != nil {
		e.broadcaster.BroadcastCrashResult(name, res.CrashPoint)
	}
	return res, nil
}

// ReportCrash is the client's fallback when its animation reaches the
// crash point without a cashout. It reveals the crash point and forfeits
// the stake; with no active game it is a no-op, so repeated reports are
// safe.
func (e *Engine) ReportCrash(name string) (*CrashResult, error) {
	var res *CrashResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		game := acc.Crash
		if game == nil {
			res = &CrashResult{
				AccountState: stateOf(acc),
				Status:       "idle",
				Message:      "No crash game running.",
			}
			return nil
		}

		acc.Crash = nil
		recordGame(acc, 0, game.Bet)
		res = &CrashResult{
			AccountState: stateOf(acc),
			Status:       models.CrashCrashed,
			CrashPoint:   game.CrashPoint,
			Message:      fmt.Sprintf("Crashed at %.2fx. Stake lost.", game.CrashPoint),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Status == models.CrashCrashed && e.broadcaster != nil {
		e.broadcaster.BroadcastCrashResult(name, res.CrashPoint)
	}
	return res, nil
}
