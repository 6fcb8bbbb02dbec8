package engine

import (
	"fmt"
	"math"
	"time"

	"pausenhof-backend/internal/models"
	"pausenhof-backend/internal/store"
)

// Passive income accrues for at most this long between collections.
const maxCollectWindow = 24 * time.Hour

type AccountView struct {
	AccountState
	Name       string                `json:"name"`
	Inventory  map[string]int        `json:"inventory"`
	Stocks     map[string]int        `json:"stocks"`
	Businesses map[string]int        `json:"businesses"`
	Buffs      map[string]int64      `json:"buffs"`
	Cooldowns  map[string]int64      `json:"cooldowns"`
	JailUntil  int64                 `json:"jail_until,omitempty"`
	Blackjack  *models.BlackjackView `json:"blackjack,omitempty"`
	CrashBet   float64               `json:"crash_bet,omitempty"`
}

// Profile returns the caller's own state, with any live blackjack hand
// rendered through its concealing view and the crash point withheld.
func (e *Engine) Profile(name string) (*AccountView, error) {
	var view *AccountView
	err := e.ledger.Read(name, func(acc *models.Account) error {
		view = &AccountView{
			AccountState: stateOf(acc),
			Name:         acc.Name,
			Inventory:    copyCounts(acc.Inventory),
			Stocks:       copyCounts(acc.Stocks),
			Businesses:   copyCounts(acc.Businesses),
			Buffs:        copyTimes(acc.Buffs),
			Cooldowns:    copyTimes(acc.Cooldowns),
			JailUntil:    acc.JailUntil,
		}
		if acc.Blackjack != nil {
			view.Blackjack = acc.Blackjack.View()
		}
		if acc.Crash != nil {
			view.CrashBet = acc.Crash.Bet
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func copyTimes(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type BonusResult struct {
	AccountState
	Amount  float64 `json:"amount"`
	Message string  `json:"message"`
}

// ClaimDailyBonus credits the fixed bonus once per calendar day, tracked
// by a date-string marker.
func (e *Engine) ClaimDailyBonus(name string) (*BonusResult, error) {
	var res *BonusResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		today := e.now().Format("2006-01-02")
		if acc.DailyClaimed == today {
			return ErrAlreadyClaimed
		}
		acc.DailyClaimed = today
		acc.Balance += e.dailyBonus

		res = &BonusResult{
			AccountState: stateOf(acc),
			Amount:       e.dailyBonus,
			Message:      fmt.Sprintf("Daily bonus: +%s", models.FormatCurrency(e.dailyBonus)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

type TransferResult struct {
	AccountState
	To      string  `json:"to"`
	Amount  float64 `json:"amount"`
	Message string  `json:"message"`
}

// Transfer moves currency between two accounts as two sequential
// single-account mutations: debit the sender, then credit the receiver.
// A process crash between the two writes loses the amount in flight;
// there is no atomic cross-account commit here.
func (e *Engine) Transfer(from, to string, amount float64) (*TransferResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if from == to {
		return nil, ErrInvalidAmount
	}
	if !e.ledger.Exists(to) {
		return nil, fmt.Errorf("recipient: %w", store.ErrNotFound)
	}

	var res *TransferResult
	err := e.ledger.Mutate(from, func(acc *models.Account) error {
		if acc.Balance < amount {
			return ErrInsufficientFunds
		}
		acc.Balance -= amount
		res = &TransferResult{
			AccountState: stateOf(acc),
			To:           to,
			Amount:       amount,
			Message:      fmt.Sprintf("Sent %s to %s", models.FormatCurrency(amount), to),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = e.ledger.Mutate(to, func(acc *models.Account) error {
		acc.Balance += amount
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.ledger.AppendTransaction(models.NewTransaction(
		from, models.TransactionTypeTransfer, -amount, res.Balance,
		fmt.Sprintf("Transfer to %s", to)))
	return res, nil
}

// AdminGrant credits (or debits) an arbitrary account. Only the reserved
// Admin identity may call it; the balance never goes below zero.
func (e *Engine) AdminGrant(caller, target string, amount float64) (*TransferResult, error) {
	if caller != models.AdminName {
		return nil, ErrForbidden
	}

	var res *TransferResult
	err := e.ledger.Mutate(target, func(acc *models.Account) error {
		acc.Balance += amount
		if acc.Balance < 0 {
			acc.Balance = 0
		}
		res = &TransferResult{
			AccountState: stateOf(acc),
			To:           target,
			Amount:       amount,
			Message:      fmt.Sprintf("Granted %s to %s", models.FormatCurrency(amount), target),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

type BusinessResult struct {
	AccountState
	Business   string         `json:"business,omitempty"`
	Businesses map[string]int `json:"businesses"`
	Earned     float64        `json:"earned,omitempty"`
	Message    string         `json:"message"`
}

// BuyBusiness adds one unit of a passive-income business.
func (e *Engine) BuyBusiness(name, businessKey string) (*BusinessResult, error) {
	business, ok := models.Businesses[businessKey]
	if !ok {
		return nil, ErrUnknownBusiness
	}

	var res *BusinessResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		if acc.Balance < business.Cost {
			return ErrInsufficientFunds
		}
		acc.Balance -= business.Cost
		acc.Businesses[businessKey]++

		res = &BusinessResult{
			AccountState: stateOf(acc),
			Business:     businessKey,
			Businesses:   copyCounts(acc.Businesses),
			Message:      fmt.Sprintf("Bought %s", business.Name),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.ledger.AppendTransaction(models.NewTransaction(
		name, models.TransactionTypePurchase, -business.Cost, res.Balance,
		fmt.Sprintf("Bought %s", business.Name)))
	return res, nil
}

// CollectIncome pays out passive income accrued since the last
// collection, capped at 24 hours of accrual.
func (e *Engine) CollectIncome(name string) (*BusinessResult, error) {
	var res *BusinessResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		now := e.now().Unix()
		elapsed := float64(now - acc.LastCollected)
		if elapsed < 0 {
			elapsed = 0
		}
		if max := maxCollectWindow.Seconds(); elapsed > max {
			elapsed = max
		}

		var perSec float64
		for key, count := range acc.Businesses {
			if business, ok := models.Businesses[key]; ok {
				perSec += business.IncomePerSec * float64(count)
			}
		}

		earned := math.Floor(perSec * elapsed)
		acc.Balance += earned
		acc.LastCollected = now

		res = &BusinessResult{
			AccountState: stateOf(acc),
			Businesses:   copyCounts(acc.Businesses),
			Earned:       earned,
		}
		if earned > 0 {
			res.Message = fmt.Sprintf("Collected %s", models.FormatCurrency(earned))
		} else {
			res.Message = "Nothing to collect."
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
