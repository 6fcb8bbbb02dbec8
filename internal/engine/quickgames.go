package engine

import (
	"fmt"
	"strings"

	"pausenhof-backend/internal/models"
)

var slotSymbols = []string{"🍒", "🍋", "💎", "7️⃣"}

type QuickGameResult struct {
	AccountState
	Outcome string  `json:"outcome"`
	Win     bool    `json:"win"`
	Payout  float64 `json:"payout"`
	Message string  `json:"message"`
}

// SpinSlots plays the three-reel slot machine: a pair pays 1.5x, a triple
// 10x, triple sevens 50x.
func (e *Engine) SpinSlots(name string, stake float64) (*QuickGameResult, error) {
	if stake <= 0 {
		return nil, ErrInvalidStake
	}

	var res *QuickGameResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		if acc.Balance < stake {
			return ErrInsufficientFunds
		}
		acc.Balance -= stake

		reels := []string{
			slotSymbols[e.rng.Intn(len(slotSymbols))],
			slotSymbols[e.rng.Intn(len(slotSymbols))],
			slotSymbols[e.rng.Intn(len(slotSymbols))],
		}

		var payout float64
		var note string
		switch {
		case reels[0] == reels[1] && reels[1] == reels[2] && reels[0] == "7️⃣":
			payout = stake * 50
			note = "JACKPOT!!!"
		case reels[0] == reels[1] && reels[1] == reels[2]:
			payout = stake * 10
			note = "Triple!"
		case reels[0] == reels[1] || reels[1] == reels[2]:
			payout = stake * 1.5
			note = "Small win."
		default:
			note = "Nothing."
		}

		acc.Balance += payout
		recordGame(acc, payout, stake)

		res = &QuickGameResult{
			AccountState: stateOf(acc),
			Outcome:      strings.Join(reels, " "),
			Win:          payout > stake,
			Payout:       payout,
			Message:      fmt.Sprintf("[%s] [%s] [%s] %s", reels[0], reels[1], reels[2], note),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FlipCoin pays 2x on a correct heads/tails call.
func (e *Engine) FlipCoin(name string, stake float64, guess string) (*QuickGameResult, error) {
	if stake <= 0 {
		return nil, ErrInvalidStake
	}
	guess = strings.ToLower(guess)
	if guess != "heads" && guess != "tails" {
		return nil, ErrInvalidBet
	}

	var res *QuickGameResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		if acc.Balance < stake {
			return ErrInsufficientFunds
		}
		acc.Balance -= stake

		toss := "heads"
		if e.rng.Intn(2) == 1 {
			toss = "tails"
		}

		var payout float64
		if toss == guess {
			payout = stake * 2
		}
		acc.Balance += payout
		recordGame(acc, payout, stake)

		res = &QuickGameResult{
			AccountState: stateOf(acc),
			Outcome:      toss,
			Win:          payout > 0,
			Payout:       payout,
		}
		if payout > 0 {
			res.Message = fmt.Sprintf("It was %s. You win!", toss)
		} else {
			res.Message = fmt.Sprintf("It was %s. You lose.", toss)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GuessNumber pays 5x on hitting a number from 1 to 5.
func (e *Engine) GuessNumber(name string, stake float64, guess int) (*QuickGameResult, error) {
	if stake <= 0 {
		return nil, ErrInvalidStake
	}
	if guess < 1 || guess > 5 {
		return nil, ErrInvalidBet
	}

	var res *QuickGameResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		if acc.Balance < stake {
			return ErrInsufficientFunds
		}
		acc.Balance -= stake

		drawn := e.rng.Intn(5) + 1
		var payout float64
		if drawn == guess {
			payout = stake * 5
		}
		acc.Balance += payout
		recordGame(acc, payout, stake)

		res = &QuickGameResult{
			AccountState: stateOf(acc),
			Outcome:      fmt.Sprintf("%d", drawn),
			Win:          payout > 0,
			Payout:       payout,
		}
		if payout > 0 {
			res.Message = fmt.Sprintf("HIT! The number was %d.", drawn)
		} else {
			res.Message = fmt.Sprintf("Missed. The number was %d.", drawn)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
