package engine

import (
	"fmt"
	"strconv"

	"pausenhof-backend/internal/models"
)

// Standard European wheel partition; 0 is green and loses every outside
// bet.
var rouletteReds = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

func rouletteColor(n int) string {
	switch {
	case n == 0:
		return "green"
	case rouletteReds[n]:
		return "red"
	default:
		return "black"
	}
}

type RouletteResult struct {
	AccountState
	Number  int     `json:"number"`
	Color   string  `json:"color"`
	Win     bool    `json:"win"`
	Payout  float64 `json:"payout"`
	Message string  `json:"message"`
}

// SpinRoulette plays one single-shot spin: exactly one bet type/value
// pair per call, no persisted game object. Payouts: number 36x, color
// and parity 2x, dozen 3x.
func (e *Engine) SpinRoulette(name string, stake float64, betType, betValue string) (*RouletteResult, error) {
	if stake <= 0 {
		return nil, ErrInvalidStake
	}

	multiplierFor, err := rouletteBet(betType, betValue)
	if err != nil {
		return nil, err
	}

	var res *RouletteResult
	err = e.ledger.Mutate(name, func(acc *models.Account) error {
		if acc.Balance < stake {
			return ErrInsufficientFunds
		}
		acc.Balance -= stake

		number := e.rng.Intn(37)
		multiplier := multiplierFor(number)
		payout := stake * multiplier
		acc.Balance += payout
		recordGame(acc, payout, stake)

		res = &RouletteResult{
			AccountState: stateOf(acc),
			Number:       number,
			Color:        rouletteColor(number),
			Win:          payout > 0,
			Payout:       payout,
		}
		if payout > 0 {
			res.Message = fmt.Sprintf("The ball lands on %d (%s): +%s", number, res.Color, models.FormatCurrency(payout))
		} else {
			res.Message = fmt.Sprintf("The ball lands on %d (%s). Stake lost.", number, res.Color)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// rouletteBet validates a bet up front and returns the payout multiplier
// as a function of the drawn number. Validation happens before any
// balance is touched.
func rouletteBet(betType, betValue string) (func(int) float64, error) {
	switch betType {
	case "number":
		picked, err := strconv.Atoi(betValue)
		if err != nil || picked < 0 || picked > 36 {
			return nil, ErrInvalidBet
		}
		return func(n int) float64 {
			if n == picked {
				return 36
			}
			return 0
		}, nil

	case "color":
		if betValue != "red" && betValue != "black" {
			return nil, ErrInvalidBet
		}
		return func(n int) float64 {
			if n != 0 && rouletteColor(n) == betValue {
				return 2
			}
			return 0
		}, nil

	case "dozen":
		dozen, err := strconv.Atoi(betValue)
		if err != nil || dozen < 1 || dozen > 3 {
			return nil, ErrInvalidBet
		}
		lo, hi := (dozen-1)*12+1, dozen*12
		return func(n int) float64 {
			if n >= lo && n <= hi {
				return 3
			}
			return 0
		}, nil

	case "parity":
		if betValue != "even" && betValue != "odd" {
			return nil, ErrInvalidBet
		}
		return func(n int) float64 {
			if n == 0 {
				return 0
			}
			if (n%2 == 0) == (betValue == "even") {
				return 2
			}
			return 0
		}, nil

	default:
		return nil, ErrInvalidBet
	}
}
