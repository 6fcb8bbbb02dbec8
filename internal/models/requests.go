package models

import "fmt"

const MaxStake = 1_000_000

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=24"`
	Password string `json:"password" binding:"required,min=4"`
}

type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type StakeRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

func (r *StakeRequest) Validate() error {
	if r.Amount <= 0 {
		return fmt.Errorf("stake must be positive")
	}
	if r.Amount > MaxStake {
		return fmt.Errorf("maximum stake is %d", MaxStake)
	}
	return nil
}

type RouletteRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Bet    string  `json:"bet" binding:"required"`
	Value  string  `json:"value"`
}

func (r *RouletteRequest) Validate() error {
	if r.Amount <= 0 {
		return fmt.Errorf("stake must be positive")
	}
	switch r.Bet {
	case "number", "color", "dozen", "parity":
		return nil
	default:
		return fmt.Errorf("unknown bet type: %s", r.Bet)
	}
}

type CrashCashoutRequest struct {
	Multiplier float64 `json:"multiplier" binding:"required"`
}

func (r *CrashCashoutRequest) Validate() error {
	if r.Multiplier < 1.0 {
		return fmt.Errorf("multiplier must be at least 1.00")
	}
	return nil
}

type CoinflipRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Guess  string  `json:"guess" binding:"required"`
}

func (r *CoinflipRequest) Validate() error {
	return (&StakeRequest{Amount: r.Amount}).Validate()
}

type NumberGuessRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Guess  int     `json:"guess" binding:"required,min=1,max=5"`
}

func (r *NumberGuessRequest) Validate() error {
	return (&StakeRequest{Amount: r.Amount}).Validate()
}

type WorkRequest struct {
	Job string `json:"job" binding:"required"`
}

type CrimeRequest struct {
	Crime string `json:"crime" binding:"required"`
}

type ItemRequest struct {
	Item string `json:"item" binding:"required"`
}

type BusinessRequest struct {
	Business string `json:"business" binding:"required"`
}

type StockTradeRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Shares int    `json:"shares" binding:"required,min=1"`
}

type TransferRequest struct {
	To     string  `json:"to" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

type AdminGrantRequest struct {
	Target string  `json:"target" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}
