package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeBet      TransactionType = "bet"
	TransactionTypeWin      TransactionType = "win"
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeTransfer TransactionType = "transfer"
	TransactionTypePenalty  TransactionType = "penalty"
)

// Transaction is an audit record appended for economy-side balance
// movements (income, purchases, transfers). It is informational only;
// the account balance is the source of truth.
type Transaction struct {
	ID           string          `json:"id"`
	Account      string          `json:"account"`
	Type         TransactionType `json:"type"`
	Amount       float64         `json:"amount"`
	BalanceAfter float64         `json:"balance_after"`
	Description  string          `json:"description"`
	CreatedAt    int64           `json:"created_at"`
}

func NewTransaction(account string, typ TransactionType, amount, balanceAfter float64, description string) *Transaction {
	return &Transaction{
		ID:           fmt.Sprintf("tx_%s_%d", time.Now().Format("20060102"), uuid.New().ID()),
		Account:      account,
		Type:         typ,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Description:  description,
		CreatedAt:    time.Now().Unix(),
	}
}

func FormatCurrency(v float64) string {
	return fmt.Sprintf("%.2f€", v)
}
