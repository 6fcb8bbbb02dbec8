// Package store owns all per-account mutable state. The Ledger serializes
// read-modify-write per account and pushes a full snapshot to a Persister
// after every successful mutation. The engines' correctness does not
// depend on which persister backs it.
package store

import (
	"errors"

	"pausenhof-backend/internal/models"
)

var (
	ErrNotFound    = errors.New("account not found")
	ErrNameTaken   = errors.New("account name already taken")
	ErrOriginTaken = errors.New("an account already exists for this origin")
)

// Snapshot is the whole persisted world: every account, the
// origin-to-account map behind the one-account-per-origin rule, and the
// current market prices. The "users"/"ips" keys match the legacy data
// file so old snapshots load unchanged.
type Snapshot struct {
	Accounts map[string]*models.Account `json:"users"`
	Origins  map[string]string          `json:"ips"`
	Market   map[string]float64         `json:"market,omitempty"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Accounts: make(map[string]*models.Account),
		Origins:  make(map[string]string),
	}
}

// Persister is the durable-storage collaborator. SaveAll is called with
// the ledger's internal locks held, so implementations must not call back
// into the ledger.
type Persister interface {
	LoadAll() (*Snapshot, error)
	SaveAll(snap *Snapshot) error
	AppendTransaction(tx *models.Transaction) error
	Close() error
}
