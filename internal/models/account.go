package models

// AdminName is the reserved privileged identity. It bypasses the
// one-account-per-origin rule at registration and may credit other
// accounts.
const AdminName = "Admin"

// Account is one user's persistent economic state. All mutation goes
// through the ledger's Mutate; accounts are never deleted.
type Account struct {
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`

	Balance float64 `json:"balance"`
	XP      int     `json:"xp"`
	Level   int     `json:"level"`

	Inventory  map[string]int     `json:"inventory"`
	Stocks     map[string]int     `json:"stocks"`
	Businesses map[string]int     `json:"businesses"`
	Cooldowns  map[string]int64   `json:"cooldowns"`
	Buffs      map[string]int64   `json:"buffs"`

	JailUntil     int64  `json:"jail_until"`
	LastCollected int64  `json:"last_collected"`
	DailyClaimed  string `json:"daily_claimed,omitempty"`

	GamesPlayed int `json:"games_played"`
	GamesWon    int `json:"games_won"`

	Blackjack *BlackjackGame `json:"blackjack,omitempty"`
	Crash     *CrashGame     `json:"crash,omitempty"`

	CreatedAt int64 `json:"created_at"`
}

func NewAccount(name, passwordHash string, startingBalance float64, now int64) *Account {
	acc := &Account{
		Name:          name,
		PasswordHash:  passwordHash,
		Balance:       startingBalance,
		Level:         1,
		LastCollected: now,
		CreatedAt:     now,
	}
	acc.Normalize()
	return acc
}

// Normalize brings an account loaded from a snapshot (possibly written by
// an older build) into the invariant-respecting shape the engines assume:
// non-nil maps, level >= 1, no zero-count inventory entries. It runs once
// at load or create time, never per request.
func (a *Account) Normalize() {
	if a.Inventory == nil {
		a.Inventory = make(map[string]int)
	}
	if a.Stocks == nil {
		a.Stocks = make(map[string]int)
	}
	if a.Businesses == nil {
		a.Businesses = make(map[string]int)
	}
	if a.Cooldowns == nil {
		a.Cooldowns = make(map[string]int64)
	}
	if a.Buffs == nil {
		a.Buffs = make(map[string]int64)
	}
	if a.Level < 1 {
		a.Level = 1
	}
	for k, n := range a.Inventory {
		if n <= 0 {
			delete(a.Inventory, k)
		}
	}
	for k, n := range a.Stocks {
		if n <= 0 {
			delete(a.Stocks, k)
		}
	}
}

func (a *Account) IsAdmin() bool {
	return a.Name == AdminName
}
