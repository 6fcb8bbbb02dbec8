package store

import (
	"log"
	"sort"
	"sync"
	"time"

	"pausenhof-backend/internal/models"
)

// Ledger keeps every account in memory and persists the full snapshot
// after each mutation.
//
// Locking: mutations on one account hold that account's mutex plus mu in
// read mode, so different accounts mutate concurrently. Snapshot writes
// and account creation take mu exclusively, stopping all mutators for the
// duration of the marshal.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
	origins  map[string]string

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	persister    Persister
	marketSource func() map[string]float64
	loadedMarket map[string]float64
}

// Open loads the persisted snapshot and normalizes every account once, so
// engine code never has to re-check map shapes at runtime.
func Open(p Persister) (*Ledger, error) {
	snap, err := p.LoadAll()
	if err != nil {
		return nil, err
	}
	if snap == nil {
		snap = NewSnapshot()
	}
	if snap.Accounts == nil {
		snap.Accounts = make(map[string]*models.Account)
	}
	if snap.Origins == nil {
		snap.Origins = make(map[string]string)
	}
	for name, acc := range snap.Accounts {
		if acc.Name == "" {
			acc.Name = name
		}
		acc.Normalize()
	}
	return &Ledger{
		accounts:     snap.Accounts,
		origins:      snap.Origins,
		locks:        make(map[string]*sync.Mutex),
		persister:    p,
		loadedMarket: snap.Market,
	}, nil
}

// SetMarketSource wires the market's price view into persisted snapshots.
func (l *Ledger) SetMarketSource(src func() map[string]float64) {
	l.marketSource = src
}

// LoadedMarket returns the prices stored in the loaded snapshot, used to
// re-seed the market at startup.
func (l *Ledger) LoadedMarket() map[string]float64 {
	return l.loadedMarket
}

// accountLock hands out the per-account mutex. Callers verify the
// account exists first, so the map only ever grows one entry per real
// account, never one per guessed name. Accounts are never deleted, so
// an entry created after the existence check cannot go stale.
func (l *Ledger) accountLock(name string) *sync.Mutex {
	l.lockMu.Lock()
	defer l.lockMu.Unlock()
	m, ok := l.locks[name]
	if !ok {
		m = &sync.Mutex{}
		l.locks[name] = m
	}
	return m
}

// Create registers a new account. The reserved Admin identity is exempt
// from the one-account-per-origin rule and never claims an origin slot.
func (l *Ledger) Create(name, passwordHash, origin string, startingBalance float64) (*models.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.accounts[name]; exists {
		return nil, ErrNameTaken
	}
	if name != models.AdminName {
		if _, taken := l.origins[origin]; taken {
			return nil, ErrOriginTaken
		}
	}

	acc := models.NewAccount(name, passwordHash, startingBalance, time.Now().Unix())
	l.accounts[name] = acc
	if name != models.AdminName {
		l.origins[origin] = name
	}

	if err := l.saveLocked(); err != nil {
		return nil, err
	}
	return acc, nil
}

// Mutate applies fn to one account under that account's lock and persists
// the result. fn must detect failure before mutating anything; when it
// returns an error nothing is persisted and the account is expected to be
// untouched.
func (l *Ledger) Mutate(name string, fn func(acc *models.Account) error) error {
	if !l.Exists(name) {
		return ErrNotFound
	}

	al := l.accountLock(name)
	al.Lock()
	defer al.Unlock()

	l.mu.RLock()
	acc, ok := l.accounts[name]
	if !ok {
		l.mu.RUnlock()
		return ErrNotFound
	}
	err := fn(acc)
	l.mu.RUnlock()
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saveLocked()
}

// Read runs fn against the account under its lock without persisting.
func (l *Ledger) Read(name string, fn func(acc *models.Account) error) error {
	if !l.Exists(name) {
		return ErrNotFound
	}

	al := l.accountLock(name)
	al.Lock()
	defer al.Unlock()

	l.mu.RLock()
	defer l.mu.RUnlock()
	acc, ok := l.accounts[name]
	if !ok {
		return ErrNotFound
	}
	return fn(acc)
}

func (l *Ledger) Exists(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.accounts[name]
	return ok
}

type LeaderboardRow struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
	Level   int     `json:"level"`
}

// Leaderboard returns all accounts sorted by balance descending.
func (l *Ledger) Leaderboard() []LeaderboardRow {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows := make([]LeaderboardRow, 0, len(l.accounts))
	for _, acc := range l.accounts {
		rows = append(rows, LeaderboardRow{Name: acc.Name, Balance: acc.Balance, Level: acc.Level})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Balance != rows[j].Balance {
			return rows[i].Balance > rows[j].Balance
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// AppendTransaction forwards an audit record to the persister. The audit
// log is best effort; the balance has already moved.
func (l *Ledger) AppendTransaction(tx *models.Transaction) {
	if err := l.persister.AppendTransaction(tx); err != nil {
		log.Printf("failed to append transaction %s: %v", tx.ID, err)
	}
}

func (l *Ledger) saveLocked() error {
	snap := &Snapshot{Accounts: l.accounts, Origins: l.origins}
	if l.marketSource != nil {
		snap.Market = l.marketSource()
	}
	return l.persister.SaveAll(snap)
}

// SaveMarket persists the current snapshot; the market tick calls this
// after moving prices so a restart does not rewind the market.
func (l *Ledger) SaveMarket() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saveLocked()
}
