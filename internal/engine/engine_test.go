package engine

import (
	"path/filepath"
	"testing"
	"time"

	"pausenhof-backend/internal/models"
	"pausenhof-backend/internal/store"
)

// fakeRNG replays scripted values. Shuffle arranges the deck so that the
// cards listed in deck come off the top in that order; with no deck set
// it leaves the ordered deck untouched.
type fakeRNG struct {
	floats []float64
	ints   []int
	deck   []models.Card
}

func (f *fakeRNG) Float64() float64 {
	if len(f.floats) == 0 {
		return 0.5
	}
	v := f.floats[0]
	f.floats = f.floats[1:]
	return v
}

func (f *fakeRNG) Intn(n int) int {
	if len(f.ints) == 0 {
		return 0
	}
	v := f.ints[0]
	f.ints = f.ints[1:]
	return v % n
}

func (f *fakeRNG) Shuffle(n int, swap func(i, j int)) {
	if len(f.deck) == 0 {
		return
	}

	ordered := models.OrderedDeck()
	pos := make([]int, n)
	cur := make([]int, n)
	for i := range pos {
		pos[i], cur[i] = i, i
	}
	doSwap := func(i, j int) {
		swap(i, j)
		cur[i], cur[j] = cur[j], cur[i]
		pos[cur[i]], pos[cur[j]] = i, j
	}

	for k, card := range f.deck {
		orig := -1
		for i, c := range ordered {
			if c == card {
				orig = i
				break
			}
		}
		if orig < 0 {
			panic("rigged card not in deck: " + card.Rank + card.Suit)
		}
		// Cards are drawn from the back of the slice.
		doSwap(pos[orig], n-1-k)
	}
}

func card(rank, suit string) models.Card {
	return models.Card{Rank: rank, Suit: suit}
}

func newTestEngine(t *testing.T, provider *fakeRNG) *Engine {
	t.Helper()

	persister := store.NewFilePersister(filepath.Join(t.TempDir(), "snapshot.json"))
	ledger, err := store.Open(persister)
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}

	market := NewMarket(provider, time.Minute)
	ledger.SetMarketSource(market.Prices)

	e := New(ledger, market, provider, 250)
	if _, err := ledger.Create("alice", "hash", "10.0.0.1", 1000); err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return e
}

func mustAccount(t *testing.T, e *Engine, name string) models.Account {
	t.Helper()
	var snap models.Account
	if err := e.ledger.Read(name, func(acc *models.Account) error {
		snap = *acc
		return nil
	}); err != nil {
		t.Fatalf("failed to read account %s: %v", name, err)
	}
	return snap
}

func pinClock(e *Engine, at time.Time) {
	e.now = func() time.Time { return at }
}
