package engine

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"pausenhof-backend/internal/models"
	"pausenhof-backend/internal/rng"
)

// Prices never fall below this floor, whatever the volatility rolls.
const minStockPrice = 0.01

type Instrument struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Volatility float64 `json:"volatility"`
}

// Market is the process-wide shared instrument state. It has a single
// writer (the tick) and many readers; both go through the mutex. Ticks
// are driven by traffic: any request touching the market calls Tick
// first, there is no background scheduler.
type Market struct {
	mu          sync.Mutex
	instruments map[string]*Instrument
	lastTick    time.Time
	tickEvery   time.Duration
	rng         rng.Provider
}

func NewMarket(provider rng.Provider, tickEvery time.Duration) *Market {
	m := &Market{
		instruments: make(map[string]*Instrument),
		tickEvery:   tickEvery,
		rng:         provider,
		lastTick:    time.Now(),
	}
	for _, seed := range models.StockSeeds {
		m.instruments[seed.Symbol] = &Instrument{
			Symbol:     seed.Symbol,
			Name:       seed.Name,
			Price:      seed.Price,
			Volatility: seed.Volatility,
		}
	}
	return m
}

// Restore overwrites seed prices with ones from a loaded snapshot.
func (m *Market) Restore(prices map[string]float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sym, price := range prices {
		if inst, ok := m.instruments[sym]; ok && price > 0 {
			inst.Price = price
		}
	}
}

// Tick advances every price by 1 + U(-volatility, volatility) if the
// minimum interval has elapsed, otherwise it is a no-op. Returns whether
// prices moved. "now" is evaluated once by the caller, not continuously.
func (m *Market) Tick(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastTick) < m.tickEvery {
		return false
	}
	m.lastTick = now

	for _, inst := range m.instruments {
		drift := (m.rng.Float64()*2 - 1) * inst.Volatility
		inst.Price *= 1 + drift
		if inst.Price < minStockPrice {
			inst.Price = minStockPrice
		}
	}
	return true
}

func (m *Market) Price(symbol string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.instruments[symbol]
	if !ok {
		return 0, false
	}
	return inst.Price, true
}

// Prices returns a symbol-to-price view, used for persisted snapshots.
func (m *Market) Prices() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]float64, len(m.instruments))
	for sym, inst := range m.instruments {
		out[sym] = inst.Price
	}
	return out
}

// List returns instrument copies sorted by symbol.
func (m *Market) List() []Instrument {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Instrument, 0, len(m.instruments))
	for _, inst := range m.instruments {
		out = append(out, *inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// TickMarket runs the traffic-driven market update and persists plus
// broadcasts moved prices. A failed persist keeps the in-memory prices
// but is logged; the next successful snapshot carries them.
func (e *Engine) TickMarket() []Instrument {
	if e.market.Tick(e.now()) {
		if err := e.ledger.SaveMarket(); err != nil {
			log.Printf("failed to persist market prices: %v", err)
		} else if e.broadcaster != nil {
			e.broadcaster.BroadcastMarket(e.market.List())
		}
	}
	return e.market.List()
}

type StockTradeResult struct {
	AccountState
	Symbol  string         `json:"symbol"`
	Shares  int            `json:"shares"`
	Price   float64        `json:"price"`
	Total   float64        `json:"total"`
	Stocks  map[string]int `json:"stocks"`
	Message string         `json:"message"`
}

// BuyStock trades at the post-tick price. Stock trades are the one place
// fractional balances come from.
func (e *Engine) BuyStock(name, symbol string, shares int) (*StockTradeResult, error) {
	if shares <= 0 {
		return nil, ErrInvalidAmount
	}
	e.TickMarket()
	price, ok := e.market.Price(symbol)
	if !ok {
		return nil, ErrUnknownStock
	}

	total := price * float64(shares)
	var res *StockTradeResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		if acc.Balance < total {
			return ErrInsufficientFunds
		}
		acc.Balance -= total
		acc.Stocks[symbol] += shares

		res = &StockTradeResult{
			AccountState: stateOf(acc),
			Symbol:       symbol,
			Shares:       shares,
			Price:        price,
			Total:        total,
			Stocks:       copyCounts(acc.Stocks),
			Message:      fmt.Sprintf("Bought %d %s at %s", shares, symbol, models.FormatCurrency(price)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (e *Engine) SellStock(name, symbol string, shares int) (*StockTradeResult, error) {
	if shares <= 0 {
		return nil, ErrInvalidAmount
	}
	e.TickMarket()
	price, ok := e.market.Price(symbol)
	if !ok {
		return nil, ErrUnknownStock
	}

	total := price * float64(shares)
	var res *StockTradeResult
	err := e.ledger.Mutate(name, func(acc *models.Account) error {
		if acc.Stocks[symbol] < shares {
			return ErrInsufficientShares
		}
		acc.Stocks[symbol] -= shares
		if acc.Stocks[symbol] == 0 {
			delete(acc.Stocks, symbol)
		}
		acc.Balance += total

		res = &StockTradeResult{
			AccountState: stateOf(acc),
			Symbol:       symbol,
			Shares:       shares,
			Price:        price,
			Total:        total,
			Stocks:       copyCounts(acc.Stocks),
			Message:      fmt.Sprintf("Sold %d %s at %s", shares, symbol, models.FormatCurrency(price)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
