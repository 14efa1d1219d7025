package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tatianab/nairawise/internal/models"
)

const (
	equityBand = 0.05
	fundBand   = 0.02
	newsBias   = 0.10

	// HistoryCap bounds each instrument's price history.
	HistoryCap = 20
	// PriceFloor is the lowest price a tick can produce.
	PriceFloor = int64(1)
)

// Source is the random source the market draws from.
type Source interface {
	Float64() float64
}

// Market moves instrument prices once per advanced week.
type Market struct {
	rand Source
}

// NewMarket returns a Market drawing from src. A nil src uses a generator
// seeded with seed.
func NewMarket(src Source, seed int64) *Market {
	if src == nil {
		src = rand.New(rand.NewSource(seed))
	}
	return &Market{rand: src}
}

// Tick applies one week's random walk to stocks in place. An event naming an
// instrument biases that instrument's move by its polarity.
func (m *Market) Tick(stocks []models.Instrument, event *models.MarketEvent) {
	for i := range stocks {
		s := &stocks[i]
		band := equityBand
		if s.AssetType == models.AssetFund {
			band = fundBand
		}
		change := (m.rand.Float64()*2 - 1) * band
		if event != nil && event.StockID == s.ID {
			switch event.Impact {
			case models.ImpactPositive:
				change += newsBias
			case models.ImpactNegative:
				change -= newsBias
			}
		}

		next := int64(math.Round(float64(s.Price) * (1 + change)))
		s.Price = max(PriceFloor, next)
		s.History = append(s.History, s.Price)
		if len(s.History) > HistoryCap {
			s.History = append([]int64(nil), s.History[len(s.History)-HistoryCap:]...)
		}
	}
}

type firedOrder struct {
	stockID string
	kind    string
	price   int64
}

// EvaluateTriggers liquidates every holding whose take-profit or stop-loss is
// crossed by the current price and returns one notification per sale.
// Take-profit is checked first.
func EvaluateTriggers(store *Store) []string {
	session := store.Session()
	var fired []firedOrder
	for _, h := range session.Portfolio {
		stock, ok := session.Stock(h.StockID)
		if !ok {
			continue
		}
		switch {
		case h.TakeProfit != nil && stock.Price >= *h.TakeProfit:
			fired = append(fired, firedOrder{h.StockID, "Take-profit", stock.Price})
		case h.StopLoss != nil && stock.Price <= *h.StopLoss:
			fired = append(fired, firedOrder{h.StockID, "Stop-loss", stock.Price})
		}
	}

	var notes []string
	for _, f := range fired {
		var shares int64
		if h, ok := session.Holding(f.stockID); ok {
			shares = h.Shares
		}
		proceeds := store.liquidate(f.stockID, f.price)
		name := f.stockID
		if stock, ok := session.Stock(f.stockID); ok {
			name = stock.Name
		}
		notes = append(notes, fmt.Sprintf("%s hit on %s: sold %d at ₦%d for ₦%d", f.kind, name, shares, f.price, proceeds))
	}
	return notes
}
