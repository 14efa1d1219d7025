package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/nairawise/internal/models"
)

func newTestSession() *models.GameSession {
	return &models.GameSession{
		ID:     "test",
		Status: models.StatusActive,
		Stats: models.PlayerStats{
			Name:        "Ada",
			Balance:     150000,
			Savings:     20000,
			Happiness:   80,
			CurrentWeek: 1,
		},
		Goals:  Goals(),
		Stocks: DefaultStocks(),
		CurrentScenario: &models.Scenario{
			Title: "Owanbe season",
		},
	}
}

func int64p(v int64) *int64 { return &v }

func TestApplyChoiceClampsBalance(t *testing.T) {
	store := NewStore(newTestSession())

	got := store.ApplyChoice(models.Choice{
		Text:        "Sew aso-ebi for every party",
		Consequence: "You looked fresh, but Sapa has entered.",
		Impact:      models.Impact{Balance: -160000, Happiness: -10},
	})

	s := store.Session()
	assert.Equal(t, "You looked fresh, but Sapa has entered.", got)
	assert.Equal(t, int64(0), s.Stats.Balance)
	assert.Equal(t, int64(20000), s.Stats.Savings)
	assert.Equal(t, 70, s.Stats.Happiness)
	assert.Equal(t, 2, s.Stats.CurrentWeek)
	require.Len(t, s.History, 1)
	assert.Equal(t, models.GameLog{
		Week:        1,
		Title:       "Owanbe season",
		Decision:    "Sew aso-ebi for every party",
		Consequence: "You looked fresh, but Sapa has entered.",
	}, s.History[0])
}

func TestApplyChoiceClampsHappinessAndDebts(t *testing.T) {
	tests := []struct {
		name          string
		happiness     int
		delta         int
		wantHappiness int
	}{
		{"overflow", 95, 40, 100},
		{"underflow", 5, -40, 0},
		{"inside", 50, 10, 60},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			session := newTestSession()
			session.Stats.Happiness = tc.happiness
			store := NewStore(session)
			store.ApplyChoice(models.Choice{Impact: models.Impact{Savings: -999999, Debt: -5, Happiness: tc.delta}})
			assert.Equal(t, tc.wantHappiness, session.Stats.Happiness)
			assert.Equal(t, int64(0), session.Stats.Savings)
			assert.Equal(t, int64(0), session.Stats.Debt)
		})
	}
}

func TestApplyChoiceAdvancesWeekByOne(t *testing.T) {
	store := NewStore(newTestSession())
	for want := 2; want <= 6; want++ {
		store.ApplyChoice(models.Choice{Text: "x"})
		assert.Equal(t, want, store.Session().Stats.CurrentWeek)
	}
	assert.Len(t, store.Session().History, 5)
}

func TestApplyChoiceBuysInvestment(t *testing.T) {
	store := NewStore(newTestSession())
	store.ApplyChoice(models.Choice{Text: "Invest", InvestmentID: "kano-textiles"})

	h, ok := store.Session().Holding("kano-textiles")
	require.True(t, ok)
	assert.Equal(t, int64(1), h.Shares)
	assert.Equal(t, int64(145000), store.Session().Stats.Balance)
}

func TestGoalsLatch(t *testing.T) {
	session := newTestSession()
	session.Goals = []models.Goal{{ID: "emergency-fund", Target: 500000}}
	store := NewStore(session)

	store.ApplyChoice(models.Choice{Impact: models.Impact{Balance: 400000}})
	assert.True(t, session.Goals[0].Completed)

	store.ApplyChoice(models.Choice{Impact: models.Impact{Balance: -500000}})
	assert.True(t, session.Goals[0].Completed)
}

func TestNetAssetsIncludesPortfolio(t *testing.T) {
	session := newTestSession()
	session.Stats.Debt = 5000
	session.Portfolio = []models.PortfolioItem{{StockID: "nairatech", Shares: 2, AveragePrice: 24000}}
	store := NewStore(session)
	assert.Equal(t, int64(150000+20000+2*25000-5000), store.NetAssets())
}

func TestBuy(t *testing.T) {
	session := newTestSession()
	store := NewStore(session)

	require.True(t, store.Buy("lagos-gas"))
	session.Stocks[0].Price = 13500
	require.True(t, store.Buy("lagos-gas"))

	h, ok := session.Holding("lagos-gas")
	require.True(t, ok)
	assert.Equal(t, int64(2), h.Shares)
	assert.Equal(t, int64(13000), h.AveragePrice)
	assert.Equal(t, int64(150000-12500-13500), session.Stats.Balance)
}

func TestBuyInsufficientBalanceIsNoop(t *testing.T) {
	session := newTestSession()
	session.Stats.Balance = 24999
	store := NewStore(session)

	assert.False(t, store.Buy("nairatech"))
	assert.Equal(t, int64(24999), session.Stats.Balance)
	assert.Empty(t, session.Portfolio)

	assert.False(t, store.Buy("does-not-exist"))
}

func TestSell(t *testing.T) {
	session := newTestSession()
	session.Portfolio = []models.PortfolioItem{{StockID: "obudu-agri", Shares: 2, AveragePrice: 7000}}
	store := NewStore(session)

	require.True(t, store.Sell("obudu-agri"))
	h, ok := session.Holding("obudu-agri")
	require.True(t, ok)
	assert.Equal(t, int64(1), h.Shares)
	assert.Equal(t, int64(7000), h.AveragePrice)
	assert.Equal(t, int64(158000), session.Stats.Balance)

	require.True(t, store.Sell("obudu-agri"))
	_, ok = session.Holding("obudu-agri")
	assert.False(t, ok)
}

func TestSellWithoutHoldingIsNoop(t *testing.T) {
	session := newTestSession()
	session.Portfolio = []models.PortfolioItem{{StockID: "obudu-agri", Shares: 0}}
	store := NewStore(session)

	assert.False(t, store.Sell("lagos-gas"))
	assert.False(t, store.Sell("obudu-agri"))
	assert.Equal(t, int64(150000), session.Stats.Balance)
	assert.Len(t, session.Portfolio, 1)
}

func TestSetTrigger(t *testing.T) {
	session := newTestSession()
	session.Portfolio = []models.PortfolioItem{{StockID: "lagos-gas", Shares: 1, AveragePrice: 12500}}
	store := NewStore(session)

	v := int64(13000)
	require.True(t, store.SetTrigger("lagos-gas", TakeProfit, &v))
	v = 1
	assert.Equal(t, int64(13000), *session.Portfolio[0].TakeProfit)

	require.True(t, store.SetTrigger("lagos-gas", StopLoss, int64p(12000)))
	require.True(t, store.SetTrigger("lagos-gas", TakeProfit, nil))
	assert.Nil(t, session.Portfolio[0].TakeProfit)
	assert.Equal(t, int64(12000), *session.Portfolio[0].StopLoss)

	assert.False(t, store.SetTrigger("nairatech", StopLoss, int64p(1)))
}

func TestCheckTerminal(t *testing.T) {
	rules := Rules{WeekLimit: 12, DebtThreshold: 100000}
	tests := []struct {
		name       string
		stats      models.PlayerStats
		rules      Rules
		wantStatus models.Status
		wantReason models.EndReason
	}{
		{"active", models.PlayerStats{Balance: 1, Happiness: 1, CurrentWeek: 12}, rules, models.StatusActive, models.EndNone},
		{"bankrupt", models.PlayerStats{Balance: 0, Savings: 500, Happiness: 50, CurrentWeek: 3}, rules, models.StatusGameOver, models.EndBankrupt},
		{"unhappy", models.PlayerStats{Balance: 10, Happiness: 0, CurrentWeek: 3}, rules, models.StatusGameOver, models.EndUnhappy},
		{"week limit", models.PlayerStats{Balance: 10, Happiness: 10, CurrentWeek: 13}, rules, models.StatusComplete, models.EndWeekLimit},
		{"unbounded", models.PlayerStats{Balance: 10, Happiness: 10, CurrentWeek: 5000}, Rules{}, models.StatusActive, models.EndNone},
		{"strict keeps going with savings", models.PlayerStats{Balance: 0, Savings: 1, Debt: 200000, Happiness: 10, CurrentWeek: 2},
			Rules{StrictBankruptcy: true, DebtThreshold: 100000}, models.StatusActive, models.EndNone},
		{"strict bankrupt", models.PlayerStats{Balance: 0, Debt: 200000, Happiness: 10, CurrentWeek: 2},
			Rules{StrictBankruptcy: true, DebtThreshold: 100000}, models.StatusGameOver, models.EndBankrupt},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, reason := CheckTerminal(tc.stats, tc.rules)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantReason, reason)
		})
	}
}
