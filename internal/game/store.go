package game

import (
	"math"

	"github.com/tatianab/nairawise/internal/models"
)

// Rules configures the terminal conditions of a run.
type Rules struct {
	WeekLimit        int  // 0 means unbounded
	StrictBankruptcy bool // also require empty savings and debt above DebtThreshold
	DebtThreshold    int64
}

// DefaultRules are used when a Game is built without explicit rules.
var DefaultRules = Rules{WeekLimit: 52, DebtThreshold: 500000}

// CheckTerminal reports whether stats end the run and why. It returns
// StatusActive and EndNone for a run that continues.
func CheckTerminal(stats models.PlayerStats, rules Rules) (models.Status, models.EndReason) {
	bankrupt := stats.Balance <= 0
	if rules.StrictBankruptcy {
		bankrupt = bankrupt && stats.Savings <= 0 && stats.Debt > rules.DebtThreshold
	}
	switch {
	case bankrupt:
		return models.StatusGameOver, models.EndBankrupt
	case stats.Happiness <= 0:
		return models.StatusGameOver, models.EndUnhappy
	case rules.WeekLimit > 0 && stats.CurrentWeek > rules.WeekLimit:
		return models.StatusComplete, models.EndWeekLimit
	}
	return models.StatusActive, models.EndNone
}

// TriggerKind selects which resting order SetTrigger changes.
type TriggerKind string

const (
	StopLoss   TriggerKind = "stop_loss"
	TakeProfit TriggerKind = "take_profit"
)

// Store owns every mutation of a session's stats, goals, journal and
// portfolio. It is not safe for concurrent use.
type Store struct {
	session *models.GameSession
}

func NewStore(session *models.GameSession) *Store {
	return &Store{session: session}
}

func (s *Store) Session() *models.GameSession {
	return s.session
}

// ApplyChoice applies c to the player's stats, advances the week, records the
// decision in the journal and returns the consequence text.
func (s *Store) ApplyChoice(c models.Choice) string {
	st := &s.session.Stats
	prevWeek := st.CurrentWeek

	st.Balance = clampMin(st.Balance + c.Impact.Balance)
	st.Savings = clampMin(st.Savings + c.Impact.Savings)
	st.Debt = clampMin(st.Debt + c.Impact.Debt)
	st.Happiness = clampHappiness(st.Happiness + c.Impact.Happiness)
	st.CurrentWeek++

	title := ""
	if s.session.CurrentScenario != nil {
		title = s.session.CurrentScenario.Title
	}
	s.session.History = append(s.session.History, models.GameLog{
		Week:        prevWeek,
		Title:       title,
		Decision:    c.Text,
		Consequence: c.Consequence,
	})

	if c.InvestmentID != "" {
		s.Buy(c.InvestmentID)
	}
	s.UpdateGoals()
	return c.Consequence
}

// NetAssets is balance plus savings plus the portfolio at market, minus debt.
func (s *Store) NetAssets() int64 {
	st := s.session.Stats
	return st.Balance + st.Savings + s.PortfolioValue() - st.Debt
}

// PortfolioValue marks every holding to its current price.
func (s *Store) PortfolioValue() int64 {
	var total int64
	for _, p := range s.session.Portfolio {
		if stock, ok := s.session.Stock(p.StockID); ok {
			total += stock.Price * p.Shares
		}
	}
	return total
}

// UpdateGoals marks goals whose target is reached. Completed goals stay
// completed.
func (s *Store) UpdateGoals() []models.Goal {
	net := s.NetAssets()
	var reached []models.Goal
	for i := range s.session.Goals {
		g := &s.session.Goals[i]
		if !g.Completed && net >= g.Target {
			g.Completed = true
			reached = append(reached, *g)
		}
	}
	return reached
}

// Buy purchases one unit of the instrument at its current price. It does
// nothing when the instrument is unknown or the balance cannot cover it.
func (s *Store) Buy(id string) bool {
	stock, ok := s.session.Stock(id)
	if !ok || s.session.Stats.Balance < stock.Price {
		return false
	}
	s.session.Stats.Balance -= stock.Price

	if h, ok := s.session.Holding(id); ok {
		total := h.AveragePrice*h.Shares + stock.Price
		h.Shares++
		h.AveragePrice = int64(math.Round(float64(total) / float64(h.Shares)))
		return true
	}
	s.session.Portfolio = append(s.session.Portfolio, models.PortfolioItem{
		StockID:      id,
		Shares:       1,
		AveragePrice: stock.Price,
	})
	return true
}

// Sell disposes of one unit at the current price. It does nothing without a
// holding.
func (s *Store) Sell(id string) bool {
	stock, ok := s.session.Stock(id)
	if !ok {
		return false
	}
	h, ok := s.session.Holding(id)
	if !ok || h.Shares <= 0 {
		return false
	}
	s.session.Stats.Balance += stock.Price
	h.Shares--
	if h.Shares == 0 {
		s.removeHolding(id)
	}
	return true
}

// SetTrigger sets a resting stop-loss or take-profit on a holding, or clears
// it when value is nil.
func (s *Store) SetTrigger(id string, kind TriggerKind, value *int64) bool {
	h, ok := s.session.Holding(id)
	if !ok {
		return false
	}
	var v *int64
	if value != nil {
		n := *value
		v = &n
	}
	switch kind {
	case StopLoss:
		h.StopLoss = v
	case TakeProfit:
		h.TakeProfit = v
	default:
		return false
	}
	return true
}

// liquidate sells the whole holding at price and returns the proceeds.
func (s *Store) liquidate(id string, price int64) int64 {
	h, ok := s.session.Holding(id)
	if !ok {
		return 0
	}
	proceeds := price * h.Shares
	s.session.Stats.Balance += proceeds
	s.removeHolding(id)
	return proceeds
}

func (s *Store) removeHolding(id string) {
	out := s.session.Portfolio[:0]
	for _, p := range s.session.Portfolio {
		if p.StockID != id {
			out = append(out, p)
		}
	}
	s.session.Portfolio = out
}

func clampMin(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampHappiness(v int) int {
	return min(100, max(0, v))
}
