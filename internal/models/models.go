package models

import "time"

// Status is the lifecycle state of a game session.
type Status string

const (
	StatusStart    Status = "START"
	StatusActive   Status = "ACTIVE"
	StatusGameOver Status = "GAMEOVER"
	StatusComplete Status = "COMPLETE"
)

// Terminal reports whether no further choices can be made.
func (s Status) Terminal() bool {
	return s == StatusGameOver || s == StatusComplete
}

// EndReason explains why a session left the ACTIVE state.
type EndReason string

const (
	EndNone      EndReason = ""
	EndBankrupt  EndReason = "bankrupt"
	EndUnhappy   EndReason = "unhappy"
	EndWeekLimit EndReason = "week_limit"
	EndRetired   EndReason = "retired"
)

// PlayerStats holds the player's finances. Amounts are whole naira.
type PlayerStats struct {
	Name        string `yaml:"name"`
	City        string `yaml:"city"`
	Job         string `yaml:"job"`
	Salary      int64  `yaml:"salary"`
	Balance     int64  `yaml:"balance"`
	Savings     int64  `yaml:"savings"`
	Debt        int64  `yaml:"debt"`
	Happiness   int    `yaml:"happiness"` // 0-100
	CurrentWeek int    `yaml:"current_week"`
}

// Impact is the set of deltas a choice applies to PlayerStats.
type Impact struct {
	Balance   int64 `yaml:"balance"`
	Savings   int64 `yaml:"savings"`
	Debt      int64 `yaml:"debt"`
	Happiness int   `yaml:"happiness"`
}

// Choice is one option of a Scenario.
type Choice struct {
	Text         string `yaml:"text"`
	Consequence  string `yaml:"consequence"`
	Impact       Impact `yaml:"impact"`
	InvestmentID string `yaml:"investment_id,omitempty"` // stock bought when chosen
}

// News polarity values carried by MarketEvent.Impact.
const (
	ImpactPositive = "positive"
	ImpactNegative = "negative"
	ImpactNeutral  = "neutral"
)

// MarketEvent is a headline that biases one instrument's next price move.
type MarketEvent struct {
	Headline string `yaml:"headline"`
	Impact   string `yaml:"impact"`
	StockID  string `yaml:"stock_id"`
	Week     int    `yaml:"week,omitempty"`
}

// Scenario is the week's narrative as returned by the oracle.
type Scenario struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	ImageTheme  string       `yaml:"image_theme"`
	Choices     []Choice     `yaml:"choices"`
	MarketEvent *MarketEvent `yaml:"market_event,omitempty"`
	Fallback    bool         `yaml:"fallback,omitempty"` // canned content, not from the oracle
}

// Asset types of an Instrument.
const (
	AssetEquity = "equity"
	AssetFund   = "fund"
)

// Instrument is a tradable stock or fund.
type Instrument struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Price     int64   `yaml:"price"`
	History   []int64 `yaml:"history"` // newest last
	Sector    string  `yaml:"sector"`
	AssetType string  `yaml:"asset_type"`
}

// PortfolioItem is the player's holding in one instrument.
type PortfolioItem struct {
	StockID      string `yaml:"stock_id"`
	Shares       int64  `yaml:"shares"`
	AveragePrice int64  `yaml:"average_price"`
	StopLoss     *int64 `yaml:"stop_loss,omitempty"`
	TakeProfit   *int64 `yaml:"take_profit,omitempty"`
}

// GameLog is one resolved week in the player's journal.
type GameLog struct {
	Week        int    `yaml:"week"`
	Title       string `yaml:"title"`
	Decision    string `yaml:"decision"`
	Consequence string `yaml:"consequence"`
}

// Goal is a savings target. Completed never reverts once set.
type Goal struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Target    int64  `yaml:"target"`
	Category  string `yaml:"category"`
	Completed bool   `yaml:"completed"`
}

// LeaderboardEntry records a finished run.
type LeaderboardEntry struct {
	Name      string    `yaml:"name"`
	City      string    `yaml:"city"`
	NetAssets int64     `yaml:"net_assets"`
	Week      int       `yaml:"week"`
	Rank      string    `yaml:"rank"`
	Timestamp time.Time `yaml:"timestamp"`
}

// GameSession aggregates everything persisted for one run.
type GameSession struct {
	ID              string          `yaml:"id"`
	Status          Status          `yaml:"status"`
	EndReason       EndReason       `yaml:"end_reason,omitempty"`
	Stats           PlayerStats     `yaml:"stats"`
	Goals           []Goal          `yaml:"goals"`
	History         []GameLog       `yaml:"history"`
	Stocks          []Instrument    `yaml:"stocks"`
	Portfolio       []PortfolioItem `yaml:"portfolio"`
	MarketNews      []MarketEvent   `yaml:"market_news"`
	CurrentScenario *Scenario       `yaml:"current_scenario,omitempty"`
	LastConsequence string          `yaml:"last_consequence,omitempty"` // set until the player proceeds
	Summary         string          `yaml:"summary,omitempty"`
}

// Stock returns the instrument with the given id.
func (s *GameSession) Stock(id string) (*Instrument, bool) {
	for i := range s.Stocks {
		if s.Stocks[i].ID == id {
			return &s.Stocks[i], true
		}
	}
	return nil, false
}

// Holding returns the portfolio item for the given stock id.
func (s *GameSession) Holding(id string) (*PortfolioItem, bool) {
	for i := range s.Portfolio {
		if s.Portfolio[i].StockID == id {
			return &s.Portfolio[i], true
		}
	}
	return nil, false
}

// RecentHistory returns at most n of the newest journal entries.
func (s *GameSession) RecentHistory(n int) []GameLog {
	if len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}
