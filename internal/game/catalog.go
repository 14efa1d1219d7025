package game

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/tatianab/nairawise/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Challenge is a starting situation picked at setup.
type Challenge struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Balance   int64  `yaml:"balance"`
	Savings   int64  `yaml:"savings"`
	Debt      int64  `yaml:"debt"`
	Happiness int    `yaml:"happiness"`
}

type catalogData struct {
	Stocks           []models.Instrument `yaml:"stocks"`
	Goals            []models.Goal       `yaml:"goals"`
	Challenges       []Challenge         `yaml:"challenges"`
	FallbackScenario models.Scenario     `yaml:"fallback_scenario"`
	FallbackSummary  string              `yaml:"fallback_summary"`
}

var catalog = mustLoadCatalog()

func mustLoadCatalog() catalogData {
	var c catalogData
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		panic(fmt.Sprintf("game: bad embedded catalog: %v", err))
	}
	return c
}

// DefaultStocks returns a fresh copy of the starting instruments.
func DefaultStocks() []models.Instrument {
	out := make([]models.Instrument, len(catalog.Stocks))
	for i, s := range catalog.Stocks {
		s.History = append([]int64(nil), s.History...)
		out[i] = s
	}
	return out
}

// StockIDs lists the ids of the tradable instruments.
func StockIDs() []string {
	ids := make([]string, len(catalog.Stocks))
	for i, s := range catalog.Stocks {
		ids[i] = s.ID
	}
	return ids
}

// Goals returns the selectable goals.
func Goals() []models.Goal {
	return append([]models.Goal(nil), catalog.Goals...)
}

// Challenges returns the selectable starting challenges.
func Challenges() []Challenge {
	return append([]Challenge(nil), catalog.Challenges...)
}

// FallbackScenario is the fixed scenario used when the oracle fails.
func FallbackScenario() models.Scenario {
	s := catalog.FallbackScenario
	s.Choices = append([]models.Choice(nil), s.Choices...)
	s.Fallback = true
	return s
}

// FallbackSummary is the canned end-of-run message.
func FallbackSummary() string {
	return strings.TrimSpace(catalog.FallbackSummary)
}

// MinSalary is the lowest monthly salary accepted at setup.
const MinSalary = 30000

// SetupInput is what the player fills in before the first week.
type SetupInput struct {
	Name      string
	City      string
	Job       string
	Salary    int64
	Challenge string   // defaults to the first challenge
	GoalIDs   []string // defaults to every goal
}

// SetupError reports an invalid setup field.
type SetupError struct {
	Field  string
	Reason string
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate rejects setup input that cannot start a game.
func (in SetupInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &SetupError{Field: "name", Reason: "name is required"}
	}
	if in.Salary < MinSalary {
		return &SetupError{Field: "salary", Reason: fmt.Sprintf("salary must be at least ₦%d", MinSalary)}
	}
	if in.Challenge != "" {
		if _, ok := findChallenge(in.Challenge); !ok {
			return &SetupError{Field: "challenge", Reason: fmt.Sprintf("unknown challenge %q", in.Challenge)}
		}
	}
	for _, id := range in.GoalIDs {
		if _, ok := findGoal(id); !ok {
			return &SetupError{Field: "goals", Reason: fmt.Sprintf("unknown goal %q", id)}
		}
	}
	return nil
}

func findChallenge(id string) (Challenge, bool) {
	for _, c := range catalog.Challenges {
		if c.ID == id {
			return c, true
		}
	}
	return Challenge{}, false
}

func findGoal(id string) (models.Goal, bool) {
	for _, g := range catalog.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return models.Goal{}, false
}

// NewSession builds the starting session for a validated setup.
func NewSession(id string, in SetupInput) (*models.GameSession, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ch := catalog.Challenges[0]
	if in.Challenge != "" {
		ch, _ = findChallenge(in.Challenge)
	}

	var goals []models.Goal
	if len(in.GoalIDs) == 0 {
		goals = Goals()
	} else {
		for _, gid := range in.GoalIDs {
			g, _ := findGoal(gid)
			goals = append(goals, g)
		}
	}

	job := strings.TrimSpace(in.Job)
	if job == "" {
		job = "Lagos Junior Consultant"
	}

	return &models.GameSession{
		ID:     id,
		Status: models.StatusActive,
		Stats: models.PlayerStats{
			Name:        strings.TrimSpace(in.Name),
			City:        strings.TrimSpace(in.City),
			Job:         job,
			Salary:      in.Salary,
			Balance:     ch.Balance,
			Savings:     ch.Savings,
			Debt:        ch.Debt,
			Happiness:   ch.Happiness,
			CurrentWeek: 1,
		},
		Goals:     goals,
		History:   []models.GameLog{},
		Stocks:    DefaultStocks(),
		Portfolio: []models.PortfolioItem{},
	}, nil
}
