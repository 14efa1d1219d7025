package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tatianab/nairawise/internal/models"
)

// fakeOracle returns numbered scenarios. When gate is non-nil every call
// blocks until a value is sent on it.
type fakeOracle struct {
	mu      sync.Mutex
	calls   int
	err     error
	gate    chan struct{}
	summary string
	invalid bool

	onSummarize func()
}

func (f *fakeOracle) NextScenario(ctx context.Context, stats models.PlayerStats, history []models.GameLog) (models.Scenario, error) {
	f.mu.Lock()
	f.calls++
	n, err, gate, invalid := f.calls, f.err, f.gate, f.invalid
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return models.Scenario{}, ctx.Err()
		}
	}
	if err != nil {
		return models.Scenario{}, err
	}
	if invalid {
		return models.Scenario{Title: "only one choice", Description: "d", Choices: []models.Choice{{Text: "a", Consequence: "b"}}}, nil
	}
	return testScenario(fmt.Sprintf("Week scenario %d", n)), nil
}

func (f *fakeOracle) Summarize(ctx context.Context, stats models.PlayerStats, history []models.GameLog) (string, error) {
	if f.onSummarize != nil {
		f.onSummarize()
	}
	if f.summary == "" {
		return "", errors.New("oracle down")
	}
	return f.summary, nil
}

func (f *fakeOracle) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testScenario(title string) models.Scenario {
	return models.Scenario{
		Title:       title,
		Description: "Your cousin is getting married.",
		ImageTheme:  "wedding",
		Choices: []models.Choice{
			{Text: "Save", Consequence: "You saved.", Impact: models.Impact{Balance: -5000, Savings: 5000}},
			{Text: "Spend", Consequence: "You spent.", Impact: models.Impact{Balance: -30000, Happiness: 10}},
			{Text: "Gamble", Consequence: "You lost.", Impact: models.Impact{Balance: -160000, Happiness: -10}},
		},
	}
}
