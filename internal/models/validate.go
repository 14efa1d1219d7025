package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	MinChoices = 3
	MaxChoices = 4

	// MaxImpact bounds the naira a single choice may move in any one field.
	MaxImpact = 1_000_000_000_000
	// MaxHappinessImpact bounds a choice's happiness delta.
	MaxHappinessImpact = 100
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Validate checks that a scenario received from outside is usable. stockIDs
// lists the instruments a market event or investment may name.
func (s Scenario) Validate(stockIDs []string) error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidScenario)
	}
	if strings.TrimSpace(s.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidScenario)
	}
	if n := len(s.Choices); n < MinChoices || n > MaxChoices {
		return fmt.Errorf("%w: want %d-%d choices, got %d", ErrInvalidScenario, MinChoices, MaxChoices, n)
	}
	for i, c := range s.Choices {
		if strings.TrimSpace(c.Text) == "" || strings.TrimSpace(c.Consequence) == "" {
			return fmt.Errorf("%w: choice %d missing text or consequence", ErrInvalidScenario, i)
		}
		if err := c.Impact.check(); err != nil {
			return fmt.Errorf("%w: choice %d %v", ErrInvalidScenario, i, err)
		}
		if c.InvestmentID != "" && !slices.Contains(stockIDs, c.InvestmentID) {
			return fmt.Errorf("%w: choice %d names unknown stock %q", ErrInvalidScenario, i, c.InvestmentID)
		}
	}
	if ev := s.MarketEvent; ev != nil {
		switch ev.Impact {
		case ImpactPositive, ImpactNegative, ImpactNeutral:
		default:
			return fmt.Errorf("%w: market event impact %q", ErrInvalidScenario, ev.Impact)
		}
		if !slices.Contains(stockIDs, ev.StockID) {
			return fmt.Errorf("%w: market event names unknown stock %q", ErrInvalidScenario, ev.StockID)
		}
	}
	return nil
}

func (im Impact) check() error {
	for _, v := range []int64{im.Balance, im.Savings, im.Debt} {
		if v > MaxImpact || v < -MaxImpact {
			return fmt.Errorf("naira impact %d out of range", v)
		}
	}
	if im.Happiness > MaxHappinessImpact || im.Happiness < -MaxHappinessImpact {
		return fmt.Errorf("happiness impact %d out of range", im.Happiness)
	}
	return nil
}
