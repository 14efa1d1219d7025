package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/nairawise/internal/models"
)

// Wire shapes of the oracle's JSON answer.
type wireScenario struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ImageTheme  string       `json:"imageTheme"`
	Choices     []wireChoice `json:"choices"`
	MarketEvent *wireEvent   `json:"marketEvent"`
}

type wireChoice struct {
	Text         string     `json:"text"`
	Consequence  string     `json:"consequence"`
	Impact       wireImpact `json:"impact"`
	InvestmentID string     `json:"investmentId"`
}

type wireImpact struct {
	Balance   float64 `json:"balance"`
	Savings   float64 `json:"savings"`
	Debt      float64 `json:"debt"`
	Happiness float64 `json:"happiness"`
}

// check rejects amounts that cannot be represented as a game impact.
func (im wireImpact) check() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"balance", im.Balance}, {"savings", im.Savings}, {"debt", im.Debt}} {
		if math.IsNaN(f.v) || math.Abs(f.v) > models.MaxImpact {
			return fmt.Errorf("%s impact %v out of range", f.name, f.v)
		}
	}
	if math.IsNaN(im.Happiness) || math.Abs(im.Happiness) > models.MaxHappinessImpact {
		return fmt.Errorf("happiness impact %v out of range", im.Happiness)
	}
	return nil
}

type wireEvent struct {
	Headline string `json:"headline"`
	Impact   string `json:"impact"`
	StockID  string `json:"stockId"`
}

// parseScenario turns raw model output into a validated Scenario. Optional
// parts that are malformed (an event without a headline, an investment in an
// unknown stock) are dropped rather than failing the whole scenario.
func parseScenario(text string, stockIDs []string) (models.Scenario, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	var w wireScenario
	if err := json.Unmarshal([]byte(clean), &w); err != nil {
		return models.Scenario{}, fmt.Errorf("%w: %v", models.ErrInvalidScenario, err)
	}

	sc := models.Scenario{
		Title:       strings.TrimSpace(w.Title),
		Description: strings.TrimSpace(w.Description),
		ImageTheme:  strings.TrimSpace(w.ImageTheme),
	}
	for i, c := range w.Choices {
		if err := c.Impact.check(); err != nil {
			return models.Scenario{}, fmt.Errorf("%w: choice %d %v", models.ErrInvalidScenario, i, err)
		}
		choice := models.Choice{
			Text:        strings.TrimSpace(c.Text),
			Consequence: strings.TrimSpace(c.Consequence),
			Impact: models.Impact{
				Balance:   int64(math.Round(c.Impact.Balance)),
				Savings:   int64(math.Round(c.Impact.Savings)),
				Debt:      int64(math.Round(c.Impact.Debt)),
				Happiness: int(math.Round(c.Impact.Happiness)),
			},
		}
		if id := strings.TrimSpace(c.InvestmentID); slices.Contains(stockIDs, id) {
			choice.InvestmentID = id
		}
		sc.Choices = append(sc.Choices, choice)
	}
	if ev := w.MarketEvent; ev != nil {
		event := models.MarketEvent{
			Headline: strings.TrimSpace(ev.Headline),
			Impact:   strings.ToLower(strings.TrimSpace(ev.Impact)),
			StockID:  strings.TrimSpace(ev.StockID),
		}
		if event.Headline != "" && slices.Contains(stockIDs, event.StockID) {
			sc.MarketEvent = &event
		}
	}

	if err := sc.Validate(stockIDs); err != nil {
		return models.Scenario{}, err
	}
	return sc, nil
}

// scenarioSchema is the response schema requested from Gemini.
func scenarioSchema(stockIDs []string) *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	num := &genai.Schema{Type: genai.TypeNumber}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       str(""),
			"description": str(""),
			"imageTheme":  str("one or two words describing the scene"),
			"choices": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"text":        str(""),
						"consequence": str(""),
						"impact": {
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"balance":   num,
								"savings":   num,
								"debt":      num,
								"happiness": num,
							},
							Required: []string{"balance", "savings", "debt", "happiness"},
						},
						"investmentId": {Type: genai.TypeString, Format: "enum", Enum: stockIDs, Nullable: true},
					},
					Required: []string{"text", "consequence", "impact"},
				},
			},
			"marketEvent": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"headline": str(""),
					"impact": {
						Type:   genai.TypeString,
						Format: "enum",
						Enum:   []string{models.ImpactPositive, models.ImpactNegative, models.ImpactNeutral},
					},
					"stockId": {Type: genai.TypeString, Format: "enum", Enum: stockIDs},
				},
				Required: []string{"headline", "impact", "stockId"},
			},
		},
		Required: []string{"title", "description", "choices", "imageTheme"},
	}
}
