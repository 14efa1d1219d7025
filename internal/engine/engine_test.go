package engine

import (
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/nairawise/internal/models"
)

var testStockIDs = []string{"lagos-gas", "kano-textiles", "nairatech", "obudu-agri"}

const goodScenario = `{
  "title": "Owanbe Saturday",
  "description": "Your cousin's wedding needs aso-ebi.",
  "imageTheme": "wedding",
  "choices": [
    {"text": "Buy the aso-ebi", "consequence": "You looked sharp.", "impact": {"balance": -25000.4, "savings": 0, "debt": 0, "happiness": 8}},
    {"text": "Stay home", "consequence": "Family is vexed.", "impact": {"balance": 0, "savings": 0, "debt": 0, "happiness": -6}},
    {"text": "Buy NairaTech shares instead", "consequence": "You invested.", "impact": {"balance": 0, "savings": 0, "debt": 0, "happiness": 1}, "investmentId": "nairatech"}
  ],
  "marketEvent": {"headline": "NairaTech wins CBN licence", "impact": "Positive", "stockId": "nairatech"}
}`

func TestParseScenario(t *testing.T) {
	sc, err := parseScenario(goodScenario, testStockIDs)
	require.NoError(t, err)

	assert.Equal(t, "Owanbe Saturday", sc.Title)
	assert.Equal(t, "wedding", sc.ImageTheme)
	require.Len(t, sc.Choices, 3)
	assert.Equal(t, int64(-25000), sc.Choices[0].Impact.Balance)
	assert.Equal(t, 8, sc.Choices[0].Impact.Happiness)
	assert.Equal(t, "nairatech", sc.Choices[2].InvestmentID)
	require.NotNil(t, sc.MarketEvent)
	assert.Equal(t, models.ImpactPositive, sc.MarketEvent.Impact)
	assert.False(t, sc.Fallback)
}

func TestParseScenarioStripsFences(t *testing.T) {
	sc, err := parseScenario("```json\n"+goodScenario+"\n```", testStockIDs)
	require.NoError(t, err)
	assert.Equal(t, "Owanbe Saturday", sc.Title)
}

func TestParseScenarioEscapedSlash(t *testing.T) {
	raw := strings.Replace(goodScenario, `"Owanbe Saturday"`, `"Owanbe 1\/2 price"`, 1)
	sc, err := parseScenario(raw, testStockIDs)
	require.NoError(t, err)
	assert.Equal(t, "Owanbe 1/2 price", sc.Title)
}

func TestParseScenarioDuplicateKey(t *testing.T) {
	raw := strings.Replace(goodScenario, `"title": "Owanbe Saturday",`, `"title": "Draft", "title": "Owanbe Saturday",`, 1)
	sc, err := parseScenario(raw, testStockIDs)
	require.NoError(t, err)
	assert.Equal(t, "Owanbe Saturday", sc.Title)
}

func TestParseScenarioTabIndented(t *testing.T) {
	raw := "{\n\t\"title\": \"Sapa week\",\n\t\"description\": \"Salary is late.\",\n\t\"choices\": [\n" +
		"\t\t{\"text\": \"Borrow\", \"consequence\": \"Debt grows.\", \"impact\": {\"balance\": 10000, \"savings\": 0, \"debt\": 10000, \"happiness\": 0}},\n" +
		"\t\t{\"text\": \"Fast\", \"consequence\": \"Hungry.\", \"impact\": {\"balance\": 0, \"savings\": 0, \"debt\": 0, \"happiness\": -5}},\n" +
		"\t\t{\"text\": \"Sell phone\", \"consequence\": \"Offline.\", \"impact\": {\"balance\": 40000, \"savings\": 0, \"debt\": 0, \"happiness\": -10}}\n" +
		"\t]\n}"
	sc, err := parseScenario(raw, testStockIDs)
	require.NoError(t, err)
	assert.Equal(t, "Sapa week", sc.Title)
	require.Len(t, sc.Choices, 3)
	assert.Equal(t, int64(40000), sc.Choices[2].Impact.Balance)
}

func TestParseScenarioDropsBadOptionalParts(t *testing.T) {
	raw := strings.Replace(goodScenario, `"stockId": "nairatech"`, `"stockId": "dangote"`, 1)
	raw = strings.Replace(raw, `"investmentId": "nairatech"`, `"investmentId": "bitcoin"`, 1)

	sc, err := parseScenario(raw, testStockIDs)
	require.NoError(t, err)
	assert.Nil(t, sc.MarketEvent)
	assert.Empty(t, sc.Choices[2].InvestmentID)
}

func TestParseScenarioRejects(t *testing.T) {
	tests := map[string]string{
		"not json":       "the model said no",
		"missing title":  strings.Replace(goodScenario, `"title": "Owanbe Saturday",`, "", 1),
		"two choices":    `{"title": "t", "description": "d", "choices": [{"text": "a", "consequence": "b"}, {"text": "c", "consequence": "d"}]}`,
		"empty choice":   `{"title": "t", "description": "d", "choices": [{"text": "", "consequence": "b"}, {"text": "c", "consequence": "d"}, {"text": "e", "consequence": "f"}]}`,
		"bad event kind": strings.Replace(goodScenario, `"Positive"`, `"bullish"`, 1),
		"huge balance":   strings.Replace(goodScenario, `"balance": -25000.4`, `"balance": 1e20`, 1),
		"huge happiness": strings.Replace(goodScenario, `"happiness": 8`, `"happiness": 500`, 1),
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseScenario(raw, testStockIDs)
			assert.ErrorIs(t, err, models.ErrInvalidScenario)
		})
	}
}

func TestRenderScenarioPrompt(t *testing.T) {
	stats := models.PlayerStats{Name: "Ada", Job: "Nurse", City: "Ibadan", Balance: 150000, Happiness: 80, CurrentWeek: 4}
	history := []models.GameLog{{Week: 3, Title: "Urgent 2k", Decision: "Sent it"}}
	stocks := []models.Instrument{{ID: "lagos-gas", Name: "Lagos Gas Ltd.", Sector: "Energy"}}

	prompt, err := renderScenarioPrompt(stats, history, stocks)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Ada, a Nurse living in Ibadan")
	assert.Contains(t, prompt, "Week: 4")
	assert.Contains(t, prompt, "₦150000")
	assert.Contains(t, prompt, "Week 3 (Urgent 2k): Sent it")
	assert.Contains(t, prompt, "lagos-gas: Lagos Gas Ltd. (Energy)")
}

func TestRenderReviewPrompt(t *testing.T) {
	stats := models.PlayerStats{Name: "Ada", Job: "Nurse", Debt: 5000, CurrentWeek: 9}
	prompt, err := renderReviewPrompt(stats, nil)
	require.NoError(t, err)
	assert.Contains(t, prompt, "after week 9")
	assert.Contains(t, prompt, "₦5000 debt")
	assert.NotContains(t, prompt, "Decisions:")
}

func TestResponseText(t *testing.T) {
	assert.Empty(t, responseText(nil))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Well done, "), genai.Text("my pikin.")}},
		}},
	}
	assert.Equal(t, "Well done, my pikin.", responseText(resp))
}

func TestScenarioSchema(t *testing.T) {
	s := scenarioSchema(testStockIDs)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.ElementsMatch(t, []string{"title", "description", "choices", "imageTheme"}, s.Required)
	assert.Equal(t, testStockIDs, s.Properties["marketEvent"].Properties["stockId"].Enum)
}
