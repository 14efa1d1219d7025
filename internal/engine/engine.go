package engine

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/nairawise/internal/models"
	"google.golang.org/api/option"
)

//go:embed prompts/next_scenario.txt
var nextScenarioPrompt string

//go:embed prompts/end_of_run.txt
var endOfRunPrompt string

var (
	nextScenarioTmpl = template.Must(template.New("next_scenario").Parse(nextScenarioPrompt))
	endOfRunTmpl     = template.Must(template.New("end_of_run").Parse(endOfRunPrompt))
)

const (
	scenarioInstruction = "You are a witty Nigerian financial expert. Generate immersive JSON scenarios for NairaWise. " +
		"Use Nigerian slang (Japa, Sapa, Owanbe, Aso-ebi, Urgent 2k). Offer one prudent, one social and one risky choice."
	reviewInstruction = "You are a wise Nigerian mentor, the Wise Oga, giving a quick performance review."
)

var errNoContent = errors.New("no content returned from Gemini")

// Engine is the Gemini-backed scenario oracle.
type Engine struct {
	client   *genai.Client
	scenario *genai.GenerativeModel
	review   *genai.GenerativeModel
	stocks   []models.Instrument
	log      *slog.Logger
}

// NewEngine connects to Gemini. stocks are the instruments scenarios may
// reference.
func NewEngine(ctx context.Context, apiKey, modelName string, stocks []models.Instrument, logger *slog.Logger) (*Engine, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	scenario := client.GenerativeModel(modelName)
	scenario.SystemInstruction = genai.NewUserContent(genai.Text(scenarioInstruction))
	scenario.ResponseMIMEType = "application/json"
	scenario.ResponseSchema = scenarioSchema(stockIDs(stocks))

	review := client.GenerativeModel(modelName)
	review.SystemInstruction = genai.NewUserContent(genai.Text(reviewInstruction))

	return &Engine{
		client:   client,
		scenario: scenario,
		review:   review,
		stocks:   stocks,
		log:      logger,
	}, nil
}

func (e *Engine) Close() {
	e.client.Close()
}

// NextScenario asks Gemini for the week's scenario and validates the answer.
func (e *Engine) NextScenario(ctx context.Context, stats models.PlayerStats, history []models.GameLog) (models.Scenario, error) {
	prompt, err := renderScenarioPrompt(stats, history, e.stocks)
	if err != nil {
		return models.Scenario{}, err
	}

	resp, err := e.scenario.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.Scenario{}, fmt.Errorf("generate scenario: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return models.Scenario{}, errNoContent
	}

	sc, err := parseScenario(text, stockIDs(e.stocks))
	if err != nil {
		e.log.Debug("unusable scenario", "err", err, "output", text)
		return models.Scenario{}, err
	}
	e.log.Debug("scenario generated", "week", stats.CurrentWeek, "title", sc.Title)
	return sc, nil
}

// Summarize asks Gemini for the end-of-run review.
func (e *Engine) Summarize(ctx context.Context, stats models.PlayerStats, history []models.GameLog) (string, error) {
	prompt, err := renderReviewPrompt(stats, history)
	if err != nil {
		return "", err
	}

	resp, err := e.review.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate review: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return "", errNoContent
	}
	return text, nil
}

type promptData struct {
	models.PlayerStats
	Week       int
	History    []models.GameLog
	Stocks     []models.Instrument
	MinChoices int
	MaxChoices int
}

func renderScenarioPrompt(stats models.PlayerStats, history []models.GameLog, stocks []models.Instrument) (string, error) {
	var buf bytes.Buffer
	err := nextScenarioTmpl.Execute(&buf, promptData{
		PlayerStats: stats,
		Week:        stats.CurrentWeek,
		History:     history,
		Stocks:      stocks,
		MinChoices:  models.MinChoices,
		MaxChoices:  models.MaxChoices,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderReviewPrompt(stats models.PlayerStats, history []models.GameLog) (string, error) {
	var buf bytes.Buffer
	err := endOfRunTmpl.Execute(&buf, promptData{
		PlayerStats: stats,
		Week:        stats.CurrentWeek,
		History:     history,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String())
}

func stockIDs(stocks []models.Instrument) []string {
	ids := make([]string, len(stocks))
	for i, s := range stocks {
		ids[i] = s.ID
	}
	return ids
}
