package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/nairawise/internal/config"
	"github.com/tatianab/nairawise/internal/engine"
	"github.com/tatianab/nairawise/internal/game"
	"github.com/tatianab/nairawise/internal/models"
	"google.golang.org/api/option"
)

const maxWeeks = 12

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	// The oracle writes the weeks.
	oracle, err := engine.NewEngine(ctx, cfg.GeminiAPIKey, cfg.Model, game.DefaultStocks(), logger)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer oracle.Close()

	// A second model plays them.
	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	playerModel := playerClient.GenerativeModel(cfg.Model)

	repo := models.NewFileRepo(filepath.Join(cfg.SaveDir, "simulations"))
	g := game.New(oracle, repo, game.Options{
		Rules:         &game.Rules{WeekLimit: maxWeeks + 1, DebtThreshold: game.DefaultRules.DebtThreshold},
		PrefetchWait:  cfg.PrefetchTimeout,
		OracleTimeout: cfg.OracleTimeout,
		Market:        game.NewMarket(nil, time.Now().UnixNano()),
		Logger:        logger,
	})

	fmt.Println("--- Setup ---")
	err = g.NewGame(ctx, game.SetupInput{
		Name:      "Simi Bot",
		City:      "Lagos",
		Job:       "Junior Analyst",
		Salary:    150000,
		Challenge: "fresh-graduate",
	})
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	for !g.Session().Status.Terminal() {
		session := g.Session()
		sc := session.CurrentScenario
		fmt.Printf("--- Week %d: %s ---\n", session.Stats.CurrentWeek, sc.Title)
		if sc.Fallback {
			fmt.Println("(fallback scenario)")
		}

		i := pickChoice(ctx, playerModel, session)
		fmt.Printf("Player chose: %s\n", sc.Choices[i].Text)

		out, err := g.Choose(ctx, i)
		if err != nil {
			log.Fatalf("Choose: %v", err)
		}
		fmt.Printf("Consequence: %s\n", out.Consequence)
		st := g.Session().Stats
		fmt.Printf("Stats: Balance=₦%d Savings=₦%d Debt=₦%d Happiness=%d%%\n\n", st.Balance, st.Savings, st.Debt, st.Happiness)

		if out.Status.Terminal() {
			fmt.Printf("Game ended: %s (%s)\n", out.Status, out.Reason)
			break
		}
		notes, err := g.Proceed(ctx)
		if err != nil {
			log.Fatalf("Proceed: %v", err)
		}
		for _, n := range notes {
			fmt.Printf("Order: %s\n", n)
		}
	}

	fmt.Printf("\nNet assets: ₦%d (%s)\n\n", g.Store().NetAssets(), game.RankLabel(g.Store().NetAssets()))
	fmt.Println("--- Review ---")
	fmt.Println(g.Summarize(ctx))
}

// pickChoice asks the player model for a letter and falls back to the choice
// that leaves the best net position.
func pickChoice(ctx context.Context, model *genai.GenerativeModel, session *models.GameSession) int {
	sc := session.CurrentScenario
	var opts strings.Builder
	for i, c := range sc.Choices {
		fmt.Fprintf(&opts, "%c) %s\n", 'a'+i, c.Text)
	}

	prompt := fmt.Sprintf(`You are playing a Nigerian personal finance game.
Balance: ₦%d, Savings: ₦%d, Debt: ₦%d, Happiness: %d%%

%s
%s
%s
Which option do you pick? Return ONLY the letter.`,
		session.Stats.Balance, session.Stats.Savings, session.Stats.Debt, session.Stats.Happiness,
		sc.Title, sc.Description, opts.String(),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err == nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil && len(resp.Candidates[0].Content.Parts) > 0 {
		answer := strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])))
		if answer != "" {
			if i := int(answer[0] - 'a'); i >= 0 && i < len(sc.Choices) {
				return i
			}
		}
	}
	return prudentChoice(session.Stats, sc.Choices)
}

func prudentChoice(stats models.PlayerStats, choices []models.Choice) int {
	best, bestScore := -1, int64(0)
	for i, c := range choices {
		if stats.Happiness+c.Impact.Happiness <= 0 {
			continue
		}
		score := c.Impact.Balance + c.Impact.Savings - c.Impact.Debt
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return max(best, 0)
}
