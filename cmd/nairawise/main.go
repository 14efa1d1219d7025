package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tatianab/nairawise/internal/config"
	"github.com/tatianab/nairawise/internal/engine"
	"github.com/tatianab/nairawise/internal/game"
	"github.com/tatianab/nairawise/internal/models"
	"github.com/tatianab/nairawise/internal/tui"
)

const logFile = "nairawise.log"

var (
	accent = color.New(color.FgCyan, color.Bold)
	warn   = color.New(color.FgYellow, color.Bold)
	danger = color.New(color.FgRed, color.Bold)
)

func main() {
	root := &cobra.Command{
		Use:          "nairawise",
		Short:        "Survive Sapa and grow your naira, one week at a time",
		SilenceUsage: true,
	}
	play := newPlayCmd()
	root.AddCommand(play, newSessionsCmd(), newLeaderboardCmd())
	// Bare `nairawise` starts a new game.
	root.RunE = play.RunE

	if err := root.Execute(); err != nil {
		danger.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newPlayCmd() *cobra.Command {
	var resume string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start a new game, or continue one with --resume",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := openLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			eng, err := engine.NewEngine(ctx, cfg.GeminiAPIKey, cfg.Model, game.DefaultStocks(), logger)
			if err != nil {
				return fmt.Errorf("create engine: %w", err)
			}
			defer eng.Close()

			repo := models.NewFileRepo(cfg.SaveDir)
			g := game.New(eng, repo, gameOptions(cfg, logger))
			return tui.Run(g, repo.Leaderboard, resume)
		},
	}
	cmd.Flags().StringVar(&resume, "resume", "", "session id to continue")
	return cmd
}

func newSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List saved games",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadLocalConfig()
			if err != nil {
				return err
			}
			repo := models.NewFileRepo(cfg.SaveDir)
			ids, err := repo.ListSessions()
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				warn.Fprintln(cmd.OutOrStdout(), "No saved games.")
				return nil
			}
			return printSessions(cmd.OutOrStdout(), repo, ids)
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the best finished runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadLocalConfig()
			if err != nil {
				return err
			}
			rows, err := models.NewFileRepo(cfg.SaveDir).Leaderboard()
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				warn.Fprintln(cmd.OutOrStdout(), "No finished runs yet.")
				return nil
			}
			accent.Fprintln(cmd.OutOrStdout(), "NairaWise leaderboard")
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tNAME\tCITY\tNET ASSETS\tWEEK\tRANK")
			for i, r := range rows {
				fmt.Fprintf(w, "%d\t%s\t%s\t₦%d\t%d\t%s\n", i+1, r.Name, r.City, r.NetAssets, r.Week, r.Rank)
			}
			return w.Flush()
		},
	}
}

func printSessions(out io.Writer, repo *models.FileRepo, ids []string) error {
	accent.Fprintln(out, "Saved games")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tWEEK\tSTATUS\tBALANCE")
	for _, id := range ids {
		s, err := repo.LoadSession(id)
		if err != nil {
			fmt.Fprintf(w, "%s\t?\t?\tunreadable\t?\n", id)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t₦%d\n", s.ID, s.Stats.Name, s.Stats.CurrentWeek, s.Status, s.Stats.Balance)
	}
	return w.Flush()
}

// openLogger writes to a file in the save directory so log lines never draw
// over the TUI.
func openLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(cfg.SaveDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create save dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(cfg.SaveDir, logFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	return logger, func() { f.Close() }, nil
}

func gameOptions(cfg *config.Config, logger *slog.Logger) game.Options {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return game.Options{
		Rules: &game.Rules{
			WeekLimit:        cfg.WeekLimit,
			StrictBankruptcy: cfg.StrictBankruptcy,
			DebtThreshold:    game.DefaultRules.DebtThreshold,
		},
		PrefetchWait:  cfg.PrefetchTimeout,
		OracleTimeout: cfg.OracleTimeout,
		Market:        game.NewMarket(nil, seed),
		Logger:        logger,
	}
}
