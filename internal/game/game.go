package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tatianab/nairawise/internal/models"
)

var (
	ErrNoSession       = errors.New("no game in progress")
	ErrNoScenario      = errors.New("no scenario to choose from")
	ErrGameOver        = errors.New("game is over")
	ErrBadChoice       = errors.New("choice out of range")
	ErrAwaitingProceed = errors.New("proceed to the next week first")
	ErrNothingPending  = errors.New("no consequence to proceed from")
)

const (
	historyContext = 5
	newsCap        = 20
)

// Repo persists sessions and finished runs.
type Repo interface {
	Save(s *models.GameSession) error
	LoadSession(id string) (*models.GameSession, error)
	RecordScore(e models.LeaderboardEntry) ([]models.LeaderboardEntry, error)
}

// Options tune a Game. Zero values pick defaults.
type Options struct {
	Rules         *Rules // nil selects DefaultRules
	PrefetchWait  time.Duration
	OracleTimeout time.Duration
	Market        *Market
	Logger        *slog.Logger
	Now           func() time.Time
	NewID         func() string
}

// Game is one player's run: the store, the prefetch slot, the market and
// the oracle wired together. Methods other than Summarize must be called from
// a single goroutine.
type Game struct {
	oracle        Oracle
	repo          Repo
	log           *slog.Logger
	rules         Rules
	market        *Market
	prefetch      *Prefetcher
	oracleTimeout time.Duration
	now           func() time.Time
	newID         func() string

	mu    sync.Mutex
	gen   uint64
	store *Store
}

func New(oracle Oracle, repo Repo, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	rules := DefaultRules
	if opts.Rules != nil {
		rules = *opts.Rules
	}
	if opts.PrefetchWait <= 0 {
		opts.PrefetchWait = 20 * time.Second
	}
	if opts.Market == nil {
		opts.Market = NewMarket(nil, time.Now().UnixNano())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Game{
		oracle:        oracle,
		repo:          repo,
		log:           opts.Logger,
		rules:         rules,
		market:        opts.Market,
		prefetch:      NewPrefetcher(oracle, opts.Logger, opts.PrefetchWait, opts.OracleTimeout),
		oracleTimeout: opts.OracleTimeout,
		now:           opts.Now,
		newID:         opts.NewID,
	}
}

// Session returns the live session, or nil before a game starts.
func (g *Game) Session() *models.GameSession {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.store == nil {
		return nil
	}
	return g.store.Session()
}

// Store returns the live store, or nil before a game starts.
func (g *Game) Store() *Store {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.store
}

// NextReady reports whether next week's scenario has already arrived.
func (g *Game) NextReady() bool {
	return g.prefetch.Ready()
}

// NewGame discards any current run and starts a fresh one from setup.
func (g *Game) NewGame(ctx context.Context, in SetupInput) error {
	session, err := NewSession(g.newID(), in)
	if err != nil {
		return err
	}
	g.install(session)
	g.log.Info("new game", "session", session.ID, "name", session.Stats.Name, "challenge", in.Challenge)

	sc := fetchScenario(ctx, g.oracle, g.log, g.oracleTimeout, session.Stats, nil)
	session.CurrentScenario = &sc
	g.prefetch.Prefetch(ctx, session.Stats, nil)
	return g.save()
}

// Resume continues a saved ACTIVE session.
func (g *Game) Resume(ctx context.Context, id string) error {
	session, err := g.repo.LoadSession(id)
	if err != nil {
		return fmt.Errorf("load session %s: %w", id, err)
	}
	if session.Status != models.StatusActive {
		return fmt.Errorf("session %s: %w", id, ErrGameOver)
	}
	g.install(session)
	g.log.Info("resumed game", "session", id, "week", session.Stats.CurrentWeek)

	if session.CurrentScenario == nil {
		sc := fetchScenario(ctx, g.oracle, g.log, g.oracleTimeout, session.Stats, session.RecentHistory(historyContext))
		session.CurrentScenario = &sc
	}
	g.prefetch.Prefetch(ctx, session.Stats, session.RecentHistory(historyContext))
	return nil
}

func (g *Game) install(session *models.GameSession) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen++
	g.store = NewStore(session)
	g.prefetch.Reset()
}

// Outcome is the result of resolving a choice.
type Outcome struct {
	Title       string
	Consequence string
	Status      models.Status
	Reason      models.EndReason
}

// Choose resolves the i-th choice of the current scenario.
func (g *Game) Choose(ctx context.Context, i int) (Outcome, error) {
	store, err := g.activeStore()
	if err != nil {
		return Outcome{}, err
	}
	session := store.Session()
	if session.LastConsequence != "" {
		return Outcome{}, ErrAwaitingProceed
	}
	sc := session.CurrentScenario
	if sc == nil {
		return Outcome{}, ErrNoScenario
	}
	if i < 0 || i >= len(sc.Choices) {
		return Outcome{}, fmt.Errorf("%w: %d of %d", ErrBadChoice, i+1, len(sc.Choices))
	}

	consequence := store.ApplyChoice(sc.Choices[i])
	out := Outcome{Title: sc.Title, Consequence: consequence, Status: models.StatusActive}
	g.log.Info("choice applied", "session", session.ID, "week", session.Stats.CurrentWeek-1, "choice", i,
		"balance", session.Stats.Balance, "happiness", session.Stats.Happiness)

	if status, reason := CheckTerminal(session.Stats, g.rules); status.Terminal() {
		g.finish(status, reason)
		out.Status, out.Reason = status, reason
	} else {
		session.LastConsequence = consequence
	}
	return out, g.save()
}

// Proceed moves to the next week: it swaps in the prefetched scenario, ticks
// the market with that scenario's news, runs resting orders and starts the
// prefetch for the week after. It returns trigger notifications.
func (g *Game) Proceed(ctx context.Context) ([]string, error) {
	store, err := g.activeStore()
	if err != nil {
		return nil, err
	}
	session := store.Session()
	if session.LastConsequence == "" {
		return nil, ErrNothingPending
	}

	sc := g.prefetch.Take(ctx)
	ev := sc.MarketEvent
	if ev != nil {
		ev.Week = session.Stats.CurrentWeek
		session.MarketNews = append(session.MarketNews, *ev)
		if len(session.MarketNews) > newsCap {
			session.MarketNews = session.MarketNews[len(session.MarketNews)-newsCap:]
		}
	}
	g.market.Tick(session.Stocks, ev)
	notes := EvaluateTriggers(store)
	store.UpdateGoals()
	for _, n := range notes {
		g.log.Info("order triggered", "session", session.ID, "note", n)
	}

	session.CurrentScenario = &sc
	session.LastConsequence = ""
	g.prefetch.Prefetch(ctx, session.Stats, session.RecentHistory(historyContext))
	return notes, g.save()
}

// Buy purchases one unit of a stock. It reports false for a no-op trade.
func (g *Game) Buy(id string) (bool, error) {
	store, err := g.activeStore()
	if err != nil {
		return false, err
	}
	if !store.Buy(id) {
		return false, nil
	}
	store.UpdateGoals()
	return true, g.save()
}

// Sell disposes of one unit of a stock. It reports false for a no-op trade.
func (g *Game) Sell(id string) (bool, error) {
	store, err := g.activeStore()
	if err != nil {
		return false, err
	}
	if !store.Sell(id) {
		return false, nil
	}
	return true, g.save()
}

// SetTrigger sets or clears (value nil) a resting order on a holding.
func (g *Game) SetTrigger(id string, kind TriggerKind, value *int64) (bool, error) {
	store, err := g.activeStore()
	if err != nil {
		return false, err
	}
	if !store.SetTrigger(id, kind, value) {
		return false, nil
	}
	return true, g.save()
}

// Retire ends an active run on the player's terms.
func (g *Game) Retire() error {
	if _, err := g.activeStore(); err != nil {
		return err
	}
	g.finish(models.StatusComplete, models.EndRetired)
	return g.save()
}

// Summarize asks the oracle for the end-of-run review and stores it on the
// session if that session is still the live one. It is safe to call from a
// background goroutine.
func (g *Game) Summarize(ctx context.Context) string {
	g.mu.Lock()
	if g.store == nil {
		g.mu.Unlock()
		return FallbackSummary()
	}
	gen, session := g.gen, g.store.Session()
	stats := session.Stats
	history := append([]models.GameLog(nil), session.History...)
	g.mu.Unlock()

	if g.oracleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.oracleTimeout)
		defer cancel()
	}
	text, err := g.oracle.Summarize(ctx, stats, history)
	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		g.log.Warn("oracle summary failed, using fallback", "session", session.ID, "err", err)
		text = FallbackSummary()
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.gen {
		g.log.Debug("dropping stale summary", "session", session.ID)
		return text
	}
	session.Summary = text
	if err := g.repo.Save(session); err != nil {
		g.log.Error("save summary", "session", session.ID, "err", err)
	}
	return text
}

func (g *Game) finish(status models.Status, reason models.EndReason) {
	store := g.Store()
	session := store.Session()
	session.Status = status
	session.EndReason = reason
	session.LastConsequence = ""
	g.prefetch.Reset()

	entry := models.LeaderboardEntry{
		Name:      session.Stats.Name,
		City:      session.Stats.City,
		NetAssets: store.NetAssets(),
		Week:      session.Stats.CurrentWeek,
		Rank:      RankLabel(store.NetAssets()),
		Timestamp: g.now(),
	}
	if _, err := g.repo.RecordScore(entry); err != nil {
		g.log.Error("record score", "session", session.ID, "err", err)
	}
	g.log.Info("game finished", "session", session.ID, "status", status, "reason", reason, "net_assets", entry.NetAssets)
}

func (g *Game) activeStore() (*Store, error) {
	store := g.Store()
	if store == nil {
		return nil, ErrNoSession
	}
	if store.Session().Status.Terminal() {
		return nil, ErrGameOver
	}
	return store, nil
}

func (g *Game) save() error {
	session := g.Session()
	if session == nil {
		return ErrNoSession
	}
	if err := g.repo.Save(session); err != nil {
		g.log.Error("save session", "session", session.ID, "err", err)
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// RankLabel names the tier a final net-assets figure lands in.
func RankLabel(netAssets int64) string {
	switch {
	case netAssets < 100_000:
		return "Sapa Survivor"
	case netAssets < 500_000:
		return "Hustler"
	case netAssets < 2_000_000:
		return "Odogwu in Training"
	case netAssets < 10_000_000:
		return "Big Boss"
	default:
		return "Odogwu"
	}
}
