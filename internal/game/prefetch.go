package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tatianab/nairawise/internal/models"
)

// Oracle generates weekly scenarios and the end-of-run review.
type Oracle interface {
	NextScenario(ctx context.Context, stats models.PlayerStats, history []models.GameLog) (models.Scenario, error)
	Summarize(ctx context.Context, stats models.PlayerStats, history []models.GameLog) (string, error)
}

// Prefetcher holds at most one scenario fetched ahead of need. At most one
// oracle call is in flight at a time; requests made while one is in flight,
// or while a fetched scenario is still unconsumed, are dropped.
type Prefetcher struct {
	oracle      Oracle
	log         *slog.Logger
	waitTimeout time.Duration
	callTimeout time.Duration

	mu       sync.Mutex
	gen      uint64
	inflight bool
	done     chan struct{} // closed when the in-flight call resolves
	next     *models.Scenario
}

// NewPrefetcher returns a Prefetcher. waitTimeout bounds how long Take waits
// for an in-flight call; callTimeout bounds each oracle call (0 disables it).
func NewPrefetcher(oracle Oracle, logger *slog.Logger, waitTimeout, callTimeout time.Duration) *Prefetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prefetcher{
		oracle:      oracle,
		log:         logger,
		waitTimeout: waitTimeout,
		callTimeout: callTimeout,
	}
}

// Prefetch starts fetching the scenario for the week after stats. It reports
// whether a fetch was started.
func (p *Prefetcher) Prefetch(ctx context.Context, stats models.PlayerStats, history []models.GameLog) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inflight || p.next != nil {
		return false
	}
	p.inflight = true
	done := make(chan struct{})
	p.done = done
	history = append([]models.GameLog(nil), history...)
	go p.fetch(ctx, p.gen, done, stats, history)
	return true
}

func (p *Prefetcher) fetch(ctx context.Context, gen uint64, done chan struct{}, stats models.PlayerStats, history []models.GameLog) {
	defer close(done)

	sc := fetchScenario(ctx, p.oracle, p.log, p.callTimeout, stats, history)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		p.log.Debug("dropping stale prefetch", "gen", gen, "current", p.gen)
		return
	}
	p.inflight = false
	p.next = &sc
}

// fetchScenario asks the oracle for a scenario and substitutes the fallback
// on any transport or validation error.
func fetchScenario(ctx context.Context, oracle Oracle, log *slog.Logger, timeout time.Duration, stats models.PlayerStats, history []models.GameLog) models.Scenario {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	sc, err := oracle.NextScenario(ctx, stats, history)
	if err == nil {
		err = sc.Validate(StockIDs())
	}
	if err != nil {
		log.Warn("oracle scenario failed, using fallback", "week", stats.CurrentWeek, "err", err)
		return FallbackScenario()
	}
	return sc
}

// Take consumes the prefetched scenario. If the fetch is still running it
// waits until it resolves, the wait timeout passes or ctx is done; in the
// latter two cases the in-flight call is abandoned and the fallback scenario
// is returned.
func (p *Prefetcher) Take(ctx context.Context) models.Scenario {
	p.mu.Lock()
	if sc, ok := p.takeLocked(); ok {
		p.mu.Unlock()
		return sc
	}
	done, inflight := p.done, p.inflight
	p.mu.Unlock()

	if !inflight {
		p.log.Warn("no scenario prefetched, using fallback")
		return FallbackScenario()
	}

	timer := time.NewTimer(p.waitTimeout)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		p.log.Warn("prefetch wait timed out", "timeout", p.waitTimeout)
	case <-ctx.Done():
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if sc, ok := p.takeLocked(); ok {
		return sc
	}
	p.gen++
	p.inflight = false
	p.done = nil
	return FallbackScenario()
}

func (p *Prefetcher) takeLocked() (models.Scenario, bool) {
	if p.next == nil {
		return models.Scenario{}, false
	}
	sc := *p.next
	p.next = nil
	return sc, true
}

// Ready reports whether a scenario is waiting to be taken.
func (p *Prefetcher) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next != nil
}

// Reset discards any held scenario and makes the result of an in-flight call
// unwritable.
func (p *Prefetcher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.inflight = false
	p.done = nil
	p.next = nil
}
