// Package poller drives long-poll update ingestion. It is the mutually
// exclusive alternative to the webhook endpoint: a deployment runs one
// source or the other, never both.
package poller

import (
	"sync"
	"time"

	"panelbot/internal/metrics"
	"panelbot/internal/telegram"

	"go.uber.org/zap"
)

// UpdateFetcher fetches one batch of updates with id >= offset, blocking
// server-side for up to timeoutSeconds.
type UpdateFetcher interface {
	GetUpdates(offset int64, timeoutSeconds int) ([]telegram.Update, error)
}

// Dispatcher consumes one update at a time.
type Dispatcher interface {
	HandleUpdate(u telegram.Update)
}

// Poller owns the update-id watermark: the highest update id already
// handed to the dispatcher. The watermark is advanced before dispatch so
// a crash mid-dispatch never refetches the same update. It is not
// persisted; a restart redelivers whatever the platform still holds.
type Poller struct {
	fetcher    UpdateFetcher
	dispatcher Dispatcher
	logger     *zap.Logger

	interval    time.Duration
	waitSeconds int

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}

	// Touched only by the poll goroutine; Start waits out a previous
	// loop before launching a new one, so there is never more than one.
	lastUpdateID int64
}

// New creates a poller with a 1s inter-batch delay and a 30s long-poll
// wait, matching the platform's recommended getUpdates usage.
func New(fetcher UpdateFetcher, dispatcher Dispatcher, logger *zap.Logger) *Poller {
	return &Poller{
		fetcher:     fetcher,
		dispatcher:  dispatcher,
		logger:      logger,
		interval:    time.Second,
		waitSeconds: 30,
	}
}

// Start launches the poll loop. Calling Start on a running poller is a
// no-op; no second loop is spawned.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		p.logger.Info("Poller already running")
		return
	}

	// A previous loop may still be draining its last batch after Stop;
	// wait for it so two loops never touch the watermark at once.
	if p.done != nil {
		<-p.done
	}

	p.running = true
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	p.logger.Info("Starting update polling")

	go p.loop(p.stop, p.done)
}

// Stop ends the loop. A batch already in flight completes its dispatches
// but no further fetch happens afterwards. Stopping an idle poller is a
// no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.running = false
	close(p.stop)
	p.logger.Info("Stopping update polling")
}

// Running reports whether the loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Poller) loop(stop, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-stop:
			return
		default:
		}

		updates, err := p.fetcher.GetUpdates(p.lastUpdateID+1, p.waitSeconds)
		if err != nil {
			// A failed fetch is an empty batch, never fatal.
			p.logger.Error("Failed to fetch updates", zap.Error(err))
		}

		for _, u := range updates {
			// Advance the watermark before dispatching.
			p.lastUpdateID = max(p.lastUpdateID, u.UpdateID)
			metrics.UpdatesTotal.WithLabelValues("polling", u.Kind()).Inc()
			p.dispatcher.HandleUpdate(u)
		}

		select {
		case <-stop:
			return
		case <-time.After(p.interval):
		}
	}
}
