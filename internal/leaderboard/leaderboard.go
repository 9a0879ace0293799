// Package leaderboard connects finished runs to a score store. Board caches
// the latest top-N listing and performs every store call on its own
// goroutine so the simulation never waits on I/O.
package leaderboard

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/coin-runner/internal/runner"
)

// DefaultLimit is the number of entries fetched for the listing.
const DefaultLimit = 50

// DefaultTimeout bounds a single store call made in the background.
const DefaultTimeout = 5 * time.Second

// Entry is one leaderboard row.
type Entry struct {
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Gateway is the persistence contract for high scores.
type Gateway interface {
	// Insert records one finished run.
	Insert(ctx context.Context, name string, score int) error
	// ListTop returns at most n entries sorted by score descending.
	ListTop(ctx context.Context, n int) ([]Entry, error)
}

// Board is a cached leaderboard backed by a Gateway. It implements
// runner.Reporter. All methods are safe for concurrent use.
type Board struct {
	gw      Gateway
	logger  *log.Logger
	limit   int
	timeout time.Duration

	mu      sync.RWMutex
	entries []Entry
	seq     uint64 // last issued refresh
	applied uint64 // refresh whose result is cached
	lastErr error
	updated time.Time

	wg sync.WaitGroup
}

var _ runner.Reporter = (*Board)(nil)

// NewBoard creates a board. A nil gateway turns every call into a logged
// no-op; a nil logger discards output; limit <= 0 means DefaultLimit.
func NewBoard(gw Gateway, logger *log.Logger, limit int) *Board {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Board{
		gw:      gw,
		logger:  logger,
		limit:   limit,
		timeout: DefaultTimeout,
	}
}

// SetTimeout changes the per-call timeout for background work.
func (b *Board) SetTimeout(d time.Duration) {
	if d > 0 {
		b.timeout = d
	}
}

// Report saves a finished run, then refreshes the listing. It returns
// immediately; the result is a value copy so later runs cannot affect it.
func (b *Board) Report(r runner.Result) {
	if b.gw == nil {
		b.logger.Debug("no score store configured, result dropped", "name", r.Name, "score", r.Score)
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		if err := b.gw.Insert(ctx, r.Name, r.Score); err != nil {
			b.logger.Error("cannot save score", "name", r.Name, "score", r.Score, "error", err)
		} else {
			b.logger.Debug("score saved", "name", r.Name, "score", r.Score)
		}
		b.fetch(ctx, b.nextSeq())
	}()
}

// Refresh reloads the listing in the background.
func (b *Board) Refresh() {
	if b.gw == nil {
		return
	}

	seq := b.nextSeq()
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()
		b.fetch(ctx, seq)
	}()
}

// RefreshNow reloads the listing synchronously and returns the store error,
// if any. The cached listing is kept on failure.
func (b *Board) RefreshNow(ctx context.Context) error {
	if b.gw == nil {
		return nil
	}
	return b.fetch(ctx, b.nextSeq())
}

// Wait blocks until all background work has finished.
func (b *Board) Wait() {
	b.wg.Wait()
}

// Entries returns a copy of the cached listing.
func (b *Board) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Entry(nil), b.entries...)
}

// Err returns the error of the most recent refresh, nil after a success.
func (b *Board) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastErr
}

// Updated returns when the cached listing was last replaced.
func (b *Board) Updated() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updated
}

// Limit returns the number of entries requested from the store.
func (b *Board) Limit() int {
	return b.limit
}

func (b *Board) nextSeq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	return b.seq
}

// fetch lists the top entries and caches them unless a refresh started
// later has already landed.
func (b *Board) fetch(ctx context.Context, seq uint64) error {
	list, err := b.gw.ListTop(ctx, b.limit)

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.lastErr = err
		b.logger.Warn("cannot load leaderboard, keeping previous listing", "error", err)
		return err
	}
	if seq < b.applied {
		return nil
	}
	b.entries = append([]Entry(nil), list...)
	b.applied = seq
	b.lastErr = nil
	b.updated = time.Now()
	return nil
}

// DisplayName formats a stored name for display. Players often enter social
// handles, so a leading '@' is dropped.
func DisplayName(name string) string {
	name = strings.TrimSpace(name)
	if trimmed := strings.TrimPrefix(name, "@"); trimmed != "" {
		return trimmed
	}
	return name
}
