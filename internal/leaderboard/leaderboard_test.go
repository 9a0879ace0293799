package leaderboard

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/coin-runner/internal/runner"
)

// memGateway is an in-memory Gateway.
type memGateway struct {
	mu        sync.Mutex
	entries   []Entry
	inserts   int
	lists     int
	failList  bool
	failWrite bool
}

func (m *memGateway) Insert(_ context.Context, name string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts++
	if m.failWrite {
		return errors.New("disk full")
	}
	m.entries = append(m.entries, Entry{Name: name, Score: score, CreatedAt: time.Now()})
	return nil
}

func (m *memGateway) ListTop(_ context.Context, n int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.failList {
		return nil, errors.New("connection refused")
	}
	out := append([]Entry(nil), m.entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (m *memGateway) setFailList(v bool) {
	m.mu.Lock()
	m.failList = v
	m.mu.Unlock()
}

func TestReportInsertsThenLists(t *testing.T) {
	gw := &memGateway{}
	b := NewBoard(gw, nil, 0)

	b.Report(runner.Result{Name: "ash", Score: 3})
	b.Report(runner.Result{Name: "bea", Score: 9})
	b.Wait()

	if gw.inserts != 2 || gw.lists != 2 {
		t.Errorf("inserts=%d lists=%d, expected 2 and 2", gw.inserts, gw.lists)
	}
	got := b.Entries()
	if len(got) != 2 || got[0].Name != "bea" || got[1].Name != "ash" {
		t.Errorf("Entries() = %+v", got)
	}
	if b.Err() != nil {
		t.Errorf("Err() = %v", b.Err())
	}
}

func TestFailedListKeepsPreviousEntries(t *testing.T) {
	gw := &memGateway{entries: []Entry{{Name: "ash", Score: 5}}}
	b := NewBoard(gw, nil, 10)

	if err := b.RefreshNow(context.Background()); err != nil {
		t.Fatal(err)
	}

	gw.setFailList(true)
	b.Refresh()
	b.Wait()

	if b.Err() == nil {
		t.Error("Err() should report the failed refresh")
	}
	got := b.Entries()
	if len(got) != 1 || got[0].Name != "ash" {
		t.Errorf("stale listing lost: %+v", got)
	}

	gw.setFailList(false)
	if err := b.RefreshNow(context.Background()); err != nil {
		t.Fatal(err)
	}
	if b.Err() != nil {
		t.Error("successful refresh should clear Err()")
	}
}

func TestFailedInsertStillRefreshes(t *testing.T) {
	gw := &memGateway{failWrite: true, entries: []Entry{{Name: "old", Score: 1}}}
	b := NewBoard(gw, nil, 10)

	b.Report(runner.Result{Name: "ash", Score: 3})
	b.Wait()

	if gw.lists != 1 {
		t.Errorf("lists = %d, expected a refresh after the failed insert", gw.lists)
	}
	if got := b.Entries(); len(got) != 1 || got[0].Name != "old" {
		t.Errorf("Entries() = %+v", got)
	}
}

func TestNilGateway(t *testing.T) {
	b := NewBoard(nil, nil, 0)
	b.Report(runner.Result{Name: "ash", Score: 1})
	b.Refresh()
	b.Wait()

	if err := b.RefreshNow(context.Background()); err != nil {
		t.Errorf("RefreshNow() = %v", err)
	}
	if len(b.Entries()) != 0 {
		t.Error("nil gateway should keep an empty listing")
	}
	if b.Limit() != DefaultLimit {
		t.Errorf("Limit() = %d, expected %d", b.Limit(), DefaultLimit)
	}
}

func TestLimitIsPassedToStore(t *testing.T) {
	gw := &memGateway{}
	for i := 0; i < 80; i++ {
		gw.entries = append(gw.entries, Entry{Name: "p", Score: i})
	}
	b := NewBoard(gw, nil, 0)
	if err := b.RefreshNow(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := b.Entries()
	if len(got) != DefaultLimit || got[0].Score != 79 {
		t.Errorf("got %d entries, top %d", len(got), got[0].Score)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	gw := &memGateway{entries: []Entry{{Name: "ash", Score: 5}}}
	b := NewBoard(gw, nil, 10)
	_ = b.RefreshNow(context.Background())

	got := b.Entries()
	got[0].Name = "mallory"

	if b.Entries()[0].Name != "ash" {
		t.Error("Entries() exposes the cache")
	}
}

func TestEngineReportsThroughBoard(t *testing.T) {
	gw := &memGateway{}
	b := NewBoard(gw, nil, 10)

	e := runner.NewEngine(runnerConfig(), runner.WithReporter(b), runner.WithSource(alwaysBarrier{}))
	b.Wait()
	if gw.lists != 1 {
		t.Errorf("startup refresh: lists = %d, expected 1", gw.lists)
	}

	if err := e.Start("@ash"); err != nil {
		t.Fatal(err)
	}
	for e.Tick(16).Continue {
	}
	b.Wait()

	if gw.inserts != 1 {
		t.Fatalf("inserts = %d, expected exactly 1", gw.inserts)
	}
	got := b.Entries()
	if len(got) != 1 || got[0].Name != "@ash" {
		t.Errorf("Entries() = %+v", got)
	}
	if DisplayName(got[0].Name) != "ash" {
		t.Errorf("DisplayName() = %q", DisplayName(got[0].Name))
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ash", "ash"},
		{"@ash", "ash"},
		{"  @ash ", "ash"},
		{"@@ash", "@ash"},
		{"@", "@"},
		{"a@b", "a@b"},
	}
	for _, tc := range tests {
		if got := DisplayName(tc.in); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

// stallGateway never answers before the context expires.
type stallGateway struct{}

func (stallGateway) Insert(ctx context.Context, _ string, _ int) error {
	<-ctx.Done()
	return ctx.Err()
}

func (stallGateway) ListTop(ctx context.Context, _ int) ([]Entry, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestBackgroundCallsHonorTimeout(t *testing.T) {
	b := NewBoard(stallGateway{}, nil, 0)
	b.SetTimeout(20 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		b.Refresh()
		b.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh did not give up after the timeout")
	}

	if !errors.Is(b.Err(), context.DeadlineExceeded) {
		t.Errorf("Err() = %v, want deadline exceeded", b.Err())
	}
	if !b.Updated().IsZero() {
		t.Error("a failed refresh must not touch Updated")
	}
}

func TestUpdatedSetOnSuccess(t *testing.T) {
	b := NewBoard(&memGateway{}, nil, 0)
	before := time.Now()
	if err := b.RefreshNow(context.Background()); err != nil {
		t.Fatalf("RefreshNow: %v", err)
	}
	if b.Updated().Before(before) {
		t.Errorf("Updated() = %v, want >= %v", b.Updated(), before)
	}
}
