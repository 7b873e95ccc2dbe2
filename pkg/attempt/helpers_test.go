package attempt

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type recordingFinalizer struct {
	mu      sync.Mutex
	results []*Result
	err     error
}

func (r *recordingFinalizer) Finalize(_ context.Context, res *Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
	return r.err
}

func (r *recordingFinalizer) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func (r *recordingFinalizer) Last() *Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.results) == 0 {
		return nil
	}
	return r.results[len(r.results)-1]
}

func makeCards(n int) []*Card {
	cards := make([]*Card, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, &Card{
			Term:       fmt.Sprintf("term-%d", i),
			Definition: fmt.Sprintf("Definition %d", i),
		})
	}
	return cards
}

func makeAssignment(clock Clock, mode string, n int, perQuestion time.Duration) *Assignment {
	return &Assignment{
		ID:             "a1",
		Mode:           mode,
		Deadline:       clock.Now().Add(24 * time.Hour),
		PerQuestion:    perQuestion,
		TotalQuestions: n,
		Cards:          makeCards(n),
	}
}

// startManual 不启动后台刷新, 由测试驱动 Tick
func startManual(t *testing.T, a *Assignment, clock Clock, fin Finalizer) *Controller {
	t.Helper()
	c, err := NewController(a, fin, WithClock(clock), WithTickInterval(0))
	require.NoError(t, err)
	require.Equal(t, StateLoading, c.Load(nil))
	require.NoError(t, c.Start(context.Background()))
	return c
}

func requireDone(t *testing.T, c *Controller) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("controller did not reach a terminal state")
	}
}
