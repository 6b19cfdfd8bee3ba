package events

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakePoller hands out queued keys immediately and otherwise sleeps for the
// requested timeout.
type fakePoller struct {
	mu      sync.Mutex
	keys    []Key
	err     error
	timeout []time.Duration
}

func (p *fakePoller) push(keys ...Key) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, keys...)
}

func (p *fakePoller) Poll(ctx context.Context, timeout time.Duration) (Key, bool, error) {
	p.mu.Lock()
	p.timeout = append(p.timeout, timeout)
	if p.err != nil {
		err := p.err
		p.mu.Unlock()
		return "", false, err
	}
	if len(p.keys) > 0 {
		k := p.keys[0]
		p.keys = p.keys[1:]
		p.mu.Unlock()
		return k, true, nil
	}
	p.mu.Unlock()

	select {
	case <-time.After(timeout):
		return "", false, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

func (p *fakePoller) timeouts() []time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]time.Duration(nil), p.timeout...)
}

func next(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatal("events channel closed unexpectedly")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func runSource(t *testing.T, src *Source) (cancel func(), done <-chan error) {
	t.Helper()
	ctx, cancelFn := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- src.Run(ctx) }()
	t.Cleanup(cancelFn)
	return cancelFn, errc
}

func equalKeys(a, b []Key) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewSourceDefaultInterval(t *testing.T) {
	src := NewSource(&fakePoller{}, 0)
	if src.interval != DefaultInterval {
		t.Errorf("expected %v, got %v", DefaultInterval, src.interval)
	}
}

func TestSourceEmitsTicksWithoutInput(t *testing.T) {
	src := NewSource(&fakePoller{}, 10*time.Millisecond)
	runSource(t, src)

	for i := 0; i < 3; i++ {
		if ev := next(t, src.Events()); ev.Kind != Tick {
			t.Errorf("event %d: expected tick, got %+v", i, ev)
		}
	}
}

func TestSourceForwardsKeysInOrder(t *testing.T) {
	p := &fakePoller{}
	p.push("a", KeyDown, "q")
	src := NewSource(p, time.Hour)
	runSource(t, src)

	var got []Key
	for len(got) < 3 {
		ev := next(t, src.Events())
		if ev.Kind == Input {
			got = append(got, ev.Key)
		}
	}
	if want := []Key{"a", KeyDown, "q"}; !equalKeys(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSourceInterleavesTicksAndInput(t *testing.T) {
	p := &fakePoller{}
	src := NewSource(p, 10*time.Millisecond)
	runSource(t, src)

	if ev := next(t, src.Events()); ev.Kind != Tick {
		t.Fatalf("expected a tick first, got %+v", ev)
	}
	p.push("x")

	for {
		ev := next(t, src.Events())
		if ev.Kind == Input {
			if ev.Key != "x" {
				t.Errorf("expected key x, got %q", ev.Key)
			}
			break
		}
	}
	if ev := next(t, src.Events()); ev.Kind != Tick {
		t.Errorf("expected ticks to resume, got %+v", ev)
	}
}

func TestSourcePollTimeoutBounded(t *testing.T) {
	p := &fakePoller{}
	interval := 20 * time.Millisecond
	src := NewSource(p, interval)
	runSource(t, src)

	next(t, src.Events())
	next(t, src.Events())

	for _, d := range p.timeouts() {
		if d < 0 || d > interval {
			t.Errorf("poll timeout %v outside [0, %v]", d, interval)
		}
	}
}

func TestSourceStopsOnCancel(t *testing.T) {
	src := NewSource(&fakePoller{}, 5*time.Millisecond)
	cancel, done := runSource(t, src)

	next(t, src.Events())
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	// drain: the channel must be closed
	for range src.Events() {
	}
}

func TestSourceStopsWhenPollerClosed(t *testing.T) {
	p := &fakePoller{err: ErrClosed}
	src := NewSource(p, time.Hour)

	if err := src.Run(context.Background()); err != nil {
		t.Errorf("expected clean stop, got %v", err)
	}
	if _, ok := <-src.Events(); ok {
		t.Error("expected the events channel to be closed")
	}
}

func TestSourceReturnsPollerError(t *testing.T) {
	boom := errors.New("boom")
	src := NewSource(&fakePoller{err: boom}, time.Hour)

	if err := src.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected %v, got %v", boom, err)
	}
}

func pollAll(t *testing.T, p *TerminalPoller) []Key {
	t.Helper()
	var got []Key
	for {
		k, ok, err := p.Poll(context.Background(), time.Second)
		if errors.Is(err, ErrClosed) {
			return got
		}
		if err != nil {
			t.Fatalf("poll failed: %v", err)
		}
		if ok {
			got = append(got, k)
		}
	}
}

func TestTerminalPollerReadsKeys(t *testing.T) {
	p, err := NewTerminalPoller(strings.NewReader("a\x1b[Bq"))
	if err != nil {
		t.Fatalf("failed to create poller: %v", err)
	}
	defer p.Close()

	if got, want := pollAll(t, p), []Key{"a", KeyDown, "q"}; !equalKeys(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTerminalPollerJoinsSplitEscape(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	p, err := NewTerminalPoller(r)
	if err != nil {
		t.Fatalf("failed to create poller: %v", err)
	}
	defer p.Close()

	go func() {
		w.Write([]byte("\x1b"))
		time.Sleep(20 * time.Millisecond)
		w.Write([]byte("[B"))
		w.Close()
	}()

	if got, want := pollAll(t, p), []Key{KeyDown}; !equalKeys(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTerminalPollerTimesOut(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	p, err := NewTerminalPoller(r)
	if err != nil {
		t.Fatalf("failed to create poller: %v", err)
	}
	defer p.Close()
	defer w.Close()

	start := time.Now()
	_, ok, err := p.Poll(context.Background(), 20*time.Millisecond)
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if ok {
		t.Error("expected no key")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("returned after %v, before the timeout", elapsed)
	}
}
