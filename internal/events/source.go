// Package events turns keyboard input into an ordered stream of input and
// tick events, so the consumer can redraw at a steady cadence whether or not
// keys are pressed.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultInterval is the tick period used when none is configured.
const DefaultInterval = 200 * time.Millisecond

// ErrClosed is returned by a Poller that has been closed.
var ErrClosed = errors.New("poller closed")

// Kind distinguishes input events from ticks.
type Kind int

const (
	Input Kind = iota
	Tick
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "input"
	case Tick:
		return "tick"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is one item of the stream. Key is set for Input events only.
type Event struct {
	Kind Kind
	Key  Key
}

// Poller waits for a single key press.
type Poller interface {
	// Poll returns the next key if one arrives within timeout. ok is false
	// when the timeout elapsed without input.
	Poll(ctx context.Context, timeout time.Duration) (k Key, ok bool, err error)
}

// Source polls a Poller in a loop and forwards keys and periodic ticks to a
// single channel.
type Source struct {
	poller   Poller
	interval time.Duration
	now      func() time.Time
	out      chan Event
}

// NewSource returns a source ticking every interval. A non-positive interval
// uses DefaultInterval.
func NewSource(p Poller, interval time.Duration) *Source {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Source{
		poller:   p,
		interval: interval,
		now:      time.Now,
		out:      make(chan Event, 64),
	}
}

// Events returns the channel events are delivered on. It is closed when Run
// returns.
func (s *Source) Events() <-chan Event {
	return s.out
}

// Run polls until ctx is cancelled or the poller is closed. It returns nil on
// shutdown and the poller's error otherwise.
func (s *Source) Run(ctx context.Context) error {
	defer close(s.out)

	lastTick := s.now()
	for {
		if ctx.Err() != nil {
			slog.Debug("event source stopped", "reason", ctx.Err())
			return nil
		}

		timeout := s.interval - s.now().Sub(lastTick)
		if timeout < 0 {
			timeout = 0
		}

		k, ok, err := s.poller.Poll(ctx, timeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, ErrClosed) {
				slog.Debug("event source stopped", "reason", err)
				return nil
			}
			return fmt.Errorf("polling input: %w", err)
		}
		if ok && !s.emit(ctx, Event{Kind: Input, Key: k}) {
			return nil
		}

		if s.now().Sub(lastTick) >= s.interval {
			if !s.emit(ctx, Event{Kind: Tick}) {
				return nil
			}
			lastTick = s.now()
		}
	}
}

func (s *Source) emit(ctx context.Context, ev Event) bool {
	select {
	case s.out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
