package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/muesli/cancelreader"
)

// TerminalPoller reads keys from a raw-mode terminal. A reader goroutine
// decodes input into a buffered channel that Poll waits on, so a poll can
// time out without abandoning a blocked read.
type TerminalPoller struct {
	r    cancelreader.CancelReader
	keys chan Key
	done chan struct{}
	once sync.Once

	mu  sync.Mutex
	err error
}

// NewTerminalPoller starts reading from in, typically os.Stdin already put in
// raw mode by the caller.
func NewTerminalPoller(in io.Reader) (*TerminalPoller, error) {
	r, err := cancelreader.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("creating input reader: %w", err)
	}
	p := &TerminalPoller{
		r:    r,
		keys: make(chan Key, 32),
		done: make(chan struct{}),
	}
	go p.readLoop()
	return p, nil
}

func (p *TerminalPoller) readLoop() {
	defer close(p.keys)

	var dec Decoder
	buf := make([]byte, 256)
	for {
		n, err := p.r.Read(buf)
		keys := dec.Feed(buf[:n])
		if err != nil {
			keys = append(keys, dec.Flush()...)
		}
		for _, k := range keys {
			select {
			case p.keys <- k:
			case <-p.done:
				return
			}
		}
		if err != nil {
			if !errors.Is(err, cancelreader.ErrCanceled) && !errors.Is(err, io.EOF) {
				p.mu.Lock()
				p.err = err
				p.mu.Unlock()
			}
			return
		}
	}
}

// Poll waits up to timeout for a key.
func (p *TerminalPoller) Poll(ctx context.Context, timeout time.Duration) (Key, bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case k, ok := <-p.keys:
		if !ok {
			return "", false, p.closedErr()
		}
		return k, true, nil
	case <-timer.C:
		return "", false, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

func (p *TerminalPoller) closedErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return fmt.Errorf("reading input: %w", p.err)
	}
	return ErrClosed
}

// Close cancels the pending read and stops the reader goroutine.
func (p *TerminalPoller) Close() error {
	var err error
	p.once.Do(func() {
		close(p.done)
		p.r.Cancel()
		err = p.r.Close()
	})
	return err
}
