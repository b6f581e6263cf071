package board

import (
	"context"
	"sync"

	"github.com/aojudge/standings"
)

// RunEvent pairs a judged run with the contest it was submitted in.
type RunEvent struct {
	ContestID int            `json:"contest_id"`
	Run       *standings.Run `json:"run"`
}

// Broker fans run events out to in-process subscribers: scoreboard
// pollers, the ceremony console, anything that wants to know a cell
// changed. Publishing never blocks: a listener that fell behind loses
// its oldest event instead of stalling the ingest path.
type Broker struct {
	mu        sync.Mutex
	closed    bool
	listeners map[chan *RunEvent]int
}

func NewBroker() *Broker {
	return &Broker{listeners: make(map[chan *RunEvent]int)}
}

// Subscribe registers a listener for one contest's run events, or for
// every contest when contestID is 0. The channel is closed and
// deregistered once ctx ends.
func (b *Broker) Subscribe(ctx context.Context, contestID int) <-chan *RunEvent {
	ch := make(chan *RunEvent, 64)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	b.listeners[ch] = contestID
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.unsubscribe(ch)
	}()
	return ch
}

func (b *Broker) Publish(event *RunEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch, contestID := range b.listeners {
		if contestID != 0 && contestID != event.ContestID {
			continue
		}
		if len(ch) == cap(ch) {
			<-ch
		}
		ch <- event
	}
}

func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.listeners {
		close(ch)
		delete(b.listeners, ch)
	}
}

func (b *Broker) unsubscribe(ch chan *RunEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.listeners[ch]; !ok {
		return
	}
	delete(b.listeners, ch)
	close(ch)
}

// Subscribe exposes the broker on the service for callers that only
// hold an *API.
func (s *API) Subscribe(ctx context.Context, contestID int) <-chan *RunEvent {
	return s.broker.Subscribe(ctx, contestID)
}
