package production

import (
	"sync/atomic"
	"time"

	"github.com/comalice/transientx"
)

// PublishedEvent bundles a protocol event with the time it was observed.
type PublishedEvent struct {
	Event     transientx.Event
	Timestamp time.Time
}

// ChannelPublisher is an Observer that forwards events to a Go channel.
// Non-blocking publish with drop on backpressure, so a slow consumer never stalls
// the protocol.
type ChannelPublisher struct {
	ch      chan<- PublishedEvent
	dropped atomic.Uint64
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- PublishedEvent) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Observe(e transientx.Event) {
	select {
	case p.ch <- PublishedEvent{Event: e, Timestamp: time.Now()}:
	default:
		p.dropped.Add(1)
	}
}

// Dropped returns how many events were discarded because the channel was full.
func (p *ChannelPublisher) Dropped() uint64 {
	return p.dropped.Load()
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
