// README: Push-based location source fed by an external device feed.
package ride

import (
	"context"
	"sync"
)

// PushSource adapts an external stream of device fixes (a client posting
// location updates over the API) into a LocationSource. One subscriber at a
// time; a new Subscribe replaces the previous channel.
type PushSource struct {
	mu sync.Mutex
	ch chan Fix
}

func NewPushSource() *PushSource {
	return &PushSource{}
}

func (p *PushSource) Subscribe(ctx context.Context) (<-chan Fix, error) {
	p.mu.Lock()
	ch := make(chan Fix, 16)
	p.ch = ch
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		p.mu.Lock()
		if p.ch == ch {
			p.ch = nil
		}
		p.mu.Unlock()
	}()
	return ch, nil
}

// Publish hands a fix to the current subscriber, dropping it when nobody is
// subscribed or the buffer is full. Stale fixes are worthless; blocking the
// HTTP path on them is not.
func (p *PushSource) Publish(f Fix) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return
	}
	select {
	case p.ch <- f:
	default:
	}
}
