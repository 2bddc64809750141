package editor

import (
	"context"
	"sync"
)

// paintQueue hands frames from the event loop to a single paint goroutine.
// It holds at most one pending frame and a newer frame replaces it. Only
// the event loop may call Send.
type paintQueue struct {
	ch     chan paintState
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	stop   sync.Once
}

func newPaintQueue(draw func(context.Context, paintState)) *paintQueue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &paintQueue{ch: make(chan paintState, 1), ctx: ctx, cancel: cancel}
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for st := range q.ch {
			if ctx.Err() != nil {
				continue
			}
			draw(ctx, st)
		}
	}()
	return q
}

// Send queues st, dropping any frame still waiting. It never blocks.
func (q *paintQueue) Send(st paintState) {
	select {
	case <-q.ch:
	default:
	}
	q.ch <- st
}

// Stop cancels the frame being drawn, drops the pending one and waits for
// the paint goroutine to exit.
func (q *paintQueue) Stop() {
	q.stop.Do(func() {
		q.cancel()
		close(q.ch)
		q.wg.Wait()
	})
}
