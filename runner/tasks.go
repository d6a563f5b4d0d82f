package runner

import "sync"

// taskGroup tracks the runner's fire-and-forget goroutines (outbound calls,
// session loops, move relays) so shutdown can wait for all of them.
type taskGroup struct {
	wg sync.WaitGroup
}

func (g *taskGroup) Go(fn func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		fn()
	}()
}

func (g *taskGroup) Wait() {
	g.wg.Wait()
}
