package worker

import (
	"context"
	"sync"
)

type ProcessFunc[T any] func(ctx context.Context, job T) error

// Pool is a fixed-size worker pool over a buffered job channel. Submit blocks
// when the buffer is full, which bounds outbound concurrency for callers like
// the notification dispatcher.
type Pool[T any] struct {
	numWorkers int
	jobs       chan T
	processor  ProcessFunc[T]
	wg         sync.WaitGroup
}

func NewPool[T any](numWorkers, bufferSize int, processor ProcessFunc[T]) *Pool[T] {
	return &Pool[T]{
		numWorkers: numWorkers,
		jobs:       make(chan T, bufferSize),
		processor:  processor,
	}
}

func (p *Pool[T]) Start(ctx context.Context) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool[T]) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.processor(ctx, job)
		}
	}
}

func (p *Pool[T]) Submit(job T) {
	p.jobs <- job
}

// SubmitCtx enqueues a job unless ctx is done first. It exists so producers
// cannot block forever on a full buffer after the workers have been
// cancelled.
func (p *Pool[T]) SubmitCtx(ctx context.Context, job T) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.jobs <- job:
		return nil
	}
}

// Stop closes the job channel and waits for workers to drain it.
func (p *Pool[T]) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
