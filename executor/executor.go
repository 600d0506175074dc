package executor

import (
	"context"
	"sync"

	"github.com/zeromicro/go-zero/core/threading"
)

// Executor is a bounded worker pool. Tasks are handled in submission
// order per worker; handler panics are contained per task.
type Executor[T any] struct {
	ctx     context.Context
	cancel  context.CancelFunc
	tasks   chan T
	handler func(task T)
	workers int
	wg      sync.WaitGroup
}

func NewExecutor[T any](ctx context.Context, workers int, queueSize int, handler func(task T)) *Executor[T] {
	e := &Executor[T]{
		tasks:   make(chan T, queueSize),
		handler: handler,
		workers: workers,
	}
	e.ctx, e.cancel = context.WithCancel(ctx)
	return e
}

func (e *Executor[T]) Start() {
	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			for {
				select {
				case <-e.ctx.Done():
					return
				case task, ok := <-e.tasks:
					if !ok {
						return
					}
					threading.RunSafe(func() {
						e.handler(task)
					})
				}
			}
		}()
	}
}

func (e *Executor[T]) Commit(task T) {
	e.tasks <- task
}

func (e *Executor[T]) QueueSize() int {
	return len(e.tasks)
}

// Wait closes the queue and blocks until every submitted task has been
// handled. No Commit may follow.
func (e *Executor[T]) Wait() {
	close(e.tasks)
	e.wg.Wait()
}

// Stop abandons queued tasks and releases the workers.
func (e *Executor[T]) Stop() {
	e.cancel()
}
