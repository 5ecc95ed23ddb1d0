package tasks

import (
	"context"
	"log/slog"
	"sync"
)

// Pool runs tasks on a bounded set of workers. Each source's chain is
// isolated until its result is delivered; the pipeline reorders results
// by index, so completion order does not matter.
type Pool struct {
	workerCount int
	taskQueue   chan TaskInterface
	wg          sync.WaitGroup
}

func NewPool(workerCount int) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Pool{
		workerCount: workerCount,
		taskQueue:   make(chan TaskInterface, 64),
	}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

func (p *Pool) Enqueue(task TaskInterface) {
	p.taskQueue <- task
}

// Wait closes the queue and blocks until every enqueued task finished.
func (p *Pool) Wait() {
	close(p.taskQueue)
	p.wg.Wait()
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	for task := range p.taskQueue {
		select {
		case <-ctx.Done():
			slog.Debug("Worker stopping", "worker", id, "reason", ctx.Err())
			return
		default:
		}

		task.Start()
		slog.Debug("Executing task", "worker", id, "task", task.GetID(), "type", task.GetType(), "source", task.GetSourceName())
		task.Execute(ctx)
	}
}
