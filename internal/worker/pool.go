package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const maxAttempts = 3

// Handler processes one task type.
type Handler interface {
	Handle(ctx context.Context, task Task) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, task Task) error

func (f HandlerFunc) Handle(ctx context.Context, task Task) error { return f(ctx, task) }

// Pool runs a fixed number of goroutines consuming the queue. Tasks that fail
// are re-enqueued up to maxAttempts, then parked on the dead-letter list.
type Pool struct {
	queue    *RedisQueue
	handlers map[string]Handler
	size     int
	wg       sync.WaitGroup
}

func NewPool(queue *RedisQueue, size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		queue:    queue,
		handlers: make(map[string]Handler),
		size:     size,
	}
}

// Register binds a handler to a task type. Must be called before Start.
func (p *Pool) Register(taskType string, h Handler) {
	p.handlers[taskType] = h
}

// Start launches the workers. They stop when ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	log.Info().Int("workers", p.size).Msg("worker pool started")
}

// Wait blocks until all workers have exited.
func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		task, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Int("worker", id).Msg("dequeue failed")
			time.Sleep(time.Second)
			continue
		}
		if task == nil {
			continue
		}
		p.process(ctx, id, *task)
	}
}

func (p *Pool) process(ctx context.Context, id int, task Task) {
	h, ok := p.handlers[task.Type]
	if !ok {
		log.Error().Str("task_id", task.ID).Str("type", task.Type).Msg("no handler registered, sending to DLQ")
		if err := p.queue.MoveToDLQ(ctx, task); err != nil {
			log.Error().Err(err).Str("task_id", task.ID).Msg("DLQ push failed")
		}
		return
	}

	task.Attempts++
	if err := h.Handle(ctx, task); err != nil {
		log.Warn().Err(err).
			Str("task_id", task.ID).
			Str("type", task.Type).
			Int("attempt", task.Attempts).
			Msg("task failed")
		if task.Attempts >= maxAttempts {
			if err := p.queue.MoveToDLQ(ctx, task); err != nil {
				log.Error().Err(err).Str("task_id", task.ID).Msg("DLQ push failed")
			}
			return
		}
		if err := p.queue.Enqueue(ctx, task); err != nil {
			log.Error().Err(err).Str("task_id", task.ID).Msg("requeue failed")
		}
		return
	}
	log.Debug().Str("task_id", task.ID).Str("type", task.Type).Int("worker", id).Msg("task done")
}
