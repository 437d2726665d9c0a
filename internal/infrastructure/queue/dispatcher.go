package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

type task struct {
	key string
	run func(ctx context.Context)
}

// Dispatcher runs background tasks on a fixed set of workers. Tasks are
// sharded by key with consistent hashing, so tasks for the same key run one at
// a time in the order they were scheduled.
type Dispatcher struct {
	workers []chan task
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan task, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan task, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Schedule hands fn to the worker that owns key. It never blocks: when the
// worker's buffer is full the task is dropped and logged.
func (d *Dispatcher) Schedule(key string, fn func(ctx context.Context)) {
	select {
	case d.workers[d.shardIndex(key)] <- task{key: key, run: fn}:
	default:
		d.log.Warn().Str("key", key).Msg("task queue full, dropping task")
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan task) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ch:
			d.run(ctx, id, t)
		}
	}
}

func (d *Dispatcher) run(ctx context.Context, id int, t task) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Interface("panic", r).
				Str("key", t.key).
				Int("worker_id", id).
				Msg("task panicked")
		}
	}()
	t.run(ctx)
}
