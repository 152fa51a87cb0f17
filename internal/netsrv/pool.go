package netsrv

import (
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const taskChanSize = 100

// WorkerFunction processes a single queued task, returning a non-nil
// error only for a fatal condition that should bring the pool down.
type WorkerFunction = func(t *tomb.Tomb, task any) error

// WorkerPool is a fixed-size pool of goroutines draining a shared task
// channel, adapted from saiputravu-Exchange/internal/worker.go.
type WorkerPool struct {
	n     int
	tasks chan any
	work  WorkerFunction
}

// NewWorkerPool constructs a pool sized for size concurrent workers.
func NewWorkerPool(size int) WorkerPool {
	return WorkerPool{
		tasks: make(chan any, taskChanSize),
		n:     size,
	}
}

// AddTask enqueues a task for the next free worker.
func (pool *WorkerPool) AddTask(task any) {
	pool.tasks <- task
}

// Setup keeps the pool topped up to its target size under t's
// supervision until t starts dying.
func (pool *WorkerPool) Setup(t *tomb.Tomb, work WorkerFunction) {
	pool.work = work
	log.Info().Int("workers", pool.n).Msg("starting worker pool")

	active := 0
	for {
		select {
		case <-t.Dying():
			return
		default:
			if active < pool.n {
				t.Go(func() error {
					err := pool.worker(t)
					active--
					return err
				})
				active++
			}
		}
	}
}

// worker services one task per call so Setup can keep spawning
// replacements, exactly matching the teacher's single-task-per-
// goroutine lifecycle.
func (pool *WorkerPool) worker(t *tomb.Tomb) error {
	select {
	case <-t.Dying():
		return nil
	case task := <-pool.tasks:
		if err := pool.work(t, task); err != nil {
			log.Error().Err(err).Msg("worker exiting on error")
			return err
		}
	}
	return nil
}
