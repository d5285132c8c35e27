package worker

import (
	"sync"

	"github.com/rs/zerolog"
)

type Task func()

// Pool is a fixed-size goroutine pool. Tasks are buffered; Submit blocks once
// the buffer is full, which naturally throttles batch producers.
type Pool struct {
	tasks      chan Task
	wg         sync.WaitGroup
	maxWorkers int
	logger     zerolog.Logger
	startOnce  sync.Once
	stopOnce   sync.Once
}

func NewPool(maxWorkers int, logger zerolog.Logger) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Pool{
		tasks:      make(chan Task, maxWorkers*4),
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

func (p *Pool) Start() {
	p.startOnce.Do(func() {
		for i := 0; i < p.maxWorkers; i++ {
			p.wg.Add(1)
			go p.worker(i)
		}
		p.logger.Info().Int("max_workers", p.maxWorkers).Msg("Worker pool started")
	})
}

// Stop drains the queue and waits for in-flight tasks.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.tasks)
		p.wg.Wait()
		p.logger.Info().Msg("Worker pool stopped")
	})
}

func (p *Pool) Submit(task Task) {
	p.tasks <- task
}

func (p *Pool) MaxWorkers() int {
	return p.maxWorkers
}

func (p *Pool) QueueLength() int {
	return len(p.tasks)
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for task := range p.tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error().
						Int("worker_id", id).
						Interface("panic", r).
						Msg("Worker recovered from panic")
				}
			}()
			task()
		}()
	}
}
