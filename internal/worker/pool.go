package worker

import "sync"

// Job produces one value. Jobs must not panic; the pool does not recover.
type Job[T any] func() T

// Result pairs a job's output with the id it was submitted under.
type Result[T any] struct {
	JobID  string
	Output T
}

// Pool runs jobs on a fixed set of workers. Test generation goes through a
// pool so a slow AI provider never blocks the handler goroutines; results
// come back on a single channel tagged with the job id.
type Pool[T any] struct {
	jobs    chan jobWrapper[T]
	results chan Result[T]
	wg      sync.WaitGroup
}

type jobWrapper[T any] struct {
	id string
	fn Job[T]
}

func NewPool[T any](workerCount, bufferSize int) *Pool[T] {
	p := &Pool[T]{
		jobs:    make(chan jobWrapper[T], bufferSize),
		results: make(chan Result[T], bufferSize),
	}

	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.results <- Result[T]{
			JobID:  job.id,
			Output: job.fn(),
		}
	}
}

// Submit queues a job. It blocks when the queue is full.
func (p *Pool[T]) Submit(id string, fn Job[T]) {
	p.jobs <- jobWrapper[T]{id: id, fn: fn}
}

// Results returns the output channel shared by all workers.
func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Stop lets in-flight jobs finish, then closes the results channel.
// Submit must not be called after Stop.
func (p *Pool[T]) Stop() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
}
