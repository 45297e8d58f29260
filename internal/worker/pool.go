// Package worker provides a small bounded fan-out pool. The mixed-quiz flow
// uses one per request to generate question batches for several topics in
// parallel without hammering the LLM endpoint with unbounded concurrency.
package worker

// Task produces one result. Tasks carry their own context/error handling in
// the result type.
type Task[T any] func() T

// Result pairs a task's output with the id it was submitted under.
type Result[T any] struct {
	TaskID string
	Output T
}

// Pool runs submitted tasks on a fixed number of workers.
type Pool[T any] struct {
	tasks   chan taskWrapper[T]
	results chan Result[T]
}

type taskWrapper[T any] struct {
	id string
	fn Task[T]
}

// NewPool starts workerCount workers. bufferSize bounds both queues; keep it
// at least as large as the number of tasks a single caller will submit, so
// Submit never blocks mid-batch.
func NewPool[T any](workerCount, bufferSize int) *Pool[T] {
	p := &Pool[T]{
		tasks:   make(chan taskWrapper[T], bufferSize),
		results: make(chan Result[T], bufferSize),
	}

	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool[T]) worker() {
	for task := range p.tasks {
		p.results <- Result[T]{
			TaskID: task.id,
			Output: task.fn(),
		}
	}
}

// Submit queues a task under an id.
func (p *Pool[T]) Submit(id string, fn Task[T]) {
	p.tasks <- taskWrapper[T]{id: id, fn: fn}
}

// Results is the channel task outputs arrive on, in completion order.
func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Close stops the workers once queued tasks have drained. Submitting after
// Close panics, as with any closed channel.
func (p *Pool[T]) Close() {
	close(p.tasks)
}
