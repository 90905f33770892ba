package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of a Job.
type Result interface {
	GetError() error
}

type task struct {
	seq int
	job Job
}

type outcome struct {
	seq    int
	result Result
}

// Pool runs jobs on a fixed number of goroutines and returns results in
// submission order.
type Pool struct {
	workers    int
	jobQueue   chan task
	results    chan outcome
	wg         sync.WaitGroup
	collected  chan []Result
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
	submitted  int
}

// NewPool creates a pool bound to ctx. Non-positive worker counts mean one.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan task, workers*2),
		results:    make(chan outcome, workers*2),
		collected:  make(chan []Result, 1),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers and the result collector.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	go p.collect()
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case t, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := t.job.Execute(p.ctx)
			select {
			case p.results <- outcome{seq: t.seq, result: result}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// collect drains results as they arrive so workers never block on a full
// results channel.
func (p *Pool) collect() {
	var outs []outcome
	for o := range p.results {
		outs = append(outs, o)
	}

	maxSeq := -1
	for _, o := range outs {
		if o.seq > maxSeq {
			maxSeq = o.seq
		}
	}
	ordered := make([]Result, maxSeq+1)
	for _, o := range outs {
		ordered[o.seq] = o.result
	}
	p.collected <- ordered
}

// Submit enqueues a job. It must not be called concurrently with itself or
// after Wait. After Shutdown it returns without enqueuing.
func (p *Pool) Submit(job Job) {
	t := task{seq: p.submitted, job: job}
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- t:
		p.submitted++
	}
}

// Wait closes the queue, waits for all jobs and returns their results in
// submission order. Jobs dropped by cancellation leave nil entries.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()

	results := <-p.collected
	if len(results) < p.submitted {
		results = append(results, make([]Result, p.submitted-len(results))...)
	}
	return results
}

// Shutdown cancels running jobs and stops the workers.
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
