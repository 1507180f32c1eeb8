// Package pool runs jobs on a fixed set of worker goroutines.
package pool

import (
	"runtime"
	"sync"

	"github.com/cespare/xxhash/v2"
)

type Partitionable interface {
	PartitionKey() string
}

type Config struct {
	BufferSize int // default: 1
	NumWorkers int // default: runtime.NumCPU()
}

func NewConfig(bufferSize int, numWorkers int) Config {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return Config{
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
	}
}

// Pool dispatches each job to the worker selected by hashing its
// PartitionKey, so jobs sharing a key run in submission order.
//
// A panic inside handleFn is recovered and handed to recoverFn with the job
// that caused it; the worker keeps serving its queue.
type Pool[T Partitionable] struct {
	chs       []chan T
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func New[T Partitionable](
	config Config,
	handleFn func(T),
	recoverFn func(job T, r any),
) *Pool[T] {
	config = NewConfig(config.BufferSize, config.NumWorkers)
	p := &Pool[T]{chs: make([]chan T, config.NumWorkers)}

	ready := sync.WaitGroup{}
	for i := range p.chs {
		ch := make(chan T, config.BufferSize)
		p.chs[i] = ch
		ready.Add(1)
		p.wg.Add(1)
		go func(ch chan T) {
			defer p.wg.Done()
			ready.Done()
			for job := range ch {
				run(job, handleFn, recoverFn)
			}
		}(ch)
	}
	// Wait until all workers have been started before returning
	ready.Wait()
	return p
}

func run[T any](job T, handleFn func(T), recoverFn func(T, any)) {
	defer func() {
		if r := recover(); r != nil {
			recoverFn(job, r)
		}
	}()
	handleFn(job)
}

// Submit queues job on its partition's worker, blocking while that queue is full.
// Submitting after Close panics.
func (p *Pool[T]) Submit(job T) {
	p.chs[indexOf(job, len(p.chs))] <- job
}

// Size reports the number of workers.
func (p *Pool[T]) Size() int { return len(p.chs) }

// Close stops accepting jobs and waits until every queued job has run.
func (p *Pool[T]) Close() {
	p.closeOnce.Do(func() {
		for _, ch := range p.chs {
			close(ch)
		}
	})
	p.wg.Wait()
}

func hash(key string) uint64 {
	return xxhash.Sum64String(key)
}

func indexOf(job Partitionable, numChs int) int {
	switch numChs {
	case 0:
		panic("number of channels cannot be 0")
	case 1:
		return 0
	default:
		return int(hash(job.PartitionKey()) % uint64(numChs))
	}
}
