package pool_test

import (
	"runtime"
	"slices"
	"sync"
	"testing"

	"github.com/on-the-ground/fuzzy_ive_go/internal/pool"
	"github.com/stretchr/testify/assert"
)

// dummyJob implements Partitionable for testing partitioned dispatching.
type dummyJob struct {
	id    int
	group string
}

func (d dummyJob) PartitionKey() string {
	return d.group
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := pool.NewConfig(0, 0)
	assert.Equal(t, 1, cfg.BufferSize)
	assert.Equal(t, runtime.NumCPU(), cfg.NumWorkers)

	cfg = pool.NewConfig(8, 3)
	assert.Equal(t, 8, cfg.BufferSize)
	assert.Equal(t, 3, cfg.NumWorkers)
}

func TestPool_RunsEveryJobBeforeClose(t *testing.T) {
	var (
		mu  sync.Mutex
		ran []int
	)
	p := pool.New(pool.NewConfig(4, 3), func(job dummyJob) {
		mu.Lock()
		ran = append(ran, job.id)
		mu.Unlock()
	}, func(dummyJob, any) {})

	for i := 0; i < 20; i++ {
		p.Submit(dummyJob{id: i, group: string(rune('a' + i%5))})
	}
	p.Close()

	mu.Lock()
	defer mu.Unlock()
	slices.Sort(ran)
	want := make([]int, 20)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, ran)
	assert.Equal(t, 3, p.Size())
}

// Jobs with the same partition key are processed in order.
func TestPool_OrderIsPreservedForSamePartitionKey(t *testing.T) {
	var (
		mu        sync.Mutex
		processed []int
	)
	p := pool.New(pool.NewConfig(10, 4), func(job dummyJob) {
		mu.Lock()
		processed = append(processed, job.id)
		mu.Unlock()
	}, func(dummyJob, any) {})

	for i := 0; i < 5; i++ {
		p.Submit(dummyJob{id: i, group: "sameKey"})
	}
	p.Close()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, processed)
}

func TestPool_RecoversPanics(t *testing.T) {
	var (
		mu        sync.Mutex
		recovered []any
		finished  []int
	)
	p := pool.New(pool.NewConfig(2, 1), func(job dummyJob) {
		if job.id == 1 {
			panic("job boom")
		}
		mu.Lock()
		finished = append(finished, job.id)
		mu.Unlock()
	}, func(job dummyJob, r any) {
		mu.Lock()
		recovered = append(recovered, r)
		mu.Unlock()
	})

	for i := 0; i < 3; i++ {
		p.Submit(dummyJob{id: i})
	}
	p.Close()

	assert.Equal(t, []any{"job boom"}, recovered)
	assert.Equal(t, []int{0, 2}, finished)
}

func TestPool_CloseIsIdempotent(t *testing.T) {
	p := pool.New(pool.NewConfig(1, 2), func(dummyJob) {}, func(dummyJob, any) {})
	p.Close()
	p.Close()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when submitting to a closed pool")
		}
	}()
	p.Submit(dummyJob{id: 1})
}
