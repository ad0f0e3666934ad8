package pool

import (
	"io"
	"runtime"
	"sync"
	"sync/atomic"
)

// searchAlone runs f, which may return nil, until count successes are found.
func searchAlone(f func() interface{}, count int) []interface{} {
	results := make([]interface{}, count)
	for i := 0; i < len(results); i++ {
		results[i] = nil
		for ; results[i] == nil; results[i] = f() {
		}
	}
	return results
}

// task tells a latent worker to keep evaluating f until enough results exist.
type task struct {
	// ctr holds the number of result slots still unclaimed.
	ctr     *int64
	f       func() interface{}
	results []interface{}
	// done receives exactly one signal per published result.
	done chan<- struct{}
}

// worker keeps searching for successful evaluations of t.f while *t.ctr > 0.
//
// A success claims a result slot by decrementing the counter. The slot must
// be written before the signal on t.done: Search returns once it has received
// len(t.results) signals, and only the send orders the write before that. A
// worker that decrements the counter below zero lost the race for the last
// slot and must not signal, since nobody is left to receive.
func worker(tasks <-chan task) {
	for t := range tasks {
		for atomic.LoadInt64(t.ctr) > 0 {
			res := t.f()
			if res == nil {
				continue
			}
			i := atomic.AddInt64(t.ctr, -1)
			if i < 0 {
				break
			}
			t.results[i] = res
			t.done <- struct{}{}
		}
	}
}

// Pool is a pool of workers used to parallelize searches for rare values,
// like safe primes.
//
// Functions needing a *Pool will work with a nil receiver, doing the
// equivalent work on the current thread instead.
//
// By creating a pool, you avoid the overhead of spinning up goroutines for
// each new operation.
type Pool struct {
	// tasks is the common channel used to hand work to the workers,
	// which effectively makes this a work stealing pool.
	tasks       chan task
	workerCount int
}

// NewPool creates a new pool with a certain number of workers.
//
// If count <= 0, the number of available CPUs is used instead.
func NewPool(count int) *Pool {
	var p Pool

	if count <= 0 {
		count = runtime.NumCPU()
	}

	p.tasks = make(chan task)
	p.workerCount = count

	for i := 0; i < count; i++ {
		go worker(p.tasks)
	}

	return &p
}

// TearDown cleanly tears down the pool, stopping its workers.
func (p *Pool) TearDown() {
	close(p.tasks)
}

// Search queries the function f until count successes are found.
//
// f is supposed to try a single candidate, returning nil if that candidate
// isn't successful.
//
// The result will be an array containing the first count successes.
func (p *Pool) Search(count int, f func() interface{}) []interface{} {
	if p == nil {
		return searchAlone(f, count)
	}

	results := make([]interface{}, count)
	ctr := int64(count)
	done := make(chan struct{})
	t := task{ctr: &ctr, f: f, results: results, done: done}
	for i := 0; i < p.workerCount; i++ {
		p.tasks <- t
	}
	// Every slot is written before its signal is sent, so after count signals
	// all of results is published.
	for i := 0; i < count; i++ {
		<-done
	}

	return results
}

// LockedReader wraps an io.Reader to be safe for concurrent reads.
//
// Naturally, when reading concurrently, which value ends up getting read
// is raced, but you won't end up reading the same value twice, or otherwise
// messing up the state of the reader.
type LockedReader struct {
	reader io.Reader
	m      sync.Mutex
}

// NewLockedReader creates a LockedReader by wrapping an underlying value.
func NewLockedReader(r io.Reader) *LockedReader {
	// Intentionally not initializing m, since the zero value is ok
	return &LockedReader{reader: r}
}

// Read implements io.Reader for LockedReader.
func (r *LockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.reader.Read(p)
}
