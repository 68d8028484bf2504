package resilience

import "sync"

type flightCall struct {
	wg    sync.WaitGroup
	value any
	err   error
}

// SingleFlight collapses concurrent calls sharing a key into one
// execution; latecomers wait and share the result. The zero value is
// ready to use.
type SingleFlight struct {
	mu    sync.Mutex
	calls map[string]*flightCall
}

func (f *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]*flightCall)
	}
	if call, ok := f.calls[key]; ok {
		f.mu.Unlock()
		call.wg.Wait()
		return call.value, call.err, true
	}

	call := &flightCall{}
	call.wg.Add(1)
	f.calls[key] = call
	f.mu.Unlock()

	call.value, call.err = fn()

	f.mu.Lock()
	delete(f.calls, key)
	f.mu.Unlock()
	call.wg.Done()

	return call.value, call.err, false
}
