// Package executortest provides a scriptable executor.Executor for tests.
package executortest

import (
	"context"
	"sync"
)

// Call records one command invocation.
type Call struct {
	Env  []string
	Name string
	Args []string
}

// Fake answers every command through Handler and records the calls.
// A nil Handler returns empty output and no error.
type Fake struct {
	Handler func(call Call) (string, error)

	mu    sync.Mutex
	calls []Call
}

func (f *Fake) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.record(Call{Name: name, Args: args})
}

func (f *Fake) ExecuteWithEnv(ctx context.Context, env []string, name string, args ...string) (string, error) {
	return f.record(Call{Env: env, Name: name, Args: args})
}

// Calls returns a copy of the recorded invocations.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

func (f *Fake) record(call Call) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.Handler == nil {
		return "", nil
	}
	return f.Handler(call)
}
