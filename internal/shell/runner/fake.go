package runner

import (
	"context"
	"sync"
)

// Fake is a scripted Runner for tests. Responses are keyed by the command
// name followed by its first argument, e.g. "vercel deploy" or "npm install".
// Unscripted commands succeed with empty output.
type Fake struct {
	mu        sync.Mutex
	Responses map[string]Result
	Errors    map[string]error
	Calls     []Command
}

// NewFake creates an empty Fake.
func NewFake() *Fake {
	return &Fake{
		Responses: make(map[string]Result),
		Errors:    make(map[string]error),
	}
}

// On scripts the result for key.
func (f *Fake) On(key string, result Result) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses[key] = result
	return f
}

// Run implements Runner.
func (f *Fake) Run(_ context.Context, cmd Command) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, cmd)
	key := Key(cmd)
	if err, ok := f.Errors[key]; ok {
		return Result{ExitCode: -1}, err
	}
	return f.Responses[key], nil
}

// Called reports whether a command with key was run.
func (f *Fake) Called(key string) bool {
	return f.Find(key) != nil
}

// Find returns the first recorded command with key, or nil.
func (f *Fake) Find(key string) *Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Calls {
		if Key(f.Calls[i]) == key {
			return &f.Calls[i]
		}
	}
	return nil
}

// Keys returns the keys of all recorded commands in order.
func (f *Fake) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		keys[i] = Key(c)
	}
	return keys
}

// Key returns the lookup key for cmd.
func Key(cmd Command) string {
	if len(cmd.Args) == 0 {
		return cmd.Name
	}
	return cmd.Name + " " + cmd.Args[0]
}
