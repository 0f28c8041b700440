package toolrunner

import (
	"context"
	"strings"
	"sync"

	"github.com/pixie-sh/errors-go"
)

// Call is one recorded invocation.
type Call struct {
	Dir  string
	Line string
}

// Recorder is a Runner that records invocations instead of executing them.
// Commands whose joined form starts with a key of Fail return an error.
type Recorder struct {
	Fail map[string]bool

	mu    sync.Mutex
	calls []Call
}

// Run records the command line.
func (r *Recorder) Run(_ context.Context, dir, name string, args ...string) (*CommandResult, error) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))

	r.mu.Lock()
	r.calls = append(r.calls, Call{Dir: dir, Line: line})
	r.mu.Unlock()

	for prefix := range r.Fail {
		if strings.HasPrefix(line, prefix) {
			return &CommandResult{ExitCode: 1}, errors.New("command failed: %s", line)
		}
	}
	return &CommandResult{}, nil
}

// Calls returns the recorded invocations in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Lines returns only the recorded command lines.
func (r *Recorder) Lines() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Line
	}
	return out
}
