// Package llmtest provides a scripted llm.Engine for tests.
package llmtest

import (
	"context"
	"sync"

	"aideas/api/internal/llm"
)

// Engine returns Reply (or Err) for every call and records the requests it saw.
// Respond, when set, takes precedence over Reply/Err.
type Engine struct {
	EngineName string
	Model      string
	Reply      string
	Err        error
	Respond    func(ctx context.Context, req llm.Request) (string, error)

	mu    sync.Mutex
	calls []llm.Request
}

func (e *Engine) Name() string {
	if e.EngineName == "" {
		return "fake"
	}
	return e.EngineName
}

func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Complete(ctx context.Context, req llm.Request) (string, error) {
	e.mu.Lock()
	e.calls = append(e.calls, req)
	e.mu.Unlock()

	if e.Respond != nil {
		return e.Respond(ctx, req)
	}
	return e.Reply, e.Err
}

func (e *Engine) Calls() []llm.Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]llm.Request, len(e.calls))
	copy(out, e.calls)
	return out
}
