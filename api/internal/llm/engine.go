package llm

import (
	"context"
	"errors"
	"strings"
)

// Request is one completion call: a system instruction plus a single user message.
type Request struct {
	// Model overrides the engine default when set.
	Model       string
	System      string
	User        string
	Temperature float32
	MaxTokens   int
	// JSONMode asks the provider for structured (JSON) output.
	JSONMode bool
}

type Engine interface {
	Name() string
	GetModel() string
	Complete(ctx context.Context, req Request) (string, error)
}

type Engines struct {
	OpenAI Engine
	Gemini Engine
}

var ErrUnknownEngine = errors.New("unknown llm provider; use 'openai' or 'gemini'")

func (e *Engines) GetEngine(name string) (Engine, error) {
	var eng Engine
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gpt", "openai":
		eng = e.OpenAI
	case "gemini":
		eng = e.Gemini
	default:
		return nil, ErrUnknownEngine
	}
	if eng == nil {
		return nil, errors.New("llm provider " + name + " is not configured")
	}
	return eng, nil
}
