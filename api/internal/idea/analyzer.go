package idea

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"aideas/api/internal/apperr"
	"aideas/api/internal/llm"
	"aideas/api/internal/types"
)

const (
	temperature = 0.7
	maxTokens   = 1000
)

const systemPrompt = `You are an expert startup analyst. Analyze the following AI startup idea and provide:
1. Market size estimate
2. Potential business model
3. Monetization strategies
4. Key competitors

Format the response as a JSON object with these exact keys:
- marketSize: string
- businessModel: string
- monetizationStrategies: string[]
- competitors: string[]`

// Analyzer turns a free-text idea into an IdeaAnalysis. It makes exactly one
// upstream call per Analyze and never returns a partial result.
type Analyzer struct {
	eng llm.Engine
	log *zap.Logger
}

func NewAnalyzer(eng llm.Engine, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{eng: eng, log: log.Named("idea")}
}

func (a *Analyzer) Analyze(ctx context.Context, idea string) (types.IdeaAnalysis, error) {
	if strings.TrimSpace(idea) == "" {
		return types.IdeaAnalysis{}, apperr.Validation("Idea parameter is required")
	}

	out, err := a.eng.Complete(ctx, llm.Request{
		System:      systemPrompt,
		User:        idea,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		a.log.Error("generative call failed", zap.String("engine", a.eng.Name()), zap.Error(err))
		return types.IdeaAnalysis{}, apperr.Upstream(a.eng.Name(), err)
	}

	// The raw text is parsed as-is: fenced answers are rejected here.
	res, err := Decode(out)
	if err != nil {
		a.log.Warn("malformed analysis", zap.String("engine", a.eng.Name()), zap.Error(err))
		return types.IdeaAnalysis{}, err
	}
	return res, nil
}
