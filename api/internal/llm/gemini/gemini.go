package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"aideas/api/internal/llm"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// Complete sends one GenerateContent call. A client is opened per call and
// closed afterwards; nothing is shared between requests.
func (e *Engine) Complete(ctx context.Context, in llm.Request) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	name := e.Model
	if in.Model != "" {
		name = in.Model
	}
	m := cl.GenerativeModel(strings.TrimSpace(name))
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	configure(m, in)

	resp, err := m.GenerateContent(ctx, genai.Text(in.User))
	if err != nil {
		return "", err
	}
	return firstText(resp), nil
}

func configure(m *genai.GenerativeModel, in llm.Request) {
	m.GenerationConfig = generationConfig(in)
	if in.System != "" {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(in.System)},
		}
	}
}

func generationConfig(in llm.Request) genai.GenerationConfig {
	gc := genai.GenerationConfig{
		Temperature: ptrFloat32(in.Temperature),
	}
	if in.MaxTokens > 0 {
		gc.MaxOutputTokens = ptrInt32(int32(in.MaxTokens))
	}
	if in.JSONMode {
		gc.ResponseMIMEType = "application/json"
	}
	return gc
}

// --------------------------- helpers ---------------------------

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }
