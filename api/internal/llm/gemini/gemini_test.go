package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aideas/api/internal/llm"
)

func TestGenerationConfig(t *testing.T) {
	gc := generationConfig(llm.Request{Temperature: 0.7, MaxTokens: 2000, JSONMode: true})

	require.NotNil(t, gc.Temperature)
	assert.InDelta(t, 0.7, *gc.Temperature, 1e-6)
	require.NotNil(t, gc.MaxOutputTokens)
	assert.EqualValues(t, 2000, *gc.MaxOutputTokens)
	assert.Equal(t, "application/json", gc.ResponseMIMEType)

	plain := generationConfig(llm.Request{Temperature: 0.7})
	assert.Nil(t, plain.MaxOutputTokens)
	assert.Empty(t, plain.ResponseMIMEType)
}

func TestConfigure_SystemInstruction(t *testing.T) {
	m := &genai.GenerativeModel{}
	configure(m, llm.Request{System: "You are an expert startup analyst."})

	require.NotNil(t, m.SystemInstruction)
	assert.Equal(t, []genai.Part{genai.Text("You are an expert startup analyst.")}, m.SystemInstruction.Parts)

	bare := &genai.GenerativeModel{}
	configure(bare, llm.Request{})
	assert.Nil(t, bare.SystemInstruction)
}

func TestFirstText(t *testing.T) {
	assert.Equal(t, "", firstText(nil))
	assert.Equal(t, "", firstText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{
				&genai.Blob{MIMEType: "image/png"},
				genai.Text(`{"marketSize":"$5B"}`),
			}}},
		},
	}
	assert.Equal(t, `{"marketSize":"$5B"}`, firstText(resp))
}

func TestComplete_RequiresKey(t *testing.T) {
	_, err := New("  ", "gemini-2.5-flash").Complete(context.Background(), llm.Request{User: "idea"})
	assert.EqualError(t, err, "GEMINI_API_KEY is empty")
}
