package idea

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"aideas/api/internal/apperr"
	"aideas/api/internal/llm/llmtest"
	"aideas/api/internal/types"
)

const validReply = `{
	"marketSize": "$12B by 2030",
	"businessModel": "B2B SaaS subscription",
	"monetizationStrategies": ["Tiered plans", "Usage-based API pricing"],
	"competitors": ["Jasper", "Copy.ai"]
}`

func TestAnalyze_Success(t *testing.T) {
	eng := &llmtest.Engine{Reply: validReply}
	a := NewAnalyzer(eng, zaptest.NewLogger(t))

	got, err := a.Analyze(context.Background(), "AI copywriter for real-estate listings")
	require.NoError(t, err)
	assert.Equal(t, types.IdeaAnalysis{
		MarketSize:             "$12B by 2030",
		BusinessModel:          "B2B SaaS subscription",
		MonetizationStrategies: []string{"Tiered plans", "Usage-based API pricing"},
		Competitors:            []string{"Jasper", "Copy.ai"},
	}, got)

	calls := eng.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "AI copywriter for real-estate listings", calls[0].User)
	assert.Equal(t, systemPrompt, calls[0].System)
	assert.InDelta(t, 0.7, calls[0].Temperature, 1e-6)
	assert.Equal(t, 1000, calls[0].MaxTokens)
	assert.False(t, calls[0].JSONMode)
}

func TestAnalyze_EmptyIdeaSkipsUpstream(t *testing.T) {
	for _, idea := range []string{"", "   ", "\n\t"} {
		eng := &llmtest.Engine{Reply: validReply}
		_, err := NewAnalyzer(eng, nil).Analyze(context.Background(), idea)

		assert.True(t, apperr.Is(err, apperr.KindValidation), "%q: %v", idea, err)
		assert.Empty(t, eng.Calls(), "%q must not reach the model", idea)
	}
}

func TestAnalyze_UpstreamFailure(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	eng := &llmtest.Engine{EngineName: "gpt", Err: cause}

	got, err := NewAnalyzer(eng, zaptest.NewLogger(t)).Analyze(context.Background(), "idea")
	assert.Equal(t, types.IdeaAnalysis{}, got)
	assert.True(t, apperr.Is(err, apperr.KindUpstream))
	assert.ErrorIs(t, err, cause)
}

func TestAnalyze_DoesNotStripFences(t *testing.T) {
	eng := &llmtest.Engine{Reply: "```json\n" + validReply + "\n```"}

	_, err := NewAnalyzer(eng, zaptest.NewLogger(t)).Analyze(context.Background(), "idea")
	assert.True(t, apperr.Is(err, apperr.KindMalformed))
}

func TestAnalyze_MalformedNeverPartial(t *testing.T) {
	eng := &llmtest.Engine{Reply: `{"marketSize":"$1B","businessModel":"Ads","monetizationStrategies":["Ads"]}`}

	got, err := NewAnalyzer(eng, zaptest.NewLogger(t)).Analyze(context.Background(), "idea")
	assert.Equal(t, types.IdeaAnalysis{}, got)

	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, apperr.KindMalformed, e.Kind)
	assert.Equal(t, "competitors", e.Field)
}
