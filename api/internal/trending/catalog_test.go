package trending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"aideas/api/internal/llm/llmtest"
	"aideas/api/internal/types"
)

func generated(n int, categories ...string) []types.Product {
	if len(categories) == 0 {
		categories = []string{"AI"}
	}
	out := make([]types.Product, n)
	for i := range out {
		out[i] = types.Product{
			Name:        fmt.Sprintf("Product %02d", i),
			Description: "generated entry",
			Categories:  categories,
			Popularity:  100 - i%100,
			Metrics:     types.Metrics{"users": fmt.Sprintf("%dM+", i+1)},
		}
	}
	return out
}

func replyOf(t *testing.T, products []types.Product) string {
	t.Helper()
	b, err := json.Marshal(products)
	require.NoError(t, err)
	return string(b)
}

func newCatalog(t *testing.T, eng *llmtest.Engine) *Catalog {
	return New(eng, zaptest.NewLogger(t))
}

func TestList_UpstreamFailureYieldsFallback(t *testing.T) {
	c := newCatalog(t, &llmtest.Engine{Err: errors.New("503 service unavailable")})

	got := c.List(context.Background(), "")
	assert.NotEmpty(t, got)
	if diff := cmp.Diff(Fallback(), got); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestList_AIOnFailureIsChatGPT(t *testing.T) {
	c := newCatalog(t, &llmtest.Engine{Err: errors.New("boom")})

	got := c.List(context.Background(), "AI")
	require.Len(t, got, 1)
	assert.Equal(t, "ChatGPT", got[0].Name)
}

func TestList_FiltersGeneratedEntries(t *testing.T) {
	products := append(generated(30, "Gaming"), generated(25, "AI", "Design")...)
	c := newCatalog(t, &llmtest.Engine{Reply: replyOf(t, products)})

	got := c.List(context.Background(), "AI")
	require.Len(t, got, 25)
	for _, p := range got {
		assert.True(t, p.HasCategory("AI"), p.Name)
	}
}

func TestList_KeepsLongerListsAndOrder(t *testing.T) {
	want := generated(51)
	// Deliberately out of popularity order.
	want[0].Popularity, want[50].Popularity = 3, 99
	c := newCatalog(t, &llmtest.Engine{Reply: replyOf(t, want)})

	got := c.List(context.Background(), "")
	require.Len(t, got, 51)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order must be preserved (-want +got):\n%s", diff)
	}
}

func TestList_PadsShortListsFromFallback(t *testing.T) {
	up := generated(10)
	c := newCatalog(t, &llmtest.Engine{Reply: replyOf(t, up)})

	got := c.List(context.Background(), "")
	fb := Fallback()
	// 10 generated entries followed by fallback[10:].
	require.Len(t, got, len(fb))
	assert.Equal(t, up, got[:10])
	assert.Equal(t, fb[10:], got[10:])
}

func TestList_PaddingDoesNotDeduplicate(t *testing.T) {
	fb := Fallback()
	// Zoom sits at fallback index 2, so padding from index 2 repeats it.
	up := []types.Product{fb[2], fb[0]}
	c := newCatalog(t, &llmtest.Engine{Reply: replyOf(t, up)})

	got := c.List(context.Background(), "")
	require.Len(t, got, len(fb))
	zoom := 0
	for _, p := range got {
		if p.Name == "Zoom" {
			zoom++
		}
	}
	assert.Equal(t, 2, zoom)
	assert.Equal(t, []string{"Zoom", "ChatGPT", "Zoom"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestList_RepairCases(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"empty text", ""},
		{"not json", "Sure! Here are some products:"},
		{"object instead of array", `{"products": []}`},
		{"entry with wrong type", `[{"name": "Slack", "categories": "Productivity"}]`},
		{"scalar entry", `["Slack"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCatalog(t, &llmtest.Engine{Reply: tt.reply})
			assert.Equal(t, Fallback(), c.List(context.Background(), ""))
		})
	}
}

func TestList_StripsFences(t *testing.T) {
	up := generated(50)
	c := newCatalog(t, &llmtest.Engine{Reply: "```json\n" + replyOf(t, up) + "\n```"})

	assert.Equal(t, up, c.List(context.Background(), ""))
}

func TestList_EmptyArrayIsFullyPadded(t *testing.T) {
	c := newCatalog(t, &llmtest.Engine{Reply: "[]"})
	assert.Equal(t, Fallback(), c.List(context.Background(), "All"))
}

func TestList_UnknownCategory(t *testing.T) {
	c := newCatalog(t, &llmtest.Engine{Err: errors.New("down")})

	for _, category := range []string{"Security", "Education", "Quantum Knitting", "ai"} {
		got := c.List(context.Background(), category)
		assert.NotNil(t, got, category)
		assert.Empty(t, got, category)
	}
}

func TestList_Prompt(t *testing.T) {
	eng := &llmtest.Engine{Reply: "[]"}
	c := newCatalog(t, eng)

	c.List(context.Background(), "")
	c.List(context.Background(), "Finance")

	calls := eng.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "List 50 popular software products across all categories", calls[0].User)
	assert.Equal(t, "List 50 popular software products in the Finance category", calls[1].User)
	for _, call := range calls {
		assert.True(t, call.JSONMode)
		assert.Equal(t, 2000, call.MaxTokens)
		assert.InDelta(t, 0.7, call.Temperature, 1e-6)
		assert.Contains(t, call.System, "Market share (40%)")
		assert.Contains(t, call.System, "Healthcare, Security")
	}
}

func TestFilter(t *testing.T) {
	assert.Equal(t, []types.Product{}, Filter(nil, ""))
	fb := Fallback()
	assert.Equal(t, fb, Filter(fb, "All"))

	gaming := Filter(fb, "Gaming")
	names := make([]string, 0, len(gaming))
	for _, p := range gaming {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Discord", "Twitch", "Epic Games Store"}, names)
}

func TestPad(t *testing.T) {
	fb := Fallback()
	assert.Len(t, Pad(nil), len(fb))
	assert.Len(t, Pad(generated(40)), 40, "nothing left in the fallback past index 40")
	assert.Len(t, Pad(generated(TargetSize)), TargetSize)
}
