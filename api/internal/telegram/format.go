package telegram

import (
	"fmt"
	"strings"

	"aideas/api/internal/types"
)

const topN = 10

const usageText = `AIdeas evaluates AI startup ideas and tracks trending software.

Send any text to have it analyzed as a startup idea, or use:
/evaluate <idea> - market size, business model, monetization, competitors
/trending [category] - top products, optionally filtered
/categories - available categories`

// markup renders text either as legacy Markdown or as plain text.
type markup bool

const (
	markdown  markup = true
	plainText markup = false
)

func (m markup) text(s string) string {
	if m {
		return esc(s)
	}
	return s
}

func (m markup) bold(s string) string {
	if m {
		return "*" + esc(s) + "*"
	}
	return s
}

func formatAnalysis(a types.IdeaAnalysis, m markup) string {
	var b strings.Builder
	b.WriteString(m.bold("Market Size") + "\n")
	b.WriteString(m.text(a.MarketSize))
	b.WriteString("\n\n" + m.bold("Business Model") + "\n")
	b.WriteString(m.text(a.BusinessModel))
	b.WriteString("\n\n" + m.bold("Monetization Strategies") + "\n")
	writeBullets(&b, a.MonetizationStrategies, m)
	b.WriteString("\n" + m.bold("Competitors") + "\n")
	writeBullets(&b, a.Competitors, m)
	return strings.TrimRight(b.String(), "\n")
}

func writeBullets(b *strings.Builder, items []string, m markup) {
	if len(items) == 0 {
		b.WriteString("n/a\n")
		return
	}
	for _, s := range items {
		b.WriteString("• ")
		b.WriteString(m.text(s))
		b.WriteString("\n")
	}
}

func formatProducts(category string, products []types.Product, limit int, m markup) string {
	if len(products) > limit {
		products = products[:limit]
	}

	var b strings.Builder
	if category == "" || category == types.CategoryAll {
		b.WriteString(m.bold("Trending software") + "\n\n")
	} else {
		b.WriteString(m.bold("Trending in "+category) + "\n\n")
	}
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s (%d)\n", i+1, m.bold(p.Name), p.Popularity)
		if p.Description != "" {
			b.WriteString(m.text(p.Description))
			b.WriteString("\n")
		}
		if len(p.Categories) > 0 {
			b.WriteString(m.text(strings.Join(p.Categories, ", ")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatCategories() string {
	return "Categories:\n" + types.CategoryAll + "\n" + strings.Join(types.Categories, "\n")
}

// esc escapes legacy Markdown control characters.
func esc(s string) string {
	s = strings.ReplaceAll(s, "`", "'")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "[", "\\[")
	return s
}
