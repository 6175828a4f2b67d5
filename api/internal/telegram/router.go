package telegram

import (
	"context"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"aideas/api/internal/apperr"
	"aideas/api/internal/types"
)

const maxMessageLen = 3900

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type IdeaAnalyzer interface {
	Analyze(ctx context.Context, idea string) (types.IdeaAnalysis, error)
}

type TrendingLister interface {
	List(ctx context.Context, category string) []types.Product
}

type Router struct {
	Bot      Sender
	Ideas    IdeaAnalyzer
	Trending TrendingLister
	Log      *zap.Logger
}

func (r *Router) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil || upd.Message.Chat == nil {
		return
	}
	if upd.Message.IsCommand() {
		r.HandleCommand(ctx, upd.Message)
		return
	}
	if text := strings.TrimSpace(upd.Message.Text); text != "" {
		r.evaluate(ctx, upd.Message.Chat.ID, text)
	}
}

func (r *Router) HandleCommand(ctx context.Context, m *tgbotapi.Message) {
	cid := m.Chat.ID
	args := strings.TrimSpace(m.CommandArguments())

	switch m.Command() {
	case "start", "help":
		r.send(cid, usageText)
	case "evaluate":
		if args == "" {
			r.send(cid, "Usage: /evaluate <your startup idea>")
			return
		}
		r.evaluate(ctx, cid, args)
	case "trending":
		r.trending(ctx, cid, resolveCategory(args))
	case "categories":
		r.send(cid, formatCategories())
	default:
		r.send(cid, "Unknown command. Send /help for the list.")
	}
}

func (r *Router) evaluate(ctx context.Context, cid int64, idea string) {
	r.send(cid, "Analyzing your idea...")

	res, err := r.Ideas.Analyze(ctx, idea)
	if err != nil {
		r.logger().Warn("telegram evaluate failed",
			zap.Int64("chat_id", cid),
			zap.String("kind", string(apperr.KindOf(err))),
			zap.Error(err))
		r.send(cid, "❌ "+apperr.PublicMessage(err))
		return
	}
	r.sendRendered(cid, func(m markup) string { return formatAnalysis(res, m) })
}

func (r *Router) trending(ctx context.Context, cid int64, category string) {
	products := r.Trending.List(ctx, category)
	if len(products) == 0 {
		r.send(cid, "No products found")
		return
	}
	r.sendRendered(cid, func(m markup) string { return formatProducts(category, products, topN, m) })
}

func (r *Router) send(chatID int64, text string) {
	r.deliver(tgbotapi.NewMessage(chatID, truncate(text)))
}

// sendRendered sends the Markdown rendering when it fits in one message and
// Telegram accepts it. Otherwise the plain rendering is truncated and sent,
// so a cut never lands inside an escape or an emphasis pair.
func (r *Router) sendRendered(chatID int64, render func(markup) string) {
	if text := render(markdown); len(text) <= maxMessageLen {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		_, err := r.Bot.Send(msg)
		if err == nil {
			return
		}
		r.logger().Warn("markdown rejected, resending as plain text", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	r.send(chatID, render(plainText))
}

func (r *Router) deliver(msg tgbotapi.MessageConfig) {
	if _, err := r.Bot.Send(msg); err != nil {
		r.logger().Warn("telegram send failed", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
	}
}

func truncate(text string) string {
	if len(text) <= maxMessageLen {
		return text
	}
	cut := maxMessageLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "…"
}

// resolveCategory maps a user-typed label onto the canonical one, ignoring case.
// Unknown labels pass through and simply match nothing.
func resolveCategory(arg string) string {
	arg = strings.TrimSpace(arg)
	if arg == "" || strings.EqualFold(arg, types.CategoryAll) {
		return types.CategoryAll
	}
	for _, c := range types.Categories {
		if strings.EqualFold(arg, c) {
			return c
		}
	}
	return arg
}
