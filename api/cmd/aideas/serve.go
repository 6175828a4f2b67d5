package main

import (
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aideas/api/internal/handle"
	"aideas/api/internal/httpserver"
	"aideas/api/internal/telegram"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, plus the Telegram bot when TELEGRAM_BOT_TOKEN is set",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()

	router := handle.New(a.ideas, a.catalog, a.log).Routes()
	g, ctx := errgroup.WithContext(cmd.Context())

	if a.cfg.BotEnabled() {
		bot, err := tgbotapi.NewBotAPI(a.cfg.TelegramBotToken)
		if err != nil {
			return fmt.Errorf("telegram: %w", err)
		}
		tr := &telegram.Router{
			Bot:      bot,
			Ideas:    a.ideas,
			Trending: a.catalog,
			Log:      a.log.Named("telegram"),
		}

		if base := a.cfg.TelegramWebhookURL; base != "" {
			path := telegram.WebhookPath(bot.Token)
			if err := telegram.RegisterWebhook(bot, base, path); err != nil {
				return fmt.Errorf("telegram webhook: %w", err)
			}
			router.Method(http.MethodPost, path, tr.WebhookHandler(ctx))
			a.log.Info("telegram webhook mode", zap.String("bot", bot.Self.UserName))
		} else {
			// getUpdates is rejected while a webhook is registered
			if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
				a.log.Warn("telegram delete webhook", zap.Error(err))
			}
			a.log.Info("telegram polling mode", zap.String("bot", bot.Self.UserName))
			g.Go(func() error { return tr.RunPolling(ctx, bot) })
		}
	}

	g.Go(func() error { return httpserver.Run(ctx, a.cfg.Addr(), router, a.log) })
	return g.Wait()
}
