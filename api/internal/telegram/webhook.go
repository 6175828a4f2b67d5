package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Requester interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// WebhookPath is the secret path updates are posted to.
func WebhookPath(token string) string {
	return "/telegram/webhook/" + shortHash(token)
}

// RegisterWebhook points Telegram at baseURL+path.
func RegisterWebhook(bot Requester, baseURL, path string) error {
	public := strings.TrimRight(baseURL, "/") + path
	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		return err
	}
	wh.DropPendingUpdates = true
	_, err = bot.Request(wh)
	return err
}

// WebhookHandler acknowledges each update immediately and processes it in
// the background under ctx.
func (r *Router) WebhookHandler(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var upd tgbotapi.Update
		if err := json.NewDecoder(req.Body).Decode(&upd); err != nil {
			r.logger().Warn("bad webhook payload", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
		go r.HandleUpdate(ctx, upd)
	})
}

// shortHash is FNV-1a over the token rendered as 16 hex digits.
func shortHash(s string) string {
	h := uint64(1469598103934665603)
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		out[i] = hexdigits[h&0xF]
		h >>= 4
	}
	return string(out)
}
