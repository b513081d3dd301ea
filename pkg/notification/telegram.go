package notification

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

// Telegram satisfies notify.Notifier on top of an already authorized bot,
// so the alert manager can reuse the bot the rest of the app talks through.
type Telegram struct {
	client  *tgbotapi.BotAPI
	chatIDs []int64
}

func (t *Telegram) SetClient(client *tgbotapi.BotAPI) {
	t.client = client
}

func (t *Telegram) AddReceivers(chatIDs ...int64) {
	t.chatIDs = append(t.chatIDs, chatIDs...)
}

// Send delivers subject and message as one text message to every receiver.
func (t *Telegram) Send(ctx context.Context, subject, message string) error {
	text := subject + "\n" + message

	for _, chatID := range t.chatIDs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := t.client.Send(msg); err != nil {
			return errors.Wrapf(err, "sending telegram message to chat %d", chatID)
		}
	}
	return nil
}
