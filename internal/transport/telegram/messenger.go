package telegram

import (
	"context"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/oops"
)

// BotMessenger adapts the Telegram bot to the pipeline's Messenger interface,
// retrying transient failures (rate limits, network errors) with exponential
// backoff. Permanent API errors are surfaced on the first attempt.
type BotMessenger struct {
	bot         *bot.Bot
	maxAttempts uint64
}

func NewBotMessenger(b *bot.Bot, retryAttempts int) *BotMessenger {
	if retryAttempts < 1 {
		retryAttempts = 1
	}
	return &BotMessenger{bot: b, maxAttempts: uint64(retryAttempts)}
}

func (m *BotMessenger) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	return m.retry(ctx, func() error {
		ok, err := m.bot.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: messageID,
		})
		if err != nil {
			return err
		}
		if !ok {
			return backoff.Permanent(oops.With("chat_id", chatID, "message_id", messageID).Errorf("delete not confirmed"))
		}
		return nil
	})
}

func (m *BotMessenger) SendMessage(ctx context.Context, chatID int64, text string, entities []models.MessageEntity) (int, error) {
	var newID int
	err := m.retry(ctx, func() error {
		msg, err := m.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:   chatID,
			Text:     text,
			Entities: entities,
		})
		if err != nil {
			return err
		}
		newID = msg.ID
		return nil
	})
	return newID, err
}

func (m *BotMessenger) retry(ctx context.Context, op func() error) error {
	wrapped := func() error {
		err := op()
		if err != nil && isPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), m.maxAttempts), ctx)
	return backoff.Retry(wrapped, b)
}

// isPermanent classifies Telegram API errors that retrying cannot fix.
// Rate limits and transport hiccups stay retryable.
func isPermanent(err error) bool {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "too many requests") || strings.Contains(msg, "retry after") {
		return false
	}
	for _, s := range []string{
		"message to delete not found",
		"message can't be deleted",
		"not enough rights",
		"chat not found",
		"bot was kicked",
		"forbidden",
		"message is too long",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
