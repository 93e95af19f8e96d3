package notify

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// MessageSender часть *bot.Bot, нужная для уведомлений
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Telegram отправляет сообщения в чат, привязанный к профилю
type Telegram struct {
	sender MessageSender
}

func NewTelegram(sender MessageSender) *Telegram {
	return &Telegram{sender: sender}
}

func (t *Telegram) Notify(ctx context.Context, recipient *model.Profile, msg Message) error {
	if recipient.TelegramChatID == nil {
		return ErrNoChannel
	}

	text := msg.Text
	if msg.Subject != "" {
		text = msg.Subject + "\n\n" + msg.Text
	}

	_, err := t.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: *recipient.TelegramChatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	return nil
}
