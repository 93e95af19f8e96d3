package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/Freeeeeet/mentorship_api/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const (
	textNotLinked = "❌ Чат не привязан к профилю.\n\n" +
		"Укажите telegram_chat_id в своём профиле, номер чата можно узнать через /start."
	textInternalError = "❌ Произошла ошибка. Попробуйте позже."
)

func (c *Controller) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	c.sendMessage(ctx, b, update.Message.Chat.ID, startText(update.Message.Chat.ID))
}

func (c *Controller) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	c.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

func (c *Controller) handleSessions(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	c.sendMessage(ctx, b, update.Message.Chat.ID, c.sessionsText(ctx, update.Message.Chat.ID))
}

func (c *Controller) handleBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	c.sendMessage(ctx, b, update.Message.Chat.ID, c.bookingsText(ctx, update.Message.Chat.ID))
}

func startText(chatID int64) string {
	return fmt.Sprintf(
		"👋 Привет!\n\n"+
			"Номер этого чата: %d\n"+
			"Сохраните его в поле telegram_chat_id своего профиля, чтобы получать напоминания о занятиях.\n\n"+
			"/sessions - Завершённые занятия\n"+
			"/bookings - Мои записи\n"+
			"/help - Справка",
		chatID,
	)
}

const helpText = "📚 Справка по командам:\n\n" +
	"/start - Показать номер чата для привязки профиля\n" +
	"/sessions - Количество завершённых занятий\n" +
	"/bookings - Список записей\n" +
	"/help - Показать эту справку"

// linkedProfile возвращает профиль чата, а если его нет, то текст ответа
func (c *Controller) linkedProfile(ctx context.Context, chatID int64) (*model.Profile, string) {
	profile, err := c.profiles.GetByTelegramChatID(ctx, chatID)
	if errors.Is(err, service.ErrProfileNotFound) {
		return nil, textNotLinked
	}
	if err != nil {
		c.logger.Error("Failed to get profile by chat", zap.Int64("chat_id", chatID), zap.Error(err))
		return nil, textInternalError
	}
	return profile, ""
}

func (c *Controller) sessionsText(ctx context.Context, chatID int64) string {
	profile, reply := c.linkedProfile(ctx, chatID)
	if profile == nil {
		return reply
	}

	count, err := c.sessions.GetSessions(ctx, profile.UserID)
	if err != nil {
		c.logger.Error("Failed to count sessions", zap.String("user_id", profile.UserID.String()), zap.Error(err))
		return textInternalError
	}

	return fmt.Sprintf("✔️ %s, у вас %d %s.", profile.DisplayName(), count, pluralizeSessions(count))
}

func (c *Controller) bookingsText(ctx context.Context, chatID int64) string {
	profile, reply := c.linkedProfile(ctx, chatID)
	if profile == nil {
		return reply
	}

	bookings, err := c.sessions.ListBookings(ctx, profile.UserID)
	if err != nil {
		c.logger.Error("Failed to list bookings", zap.String("user_id", profile.UserID.String()), zap.Error(err))
		return textInternalError
	}
	if len(bookings) == 0 {
		return "📭 У вас пока нет записей."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 У вас %d %s:\n", len(bookings), pluralizeBookings(len(bookings)))
	for _, booking := range bookings {
		sb.WriteString("\n")
		sb.WriteString(formatBooking(booking, profile.UserID))
	}
	return sb.String()
}

// sendMessage отправляет сообщение и логирует если не удалось
func (c *Controller) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		c.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
