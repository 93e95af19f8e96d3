// Package telegram команды бота для просмотра занятий и бронирований
package telegram

import (
	"context"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileService interface {
	GetByTelegramChatID(ctx context.Context, chatID int64) (*model.Profile, error)
}

type SessionService interface {
	GetSessions(ctx context.Context, userID uuid.UUID) (int, error)
	ListBookings(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error)
}

type Controller struct {
	bot      *bot.Bot
	profiles ProfileService
	sessions SessionService
	logger   *zap.Logger
}

func NewController(b *bot.Bot, profiles ProfileService, sessions SessionService, logger *zap.Logger) *Controller {
	return &Controller{
		bot:      b,
		profiles: profiles,
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *Controller) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/sessions", bot.MatchTypeExact, c.handleSessions)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/bookings", bot.MatchTypeExact, c.handleBookings)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *Controller) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Привязать чат к профилю"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "sessions", Description: "✔️ Завершённые занятия"},
		{Command: "bookings", Description: "📅 Мои записи"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start блокирует до отмены ctx
func (c *Controller) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
