package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderSender задача, которую запускает фоновый планировщик
type ReminderSender interface {
	SendDailyReminders(ctx context.Context, day time.Time) (int, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	cron      *cron.Cron
	reminders ReminderSender
	logger    *zap.Logger
	timeout   time.Duration
	now       func() time.Time
}

// NewScheduler регистрирует рассылку напоминаний по cron-выражению cronExpr
func NewScheduler(cronExpr string, reminders ReminderSender, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		reminders: reminders,
		logger:    logger,
		timeout:   5 * time.Minute,
		now:       time.Now,
	}

	if _, err := s.cron.AddFunc(cronExpr, s.sendReminders); err != nil {
		return nil, fmt.Errorf("schedule reminders %q: %w", cronExpr, err)
	}
	return s, nil
}

// Start запускает фоновые задачи
func (s *Scheduler) Start() {
	s.logger.Info("Starting background scheduler")
	s.cron.Start()
}

// Stop останавливает планировщик и ждёт завершения запущенных задач
func (s *Scheduler) Stop(ctx context.Context) {
	s.logger.Info("Stopping background scheduler")
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Background jobs did not finish before shutdown")
	}
}

func (s *Scheduler) sendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.logger.Info("Starting daily reminders")

	sent, err := s.reminders.SendDailyReminders(ctx, s.now())
	if err != nil {
		s.logger.Error("Failed to send reminders", zap.Int("sent", sent), zap.Error(err))
	}
}
