package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/mentorship_api/internal/config"
	"github.com/Freeeeeet/mentorship_api/internal/controller/api"
	"github.com/Freeeeeet/mentorship_api/internal/controller/telegram"
	"github.com/Freeeeeet/mentorship_api/internal/lock"
	"github.com/Freeeeeet/mentorship_api/internal/notify"
	"github.com/Freeeeeet/mentorship_api/internal/repository"
	"github.com/Freeeeeet/mentorship_api/internal/repository/base"
	"github.com/Freeeeeet/mentorship_api/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// App собирает инфраструктуру, сервисы и транспорты в один процесс
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	pool  *pgxpool.Pool
	redis *redis.Client

	server    *api.Server
	bot       *telegram.Controller
	scheduler *Scheduler
	bookings  *service.Scheduler
}

// NewPool открывает пул соединений и проверяет доступность базы
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// New создаёт пул, репозитории, сервисы и транспорты
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	pool, err := NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	a.pool = pool

	locker, err := a.newLocker(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	var tgBot *bot.Bot
	if cfg.TelegramToken != "" {
		tgBot, err = bot.New(cfg.TelegramToken, bot.WithErrorsHandler(func(err error) {
			logger.Error("Telegram bot error", zap.Error(err))
		}))
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create telegram bot: %w", err)
		}
	}

	notifier := a.newNotifier(tgBot)

	tx := base.NewTransactor(pool)
	profileRepo := repository.NewProfileRepository(pool)
	experienceRepo := repository.NewExperienceRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	pairRepo := repository.NewMentorMenteeRepository(pool)

	profiles := service.NewProfiles(profileRepo, experienceRepo, logger)
	matcher := service.NewMatcher(profileRepo, experienceRepo, logger)
	mentorship := service.NewMentorship(tx, pairRepo, profileRepo, logger)
	scheduler := service.NewScheduler(tx, slotRepo, bookingRepo, profileRepo, locker, notifier, logger)
	reminders := service.NewReminders(bookingRepo, profileRepo, notifier, logger)
	a.bookings = scheduler

	handler := api.NewHandler(profiles, matcher, mentorship, scheduler, logger)
	a.server = api.NewServer(api.Config{
		JWTSecret:    cfg.JWTSecret,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, handler, logger)

	if tgBot != nil {
		a.bot = telegram.NewController(tgBot, profiles, scheduler, logger)
	}

	a.scheduler, err = NewScheduler(cfg.ReminderCron, reminders, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

// Pool отдаёт пул для миграций при старте
func (a *App) Pool() *pgxpool.Pool {
	return a.pool
}

// newLocker выбирает Redis, если он настроен, иначе локальные блокировки
func (a *App) newLocker(ctx context.Context) (lock.Locker, error) {
	if a.cfg.RedisAddr == "" {
		a.logger.Warn("REDIS_ADDR is not set, booking locks are process local")
		return lock.NewLocal(), nil
	}

	a.redis = redis.NewClient(&redis.Options{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisDB,
	})
	if err := a.redis.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return lock.NewRedis(a.redis, a.logger), nil
}

// newNotifier объединяет настроенные каналы, без них уведомления отбрасываются
func (a *App) newNotifier(tgBot *bot.Bot) notify.Notifier {
	var channels notify.Multi
	if tgBot != nil {
		channels = append(channels, notify.NewTelegram(tgBot))
	}
	if a.cfg.SMTPHost != "" {
		channels = append(channels, notify.NewSMTPEmail(
			a.cfg.SMTPHost, a.cfg.SMTPPort, a.cfg.SMTPUser, a.cfg.SMTPPassword, a.cfg.SMTPFrom))
	}

	if len(channels) == 0 {
		a.logger.Warn("No notification channel configured")
		return notify.Nop{}
	}
	return channels
}

// Run блокирует до отмены ctx или падения одного из компонентов
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.Start(a.cfg.HTTPAddr); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if a.bot != nil {
		if err := a.bot.RegisterHandlers(gctx); err != nil {
			a.logger.Warn("Failed to register bot commands", zap.Error(err))
		}
		g.Go(func() error {
			a.bot.Start(gctx)
			return nil
		})
	}

	a.scheduler.Start()

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		a.scheduler.Stop(shutdownCtx)
		err := a.server.Shutdown(shutdownCtx)
		// Фоновые уведомления дожидаемся после остановки HTTP
		a.bookings.Wait(shutdownCtx)
		return err
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close освобождает соединения с базой и Redis
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("Failed to close redis", zap.Error(err))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
