// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозиторий, сервисы,
// обработчики и собирает всё в один объект App.
package app

import (
	"context"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"modelbridge.asia/balance-bot/internal/bot"
	"modelbridge.asia/balance-bot/internal/bot/filters"
	"modelbridge.asia/balance-bot/internal/bot/middleware"
	"modelbridge.asia/balance-bot/internal/config"
	"modelbridge.asia/balance-bot/internal/db/postgres"
	"modelbridge.asia/balance-bot/internal/features/balance"
	"modelbridge.asia/balance-bot/internal/features/groups"
	"modelbridge.asia/balance-bot/internal/features/intake"
	"modelbridge.asia/balance-bot/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
	// HTTP-сервер приёма анкет; nil, если INTAKE_CHAT_ID не задан
	IntakeServer *http.Server
	RateLimiter  *middleware.RateLimiter
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Роутер групп ===
	router := groups.NewRouter(cfg.Groups, cfg.TrackUnknownGroups)
	for _, info := range router.Configured() {
		log.Infof("Отслеживается группа %q (ID: %d, язык: %s)", info.Name, info.ChatID, info.Language)
	}

	// === 4. Баланс ===
	balanceRepo := balance.NewRepository(pool)
	balanceService := balance.NewService(balanceRepo, router, cfg.DBQueryTimeout)
	balanceHandler := balance.NewHandler(balanceService, botAPI)

	// === 5. Бот ===
	chatFilter := filters.NewChatFilter(router)
	b := bot.New(botAPI, cfg, chatFilter, balanceHandler)

	// === 6. Приём анкет (опционально) ===
	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	var intakeServer *http.Server
	if cfg.IntakeChatID != 0 {
		notifier := intake.NewNotifier(botAPI, cfg.IntakeChatID)
		handler := intake.NewHandler(notifier, limiter, cfg.UploadDir, cfg.MaxUploadSizeMB)
		intakeServer = intake.NewServer(cfg.HTTPPort, handler)
	} else {
		log.Info("INTAKE_CHAT_ID не задан — приём анкет выключен")
	}

	// === 7. Планировщик задач ===
	scheduler := jobs.NewScheduler(balanceService, router, b.SendToChat, cfg.SummaryCron, cfg.AppTimezone)

	return &App{
		Bot:          b,
		Scheduler:    scheduler,
		DB:           pool,
		BotAPI:       botAPI,
		IntakeServer: intakeServer,
		RateLimiter:  limiter,
	}, nil
}

// RunIntake запускает HTTP-сервер анкет (no-op, если он выключен).
func (a *App) RunIntake(ctx context.Context) error {
	if a.IntakeServer == nil {
		return nil
	}
	return intake.RunServer(ctx, a.IntakeServer)
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001GroupBalances},
		{2, migration002BalanceTransactions},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001GroupBalances = `
CREATE TABLE IF NOT EXISTS group_balances (
    group_id BIGINT PRIMARY KEY,
    group_name VARCHAR(255) NOT NULL,
    language VARCHAR(8) NOT NULL DEFAULT 'zh',
    current_balance NUMERIC(12,2) NOT NULL DEFAULT 0.00,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
`

var migration002BalanceTransactions = `
CREATE TABLE IF NOT EXISTS balance_transactions (
    id BIGSERIAL PRIMARY KEY,
    group_id BIGINT NOT NULL,
    user_id BIGINT NOT NULL DEFAULT 0,
    username VARCHAR(255) NOT NULL DEFAULT 'Unknown',
    message_id BIGINT NOT NULL DEFAULT 0,
    amount NUMERIC(12,2) NOT NULL,
    previous_balance NUMERIC(12,2) NOT NULL,
    new_balance NUMERIC(12,2) NOT NULL,
    transaction_type VARCHAR(16) NOT NULL,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_balance_transactions_group ON balance_transactions(group_id);
CREATE INDEX IF NOT EXISTS idx_balance_transactions_created_at ON balance_transactions(created_at DESC);
`
