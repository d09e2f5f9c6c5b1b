// Package main — точка входа бота.
// Загружает конфигурацию, инициализирует приложение и запускает
// цикл бота вместе с HTTP-сервером анкет.
// Поддерживает graceful shutdown по SIGINT/SIGTERM.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"modelbridge.asia/balance-bot/internal/app"
	"modelbridge.asia/balance-bot/internal/config"
)

func main() {
	// Настраиваем логирование
	setupLogging()

	// .env для локального запуска; в проде переменные приходят из окружения
	_ = godotenv.Load()

	log.Info("=== Бот запускается ===")

	// Загружаем конфигурацию из переменных окружения.
	// Без обязательных переменных процесс не стартует.
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Не удалось загрузить конфигурацию")
	}

	// Устанавливаем уровень логирования из конфига
	level, err := log.ParseLevel(cfg.AppLogLevel)
	if err == nil {
		log.SetLevel(level)
	}

	// Контекст, отменяемый по сигналу остановки (Ctrl+C, docker stop)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем приложение (БД, бот, сервисы, обработчики)
	application, err := app.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Не удалось инициализировать приложение")
	}
	defer application.DB.Close()
	defer application.RateLimiter.Close()

	// Запускаем планировщик задач (cron)
	application.Scheduler.Start(ctx)
	defer application.Scheduler.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		application.Bot.Start(gctx)
		return nil
	})
	g.Go(func() error {
		return application.RunIntake(gctx)
	})

	log.Info("=== Бот готов к работе ===")

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Остановка с ошибкой")
		os.Exit(1)
	}

	log.Info("=== Бот остановлен ===")
}

// setupLogging настраивает формат логов.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}
