// Package bot содержит главный цикл бота: приём апдейтов через long
// polling и маршрутизацию сообщений в обработчик баланса.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"modelbridge.asia/balance-bot/internal/bot/filters"
	"modelbridge.asia/balance-bot/internal/bot/middleware"
	"modelbridge.asia/balance-bot/internal/config"
	"modelbridge.asia/balance-bot/internal/features/balance"
)

// Bot объединяет API Telegram, фильтры и обработчики.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	chatFilter     *filters.ChatFilter
	balanceHandler *balance.Handler

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(api *tgbotapi.BotAPI, cfg *config.Config, chatFilter *filters.ChatFilter, balanceHandler *balance.Handler) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:            api,
		cfg:            cfg,
		chatFilter:     chatFilter,
		balanceHandler: balanceHandler,
		inflight:       make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram.
// Платформа может доставлять апдейты конкурентно — каждый уходит в
// свою горутину под семафором inflight.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
// Редактирования, не-текстовые сообщения и чужие чаты игнорируются
// молча — в группу никогда не уходят сообщения об ошибках.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	// Только новые текстовые сообщения: EditedMessage и прочее не считаем
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	message := update.Message
	middleware.LogMessage(message)

	info, ok := b.chatFilter.Check(message)
	if !ok {
		return
	}

	b.balanceHandler.HandleMessage(ctx, message, info)
}

// SendToChat отправляет HTML-сообщение в чат (для cron-сводок).
func (b *Bot) SendToChat(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}
