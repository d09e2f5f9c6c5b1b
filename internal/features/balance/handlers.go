// Package balance — handlers.go обрабатывает сообщения вида "+1000" / "-500.50"
// в отслеживаемых группах: парсинг, валидация, применение и HTML-ответ.
package balance

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"modelbridge.asia/balance-bot/internal/features/groups"
)

// Sender — минимальный контракт Telegram API для отправки ответов.
// Его реализует *tgbotapi.BotAPI; в тестах подставляется фейк.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Handler обрабатывает сообщения с суммами.
type Handler struct {
	service *Service
	bot     Sender
}

// NewHandler создаёт обработчик сообщений баланса.
func NewHandler(service *Service, bot Sender) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleMessage обрабатывает одно текстовое сообщение из отслеживаемой группы.
// Возвращает true, если сообщение было распознано как команда баланса
// (даже если оно отклонено валидацией или упало на записи в БД).
//
// Политика ответов: в чат уходит только подтверждение успешной
// транзакции. Нераспознанные и отклонённые сообщения, как и сбои БД,
// видны только в логах — бот не спамит группу ошибками.
func (h *Handler) HandleMessage(ctx context.Context, message *tgbotapi.Message, info groups.Info) bool {
	amount, ok := ParseAmount(message.Text)
	if !ok {
		return false
	}

	if err := ValidateAmount(amount); err != nil {
		log.WithFields(log.Fields{
			"chat_id": message.Chat.ID,
			"amount":  amount.String(),
		}).WithError(err).Warn("Сумма не прошла валидацию")
		return true
	}

	var userID int64
	var username string
	if message.From != nil {
		userID = message.From.ID
		username = message.From.UserName
	}

	result, err := h.service.Apply(ctx, message.Chat.ID, amount, userID, username, int64(message.MessageID))
	if err != nil {
		log.WithFields(log.Fields{
			"chat_id":    message.Chat.ID,
			"message_id": message.MessageID,
			"user_id":    userID,
			"amount":     amount.String(),
		}).WithError(err).Error("Ошибка обновления баланса")
		return true
	}

	reply := tgbotapi.NewMessage(message.Chat.ID, FormatConfirmation(result.Amount, result.Previous, result.New, info.Language))
	reply.ParseMode = tgbotapi.ModeHTML
	reply.ReplyToMessageID = message.MessageID
	if _, err := h.bot.Send(reply); err != nil {
		log.WithError(err).WithField("chat_id", message.Chat.ID).Error("Ошибка отправки подтверждения")
	}

	log.WithFields(log.Fields{
		"group":  info.Name,
		"amount": result.Amount.StringFixed(2),
	}).Info("Обработана транзакция")

	return true
}
