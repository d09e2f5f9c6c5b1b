// Package middleware содержит промежуточные обработчики: логирование
// входящих сообщений и восстановление после паники.
package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// LogMessage логирует входящее сообщение.
// Текст обрезается до 50 символов — в группах бывают простыни.
func LogMessage(message *tgbotapi.Message) {
	if message == nil || message.From == nil || message.Chat == nil {
		return
	}

	text := message.Text
	if len(text) > 50 {
		text = text[:50] + "..."
	}

	log.WithFields(log.Fields{
		"user_id":    message.From.ID,
		"chat_id":    message.Chat.ID,
		"username":   message.From.UserName,
		"message_id": message.MessageID,
		"text":       text,
	}).Debug("Входящее сообщение")
}
