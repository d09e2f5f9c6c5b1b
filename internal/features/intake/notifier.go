// Package intake — notifier.go отправляет анкету в Telegram:
// HTML-сообщение с данными, затем фото и видео отдельными сообщениями.
package intake

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// sender — минимальный контракт Telegram API (реализует *tgbotapi.BotAPI).
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier пересылает анкеты в сконфигурированный чат.
type Notifier struct {
	bot    sender
	chatID int64
}

// NewNotifier создаёт отправщик анкет.
func NewNotifier(bot sender, chatID int64) *Notifier {
	return &Notifier{bot: bot, chatID: chatID}
}

// Send отправляет анкету, фото и видео в чат.
// Ошибка отправки отдельного фото/видео логируется, но не прерывает
// остальные отправки; ошибкой всей операции считается только
// непрошедшее текстовое сообщение.
func (n *Notifier) Send(app *Application, photoPaths []string, videoPath string) error {
	msg := tgbotapi.NewMessage(n.chatID, formatApplication(app))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("ошибка отправки анкеты: %w", err)
	}

	for _, path := range photoPaths {
		photo := tgbotapi.NewPhoto(n.chatID, tgbotapi.FilePath(path))
		if _, err := n.bot.Send(photo); err != nil {
			log.WithError(err).WithField("photo", path).Error("Ошибка отправки фото")
		}
	}

	if videoPath != "" {
		video := tgbotapi.NewVideo(n.chatID, tgbotapi.FilePath(videoPath))
		video.Caption = "📹 Видео презентация"
		if _, err := n.bot.Send(video); err != nil {
			log.WithError(err).WithField("video", videoPath).Error("Ошибка отправки видео")
		}
	}

	log.Info("Анкета отправлена в группу")
	return nil
}

// formatApplication собирает HTML-текст анкеты.
func formatApplication(app *Application) string {
	var sb strings.Builder

	sb.WriteString("🆕 <b>НОВАЯ АНКЕТА МОДЕЛИ</b>\n\n")
	sb.WriteString(fmt.Sprintf("👤 <b>Имя:</b> %s\n", orDefault(app.Name)))
	sb.WriteString(fmt.Sprintf("🎂 <b>Возраст:</b> %s лет\n", orDefault(app.Age)))
	sb.WriteString(fmt.Sprintf("📏 <b>Рост:</b> %s см\n", orDefault(app.Height)))
	sb.WriteString(fmt.Sprintf("⚖️ <b>Вес:</b> %s кг\n", orDefault(app.Weight)))
	sb.WriteString(fmt.Sprintf("🌍 <b>Гражданство:</b> %s\n", orDefault(app.Citizenship)))
	sb.WriteString(fmt.Sprintf("💬 <b>Telegram:</b> %s\n", orDefault(app.Telegram)))
	sb.WriteString(fmt.Sprintf("📲 <b>WhatsApp:</b> %s\n", orDefault(app.WhatsApp)))
	sb.WriteString(fmt.Sprintf("💼 <b>Опыт:</b> %s\n", orDefault(app.Experience)))

	if app.Countries != "" {
		sb.WriteString(fmt.Sprintf("🗺️ <b>Страны опыта:</b> %s\n", app.Countries))
	}

	return sb.String()
}

func orDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Не указано"
	}
	return s
}
