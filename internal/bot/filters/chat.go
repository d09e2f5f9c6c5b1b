// Package filters отбирает апдейты, которые бот вообще рассматривает.
package filters

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"modelbridge.asia/balance-bot/internal/features/groups"
)

// ChatFilter пропускает только текстовые сообщения из отслеживаемых
// групповых чатов. Личка, каналы, сервисные сообщения и чужие группы
// игнорируются без ответа.
type ChatFilter struct {
	router *groups.Router
}

// NewChatFilter создаёт фильтр поверх роутера групп.
func NewChatFilter(router *groups.Router) *ChatFilter {
	return &ChatFilter{router: router}
}

// Check возвращает конфигурацию группы и признак «сообщение в зоне
// ответственности бота».
func (f *ChatFilter) Check(message *tgbotapi.Message) (groups.Info, bool) {
	if message == nil || message.Chat == nil {
		return groups.Info{}, false
	}

	// Только групповые чаты: личку и каналы не трогаем
	if !message.Chat.IsGroup() && !message.Chat.IsSuperGroup() {
		return groups.Info{}, false
	}

	info, tracked := f.router.Resolve(message.Chat.ID)
	if !tracked {
		log.WithFields(log.Fields{
			"component": "ChatFilter",
			"chat_id":   message.Chat.ID,
			"chat_type": message.Chat.Type,
		}).Debug("deny: chat is not tracked")
		return groups.Info{}, false
	}

	return info, true
}
