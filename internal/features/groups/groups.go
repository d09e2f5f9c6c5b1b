// Package groups определяет, какие чаты отслеживает бот,
// и какой язык/имя сконфигурированы для каждого из них.
package groups

import (
	"fmt"

	"modelbridge.asia/balance-bot/internal/config"
)

// Language — язык ответов бота в группе.
type Language string

const (
	LanguageRU Language = "ru"
	LanguageZH Language = "zh"
)

// DefaultLanguage используется для групп без конфигурации.
const DefaultLanguage = LanguageZH

// Info — конфигурация одной группы.
type Info struct {
	ChatID   int64
	Name     string
	Language Language
}

// Router решает, отслеживается ли чат, и отдаёт его конфигурацию.
// Поддерживаются две политики:
//   - allow-list (по умолчанию): только группы из конфигурации;
//   - trackUnknown: любая группа отслеживается, незнакомые получают
//     синтетическое имя и язык по умолчанию.
type Router struct {
	byID         map[int64]Info
	order        []int64
	trackUnknown bool
}

// NewRouter создаёт роутер из сконфигурированных групп.
func NewRouter(cfgGroups []config.Group, trackUnknown bool) *Router {
	byID := make(map[int64]Info, len(cfgGroups))
	order := make([]int64, 0, len(cfgGroups))
	for _, g := range cfgGroups {
		if _, ok := byID[g.ChatID]; ok {
			continue
		}
		byID[g.ChatID] = Info{
			ChatID:   g.ChatID,
			Name:     g.Name,
			Language: Language(g.Language),
		}
		order = append(order, g.ChatID)
	}
	return &Router{byID: byID, order: order, trackUnknown: trackUnknown}
}

// Resolve возвращает конфигурацию чата и признак «отслеживается ли он».
// Для незнакомых чатов при trackUnknown=true возвращается Fallback.
func (r *Router) Resolve(chatID int64) (Info, bool) {
	if info, ok := r.byID[chatID]; ok {
		return info, true
	}
	if r.trackUnknown {
		return Fallback(chatID), true
	}
	return Info{}, false
}

// Configured возвращает все сконфигурированные группы
// в порядке объявления (для сводок и логов при старте).
func (r *Router) Configured() []Info {
	out := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Fallback — синтетическая конфигурация для чата без записи в GROUPS.
func Fallback(chatID int64) Info {
	return Info{
		ChatID:   chatID,
		Name:     fmt.Sprintf("Group %d", chatID),
		Language: DefaultLanguage,
	}
}
