// Package balance ведёт учёт баланса в группах.
// models.go описывает структуры для балансов групп и транзакций.
package balance

import (
	"time"

	"github.com/shopspring/decimal"

	"modelbridge.asia/balance-bot/internal/features/groups"
)

// Account представляет баланс одной группы.
// На каждую группу — ровно одна запись в таблице group_balances,
// создаётся лениво при первом сообщении.
type Account struct {
	GroupID        int64           `db:"group_id"`        // Telegram chat ID (может быть отрицательным)
	GroupName      string          `db:"group_name"`      // Отображаемое имя группы
	Language       groups.Language `db:"language"`        // Язык ответов: ru или zh
	CurrentBalance decimal.Decimal `db:"current_balance"` // Текущий баланс, 2 знака после запятой
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// Transaction представляет одно применённое изменение баланса.
// Записи append-only: никогда не изменяются и не удаляются,
// это журнал для ручной сверки.
type Transaction struct {
	ID              int64           `db:"id"`
	GroupID         int64           `db:"group_id"`
	UserID          int64           `db:"user_id"`          // Кто отправил сообщение (0, если неизвестно)
	Username        string          `db:"username"`         // Username отправителя или "Unknown"
	MessageID       int64           `db:"message_id"`       // ID исходного сообщения (для трассировки)
	Amount          decimal.Decimal `db:"amount"`           // Применённая сумма со знаком, нормализованная
	PreviousBalance decimal.Decimal `db:"previous_balance"` // Баланс до применения
	NewBalance      decimal.Decimal `db:"new_balance"`      // Баланс после: previous + amount
	Type            string          `db:"transaction_type"` // "add" или "subtract"
	CreatedAt       time.Time       `db:"created_at"`
}

// Типы транзакций
const (
	TxTypeAdd      = "add"      // Пополнение (+сумма)
	TxTypeSubtract = "subtract" // Списание (-сумма)
)

// TransactionType возвращает тип транзакции по знаку суммы.
func TransactionType(amount decimal.Decimal) string {
	if amount.IsPositive() {
		return TxTypeAdd
	}
	return TxTypeSubtract
}

// UnknownUsername подставляется, когда у отправителя нет username.
const UnknownUsername = "Unknown"
