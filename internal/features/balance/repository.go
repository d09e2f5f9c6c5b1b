// Package balance — repository.go выполняет все операции с таблицами
// group_balances и balance_transactions.
//
// Намеренно НЕТ серверного атомарного инкремента (balance = balance + $1):
// сервис читает текущий баланс, считает новый и записывает его целиком.
// Суммы передаются и читаются строками, чтобы NUMERIC не проходил
// через float и не терял точность.
package balance

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"modelbridge.asia/balance-bot/internal/common"
	"modelbridge.asia/balance-bot/internal/features/groups"
)

// Repository предоставляет методы для работы с балансами групп.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий балансов.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetBalance возвращает текущий баланс группы.
// Если записи нет — common.ErrAccountNotFound.
func (r *Repository) GetBalance(ctx context.Context, groupID int64) (decimal.Decimal, error) {
	query := `SELECT current_balance::text FROM group_balances WHERE group_id = $1`

	var raw string
	err := r.db.QueryRow(ctx, query, groupID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Decimal{}, common.ErrAccountNotFound
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("ошибка получения баланса: %w", err)
	}

	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("некорректный баланс в БД %q: %w", raw, err)
	}
	return balance, nil
}

// CreateAccount создаёт запись баланса группы с нулевым балансом.
// Повторный вызов для существующей группы — no-op (ON CONFLICT DO NOTHING).
func (r *Repository) CreateAccount(ctx context.Context, groupID int64, name string, language groups.Language) error {
	query := `
		INSERT INTO group_balances (group_id, group_name, language, current_balance)
		VALUES ($1, $2, $3, '0.00')
		ON CONFLICT (group_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, groupID, name, string(language))
	if err != nil {
		return fmt.Errorf("ошибка создания баланса группы: %w", err)
	}
	return nil
}

// SetBalance записывает новый баланс группы.
func (r *Repository) SetBalance(ctx context.Context, groupID int64, newBalance decimal.Decimal) error {
	query := `
		UPDATE group_balances
		SET current_balance = $2::numeric, updated_at = NOW()
		WHERE group_id = $1
	`
	tag, err := r.db.Exec(ctx, query, groupID, newBalance.StringFixed(2))
	if err != nil {
		return fmt.Errorf("ошибка записи баланса: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrAccountNotFound
	}
	return nil
}

// AppendTransaction добавляет запись в журнал транзакций.
// Журнал append-only: записи не изменяются и не удаляются.
func (r *Repository) AppendTransaction(ctx context.Context, t *Transaction) error {
	query := `
		INSERT INTO balance_transactions
			(group_id, user_id, username, message_id, amount,
			 previous_balance, new_balance, transaction_type)
		VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7::numeric, $8)
	`
	_, err := r.db.Exec(ctx, query,
		t.GroupID, t.UserID, t.Username, t.MessageID,
		t.Amount.StringFixed(2),
		t.PreviousBalance.StringFixed(2),
		t.NewBalance.StringFixed(2),
		t.Type,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи транзакции: %w", err)
	}
	return nil
}
