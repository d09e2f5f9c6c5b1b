// Package balance — service.go содержит бизнес-логику учёта баланса:
// нормализация суммы, чтение текущего баланса (с ленивым созданием
// записи), вычисление нового и запись транзакции в журнал.
package balance

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"modelbridge.asia/balance-bot/internal/common"
	"modelbridge.asia/balance-bot/internal/features/groups"
)

// Store — контракт хранилища балансов (реализуется Repository).
// Сервис работает только через него, чтобы тесты могли подставить фейк.
type Store interface {
	GetBalance(ctx context.Context, groupID int64) (decimal.Decimal, error)
	CreateAccount(ctx context.Context, groupID int64, name string, language groups.Language) error
	SetBalance(ctx context.Context, groupID int64, newBalance decimal.Decimal) error
	AppendTransaction(ctx context.Context, t *Transaction) error
}

// Result — итог применения транзакции: баланс до и после.
type Result struct {
	Previous decimal.Decimal
	New      decimal.Decimal
	Amount   decimal.Decimal // нормализованная сумма, которая была применена
}

// Service управляет балансами групп.
type Service struct {
	store        Store
	router       *groups.Router
	queryTimeout time.Duration
}

// NewService создаёт сервис баланса.
func NewService(store Store, router *groups.Router, queryTimeout time.Duration) *Service {
	return &Service{
		store:        store,
		router:       router,
		queryTimeout: queryTimeout,
	}
}

// Apply применяет одну транзакцию к балансу группы и пишет её в журнал.
// Возвращает пару (баланс до, баланс после).
//
// Схема намеренно read-modify-write, без атомарного инкремента в БД:
// два одновременных сообщения в одной группе могут прочитать один и
// тот же баланс, и вторая запись перезатрёт первую. Журнал транзакций
// при этом сохранит обе записи — по нему сверяются вручную. При
// человеческом темпе сообщений это принятое ограничение.
//
// Запись в журнал выполняется только после успешной записи баланса.
// Если упадёт именно журнал — баланс уже обновлён, а записи в журнале
// нет. Это известный зазор, двухфазного коммита здесь нет.
func (s *Service) Apply(ctx context.Context, groupID int64, rawAmount decimal.Decimal, userID int64, username string, messageID int64) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	amount := Normalize(rawAmount)

	previous, err := s.currentBalance(ctx, groupID)
	if err != nil {
		return Result{}, err
	}

	newBalance := Normalize(previous.Add(amount))

	if err := s.store.SetBalance(ctx, groupID, newBalance); err != nil {
		return Result{}, err
	}

	if username == "" {
		username = UnknownUsername
	}
	t := &Transaction{
		GroupID:         groupID,
		UserID:          userID,
		Username:        username,
		MessageID:       messageID,
		Amount:          amount,
		PreviousBalance: previous,
		NewBalance:      newBalance,
		Type:            TransactionType(amount),
	}
	if err := s.store.AppendTransaction(ctx, t); err != nil {
		return Result{}, err
	}

	log.WithFields(log.Fields{
		"group_id": groupID,
		"previous": previous.StringFixed(2),
		"new":      newBalance.StringFixed(2),
		"amount":   amount.StringFixed(2),
	}).Info("Баланс обновлён")

	return Result{Previous: previous, New: newBalance, Amount: amount}, nil
}

// CurrentBalance возвращает текущий баланс группы,
// создавая запись с нулевым балансом, если её ещё нет.
func (s *Service) CurrentBalance(ctx context.Context, groupID int64) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	return s.currentBalance(ctx, groupID)
}

// currentBalance читает баланс группы. Если записи нет — создаёт её
// с конфигурацией из роутера (или синтетической для незнакомой группы)
// и возвращает 0.00.
func (s *Service) currentBalance(ctx context.Context, groupID int64) (decimal.Decimal, error) {
	balance, err := s.store.GetBalance(ctx, groupID)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, common.ErrAccountNotFound) {
		return decimal.Decimal{}, err
	}

	info, tracked := s.router.Resolve(groupID)
	if !tracked {
		info = groups.Fallback(groupID)
	}

	if err := s.store.CreateAccount(ctx, groupID, info.Name, info.Language); err != nil {
		return decimal.Decimal{}, err
	}

	log.WithFields(log.Fields{
		"group_id":   groupID,
		"group_name": info.Name,
		"language":   info.Language,
	}).Info("Создана запись баланса группы")

	return decimal.Zero, nil
}
