// Package balance — amount.go распознаёт и проверяет суммы в сообщениях.
// Большинство сообщений в группе — не команды баланса, поэтому
// «не распознано» — это не ошибка, а нормальный исход.
package balance

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"modelbridge.asia/balance-bot/internal/common"
)

// Лимиты суммы одной транзакции (границы включительно).
var (
	MinTransactionAmount = decimal.RequireFromString("0.01")
	MaxTransactionAmount = decimal.RequireFromString("999999999.99")
)

// amountPattern — полное совпадение всей строки: знак, опциональные
// пробелы, число с необязательными разделителями тысяч (запятая или
// пробел) и необязательной дробной частью из 1-2 цифр.
// Поддерживаются форматы: +1000, -5000, +1,000, -5 000, +1000.50
var amountPattern = regexp.MustCompile(`^([+\-])\s*(\d{1,3}(?:[,\s]?\d{3})*(?:\.\d{1,2})?)$`)

// separatorReplacer убирает косметические разделители тысяч.
var separatorReplacer = strings.NewReplacer(",", "", " ", "")

// ParseAmount пытается распознать в тексте сумму вида "+1000" / "-5 000.50".
// Возвращает сумму со знаком и признак «распознано».
// Текст, который совпал с шаблоном, но не распарсился как число,
// логируется и считается нераспознанным (сообщение игнорируется).
func ParseAmount(text string) (decimal.Decimal, bool) {
	match := amountPattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return decimal.Decimal{}, false
	}

	raw := separatorReplacer.Replace(match[2])
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		log.WithFields(log.Fields{
			"amount": raw,
		}).Warn("Невалидная сумма")
		return decimal.Decimal{}, false
	}

	if match[1] == "-" {
		amount = amount.Neg()
	}
	return amount, true
}

// ValidateAmount проверяет, что |amount| в пределах [0.01, 999999999.99].
// Ноль всегда отклоняется как «слишком мало».
func ValidateAmount(amount decimal.Decimal) error {
	abs := amount.Abs()
	if abs.LessThan(MinTransactionAmount) {
		return common.ErrAmountTooSmall
	}
	if abs.GreaterThan(MaxTransactionAmount) {
		return common.ErrAmountTooLarge
	}
	return nil
}

// Normalize приводит сумму ровно к 2 знакам после запятой.
// Округление half-up от нуля: 1.005 → 1.01, 1.004 → 1.00.
// Вся арифметика и всё хранение идут только через нормализованные
// значения — никакого двоичного float.
func Normalize(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
