// Package balance — format.go собирает локализованные ответы бота.
// Два шаблона (ru/zh) с одинаковой структурой: заголовок,
// строка «было», строка операции, строка «стало». Чистые функции.
package balance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"modelbridge.asia/balance-bot/internal/features/groups"
)

// CurrencySuffix — фиксированная валюта всех групп.
const CurrencySuffix = "¥"

// FormatConfirmation строит HTML-ответ на применённую транзакцию
// на языке группы. Для неизвестного языка используется китайский.
func FormatConfirmation(amount, previousBalance, newBalance decimal.Decimal, lang groups.Language) string {
	if lang == groups.LanguageRU {
		return formatRU(amount, previousBalance, newBalance)
	}
	return formatZH(amount, previousBalance, newBalance)
}

// formatRU форматирует сообщение на русском языке.
func formatRU(amount, previousBalance, newBalance decimal.Decimal) string {
	emoji, title := "💰", "Баланс пополнен!"
	opEmoji, opText := "➕", "Пополнение"
	if !amount.IsPositive() {
		emoji, title = "💸", "Списание с баланса"
		opEmoji, opText = "➖", "Списание"
		amount = amount.Abs() // в строке операции сумма без знака
	}

	return fmt.Sprintf(`%s <b>%s</b>
📈 <b>Было:</b> %s %s
%s <b>%s:</b> %s %s
💎 <b>Итоговый баланс:</b> %s %s`,
		emoji, title,
		FormatNumber(previousBalance), CurrencySuffix,
		opEmoji, opText, FormatNumber(amount), CurrencySuffix,
		FormatNumber(newBalance), CurrencySuffix,
	)
}

// formatZH форматирует сообщение на китайском языке.
func formatZH(amount, previousBalance, newBalance decimal.Decimal) string {
	emoji, title := "💰", "余额已充值！"
	opEmoji, opText := "➕", "充值金额"
	if !amount.IsPositive() {
		emoji, title = "💸", "余额已扣除"
		opEmoji, opText = "➖", "扣除金额"
		amount = amount.Abs()
	}

	return fmt.Sprintf(`%s <b>%s</b>
📈 <b>之前余额:</b> %s %s
%s <b>%s:</b> %s %s
💎 <b>当前余额:</b> %s %s`,
		emoji, title,
		FormatNumber(previousBalance), CurrencySuffix,
		opEmoji, opText, FormatNumber(amount), CurrencySuffix,
		FormatNumber(newBalance), CurrencySuffix,
	)
}

// FormatSummary строит строку ежедневной сводки баланса группы.
func FormatSummary(balance decimal.Decimal, lang groups.Language) string {
	if lang == groups.LanguageRU {
		return fmt.Sprintf("📊 <b>Текущий баланс:</b> %s %s", FormatNumber(balance), CurrencySuffix)
	}
	return fmt.Sprintf("📊 <b>当前余额:</b> %s %s", FormatNumber(balance), CurrencySuffix)
}

// FormatNumber форматирует число для отображения:
// тысячи разделяются пробелом, дробная часть — через запятую,
// ровно 2 знака; целые значения выводятся без дробной части.
//
// Примеры:
//
//	FormatNumber(2350.75) → "2 350,75"
//	FormatNumber(1000)    → "1 000"
//	FormatNumber(-150.5)  → "-150,50"
func FormatNumber(n decimal.Decimal) string {
	s := n.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var sb strings.Builder
	sb.WriteString(sign)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(digit)
	}

	// ",00" не показываем — целые суммы читаются без хвоста
	if fracPart != "00" {
		sb.WriteByte(',')
		sb.WriteString(fracPart)
	}
	return sb.String()
}
