package balance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"modelbridge.asia/balance-bot/internal/features/groups"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0"},
		{in: "500", want: "500"},
		{in: "1000", want: "1 000"},
		{in: "2350.75", want: "2 350,75"},
		{in: "150.5", want: "150,50"},
		{in: "999999999.99", want: "999 999 999,99"},
		{in: "-150.5", want: "-150,50"},
		{in: "-1234567", want: "-1 234 567"},
		{in: "100.00", want: "100"}, // целые без хвоста ,00
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(d(tt.in)), "FormatNumber(%s)", tt.in)
	}
}

func TestFormatConfirmationRU(t *testing.T) {
	t.Run("пополнение", func(t *testing.T) {
		got := FormatConfirmation(d("500"), d("0"), d("500"), groups.LanguageRU)
		assert.Contains(t, got, "<b>Баланс пополнен!</b>")
		assert.Contains(t, got, "<b>Было:</b> 0 ¥")
		assert.Contains(t, got, "<b>Пополнение:</b> 500 ¥")
		assert.Contains(t, got, "<b>Итоговый баланс:</b> 500 ¥")
	})

	t.Run("списание показывает сумму без знака", func(t *testing.T) {
		got := FormatConfirmation(d("-150.5"), d("500"), d("349.5"), groups.LanguageRU)
		assert.Contains(t, got, "<b>Списание с баланса</b>")
		assert.Contains(t, got, "<b>Списание:</b> 150,50 ¥")
		assert.Contains(t, got, "<b>Итоговый баланс:</b> 349,50 ¥")
		assert.NotContains(t, got, "-150")
	})
}

func TestFormatConfirmationZH(t *testing.T) {
	t.Run("пополнение", func(t *testing.T) {
		got := FormatConfirmation(d("1000"), d("0"), d("1000"), groups.LanguageZH)
		assert.Contains(t, got, "<b>余额已充值！</b>")
		assert.Contains(t, got, "<b>之前余额:</b> 0 ¥")
		assert.Contains(t, got, "<b>充值金额:</b> 1 000 ¥")
		assert.Contains(t, got, "<b>当前余额:</b> 1 000 ¥")
	})

	t.Run("списание", func(t *testing.T) {
		got := FormatConfirmation(d("-200"), d("1000"), d("800"), groups.LanguageZH)
		assert.Contains(t, got, "<b>余额已扣除</b>")
		assert.Contains(t, got, "<b>扣除金额:</b> 200 ¥")
	})

	t.Run("неизвестный язык падает в zh", func(t *testing.T) {
		got := FormatConfirmation(d("1"), d("0"), d("1"), groups.Language("xx"))
		assert.Contains(t, got, "余额")
	})
}

// Форматирование — чистая функция: повторный вызов даёт тот же результат.
func TestFormatConfirmationPure(t *testing.T) {
	first := FormatConfirmation(d("-42.5"), d("100"), d("57.5"), groups.LanguageRU)
	second := FormatConfirmation(d("-42.5"), d("100"), d("57.5"), groups.LanguageRU)
	assert.Equal(t, first, second)
}

func TestFormatSummary(t *testing.T) {
	assert.Contains(t, FormatSummary(d("349.5"), groups.LanguageRU), "Текущий баланс:</b> 349,50 ¥")
	assert.Contains(t, FormatSummary(d("1000"), groups.LanguageZH), "当前余额:</b> 1 000 ¥")
}
