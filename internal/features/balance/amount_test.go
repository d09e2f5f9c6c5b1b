package balance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelbridge.asia/balance-bot/internal/common"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{name: "простое пополнение", text: "+1000", want: "1000", ok: true},
		{name: "простое списание", text: "-5000", want: "-5000", ok: true},
		{name: "разделитель запятая", text: "+1,000", want: "1000", ok: true},
		{name: "разделитель пробел", text: "-5 000", want: "-5000", ok: true},
		{name: "дробная часть", text: "+1000.50", want: "1000.5", ok: true},
		{name: "одна цифра дроби", text: "-150.5", want: "-150.5", ok: true},
		{name: "пробел после знака", text: "+ 500", want: "500", ok: true},
		{name: "пробелы вокруг", text: "  +500  ", want: "500", ok: true},
		{name: "миллионы с запятыми", text: "+1,234,567.89", want: "1234567.89", ok: true},
		{name: "длинное число без разделителей", text: "+999999999.99", want: "999999999.99", ok: true},

		{name: "обычный текст", text: "hello", ok: false},
		{name: "только знак", text: "+", ok: false},
		{name: "без знака", text: "1000", ok: false},
		{name: "три цифры дроби", text: "+12.345", ok: false},
		{name: "неполная группа тысяч", text: "+1,23", ok: false},
		{name: "мусор после числа", text: "+1000 руб", ok: false},
		{name: "двойной знак", text: "++100", ok: false},
		{name: "знак в середине", text: "цена +100", ok: false},
		{name: "пустая строка", text: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.text)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
					"got %s, want %s", got.String(), tt.want)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{name: "минимум проходит", amount: "0.01", wantErr: nil},
		{name: "минус минимум проходит", amount: "-0.01", wantErr: nil},
		{name: "ноль отклоняется", amount: "0.00", wantErr: common.ErrAmountTooSmall},
		{name: "меньше минимума", amount: "0.005", wantErr: common.ErrAmountTooSmall},
		{name: "максимум проходит", amount: "999999999.99", wantErr: nil},
		{name: "минус максимум проходит", amount: "-999999999.99", wantErr: nil},
		{name: "больше максимума", amount: "1000000000.00", wantErr: common.ErrAmountTooLarge},
		{name: "обычная сумма", amount: "500", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount))
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1.005", want: "1.01"}, // half-up от нуля
		{in: "1.004", want: "1.00"},
		{in: "-1.005", want: "-1.01"},
		{in: "2.675", want: "2.68"},
		{in: "100", want: "100.00"},
		{in: "0.1", want: "0.10"},
	}

	for _, tt := range tests {
		got := Normalize(decimal.RequireFromString(tt.in))
		assert.Equal(t, tt.want, got.StringFixed(2), "Normalize(%s)", tt.in)
	}
}
