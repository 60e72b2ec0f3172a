package currency

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		amount float64
		code   string
		want   string
	}{
		{45999.4, "kzt", "KZT 45 999"},
		{1234567, "USD", "USD 1,234,567"},
		{1500000, "IDR", "IDR 1.500.000"},
		{999, "eur", "EUR 999"},
		{-2500, "rub", "-RUB 2 500"},
		{1000, "", "1,000"},
	}
	for _, tt := range tests {
		if got := Format(tt.amount, tt.code); got != tt.want {
			t.Errorf("Format(%v, %q) = %q, want %q", tt.amount, tt.code, got, tt.want)
		}
	}
}
