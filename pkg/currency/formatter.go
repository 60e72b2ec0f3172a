package currency

import (
	"fmt"
	"math"
	"strings"
)

var separators = map[string]string{
	"KZT": " ",
	"RUB": " ",
	"UZS": " ",
	"IDR": ".",
	"EUR": ".",
}

// Format renders a whole-unit amount with thousands separators, prefixed by
// the upper-cased currency code, e.g. "KZT 45 999".
func Format(amount float64, code string) string {
	code = strings.ToUpper(code)
	rounded := math.Round(amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	sep, ok := separators[code]
	if !ok {
		sep = ","
	}

	intStr := fmt.Sprintf("%.0f", rounded)
	formatted := addThousandsSeparator(intStr, sep)

	result := formatted
	if code != "" {
		result = code + " " + formatted
	}
	if negative {
		result = "-" + result
	}

	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
