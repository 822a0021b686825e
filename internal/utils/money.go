package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAmount renders minor units with thousand separators and a currency
// code, e.g. 123456 -> "USD 1,234.56". Used in log lines, never in payloads:
// the API always ships raw minor units.
func FormatAmount(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%s %s%s.%02d", currency, sign, formatThousand(minor/100), minor%100)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
