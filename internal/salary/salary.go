// Package salary extracts money amounts from free-form salary text.
package salary

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var amountRe = regexp.MustCompile(`\d[\d.,]*\d|\d`)

// MonthlyCeiling is the bound below which an amount is treated as monthly.
const MonthlyCeiling = 10000

// ParseAmount converts a number written with "," or "." separators.
// A separator followed by exactly three digits groups thousands, any other
// separator is a decimal mark. "60,000" and "60.000" are 60000, "4,5" is 4.5.
func ParseAmount(token string) (float64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, fmt.Errorf("empty amount")
	}

	var (
		b        strings.Builder
		decimals int
	)
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c != '.' && c != ',' {
			b.WriteByte(c)
			continue
		}

		digits := 0
		for j := i + 1; j < len(token) && token[j] >= '0' && token[j] <= '9'; j++ {
			digits++
		}
		if digits == 3 {
			continue
		}
		decimals++
		b.WriteByte('.')
	}

	if decimals > 1 {
		return 0, fmt.Errorf("ambiguous amount %q", token)
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", token, err)
	}
	return v, nil
}

// Amounts returns every parseable amount found in text. Tokens that do not
// parse, such as dates, are skipped.
func Amounts(text string) []float64 {
	tokens := amountRe.FindAllString(text, -1)
	amounts := make([]float64, 0, len(tokens))
	for _, token := range tokens {
		v, err := ParseAmount(token)
		if err != nil {
			continue
		}
		amounts = append(amounts, v)
	}
	return amounts
}

// AnnualUpperBound returns the largest amount in text, annualised when it
// looks monthly. ok is false when text holds no parseable amount.
func AnnualUpperBound(text string) (bound float64, ok bool) {
	amounts := Amounts(text)
	if len(amounts) == 0 {
		return 0, false
	}

	for _, v := range amounts {
		if v > bound {
			bound = v
		}
	}
	if bound < MonthlyCeiling {
		bound *= 12
	}
	return bound, true
}
