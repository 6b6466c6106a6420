package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tabz/internal/common"
)

// ParseUSDToCents reads a user-typed dollar amount such as "$12.50" and
// returns it in cents. Everything except digits and dots is ignored. The
// result must be positive.
func ParseUSDToCents(s string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}

	dollars, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(dollars, 0) || math.IsNaN(dollars) {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}

	cents := int64(math.Round(dollars * 100))
	if cents <= 0 {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}
	return cents, nil
}

// FormatCents renders cents as a dollar string, e.g. 1234 -> "$12.34".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
