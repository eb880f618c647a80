package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/tawseel-next/internal/constants"

	"github.com/shopspring/decimal"
)

// driverIdentifierPattern values matching it are driver primary keys, anything else is a name
var driverIdentifierPattern = regexp.MustCompile(`^[0-9]+$`)

var codAmountPattern = regexp.MustCompile(`-?[0-9]+(?:\.[0-9]+)?`)

// decimalCommaPattern a single comma followed by one or two digits is a decimal point ("1,5");
// any other comma is a thousands separator ("1,250")
var decimalCommaPattern = regexp.MustCompile(`^([^0-9,]*[0-9]+),([0-9]{1,2})([^0-9,.]*)$`)

var orderDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
}

// ParseCODAmount reads a cash-on-delivery amount that may carry quotes, currency
// symbols, thousands separators or Arabic-Indic digits. Unparseable input is zero;
// negative amounts are rejected.
func ParseCODAmount(raw string) (decimal.Decimal, error) {
	cleaned := normalizeAmountText(raw)
	if cleaned == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, nil
	}
	if amount.IsNegative() {
		return decimal.Zero, ErrInvalidCODAmount
	}
	return amount.Round(2), nil
}

// normalizeAmountText folds digits to ASCII, reads a lone trailing comma as a decimal
// point, drops thousands separators and whitespace, and returns the first number found
func normalizeAmountText(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		case r == '٫':
			b.WriteRune('.')
		case r == '٬', unicode.IsSpace(r):
		default:
			b.WriteRune(r)
		}
	}
	folded := decimalCommaPattern.ReplaceAllString(b.String(), "$1.$2$3")
	return codAmountPattern.FindString(strings.ReplaceAll(folded, ",", ""))
}

// NormalizeOrderStatus folds case, spaces and hyphens and checks the status is known
func NormalizeOrderStatus(raw string) (string, error) {
	status := strings.ToLower(strings.TrimSpace(raw))
	status = strings.NewReplacer(" ", "_", "-", "_").Replace(status)
	if status == "" {
		return "", requiredField("status")
	}
	for _, known := range constants.OrderStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", ErrInvalidOrderStatus
}

// IsDriverIdentifier reports whether a driver_id value is a primary key
func IsDriverIdentifier(value string) bool {
	return driverIdentifierPattern.MatchString(strings.TrimSpace(value))
}

// ParseOrderDate accepts the import date layouts; nil when empty or unparseable
func ParseOrderDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range orderDateLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return &parsed
		}
	}
	return nil
}

func parsePieces(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

func normalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		case unicode.IsDigit(r), r == '+':
			b.WriteRune(r)
		}
	}
	return b.String()
}
