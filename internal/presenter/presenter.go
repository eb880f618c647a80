// Package presenter formats order data for display. Every function is pure and
// returns its input unchanged when it cannot interpret it.
package presenter

import (
	"strings"
	"time"

	"github.com/tawseel-next/internal/config"
	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/i18n"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol Egyptian pound
const DefaultCurrencySymbol = "ج.م"

const displayDateLayout = "02/01/2006"

var statusColors = map[string]string{
	constants.OrderStatusEntered:        "status-secondary",
	constants.OrderStatusAssigned:       "status-info",
	constants.OrderStatusOutForDelivery: "status-primary",
	constants.OrderStatusDelivered:      "status-success",
	constants.OrderStatusPartialReturn:  "status-warning",
	constants.OrderStatusFullReturn:     "status-danger",
}

var inputDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Formatter binds the configured currency symbol and locale
type Formatter struct {
	symbol string
	locale string
}

// New formatter from config; empty values fall back to defaults
func New(cfg config.PresenterConfig) *Formatter {
	symbol := strings.TrimSpace(cfg.CurrencySymbol)
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	locale := i18n.NormalizeLocale(cfg.Locale)
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	return &Formatter{symbol: symbol, locale: locale}
}

// Locale default locale of the formatter
func (f *Formatter) Locale() string {
	return f.locale
}

// StatusLabel localized status name; unknown statuses are returned as given
func StatusLabel(locale, status string) string {
	if _, ok := statusColors[status]; !ok {
		return status
	}
	return i18n.T(locale, "order_status."+status)
}

// StatusColorClass css class for a status badge
func StatusColorClass(status string) string {
	if class, ok := statusColors[status]; ok {
		return class
	}
	return status
}

// FormatCurrency "1,250.50 ج.م". Non-numeric input is returned unchanged.
func FormatCurrency(amount, symbol string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return amount
	}
	text := groupThousands(d.Round(2).StringFixed(2))
	if symbol == "" {
		return text
	}
	return text + " " + symbol
}

// FormatCurrency with the configured symbol
func (f *Formatter) FormatCurrency(amount string) string {
	return FormatCurrency(amount, f.symbol)
}

// FormatDate dd/mm/yyyy. Unparseable input is returned unchanged.
func FormatDate(raw string) string {
	value := strings.TrimSpace(raw)
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(displayDateLayout)
		}
	}
	return raw
}

// FormatTime dd/mm/yyyy for a timestamp; zero renders empty
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDateLayout)
}

func groupThousands(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, frac = fixed[:i], fixed[i:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}
