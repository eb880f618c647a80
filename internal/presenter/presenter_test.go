package presenter

import (
	"testing"
	"time"

	"github.com/tawseel-next/internal/config"
	"github.com/tawseel-next/internal/constants"
)

func TestStatusLabel(t *testing.T) {
	if got := StatusLabel("en", constants.OrderStatusOutForDelivery); got != "Out for delivery" {
		t.Fatalf("unexpected english label: %q", got)
	}
	if got := StatusLabel("", constants.OrderStatusDelivered); got != "تم التسليم" {
		t.Fatalf("unexpected default label: %q", got)
	}
	if got := StatusLabel("en", "lost"); got != "lost" {
		t.Fatalf("unknown status should pass through, got %q", got)
	}
}

func TestStatusColorClass(t *testing.T) {
	if got := StatusColorClass(constants.OrderStatusFullReturn); got != "status-danger" {
		t.Fatalf("unexpected class: %q", got)
	}
	if got := StatusColorClass("weird"); got != "weird" {
		t.Fatalf("unknown status should pass through, got %q", got)
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in, symbol, want string
	}{
		{"1250.5", "EGP", "1,250.50 EGP"},
		{"0", "EGP", "0.00 EGP"},
		{"1234567", "", "1,234,567.00"},
		{"-1000.126", "EGP", "-1,000.13 EGP"},
		{"abc", "EGP", "abc"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.in, tc.symbol); got != tc.want {
			t.Fatalf("FormatCurrency(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	f := New(config.PresenterConfig{})
	if got := f.FormatCurrency("10"); got != "10.00 "+DefaultCurrencySymbol {
		t.Fatalf("unexpected default symbol: %q", got)
	}
	if f.Locale() != "ar" {
		t.Fatalf("expected default locale ar, got %q", f.Locale())
	}
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"2024-03-09":           "09/03/2024",
		"2024-03-09T10:11:12Z": "09/03/2024",
		"2024-03-09 10:11:12":  "09/03/2024",
		"yesterday":            "yesterday",
		"":                     "",
	}
	for in, want := range cases {
		if got := FormatDate(in); got != want {
			t.Fatalf("FormatDate(%q) = %q, want %q", in, got, want)
		}
	}
	if FormatTime(time.Time{}) != "" {
		t.Fatalf("zero time should render empty")
	}
}
