package service

import (
	"errors"
	"regexp"
	"testing"
	"time"
)

func TestParseCODAmount(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"250", "250.00"},
		{"250.5", "250.50"},
		{`"1,250.75"`, "1250.75"},
		{"ج.م 1,250.50", "1250.50"},
		{"$ 99.999", "100.00"},
		{"1,5", "1.50"},
		{"IQD 12,75", "12.75"},
		{"ج.م 1,5", "1.50"},
		{"1,250", "1250.00"},
		{"1,250,000", "1250000.00"},
		{"١٬٢٥٠", "1250.00"},
		{"١٢٣٫٥", "123.50"},
		{"", "0.00"},
		{"n/a", "0.00"},
	}
	for _, tc := range cases {
		got, err := ParseCODAmount(tc.raw)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.raw, err)
		}
		if moneyString(got) != tc.want {
			t.Fatalf("parse %q: want %s got %s", tc.raw, tc.want, moneyString(got))
		}
	}
}

func TestParseCODAmountRejectsNegative(t *testing.T) {
	if _, err := ParseCODAmount("-15"); !errors.Is(err, ErrInvalidCODAmount) {
		t.Fatalf("expected ErrInvalidCODAmount, got %v", err)
	}
}

func TestNormalizeOrderStatus(t *testing.T) {
	got, err := NormalizeOrderStatus(" Out For-Delivery ")
	if err != nil || got != "out_for_delivery" {
		t.Fatalf("unexpected status: %q %v", got, err)
	}
	if _, err := NormalizeOrderStatus("lost"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}
	if _, err := NormalizeOrderStatus(""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestIsDriverIdentifier(t *testing.T) {
	if !IsDriverIdentifier("42") {
		t.Fatalf("digits should be an identifier")
	}
	for _, value := range []string{"Ahmed", "42a", "", "-1"} {
		if IsDriverIdentifier(value) {
			t.Fatalf("%q should be treated as a name", value)
		}
	}
}

func TestParseOrderDateLenient(t *testing.T) {
	if got := ParseOrderDate("2024-03-05"); got == nil || got.Day() != 5 || got.Month() != time.March {
		t.Fatalf("unexpected date: %v", got)
	}
	if got := ParseOrderDate("05/03/2024"); got == nil || got.Month() != time.March {
		t.Fatalf("unexpected day-first date: %v", got)
	}
	if got := ParseOrderDate("yesterday"); got != nil {
		t.Fatalf("bad date should be nil, got %v", got)
	}
	if parsePieces("abc") != 1 || parsePieces("3") != 3 || parsePieces("0") != 1 {
		t.Fatalf("unexpected pieces parsing")
	}
}

func TestOrderBarcodeFormat(t *testing.T) {
	gen := NewBarcodeGenerator()
	pattern := regexp.MustCompile(`^ORD[0-9]{13}[0-9]{1,3}$`)
	for i := 0; i < 20; i++ {
		if code := gen.OrderBarcode(); !pattern.MatchString(code) {
			t.Fatalf("unexpected order barcode: %s", code)
		}
	}
}

func TestSheetBarcodeFormat(t *testing.T) {
	gen := &BarcodeGenerator{
		now:  func() time.Time { return time.UnixMilli(1712345678901) },
		intn: func(int) int { return 0 },
	}
	if got := gen.SheetBarcode(7, 0); got != "0745678901" {
		t.Fatalf("unexpected sheet barcode: %s", got)
	}
	if got := gen.SheetBarcode(123, 1); got != "12345678902" {
		t.Fatalf("unexpected sheet barcode with offset: %s", got)
	}
}

func TestUniqueBarcodeRetries(t *testing.T) {
	taken := map[string]bool{"a0": true, "a1": true}
	code, err := uniqueBarcode(func(attempt int) string {
		return "a" + string(rune('0'+attempt))
	}, func(code string) (bool, error) {
		return taken[code], nil
	})
	if err != nil || code != "a2" {
		t.Fatalf("unexpected retry result: %q %v", code, err)
	}

	_, err = uniqueBarcode(func(int) string { return "same" }, func(string) (bool, error) { return true, nil })
	if !errors.Is(err, ErrBarcodeGenerateFailed) {
		t.Fatalf("expected ErrBarcodeGenerateFailed, got %v", err)
	}
}
