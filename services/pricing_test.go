package services

import (
	"testing"
	"time"

	"chillnest-backend/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNightsBetween(t *testing.T) {
	cases := []struct {
		name     string
		in, out  time.Time
		expected int
	}{
		{"three nights", date(2024, 6, 1), date(2024, 6, 4), 3},
		{"one night", date(2024, 6, 1), date(2024, 6, 2), 1},
		{"same day floors to one", date(2024, 6, 1), date(2024, 6, 1), 1},
		{"inverted floors to one", date(2024, 6, 4), date(2024, 6, 1), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := nightsBetween(tc.in, tc.out); got != tc.expected {
				t.Fatalf("nightsBetween(%v, %v) = %d, want %d", tc.in, tc.out, got, tc.expected)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	room := &models.Room{Price: 500000}
	res := quote(room, date(2024, 6, 1), date(2024, 6, 4))

	if res.Nights != 3 {
		t.Fatalf("nights = %d, want 3", res.Nights)
	}
	if res.SubTotal != 1500000 {
		t.Fatalf("subTotal = %v, want 1500000", res.SubTotal)
	}
	if res.Total != res.SubTotal {
		t.Fatalf("total = %v, want %v (no voucher)", res.Total, res.SubTotal)
	}
	if res.Discount != 0 {
		t.Fatalf("discount = %v, want 0", res.Discount)
	}
}

func TestDiscountFor(t *testing.T) {
	percent := &models.Voucher{DiscountType: models.DiscountTypePercent, DiscountValue: 10}
	if got := discountFor(percent, 1500000); got != 150000 {
		t.Fatalf("percent discount = %v, want 150000", got)
	}

	fixed := &models.Voucher{DiscountType: models.DiscountTypeFixed, DiscountValue: 50000}
	if got := discountFor(fixed, 1500000); got != 50000 {
		t.Fatalf("fixed discount = %v, want 50000", got)
	}

	// A fixed discount larger than the subtotal is capped so the total
	// never goes negative.
	huge := &models.Voucher{DiscountType: models.DiscountTypeFixed, DiscountValue: 2000000}
	if got := discountFor(huge, 350000); got != 350000 {
		t.Fatalf("capped discount = %v, want 350000", got)
	}
}
