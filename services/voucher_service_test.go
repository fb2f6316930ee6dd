package services

import (
	"testing"
	"time"

	"chillnest-backend/models"
)

func TestAvailableVouchers(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoucherService(db)

	now := date(2024, 6, 1)
	svc.Now = func() time.Time { return now }

	seedVoucher(t, db, models.Voucher{
		Code: "OPEN", DiscountType: models.DiscountTypePercent, DiscountValue: 10,
		Quantity: 5, ExpiryDate: now.AddDate(0, 1, 0),
	})
	seedVoucher(t, db, models.Voucher{
		Code: "EXPIRED", DiscountType: models.DiscountTypePercent, DiscountValue: 10,
		Quantity: 5, ExpiryDate: now.AddDate(0, -1, 0),
	})
	exhausted := seedVoucher(t, db, models.Voucher{
		Code: "EMPTY", DiscountType: models.DiscountTypeFixed, DiscountValue: 10000,
		Quantity: 0, ExpiryDate: now.AddDate(0, 1, 0),
	})
	db.Model(exhausted).Update("is_active", false)

	list, err := svc.AvailableVouchers(0)
	if err != nil {
		t.Fatalf("AvailableVouchers: %v", err)
	}
	if len(list) != 1 || list[0].Code != "OPEN" {
		t.Fatalf("got %d vouchers, want only OPEN", len(list))
	}
}

func TestAvailableVouchersExcludesRedeemed(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoucherService(db)

	now := date(2024, 6, 1)
	svc.Now = func() time.Time { return now }

	used := seedVoucher(t, db, models.Voucher{
		Code: "USED", DiscountType: models.DiscountTypePercent, DiscountValue: 10,
		Quantity: 5, ExpiryDate: now.AddDate(0, 1, 0),
	})
	seedVoucher(t, db, models.Voucher{
		Code: "FRESH", DiscountType: models.DiscountTypePercent, DiscountValue: 5,
		Quantity: 5, ExpiryDate: now.AddDate(0, 2, 0),
	})

	if err := db.Create(&models.UserVoucher{UserID: 1, VoucherID: used.ID, UsedAt: now}).Error; err != nil {
		t.Fatalf("seed redemption: %v", err)
	}

	list, err := svc.AvailableVouchers(1)
	if err != nil {
		t.Fatalf("AvailableVouchers(1): %v", err)
	}
	if len(list) != 1 || list[0].Code != "FRESH" {
		t.Fatalf("user 1: got %d vouchers, want only FRESH", len(list))
	}

	// Another user still sees both.
	list, err = svc.AvailableVouchers(2)
	if err != nil {
		t.Fatalf("AvailableVouchers(2): %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("user 2: got %d vouchers, want 2", len(list))
	}
}
