// services/pricing.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"chillnest-backend/models"

	"gorm.io/gorm"
)

// Reasons a supplied voucher code was ignored. A rejected voucher never fails
// the booking; it only shows up as VoucherReason on the price result.
const (
	VoucherReasonNotFound        = "voucher_not_found_or_expired"
	VoucherReasonMinOrderNotMet  = "voucher_min_order_not_met"
	VoucherReasonAlreadyRedeemed = "voucher_already_redeemed"
	VoucherReasonExhausted       = "voucher_exhausted"
)

type PriceResult struct {
	Nights   int     `json:"nights"`
	SubTotal float64 `json:"sub_total"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`

	VoucherApplied bool   `json:"voucher_applied"`
	VoucherReason  string `json:"voucher_reason,omitempty"`
}

// nightsBetween floors a same-day or inverted range to a 1-night stay.
func nightsBetween(checkIn, checkOut time.Time) int {
	n := int(checkOut.Sub(checkIn).Hours() / 24)
	if n <= 0 {
		n = 1
	}
	return n
}

// discountFor computes the discount a voucher grants on subTotal, capped so
// the total can never go negative.
func discountFor(v *models.Voucher, subTotal float64) float64 {
	var d float64
	if v.DiscountType == models.DiscountTypePercent {
		d = subTotal * (v.DiscountValue / 100)
	} else {
		d = v.DiscountValue
	}
	if d > subTotal {
		d = subTotal
	}
	return d
}

// quote computes nights and subtotal for a room and date range.
func quote(room *models.Room, checkIn, checkOut time.Time) PriceResult {
	nights := nightsBetween(checkIn, checkOut)
	subTotal := float64(nights) * room.Price
	return PriceResult{
		Nights:   nights,
		SubTotal: subTotal,
		Total:    subTotal,
	}
}

// applyVoucher validates and consumes a voucher inside the caller's
// transaction: it inserts the redemption row, decrements the remaining
// quantity and deactivates the voucher when it hits zero. Every ineligibility
// is a soft-fail recorded on the result, never an error; an error return
// means the transaction itself is broken and the booking must abort.
func applyVoucher(tx *gorm.DB, userID uint, code string, now time.Time, result *PriceResult) error {
	var voucher models.Voucher
	err := tx.
		Where("code = ? AND is_active = ? AND expiry_date > ? AND quantity > 0", code, true, now).
		First(&voucher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result.VoucherReason = VoucherReasonNotFound
			return nil
		}
		return fmt.Errorf("failed to look up voucher %q: %w", code, err)
	}

	if voucher.MinOrderValue != nil && result.SubTotal < *voucher.MinOrderValue {
		result.VoucherReason = VoucherReasonMinOrderNotMet
		return nil
	}

	var used int64
	if err := tx.Model(&models.UserVoucher{}).
		Where("user_id = ? AND voucher_id = ?", userID, voucher.ID).
		Count(&used).Error; err != nil {
		return fmt.Errorf("failed to check voucher redemption: %w", err)
	}
	if used > 0 {
		result.VoucherReason = VoucherReasonAlreadyRedeemed
		return nil
	}

	redemption := models.UserVoucher{UserID: userID, VoucherID: voucher.ID, UsedAt: now}
	if err := tx.Create(&redemption).Error; err != nil {
		lc := strings.ToLower(err.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint") {
			// A concurrent booking won the (user, voucher) unique index.
			result.VoucherReason = VoucherReasonAlreadyRedeemed
			return nil
		}
		return fmt.Errorf("failed to record redemption of %q: %w", code, err)
	}

	// Conditional decrement so concurrent redemptions can never push the
	// quantity below zero; losing means the voucher ran out under us.
	res := tx.Model(&models.Voucher{}).
		Where("id = ? AND quantity > 0", voucher.ID).
		UpdateColumn("quantity", gorm.Expr("quantity - 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to consume voucher %q: %w", code, res.Error)
	}
	if res.RowsAffected == 0 {
		if err := tx.Delete(&redemption).Error; err != nil {
			return fmt.Errorf("failed to roll back redemption of %q: %w", code, err)
		}
		result.VoucherReason = VoucherReasonExhausted
		return nil
	}

	if err := tx.Model(&models.Voucher{}).
		Where("id = ? AND quantity <= 0", voucher.ID).
		Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to deactivate voucher %q: %w", code, err)
	}

	result.Discount = discountFor(&voucher, result.SubTotal)
	result.Total = result.SubTotal - result.Discount
	result.VoucherApplied = true
	return nil
}
