// models/voucher.go
package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	DiscountTypePercent = "Percent"
	DiscountTypeFixed   = "Fixed"
)

type Voucher struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Code        string `gorm:"column:code;size:64;uniqueIndex" json:"code"`
	Description string `gorm:"column:description" json:"description,omitempty"`

	DiscountType  string   `gorm:"column:discount_type;size:16" json:"discount_type"`
	DiscountValue float64  `gorm:"column:discount_value" json:"discount_value"`
	MinOrderValue *float64 `gorm:"column:min_order_value" json:"min_order_value,omitempty"`

	// Quantity is the number of redemptions left. When it hits 0 the voucher
	// is deactivated and stays deactivated.
	Quantity   int       `gorm:"column:quantity" json:"quantity"`
	ExpiryDate time.Time `gorm:"column:expiry_date" json:"expiry_date"`
	IsActive   bool      `gorm:"column:is_active;default:true" json:"is_active"`
}

// UserVoucher records one redemption of a voucher by a user. The composite
// unique index is what enforces at-most-once redemption per (user, voucher).
type UserVoucher struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;uniqueIndex:idx_user_voucher" json:"user_id"`
	VoucherID uint      `gorm:"column:voucher_id;uniqueIndex:idx_user_voucher" json:"voucher_id"`
	UsedAt    time.Time `gorm:"column:used_at" json:"used_at"`
}
