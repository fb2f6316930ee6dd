// services/voucher_service.go
package services

import (
	"fmt"
	"time"

	"chillnest-backend/models"

	"gorm.io/gorm"
)

type VoucherService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewVoucherService(db *gorm.DB) *VoucherService {
	return &VoucherService{DB: db, Now: time.Now}
}

// AvailableVouchers lists vouchers that can still be redeemed. With a userID
// the list excludes vouchers that user has already redeemed.
func (s *VoucherService) AvailableVouchers(userID uint) ([]models.Voucher, error) {
	now := s.Now()

	q := s.DB.
		Where("is_active = ? AND expiry_date > ? AND quantity > 0", true, now)

	if userID > 0 {
		q = q.Where("id NOT IN (?)",
			s.DB.Model(&models.UserVoucher{}).
				Select("voucher_id").
				Where("user_id = ?", userID))
	}

	var vouchers []models.Voucher
	if err := q.Order("expiry_date ASC").Find(&vouchers).Error; err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	return vouchers, nil
}
