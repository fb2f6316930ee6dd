// services/expiry_service.go
package services

import (
	"fmt"
	"log"
	"time"

	"chillnest-backend/models"

	"gorm.io/gorm"
)

// ExpiryService cancels ONLINE bookings whose payment deadline elapsed while
// they were still Pending. It runs as a recurring job; each run opens a fresh
// transaction and failures are logged and retried on the next cycle.
type ExpiryService struct {
	DB *gorm.DB

	// Now is swappable for tests.
	Now func() time.Time
}

func NewExpiryService(db *gorm.DB) *ExpiryService {
	return &ExpiryService{DB: db, Now: time.Now}
}

// CancelExpiredBookings is the cron entry point. It never returns an error to
// the scheduler; unresolved bookings stay Pending and past-deadline, so the
// next cycle picks them up again.
func (s *ExpiryService) CancelExpiredBookings() {
	canceled, err := s.cancelExpired()
	if err != nil {
		log.Printf("expiry job: %v", err)
		return
	}
	if canceled > 0 {
		log.Printf("expiry job: auto-canceled %d unpaid booking(s)", canceled)
	}
}

func (s *ExpiryService) cancelExpired() (int, error) {
	now := s.Now()
	canceled := 0

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var expired []models.Booking
		if err := tx.
			Where("status = ? AND payment_method = ? AND payment_deadline IS NOT NULL AND payment_deadline < ?",
				models.BookingStatusPending, models.PaymentMethodOnline, now).
			Find(&expired).Error; err != nil {
			return fmt.Errorf("failed to query expired bookings: %w", err)
		}

		for _, booking := range expired {
			// Guarded update: an admin may have confirmed payment between
			// the query and this write. Zero rows means skip, not override.
			res := tx.Model(&models.Booking{}).
				Where("id = ? AND status = ?", booking.ID, models.BookingStatusPending).
				Update("status", models.BookingStatusCanceled)
			if res.Error != nil {
				return fmt.Errorf("failed to cancel booking %d: %w", booking.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				log.Printf("expiry job: skipped booking %d, status changed since scan", booking.ID)
				continue
			}
			canceled++
		}
		return nil
	})
	if txErr != nil {
		return 0, txErr
	}
	return canceled, nil
}
