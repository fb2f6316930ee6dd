package services

import (
	"testing"
	"time"

	"chillnest-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func seedOnlinePending(t *testing.T, db *gorm.DB, roomID uint, deadline time.Time) *models.Booking {
	t.Helper()
	booking := models.Booking{
		UserID:          1,
		RoomID:          roomID,
		ReferenceCode:   uuid.NewString(),
		Status:          models.BookingStatusPending,
		PaymentMethod:   models.PaymentMethodOnline,
		PaymentDeadline: &deadline,
		CheckIn:         date(2024, 6, 1),
		CheckOut:        date(2024, 6, 3),
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
	return &booking
}

func TestExpiryCancelsPastDeadline(t *testing.T) {
	db := newTestDB(t)
	room := seedRoom(t, db, 500000)
	svc := NewExpiryService(db)

	now := date(2024, 6, 1)
	svc.Now = func() time.Time { return now }

	expired := seedOnlinePending(t, db, room.ID, now.Add(-time.Second))
	future := seedOnlinePending(t, db, room.ID, now.Add(time.Hour))

	canceled, err := svc.cancelExpired()
	if err != nil {
		t.Fatalf("cancelExpired: %v", err)
	}
	if canceled != 1 {
		t.Fatalf("canceled = %d, want 1", canceled)
	}

	var b models.Booking
	db.First(&b, expired.ID)
	if b.Status != models.BookingStatusCanceled {
		t.Fatalf("expired booking status = %q, want Canceled", b.Status)
	}
	var b2 models.Booking
	db.First(&b2, future.ID)
	if b2.Status != models.BookingStatusPending {
		t.Fatalf("future-deadline booking status = %q, want Pending", b2.Status)
	}
}

func TestExpiryIgnoresNonCandidates(t *testing.T) {
	db := newTestDB(t)
	room := seedRoom(t, db, 500000)
	svc := NewExpiryService(db)

	now := date(2024, 6, 1)
	svc.Now = func() time.Time { return now }

	past := now.Add(-time.Minute)

	// Confirmed past-deadline: admin already confirmed payment.
	confirmed := seedOnlinePending(t, db, room.ID, past)
	db.Model(confirmed).Update("status", models.BookingStatusConfirmed)

	// COD booking with a stray deadline value.
	cod := seedOnlinePending(t, db, room.ID, past)
	db.Model(cod).Update("payment_method", models.PaymentMethodCOD)

	// Pending ONLINE without any deadline.
	noDeadline := seedOnlinePending(t, db, room.ID, past)
	db.Model(noDeadline).Update("payment_deadline", nil)

	canceled, err := svc.cancelExpired()
	if err != nil {
		t.Fatalf("cancelExpired: %v", err)
	}
	if canceled != 0 {
		t.Fatalf("canceled = %d, want 0", canceled)
	}

	for _, tc := range []struct {
		id   uint
		want string
	}{
		{confirmed.ID, models.BookingStatusConfirmed},
		{cod.ID, models.BookingStatusPending},
		{noDeadline.ID, models.BookingStatusPending},
	} {
		var b models.Booking
		db.First(&b, tc.id)
		if b.Status != tc.want {
			t.Fatalf("booking %d status = %q, want %q", tc.id, b.Status, tc.want)
		}
	}
}

func TestExpirySkipsBookingConfirmedMidCycle(t *testing.T) {
	db := newTestDB(t)
	room := seedRoom(t, db, 500000)
	svc := NewExpiryService(db)

	now := date(2024, 6, 1)
	svc.Now = func() time.Time { return now }

	booking := seedOnlinePending(t, db, room.ID, now.Add(-time.Second))

	// Simulate an admin confirming payment between the scheduler's scan and
	// its mutation step: the guarded update must leave Confirmed alone.
	res := db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, models.BookingStatusConfirmed).
		Update("status", models.BookingStatusCanceled)
	if res.RowsAffected != 0 {
		t.Fatal("guard precondition broken")
	}

	bookingSvc := NewBookingService(db)
	if _, err := bookingSvc.ConfirmPayment(booking.ID); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}

	canceled, err := svc.cancelExpired()
	if err != nil {
		t.Fatalf("cancelExpired: %v", err)
	}
	if canceled != 0 {
		t.Fatalf("canceled = %d, want 0", canceled)
	}

	var b models.Booking
	db.First(&b, booking.ID)
	if b.Status != models.BookingStatusConfirmed {
		t.Fatalf("status = %q, want Confirmed preserved", b.Status)
	}
}

func TestExpiryRetriesNextCycle(t *testing.T) {
	db := newTestDB(t)
	room := seedRoom(t, db, 500000)
	svc := NewExpiryService(db)

	now := date(2024, 6, 1)
	svc.Now = func() time.Time { return now }

	booking := seedOnlinePending(t, db, room.ID, now.Add(-time.Second))

	// Two consecutive cycles: the first cancels, the second finds nothing.
	if canceled, err := svc.cancelExpired(); err != nil || canceled != 1 {
		t.Fatalf("first cycle: canceled=%d err=%v", canceled, err)
	}
	if canceled, err := svc.cancelExpired(); err != nil || canceled != 0 {
		t.Fatalf("second cycle: canceled=%d err=%v", canceled, err)
	}

	var b models.Booking
	db.First(&b, booking.ID)
	if b.Status != models.BookingStatusCanceled {
		t.Fatalf("status = %q, want Canceled", b.Status)
	}
}
