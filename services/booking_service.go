// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"chillnest-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business errors surfaced by the booking operations. Controllers map these
// to client status codes; none of them indicates infrastructure failure.
var (
	ErrInvalidUser       = errors.New("invalid_user")
	ErrValidation        = errors.New("validation_failed")
	ErrRoomNotFound      = errors.New("room_not_found")
	ErrRoomUnavailable   = errors.New("room_unavailable")
	ErrBookingNotFound   = errors.New("booking_not_found")
	ErrAlreadyCanceled   = errors.New("booking_already_canceled")
	ErrCannotCancelPaid  = errors.New("cannot_cancel_paid_booking")
	ErrInvalidTransition = errors.New("invalid_status_transition")
)

// onlinePaymentWindow is the grace period for paying an ONLINE booking before
// the expiry job releases the room.
const onlinePaymentWindow = 2 * time.Hour

const bookingCurrency = "VND"

// initialStatus maps the payment method to the booking's starting state:
// COD settles at checkout and is modeled as immediately Paid; ONLINE starts
// Pending with a payment deadline the expiry job enforces.
func initialStatus(paymentMethod string, now time.Time) (string, *time.Time) {
	if paymentMethod == models.PaymentMethodCOD {
		return models.BookingStatusPaid, nil
	}
	deadline := now.Add(onlinePaymentWindow)
	return models.BookingStatusPending, &deadline
}

type BookingService struct {
	DB *gorm.DB

	// Now is swappable for tests.
	Now func() time.Time

	roomLocks sync.Map // room id -> *sync.Mutex
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db, Now: time.Now}
}

// lockRoom serializes booking creation per room. The availability check and
// the insert run as one transaction, but without this the check-then-insert
// window would let two overlapping requests both pass the check.
func (s *BookingService) lockRoom(roomID uint) *sync.Mutex {
	v, _ := s.roomLocks.LoadOrStore(roomID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

type CreateBookingInput struct {
	UserID        uint
	RoomID        uint
	CheckIn       time.Time
	CheckOut      time.Time
	GuestName     string
	GuestPhone    string
	PaymentMethod string
	VoucherCode   string
}

func (in *CreateBookingInput) validate() error {
	if in.UserID == 0 {
		return ErrInvalidUser
	}
	if in.RoomID == 0 {
		return fmt.Errorf("%w: room id is required", ErrValidation)
	}
	if strings.TrimSpace(in.GuestName) == "" {
		return fmt.Errorf("%w: guest name is required", ErrValidation)
	}
	if strings.TrimSpace(in.GuestPhone) == "" {
		return fmt.Errorf("%w: guest phone is required", ErrValidation)
	}
	switch in.PaymentMethod {
	case "":
		in.PaymentMethod = models.PaymentMethodCOD
	case models.PaymentMethodCOD, models.PaymentMethodOnline:
	default:
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, in.PaymentMethod)
	}
	return nil
}

// CreateBooking runs the whole creation protocol in one transaction under the
// room lock: room lookup, availability check, pricing, voucher consumption
// and the insert commit or roll back together.
func (s *BookingService) CreateBooking(in CreateBookingInput) (*models.Booking, *PriceResult, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}

	checkIn, checkOut := in.CheckIn, in.CheckOut
	if !checkOut.After(checkIn) {
		checkOut = checkIn.AddDate(0, 0, 1)
	}

	mu := s.lockRoom(in.RoomID)
	mu.Lock()
	defer mu.Unlock()

	now := s.Now()

	var booking models.Booking
	var price PriceResult

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("db error checking room %d: %w", in.RoomID, err)
		}
		if !room.Status {
			return ErrRoomUnavailable
		}

		conflict, err := hasBookingConflict(tx, in.RoomID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if conflict {
			return ErrRoomUnavailable
		}

		price = quote(&room, checkIn, checkOut)
		if in.VoucherCode != "" {
			if err := applyVoucher(tx, in.UserID, in.VoucherCode, now, &price); err != nil {
				return err
			}
		}

		status, deadline := initialStatus(in.PaymentMethod, now)

		booking = models.Booking{
			UserID:          in.UserID,
			RoomID:          room.ID,
			HotelID:         room.HotelID,
			ReferenceCode:   uuid.NewString(),
			Status:          status,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			Nights:          price.Nights,
			GuestName:       strings.TrimSpace(in.GuestName),
			GuestPhone:      strings.TrimSpace(in.GuestPhone),
			SubTotal:        price.SubTotal,
			Total:           price.Total,
			Currency:        bookingCurrency,
			PaymentMethod:   in.PaymentMethod,
			PaymentDeadline: deadline,
		}
		if price.Discount > 0 {
			d := price.Discount
			booking.Discount = &d
		}

		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, nil, txErr
	}

	return &booking, &price, nil
}

// CancelBooking moves a Pending or Confirmed booking owned by the user to
// Canceled. Paid bookings go through the refund flow instead.
func (s *BookingService) CancelBooking(bookingID, userID uint) (*models.Booking, error) {
	var booking models.Booking

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("id = ? AND user_id = ?", bookingID, userID).
			First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to load booking %d: %w", bookingID, err)
		}

		switch booking.Status {
		case models.BookingStatusCanceled:
			return ErrAlreadyCanceled
		case models.BookingStatusPaid:
			return ErrCannotCancelPaid
		}

		// Guarded update: if the status moved under us (expiry job, admin),
		// zero rows change and we re-evaluate instead of stomping it.
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, booking.Status).
			Update("status", models.BookingStatusCanceled)
		if res.Error != nil {
			return fmt.Errorf("failed to cancel booking %d: %w", bookingID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyCanceled
		}

		booking.Status = models.BookingStatusCanceled
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &booking, nil
}

// ConfirmPayment is the admin transition Pending -> Confirmed, called when an
// online payment is verified inside the deadline window.
func (s *BookingService) ConfirmPayment(bookingID uint) (*models.Booking, error) {
	return s.transition(bookingID, models.BookingStatusPending, models.BookingStatusConfirmed)
}

// MarkPaid is the admin transition Confirmed -> Paid.
func (s *BookingService) MarkPaid(bookingID uint) (*models.Booking, error) {
	return s.transition(bookingID, models.BookingStatusConfirmed, models.BookingStatusPaid)
}

func (s *BookingService) transition(bookingID uint, from, to string) (*models.Booking, error) {
	res := s.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, from).
		Update("status", to)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update booking %d: %w", bookingID, res.Error)
	}
	if res.RowsAffected == 0 {
		var booking models.Booking
		if err := s.DB.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, fmt.Errorf("failed to load booking %d: %w", bookingID, err)
		}
		return nil, fmt.Errorf("%w: %s -> %s (current %s)", ErrInvalidTransition, from, to, booking.Status)
	}

	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking %d: %w", bookingID, err)
	}
	return &booking, nil
}

// GetUserBookings lists a user's bookings, newest first.
func (s *BookingService) GetUserBookings(userID uint) ([]models.Booking, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}

	var list []models.Booking
	if err := s.DB.
		Preload("Room").
		Preload("Room.Hotel").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %d: %w", userID, err)
	}
	return list, nil
}

// GetBookingDetails loads one booking scoped to its owner.
func (s *BookingService) GetBookingDetails(bookingID, userID uint) (*models.Booking, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}

	var booking models.Booking
	if err := s.DB.
		Preload("Room").
		Preload("Room.Hotel").
		Preload("User").
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", bookingID, err)
	}
	return &booking, nil
}
