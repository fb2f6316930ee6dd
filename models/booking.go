// models/booking.go
package models

import (
	"time"
)

// Booking lifecycle statuses. Canceled is terminal; a Paid booking can only
// leave Paid through an out-of-band refund flow, never via CancelBooking.
const (
	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusPaid      = "Paid"
	BookingStatusCanceled  = "Canceled"
)

const (
	PaymentMethodCOD    = "COD"
	PaymentMethodOnline = "ONLINE"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	UserID  uint `gorm:"index;column:user_id" json:"user_id"`
	RoomID  uint `gorm:"index;column:room_id" json:"room_id"`
	HotelID uint `gorm:"index;column:hotel_id" json:"hotel_id"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code,omitempty"`
	Status        string `gorm:"column:status;size:32;index" json:"status"`

	CheckIn  time.Time `gorm:"column:check_in" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out" json:"check_out"`
	Nights   int       `gorm:"column:nights" json:"nights"`

	GuestName  string `gorm:"column:guest_name;size:191" json:"guest_name"`
	GuestPhone string `gorm:"column:guest_phone;size:32" json:"guest_phone"`

	SubTotal float64  `gorm:"column:sub_total" json:"sub_total"`
	Discount *float64 `gorm:"column:discount" json:"discount,omitempty"`
	Total    float64  `gorm:"column:total" json:"total"`
	Currency string   `gorm:"column:currency;size:8" json:"currency,omitempty"`

	PaymentMethod string `gorm:"column:payment_method;size:16" json:"payment_method"`

	// PaymentDeadline is set only for ONLINE bookings; the expiry job cancels
	// bookings still Pending past this instant.
	PaymentDeadline *time.Time `gorm:"column:payment_deadline" json:"payment_deadline,omitempty"`

	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Room  Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Hotel Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
}
