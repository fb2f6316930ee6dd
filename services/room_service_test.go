package services

import (
	"errors"
	"testing"
	"time"

	"chillnest-backend/models"
)

func TestIsRoomAvailable(t *testing.T) {
	db := newTestDB(t)
	room := seedRoom(t, db, 500000)
	roomSvc := NewRoomService(db)
	bookingSvc := NewBookingService(db)

	if _, _, err := bookingSvc.CreateBooking(newInput(1, room.ID, date(2024, 6, 5), date(2024, 6, 10))); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	cases := []struct {
		name     string
		in, out  time.Time
		expected bool
	}{
		{"overlapping", date(2024, 6, 7), date(2024, 6, 12), false},
		{"contained", date(2024, 6, 6), date(2024, 6, 8), false},
		{"touching after", date(2024, 6, 10), date(2024, 6, 15), true},
		{"touching before", date(2024, 6, 1), date(2024, 6, 5), true},
		{"disjoint", date(2024, 7, 1), date(2024, 7, 5), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := roomSvc.IsRoomAvailable(room.ID, tc.in, tc.out)
			if err != nil {
				t.Fatalf("IsRoomAvailable: %v", err)
			}
			if got != tc.expected {
				t.Fatalf("available = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestIsRoomAvailableNormalizesInvertedRange(t *testing.T) {
	db := newTestDB(t)
	room := seedRoom(t, db, 500000)
	roomSvc := NewRoomService(db)
	bookingSvc := NewBookingService(db)

	if _, _, err := bookingSvc.CreateBooking(newInput(1, room.ID, date(2024, 6, 5), date(2024, 6, 10))); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	// Inverted input is treated as a 1-night stay starting at check-in.
	got, err := roomSvc.IsRoomAvailable(room.ID, date(2024, 6, 6), date(2024, 6, 4))
	if err != nil {
		t.Fatalf("IsRoomAvailable: %v", err)
	}
	if got {
		t.Fatal("1-night stay inside a booked range reported available")
	}

	got, err = roomSvc.IsRoomAvailable(room.ID, date(2024, 6, 20), date(2024, 6, 20))
	if err != nil {
		t.Fatalf("IsRoomAvailable: %v", err)
	}
	if !got {
		t.Fatal("free 1-night stay reported unavailable")
	}
}

func TestIsRoomAvailableInactiveRoom(t *testing.T) {
	db := newTestDB(t)
	room := seedRoom(t, db, 500000)
	roomSvc := NewRoomService(db)

	if err := db.Model(&models.Room{}).Where("id = ?", room.ID).Update("status", false).Error; err != nil {
		t.Fatalf("failed to deactivate room: %v", err)
	}

	got, err := roomSvc.IsRoomAvailable(room.ID, date(2024, 6, 1), date(2024, 6, 3))
	if err != nil {
		t.Fatalf("IsRoomAvailable: %v", err)
	}
	if got {
		t.Fatal("inactive room reported available")
	}

	if _, err := roomSvc.IsRoomAvailable(room.ID+99, date(2024, 6, 1), date(2024, 6, 3)); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("missing room: err = %v, want ErrRoomNotFound", err)
	}
}
