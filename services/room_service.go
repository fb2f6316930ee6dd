// services/room_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"chillnest-backend/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// hasBookingConflict reports whether any non-canceled booking on the room
// overlaps [checkIn, checkOut). Intervals are half-open: a checkout on day N
// does not conflict with a new check-in on day N.
func hasBookingConflict(db *gorm.DB, roomID uint, checkIn, checkOut time.Time) (bool, error) {
	var count int64
	err := db.Model(&models.Booking{}).
		Where("room_id = ? AND status <> ? AND check_in < ? AND check_out > ?",
			roomID, models.BookingStatusCanceled, checkOut, checkIn).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check booking conflicts for room %d: %w", roomID, err)
	}
	return count > 0, nil
}

// IsRoomAvailable reports whether the room can be booked for the range.
// An inverted or same-day range is treated as a 1-night stay. Read-only.
func (s *RoomService) IsRoomAvailable(roomID uint, checkIn, checkOut time.Time) (bool, error) {
	if !checkOut.After(checkIn) {
		checkOut = checkIn.AddDate(0, 0, 1)
	}

	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrRoomNotFound
		}
		return false, fmt.Errorf("db error checking room %d: %w", roomID, err)
	}
	if !room.Status {
		return false, nil
	}

	conflict, err := hasBookingConflict(s.DB, roomID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

func (s *RoomService) GetRoom(roomID uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("Hotel").First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}
	return &room, nil
}

// GetRooms lists rooms, optionally filtered by hotel.
func (s *RoomService) GetRooms(hotelID uint) ([]models.Room, error) {
	q := s.DB.Preload("Hotel")
	if hotelID > 0 {
		q = q.Where("hotel_id = ?", hotelID)
	}

	var rooms []models.Room
	if err := q.Order("price ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}
