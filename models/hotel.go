// models/hotel.go
package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Hotel struct {
	gorm.Model

	Name        string  `json:"name" gorm:"type:varchar(191)"`
	Address     string  `json:"address"`
	City        string  `json:"city" gorm:"type:varchar(100);index"`
	Country     string  `json:"country" gorm:"type:varchar(100)"`
	Description string  `json:"description" gorm:"type:text"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	// Amenity list stored as a JSON array of strings, e.g. ["wifi","pool"].
	Amenities datatypes.JSON `json:"amenities,omitempty"`

	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:HotelID"`
}
