// models/room.go
package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	HotelID uint   `json:"hotelId" gorm:"index;column:hotel_id"`
	Name    string `json:"name" gorm:"type:varchar(191)"`

	// Price is the nightly rate. Currency lives on the booking.
	Price float64 `json:"price"`

	// Status is the host-controlled availability flag. A room with
	// Status=false is never bookable regardless of date range.
	Status bool `json:"status" gorm:"default:true"`

	Capacity    int    `json:"capacity"`
	BedType     string `json:"bedType" gorm:"column:bed_type;type:varchar(50)"`
	Size        int    `json:"size"`
	Description string `json:"description" gorm:"type:text"`

	Hotel Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}
