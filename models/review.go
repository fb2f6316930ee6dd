// models/review.go
package models

import (
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model

	UserID  uint   `gorm:"index;column:user_id" json:"user_id"`
	HotelID uint   `gorm:"index;column:hotel_id" json:"hotel_id"`
	Rating  int    `gorm:"column:rating" json:"rating"`
	Comment string `gorm:"column:comment;type:text" json:"comment"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
