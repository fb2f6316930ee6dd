// models/user.go
package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	FullName string `json:"fullName"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(191)"`
	Phone    string `json:"phone" gorm:"type:varchar(32)"`
	Password string `json:"-"`
}
