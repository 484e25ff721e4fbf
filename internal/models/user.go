package models

import (
	"time"
)

// User is a registered user. Every user owns exactly one Profile through ProfileID.
// Password is stored as received and is never serialized.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"column:nome;not null" json:"nome"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:senha;not null" json:"-"`
	ProfileID uint      `gorm:"column:perfil_id;not null;uniqueIndex" json:"-"`
	Profile   Profile   `gorm:"foreignKey:ProfileID" json:"perfil"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
