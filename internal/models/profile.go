package models

import (
	"time"
)

// Profile is the dependent record of a User; it has no lifecycle of its own
type Profile struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"column:perfil_nome;not null" json:"perfil_nome"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
