package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
}

// All returns every model managed by the schema bootstrap, parents first.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Recipe{},
		&Ingredient{},
		&Time{},
	}
}
