package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("JSONBStringArray: unsupported scan type %T", value)
	}

	return json.Unmarshal(bytes, a)
}

// Recipe owns its ingredients and its time breakdown; deleting it removes both.
type Recipe struct {
	ID           uint             `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Name         string           `gorm:"size:200;not null"`
	Servings     *int
	ImageURL     *string          `gorm:"type:text"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'"`
	Ingredients  []Ingredient     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Time         *Time            `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

type Ingredient struct {
	ID       uint   `gorm:"primaryKey"`
	RecipeID uint   `gorm:"not null;index"`
	Name     string `gorm:"type:text;not null"`
	Quantity string `gorm:"type:text;not null;default:''"`
}

// Time holds the duration breakdown of a recipe in minutes. Every field is optional.
type Time struct {
	ID       uint `gorm:"primaryKey"`
	RecipeID uint `gorm:"not null;uniqueIndex"`
	Prep     *int
	Cook     *int
	Active   *int
	Inactive *int
	Ready    *int
	Total    *int
}
