package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultRecipeMinutes = 5

	RecipeTitleMaxLen = 255
	RecipeLinkMaxLen  = 255

	// PriceMaxDigits and PriceDecimalPlaces describe the numeric(5,2) column.
	PriceMaxDigits     = 5
	PriceDecimalPlaces = 2
)

// Recipe is owned by exactly one user and removed together with its owner.
type Recipe struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"index;not null" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`

	Title         string          `gorm:"size:255;not null" json:"title"`
	TimeInMinutes int             `gorm:"not null" json:"time_in_minutes"`
	Price         decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"price"`
	Description   string          `gorm:"type:text;not null;default:''" json:"description"`
	Link          string          `gorm:"size:255;not null;default:''" json:"link"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
