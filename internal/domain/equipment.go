package domain

import (
	"errors"
	"time"
)

// Category is the fixed set of equipment categories the catalog accepts.
type Category string

const (
	CategoryCameras     Category = "cameras"
	CategoryLenses      Category = "lenses"
	CategoryLighting    Category = "lighting"
	CategoryAudio       Category = "audio"
	CategoryTripods     Category = "tripods"
	CategoryDrones      Category = "drones"
	CategoryAccessories Category = "accessories"
)

var ErrUnknownCategory = errors.New("unknown category")

// Categories lists all valid categories in display order.
func Categories() []Category {
	return []Category{
		CategoryCameras,
		CategoryLenses,
		CategoryLighting,
		CategoryAudio,
		CategoryTripods,
		CategoryDrones,
		CategoryAccessories,
	}
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// DisplayName is the human-readable label the client shows; search matches
// against it as well as against title and description.
func (c Category) DisplayName() string {
	switch c {
	case CategoryCameras:
		return "Cameras"
	case CategoryLenses:
		return "Lenses"
	case CategoryLighting:
		return "Lighting"
	case CategoryAudio:
		return "Audio"
	case CategoryTripods:
		return "Tripods & Support"
	case CategoryDrones:
		return "Drones"
	case CategoryAccessories:
		return "Accessories"
	default:
		return string(c)
	}
}

type Equipment struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	OwnerID        int64     `json:"owner_id" gorm:"not null;index"`
	Title          string    `json:"title" gorm:"not null"`
	Description    string    `json:"description" gorm:"type:text"`
	Category       Category  `json:"category" gorm:"not null;index"`
	PricePerDay    float64   `json:"price_per_day" gorm:"not null"`
	AvailableFrom  time.Time `json:"available_from"`
	AvailableUntil time.Time `json:"available_until"`
	Location       string    `json:"location"`
	Archived       bool      `json:"archived" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

func (Equipment) TableName() string { return "equipment" }
