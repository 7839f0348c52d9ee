package domain

import "time"

// Favorite marks one equipment listing as bookmarked by one user.
// Existence of the row is the whole state.
type Favorite struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_equipment"`
	EquipmentID int64     `json:"equipment_id" gorm:"not null;index;uniqueIndex:idx_user_equipment"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
}

func (Favorite) TableName() string { return "favorites" }
