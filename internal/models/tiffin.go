package models

import "time"

type Tiffin struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Count int    `gorm:"not null" json:"count"`
	Type  string `gorm:"size:20;not null;default:'Regular'" json:"type"`

	// Mandatory when fewer than 2 tiffins were taken, forced empty otherwise.
	CancelReason *string `gorm:"size:255" json:"reason_for_cancel_or_less_than_2"`

	TakenByID uint `gorm:"not null;index" json:"taken_by"`
	TakenBy   User `gorm:"foreignKey:TakenByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Price float64 `gorm:"not null;default:90" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
