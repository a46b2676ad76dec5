package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	FullName string `gorm:"size:100;not null" json:"full_name"`
	Avatar   string `gorm:"size:255" json:"avatar"`

	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null" json:"role"`

	// Set only for User-role accounts; an Admin never has one.
	AdminID *uint `json:"admin_id,omitempty"`
	Admin   *User `gorm:"foreignKey:AdminID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	RefreshToken *string `gorm:"size:512" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicProfile is the user shape embedded in aggregates and listings.
// PasswordHash and RefreshToken never leave the process.
type PublicProfile struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Avatar    string    `json:"avatar"`
	Role      string    `json:"role"`
	AdminID   *uint     `json:"admin_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		Avatar:    u.Avatar,
		Role:      u.Role,
		AdminID:   u.AdminID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
