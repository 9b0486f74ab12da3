package model

import "time"

// User is an account identified by its email address.
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Email       string     `gorm:"size:122;uniqueIndex;not null" json:"email"` // stored lowercase
	Name        string     `gorm:"size:122;not null;default:''" json:"name"`
	Password    string     `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	IsActive    bool       `gorm:"not null" json:"is_active"`
	IsStaff     bool       `gorm:"not null" json:"is_staff"`
	IsSuperuser bool       `gorm:"not null" json:"is_superuser"`
	LastLogin   *time.Time `json:"last_login"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Role is the casbin subject for the user.
func (u *User) Role() string {
	if u.IsStaff {
		return RoleStaff
	}
	return RoleUser
}

const (
	RoleUser  = "user"
	RoleStaff = "staff"
)
