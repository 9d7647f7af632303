package models

import "time"

// User is an account that can sign in. The first account ever created
// (ID 1) is the site admin; there is no role column.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdminUserID is the ID of the sole privileged account, by convention the
// first account created.
const AdminUserID uint = 1

// IsAdmin reports whether this user is the designated admin.
func (u *User) IsAdmin() bool {
	return u.ID == AdminUserID
}
