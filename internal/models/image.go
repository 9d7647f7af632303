package models

import "time"

// Image is one gallery catalog entry. Filename is the sanitized,
// collision-resolved name under which both the original and the thumbnail
// are stored; the catalog row and the two files are kept in sync by the
// gallery service. The autoincrement ID doubles as the recency order.
type Image struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Filename  string    `gorm:"uniqueIndex;size:255;not null" json:"filename"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
