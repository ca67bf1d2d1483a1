package models

import (
	"time"
)

// Post is a place card owned by exactly one user. OwnerID is fixed at
// creation; no operation reassigns ownership.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   string    `gorm:"not null" json:"address"`
	Phone     string    `json:"phone"`
	ImgURL    string    `gorm:"size:500" json:"imgUrl"`
	Archived  bool      `gorm:"not null;default:false" json:"archived"`
	OwnerID   uint      `gorm:"not null;index" json:"owner"`
	Owner     User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
