// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DefaultProfileImage is assigned when a signup omits profileImage.
const DefaultProfileImage = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/1.png"

// User represents a registered account in the Pinboard application.
//
// PostsCount, FollowersCount and FollowingCount are denormalized
// counters; they are only ever mutated inside the same transaction as
// the relation or ownership change they track.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FirstName      string    `gorm:"not null" json:"firstName"`
	MiddleName     *string   `json:"middleName,omitempty"`
	LastName       string    `gorm:"not null" json:"lastName"`
	Username       string    `gorm:"unique;not null" json:"username"`
	Email          string    `gorm:"unique;not null" json:"email"`
	Phone          string    `gorm:"unique;not null" json:"phone"`
	Password       string    `gorm:"not null" json:"-"`
	Bio            string    `gorm:"type:text" json:"bio"`
	Tags           string    `json:"tags"`
	ProfileImage   string    `json:"profileImage"`
	PostsCount     int       `gorm:"not null;default:0" json:"postsCount"`
	FollowersCount int       `gorm:"not null;default:0" json:"followersCount"`
	FollowingCount int       `gorm:"not null;default:0" json:"followingCount"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Posts          []Post    `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}

// Follow is a directed edge: Follower follows Followee. The relation is
// asymmetric and must never contain self-loops.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"followee_id"`
	Follower   User      `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Followee   User      `gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
