package models

import (
	"slices"
	"time"
)

type User struct {
	UserID       string `json:"userId" db:"user_id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Avatar       string `json:"avatar" db:"avatar"`
	PostCount    int    `json:"postCount" db:"post_count"`
}

type Post struct {
	PostID      string    `json:"postId" db:"post_id"`
	Title       string    `json:"title" db:"title"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	CreatorID   string    `json:"creator" db:"creator_id"`
	Thumbnail   string    `json:"thumbnail" db:"thumbnail"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// OwnerID - пост может изменять только его создатель
func (p *Post) OwnerID() string {
	return p.CreatorID
}

const DefaultCategory = "Uncategorized"

var Categories = []string{
	"Agriculture",
	"Business",
	"Education",
	"Entertainment",
	"Art",
	"Investment",
	DefaultCategory,
	"Weather",
}

func ValidCategory(category string) bool {
	return slices.Contains(Categories, category)
}
