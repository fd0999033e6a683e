package models

import (
	"time"
)

type User struct {
	UserID       string    `json:"id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}

type Post struct {
	PostID      string     `json:"id" db:"post_id"`
	AuthorID    string     `json:"-" db:"author_id"`
	Title       string     `json:"title" db:"title"`
	Content     string     `json:"content" db:"content"`
	IsDraft     bool       `json:"is_draft" db:"is_draft"`
	PublishedAt *time.Time `json:"published_at" db:"published_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	Author      *User      `json:"user,omitempty" db:"-"`
	Images      []Image    `json:"images,omitempty" db:"-"`
}

type Session struct {
	SessionID string    `json:"sessionId" db:"session_id"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}

type Image struct {
	ImageID   string    `json:"id" db:"image_id"`
	PostID    string    `json:"post_id" db:"post_id"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
