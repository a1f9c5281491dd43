package views

import (
	"time"
)

// Response shapes rendered to API clients. Profiles never expose email or the
// password hash.

type Profile struct {
	Username  string  `json:"username"`
	Bio       *string `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

type Article struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	BodyHTML       string    `json:"bodyHtml"`
	TagList        []string  `json:"tagList"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int64     `json:"favoritesCount"`
	Author         Profile   `json:"author"`
}

type Comment struct {
	ID        uint      `json:"id"`
	Body      string    `json:"body"`
	BodyHTML  string    `json:"bodyHtml"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Author    Profile   `json:"author"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
