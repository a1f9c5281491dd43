package models

import (
	"time"
)

// Favorite records that a user favorited an article. Existence is the whole
// payload; the (user_id, article_id) pair is unique so favoriting twice cannot
// create a second row.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_article" json:"user_id"`
	ArticleID uint      `gorm:"not null;index;uniqueIndex:idx_user_article" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}
