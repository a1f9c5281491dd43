package models

import (
	"time"
)

type Article struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Slug        string       `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `json:"description"`
	Body        string       `gorm:"type:text" json:"body"`
	Tags        []ArticleTag `gorm:"constraint:OnDelete:CASCADE;" json:"tags"`
	AuthorID    uint         `gorm:"not null;index" json:"author_id"`
	Author      User         `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ArticleTag is one row per article-tag pair. The pair is the primary key, so
// a duplicate tag on the same article cannot exist.
type ArticleTag struct {
	ArticleID uint   `gorm:"primaryKey;autoIncrement:false" json:"article_id"`
	Name      string `gorm:"primaryKey;size:100" json:"name"`
}
