package store

import (
	"errors"
	"fmt"

	"conduit/internal/db"
	"conduit/internal/models"
	"conduit/internal/utils"

	"gorm.io/gorm"
)

// ArticleStore is the article catalog: creation, partial updates, slug
// lookups, filtered/paginated listing and the follow-scoped feed.
type ArticleStore struct{}

func NewArticleStore() *ArticleStore {
	return &ArticleStore{}
}

// ArticlePatch carries optional fields for a partial update. Nil means leave
// the stored value untouched.
type ArticlePatch struct {
	Title       *string
	Description *string
	Body        *string
}

func (s *ArticleStore) Create(title, description, body string, tags []string, authorID uint) (*models.Article, error) {
	article := models.Article{
		Slug:        utils.Slugify(title),
		Title:       title,
		Description: description,
		Body:        body,
		AuthorID:    authorID,
		Tags:        dedupTags(tags),
	}

	if err := db.DB.Create(&article).Error; err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return &article, nil
}

// UpdateFields applies a partial patch. A present title recomputes the slug
// with a fresh suffix, so the article's URL identity changes on title edits.
func (s *ArticleStore) UpdateFields(article *models.Article, patch ArticlePatch) error {
	if patch.Title != nil {
		article.Title = *patch.Title
		article.Slug = utils.Slugify(*patch.Title)
	}
	if patch.Description != nil {
		article.Description = *patch.Description
	}
	if patch.Body != nil {
		article.Body = *patch.Body
	}

	if err := db.DB.Save(article).Error; err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

func (s *ArticleStore) FindBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := db.DB.Preload("Tags").Preload("Author").Where("slug = ?", slug).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find article by slug: %w", err)
	}
	return &article, nil
}

// ListFiltered returns one page of articles matching the optional tag, author
// username and favorited-by username filters (logical AND), newest first,
// plus the total count under the same predicate.
func (s *ArticleStore) ListFiltered(tag, author, favoritedBy string, limit, offset int) ([]models.Article, int64, error) {
	tx := db.DB.Model(&models.Article{})
	if tag != "" {
		tx = tx.Where("id IN (?)", db.DB.Model(&models.ArticleTag{}).Select("article_id").Where("name = ?", tag))
	}
	if author != "" {
		tx = tx.Where("author_id IN (?)", db.DB.Model(&models.User{}).Select("id").Where("username = ?", author))
	}
	if favoritedBy != "" {
		tx = tx.Where("id IN (?)", db.DB.Model(&models.Favorite{}).
			Select("favorites.article_id").
			Joins("JOIN users ON users.id = favorites.user_id").
			Where("users.username = ?", favoritedBy))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	var articles []models.Article
	err := tx.Preload("Tags").Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	return articles, total, nil
}

// ListFeed returns one page of articles whose author is in authorIDs, newest
// first. An empty followee set yields an empty page, never all articles.
func (s *ArticleStore) ListFeed(authorIDs []uint, limit, offset int) ([]models.Article, int64, error) {
	if len(authorIDs) == 0 {
		return []models.Article{}, 0, nil
	}

	tx := db.DB.Model(&models.Article{}).Where("author_id IN ?", authorIDs)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count feed: %w", err)
	}

	var articles []models.Article
	err := tx.Preload("Tags").Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list feed: %w", err)
	}
	return articles, total, nil
}

// Delete removes the article together with its comments, favorite facts and
// tag rows in one transaction, so no orphaned references survive.
func (s *ArticleStore) Delete(article *models.Article) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("cascade comments: %w", err)
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Favorite{}).Error; err != nil {
			return fmt.Errorf("cascade favorites: %w", err)
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.ArticleTag{}).Error; err != nil {
			return fmt.Errorf("cascade tags: %w", err)
		}
		if err := tx.Delete(article).Error; err != nil {
			return fmt.Errorf("delete article: %w", err)
		}
		return nil
	})
}

// AllTags returns the union of tags across all articles, deduplicated.
func (s *ArticleStore) AllTags() ([]string, error) {
	var tags []string
	err := db.DB.Model(&models.ArticleTag{}).Distinct().Order("name ASC").Pluck("name", &tags).Error
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func dedupTags(tags []string) []models.ArticleTag {
	seen := make(map[string]bool, len(tags))
	rows := make([]models.ArticleTag, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		rows = append(rows, models.ArticleTag{Name: t})
	}
	return rows
}
