package store

import (
	"fmt"

	"conduit/internal/db"
	"conduit/internal/models"
)

// CommentStore is the comment board: comments scoped to an article, read back
// in creation order.
type CommentStore struct{}

func NewCommentStore() *CommentStore {
	return &CommentStore{}
}

func (s *CommentStore) Add(articleID, authorID uint, body string) (*models.Comment, error) {
	comment := models.Comment{
		ArticleID: articleID,
		AuthorID:  authorID,
		Body:      body,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &comment, nil
}

func (s *CommentStore) ListForArticle(articleID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.DB.Preload("Author").
		Where("article_id = ?", articleID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *CommentStore) FindByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := db.DB.Preload("Author").First(&comment, id).Error
	if err != nil {
		return nil, ErrNotFound
	}
	return &comment, nil
}

// DeleteByID removes a single comment. Deleting an absent id is a no-op.
func (s *CommentStore) DeleteByID(id uint) error {
	if err := db.DB.Delete(&models.Comment{}, id).Error; err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// DeleteAllForArticle is the article deletion cascade hook.
func (s *CommentStore) DeleteAllForArticle(articleID uint) error {
	if err := db.DB.Where("article_id = ?", articleID).Delete(&models.Comment{}).Error; err != nil {
		return fmt.Errorf("delete comments for article: %w", err)
	}
	return nil
}
