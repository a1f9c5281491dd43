package store

import (
	"fmt"

	"conduit/internal/db"
	"conduit/internal/models"

	"gorm.io/gorm/clause"
)

// FavoriteStore is the favorite ledger: existence-only (user, article) facts
// with idempotent create/delete and batch counting for page assembly.
type FavoriteStore struct{}

func NewFavoriteStore() *FavoriteStore {
	return &FavoriteStore{}
}

func (s *FavoriteStore) IsFavorited(userID, articleID uint) (bool, error) {
	var count int64
	err := db.DB.Model(&models.Favorite{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return count > 0, nil
}

// Favorite records the fact. Favoriting an already-favorited article is a
// no-op, the unique index plus ON CONFLICT DO NOTHING converge concurrent
// duplicates to a single row.
func (s *FavoriteStore) Favorite(userID, articleID uint) error {
	fav := models.Favorite{UserID: userID, ArticleID: articleID}
	err := db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "article_id"}},
		DoNothing: true,
	}).Create(&fav).Error
	if err != nil {
		return fmt.Errorf("favorite: %w", err)
	}
	return nil
}

// Unfavorite removes the fact. Unfavoriting a never-favorited article is a
// no-op, not an error.
func (s *FavoriteStore) Unfavorite(userID, articleID uint) error {
	err := db.DB.Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return fmt.Errorf("unfavorite: %w", err)
	}
	return nil
}

func (s *FavoriteStore) CountForArticle(articleID uint) (int64, error) {
	var count int64
	err := db.DB.Model(&models.Favorite{}).Where("article_id = ?", articleID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return count, nil
}

// CountForArticles returns favorite counts for a page of articles in a single
// grouped query. Articles with zero favorites are absent from the map; callers
// must treat a missing key as zero.
func (s *FavoriteStore) CountForArticles(articleIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(articleIDs))
	if len(articleIDs) == 0 {
		return counts, nil
	}

	type countRow struct {
		ArticleID uint
		Count     int64
	}
	var rows []countRow
	err := db.DB.Model(&models.Favorite{}).
		Select("article_id, COUNT(*) as count").
		Where("article_id IN ?", articleIDs).
		Group("article_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("batch count favorites: %w", err)
	}

	for _, r := range rows {
		counts[r.ArticleID] = r.Count
	}
	return counts, nil
}

// FavoritedArticleIDs returns the set of article ids the user favorited, one
// query per page render.
func (s *FavoriteStore) FavoritedArticleIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	err := db.DB.Model(&models.Favorite{}).Where("user_id = ?", userID).Pluck("article_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("favorited set: %w", err)
	}

	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
