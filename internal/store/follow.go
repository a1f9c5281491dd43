package store

import (
	"fmt"

	"conduit/internal/db"
	"conduit/internal/models"

	"gorm.io/gorm/clause"
)

// FollowStore is the follow graph: directed follower -> followee edges with
// idempotent create/delete.
type FollowStore struct{}

func NewFollowStore() *FollowStore {
	return &FollowStore{}
}

func (s *FollowStore) IsFollowing(followerID, followeeID uint) (bool, error) {
	var count int64
	err := db.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return count > 0, nil
}

// Follow creates the edge, a no-op when it already exists.
func (s *FollowStore) Follow(followerID, followeeID uint) error {
	edge := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	err := db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followee_id"}},
		DoNothing: true,
	}).Create(&edge).Error
	if err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	return nil
}

// Unfollow removes the edge, a no-op when it does not exist.
func (s *FollowStore) Unfollow(followerID, followeeID uint) error {
	err := db.DB.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}
	return nil
}

// FolloweeIDs returns the set of users the follower follows, one query per
// page render.
func (s *FollowStore) FolloweeIDs(followerID uint) (map[uint]bool, error) {
	var ids []uint
	err := db.DB.Model(&models.Follow{}).Where("follower_id = ?", followerID).Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("followee set: %w", err)
	}

	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
