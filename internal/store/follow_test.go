package store

import (
	"testing"

	"conduit/internal/db"
	"conduit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowIdempotent(t *testing.T) {
	setupDB(t)
	s := NewFollowStore()
	bob := createUser(t, "bob")
	alice := createUser(t, "alice")

	require.NoError(t, s.Follow(bob.ID, alice.ID))
	require.NoError(t, s.Follow(bob.ID, alice.ID))

	var count int64
	require.NoError(t, db.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", bob.ID, alice.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	following, err := s.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// Directed edge, the reverse does not exist
	reverse, err := s.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, reverse)
}

func TestUnfollowIdempotent(t *testing.T) {
	setupDB(t)
	s := NewFollowStore()
	bob := createUser(t, "bob")
	alice := createUser(t, "alice")

	require.NoError(t, s.Unfollow(bob.ID, alice.ID))

	require.NoError(t, s.Follow(bob.ID, alice.ID))
	require.NoError(t, s.Unfollow(bob.ID, alice.ID))
	require.NoError(t, s.Unfollow(bob.ID, alice.ID))

	following, err := s.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFolloweeIDs(t *testing.T) {
	setupDB(t)
	s := NewFollowStore()
	bob := createUser(t, "bob")
	alice := createUser(t, "alice")
	carol := createUser(t, "carol")

	require.NoError(t, s.Follow(bob.ID, alice.ID))
	require.NoError(t, s.Follow(bob.ID, carol.ID))

	set, err := s.FolloweeIDs(bob.ID)
	require.NoError(t, err)
	assert.Len(t, set, 2)
	assert.True(t, set[alice.ID])
	assert.True(t, set[carol.ID])

	empty, err := s.FolloweeIDs(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
