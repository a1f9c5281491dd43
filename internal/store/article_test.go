package store

import (
	"regexp"
	"testing"
	"time"

	"conduit/internal/db"
	"conduit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDerivesUniqueSlugs(t *testing.T) {
	setupDB(t)
	s := NewArticleStore()
	bob := createUser(t, "bob")

	first, err := s.Create("My Post", "d", "b", nil, bob.ID)
	require.NoError(t, err)
	second, err := s.Create("My Post", "d", "b", nil, bob.ID)
	require.NoError(t, err)

	stem := regexp.MustCompile(`^my-post-\d+$`)
	assert.Regexp(t, stem, first.Slug)
	assert.Regexp(t, stem, second.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
}

func TestCreateDeduplicatesTags(t *testing.T) {
	setupDB(t)
	s := NewArticleStore()
	bob := createUser(t, "bob")

	article, err := s.Create("Tagged", "d", "b", []string{"go", "go", "web", ""}, bob.ID)
	require.NoError(t, err)

	loaded, err := s.FindBySlug(article.Slug)
	require.NoError(t, err)
	names := make([]string, len(loaded.Tags))
	for i, tag := range loaded.Tags {
		names[i] = tag.Name
	}
	assert.ElementsMatch(t, []string{"go", "web"}, names)
}

func TestUpdateFieldsPartial(t *testing.T) {
	setupDB(t)
	s := NewArticleStore()
	bob := createUser(t, "bob")

	article, err := s.Create("Original Title", "original description", "original body", nil, bob.ID)
	require.NoError(t, err)
	originalSlug := article.Slug

	body := "new body"
	require.NoError(t, s.UpdateFields(article, ArticlePatch{Body: &body}))

	loaded, err := s.FindBySlug(originalSlug)
	require.NoError(t, err)
	assert.Equal(t, "Original Title", loaded.Title)
	assert.Equal(t, "original description", loaded.Description)
	assert.Equal(t, "new body", loaded.Body)
	assert.Equal(t, originalSlug, loaded.Slug)
}

func TestUpdateTitleRecomputesSlug(t *testing.T) {
	setupDB(t)
	s := NewArticleStore()
	bob := createUser(t, "bob")

	article, err := s.Create("Old Title", "d", "b", nil, bob.ID)
	require.NoError(t, err)
	oldSlug := article.Slug

	title := "New Title"
	require.NoError(t, s.UpdateFields(article, ArticlePatch{Title: &title}))

	assert.NotEqual(t, oldSlug, article.Slug)
	assert.Regexp(t, regexp.MustCompile(`^new-title-\d+$`), article.Slug)

	_, err = s.FindBySlug(oldSlug)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindBySlugMiss(t *testing.T) {
	setupDB(t)
	s := NewArticleStore()

	_, err := s.FindBySlug("no-such-slug")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFilteredCombinesFilters(t *testing.T) {
	setupDB(t)
	s := NewArticleStore()
	favs := NewFavoriteStore()
	bob := createUser(t, "bob")
	alice := createUser(t, "alice")

	bobGo, err := s.Create("Bob Go", "d", "b", []string{"go"}, bob.ID)
	require.NoError(t, err)
	_, err = s.Create("Bob Web", "d", "b", []string{"web"}, bob.ID)
	require.NoError(t, err)
	_, err = s.Create("Alice Go", "d", "b", []string{"go"}, alice.ID)
	require.NoError(t, err)

	// Single filter
	rows, total, err := s.ListFiltered("go", "", "", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 2)

	// Combined filters narrow monotonically
	rows, total, err = s.ListFiltered("go", "bob", "", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bob Go", rows[0].Title)

	// favorited filter
	require.NoError(t, favs.Favorite(alice.ID, bobGo.ID))
	rows, total, err = s.ListFiltered("", "", "alice", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bob Go", rows[0].Title)

	// No matches is an empty page, not an error
	rows, total, err = s.ListFiltered("missing", "", "", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, rows)
}

func TestListFilteredPagination(t *testing.T) {
	setupDB(t)
	s := NewArticleStore()
	bob := createUser(t, "bob")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		article, err := s.Create("Post", "d", "b", nil, bob.ID)
		require.NoError(t, err)
		// Spread creation times so ordering is deterministic
		require.NoError(t, db.DB.Model(article).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	rows, total, err := s.ListFiltered("", "", "", 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, rows, 2)
	// Newest first
	assert.True(t, rows[0].CreatedAt.After(rows[1].CreatedAt))

	rows, _, err = s.ListFiltered("", "", "", 2, 4)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestListFeedEmptyFolloweeSet(t *testing.T) {
	setupDB(t)
	s := NewArticleStore()
	bob := createUser(t, "bob")

	_, err := s.Create("Post", "d", "b", nil, bob.ID)
	require.NoError(t, err)

	rows, total, err := s.ListFeed(nil, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.EqualValues(t, 0, total)
}

func TestListFeedScopedToAuthors(t *testing.T) {
	setupDB(t)
	s := NewArticleStore()
	bob := createUser(t, "bob")
	alice := createUser(t, "alice")

	_, err := s.Create("Bob Post", "d", "b", nil, bob.ID)
	require.NoError(t, err)
	_, err = s.Create("Alice Post", "d", "b", nil, alice.ID)
	require.NoError(t, err)

	rows, total, err := s.ListFeed([]uint{bob.ID}, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bob Post", rows[0].Title)
}

func TestDeleteCascades(t *testing.T) {
	setupDB(t)
	s := NewArticleStore()
	comments := NewCommentStore()
	favs := NewFavoriteStore()
	bob := createUser(t, "bob")
	alice := createUser(t, "alice")

	article, err := s.Create("Doomed", "d", "b", []string{"go"}, bob.ID)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := comments.Add(article.ID, alice.ID, "nice")
		require.NoError(t, err)
	}
	require.NoError(t, favs.Favorite(alice.ID, article.ID))

	require.NoError(t, s.Delete(article))

	_, err = s.FindBySlug(article.Slug)
	assert.ErrorIs(t, err, ErrNotFound)

	remaining, err := comments.ListForArticle(article.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	count, err := favs.CountForArticle(article.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	var tagCount int64
	require.NoError(t, db.DB.Model(&models.ArticleTag{}).Where("article_id = ?", article.ID).Count(&tagCount).Error)
	assert.EqualValues(t, 0, tagCount)
}

func TestAllTagsDeduplicated(t *testing.T) {
	setupDB(t)
	s := NewArticleStore()
	bob := createUser(t, "bob")

	_, err := s.Create("One", "d", "b", []string{"go", "web"}, bob.ID)
	require.NoError(t, err)
	_, err = s.Create("Two", "d", "b", []string{"go"}, bob.ID)
	require.NoError(t, err)

	tags, err := s.AllTags()
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "web"}, tags)
}
