package views

import (
	"sort"

	"conduit/internal/models"
	"conduit/internal/store"
	"conduit/internal/utils"
)

// Assembler folds raw entities and relationship facts into viewer-
// personalized response shapes. It holds no state of its own and only reads
// from the stores.
//
// List operations issue a fixed number of extra queries per page regardless
// of page size: one batch favorite count, one viewer favorited-set, one
// viewer followee-set. An anonymous viewer always sees favorited=false and
// following=false.
type Assembler struct {
	favorites *store.FavoriteStore
	follows   *store.FollowStore
}

func NewAssembler(favorites *store.FavoriteStore, follows *store.FollowStore) *Assembler {
	return &Assembler{
		favorites: favorites,
		follows:   follows,
	}
}

// Profile renders a public profile with the viewer-relative following flag.
func (a *Assembler) Profile(viewer *models.User, user *models.User) (Profile, error) {
	following := false
	if viewer != nil {
		var err error
		following, err = a.follows.IsFollowing(viewer.ID, user.ID)
		if err != nil {
			return Profile{}, err
		}
	}
	return a.ProfileWithFollowing(user, following), nil
}

// ProfileWithFollowing renders a public profile from an already-resolved
// following flag, used by callers that just mutated the edge.
func (a *Assembler) ProfileWithFollowing(user *models.User, following bool) Profile {
	return Profile{
		Username:  user.Username,
		Bio:       optional(user.Bio),
		Image:     optional(user.Image),
		Following: following,
	}
}

// Article renders a single article for the viewer, resolving the favorite
// flag, favorite count and author-following flag with single-row lookups.
func (a *Assembler) Article(viewer *models.User, article *models.Article) (Article, error) {
	favorited := false
	following := false
	if viewer != nil {
		var err error
		favorited, err = a.favorites.IsFavorited(viewer.ID, article.ID)
		if err != nil {
			return Article{}, err
		}
		following, err = a.follows.IsFollowing(viewer.ID, article.AuthorID)
		if err != nil {
			return Article{}, err
		}
	}

	count, err := a.favorites.CountForArticle(article.ID)
	if err != nil {
		return Article{}, err
	}

	return a.fold(article, favorited, count, following), nil
}

// Articles renders a page of articles for the viewer. The relationship facts
// are batched: the per-article favorite counts come from one grouped query,
// and the viewer's favorited-set and followee-set from one query each.
func (a *Assembler) Articles(viewer *models.User, articles []models.Article) ([]Article, error) {
	ids := make([]uint, len(articles))
	for i, art := range articles {
		ids[i] = art.ID
	}

	counts, err := a.favorites.CountForArticles(ids)
	if err != nil {
		return nil, err
	}

	favorited := map[uint]bool{}
	followees := map[uint]bool{}
	if viewer != nil {
		favorited, err = a.favorites.FavoritedArticleIDs(viewer.ID)
		if err != nil {
			return nil, err
		}
		followees, err = a.follows.FolloweeIDs(viewer.ID)
		if err != nil {
			return nil, err
		}
	}

	out := make([]Article, len(articles))
	for i := range articles {
		art := &articles[i]
		// Absent key in counts means zero favorites
		out[i] = a.fold(art, favorited[art.ID], counts[art.ID], followees[art.AuthorID])
	}
	return out, nil
}

// Comment renders a single comment with the viewer-relative author flag.
func (a *Assembler) Comment(viewer *models.User, comment *models.Comment) (Comment, error) {
	following := false
	if viewer != nil {
		var err error
		following, err = a.follows.IsFollowing(viewer.ID, comment.AuthorID)
		if err != nil {
			return Comment{}, err
		}
	}
	return a.foldComment(comment, following), nil
}

// Comments renders a comment list, batching the viewer's followee-set into a
// single query.
func (a *Assembler) Comments(viewer *models.User, comments []models.Comment) ([]Comment, error) {
	followees := map[uint]bool{}
	if viewer != nil {
		var err error
		followees, err = a.follows.FolloweeIDs(viewer.ID)
		if err != nil {
			return nil, err
		}
	}

	out := make([]Comment, len(comments))
	for i := range comments {
		out[i] = a.foldComment(&comments[i], followees[comments[i].AuthorID])
	}
	return out, nil
}

func (a *Assembler) fold(article *models.Article, favorited bool, count int64, followingAuthor bool) Article {
	tags := make([]string, len(article.Tags))
	for i, t := range article.Tags {
		tags[i] = t.Name
	}
	sort.Strings(tags)

	return Article{
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		BodyHTML:       utils.RenderMarkdown(article.Body),
		TagList:        tags,
		CreatedAt:      article.CreatedAt,
		UpdatedAt:      article.UpdatedAt,
		Favorited:      favorited,
		FavoritesCount: count,
		Author:         a.ProfileWithFollowing(&article.Author, followingAuthor),
	}
}

func (a *Assembler) foldComment(comment *models.Comment, followingAuthor bool) Comment {
	return Comment{
		ID:        comment.ID,
		Body:      comment.Body,
		BodyHTML:  utils.RenderMarkdown(comment.Body),
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Author:    a.ProfileWithFollowing(&comment.Author, followingAuthor),
	}
}
