package handlers

import (
	"errors"
	"net/http"

	"conduit/internal/store"
	"conduit/internal/utils"
	"conduit/internal/views"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articles  *store.ArticleStore
	favorites *store.FavoriteStore
	follows   *store.FollowStore
	assembler *views.Assembler
}

func NewArticleHandler(articles *store.ArticleStore, favorites *store.FavoriteStore, follows *store.FollowStore, assembler *views.Assembler) *ArticleHandler {
	return &ArticleHandler{
		articles:  articles,
		favorites: favorites,
		follows:   follows,
		assembler: assembler,
	}
}

func (h *ArticleHandler) articleResponse(c *gin.Context, code int, article *views.Article) {
	c.JSON(code, gin.H{"article": article})
}

// List GET /api/articles?tag=&author=&favorited=&limit=&offset=
func (h *ArticleHandler) List(c *gin.Context) {
	limit, offset := PageParams(c)

	articles, total, err := h.articles.ListFiltered(
		c.Query("tag"), c.Query("author"), c.Query("favorited"), limit, offset)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to list articles")
		return
	}

	rendered, err := h.assembler.Articles(CurrentUser(c), articles)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to list articles")
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": rendered, "articlesCount": total})
}

// Feed GET /api/articles/feed — restricted to authors the viewer follows
func (h *ArticleHandler) Feed(c *gin.Context) {
	viewer := CurrentUser(c)
	limit, offset := PageParams(c)

	followees, err := h.follows.FolloweeIDs(viewer.ID)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to list feed")
		return
	}
	ids := make([]uint, 0, len(followees))
	for id := range followees {
		ids = append(ids, id)
	}

	articles, total, err := h.articles.ListFeed(ids, limit, offset)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to list feed")
		return
	}

	rendered, err := h.assembler.Articles(viewer, articles)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to list feed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": rendered, "articlesCount": total})
}

// Get GET /api/articles/:slug
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.articles.FindBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			JSONError(c, http.StatusNotFound, "article not found")
			return
		}
		JSONError(c, http.StatusInternalServerError, "failed to load article")
		return
	}

	rendered, err := h.assembler.Article(CurrentUser(c), article)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to load article")
		return
	}
	h.articleResponse(c, http.StatusOK, &rendered)
}

// Create POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	viewer := CurrentUser(c)

	var req struct {
		Article struct {
			Title       string   `json:"title" binding:"required"`
			Description string   `json:"description"`
			Body        string   `json:"body" binding:"required"`
			TagList     []string `json:"tagList"`
		} `json:"article"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	article, err := h.articles.Create(
		req.Article.Title, req.Article.Description, req.Article.Body, req.Article.TagList, viewer.ID)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create article")
		return
	}
	article.Author = *viewer

	utils.GetCache().Delete(tagsCacheKey)

	rendered, err := h.assembler.Article(viewer, article)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create article")
		return
	}
	h.articleResponse(c, http.StatusCreated, &rendered)
}

// Update PUT /api/articles/:slug — absent fields leave stored values untouched
func (h *ArticleHandler) Update(c *gin.Context) {
	viewer := CurrentUser(c)

	article, err := h.articles.FindBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			JSONError(c, http.StatusNotFound, "article not found")
			return
		}
		JSONError(c, http.StatusInternalServerError, "failed to update article")
		return
	}
	if article.AuthorID != viewer.ID {
		JSONError(c, http.StatusForbidden, "not the article author")
		return
	}

	var req struct {
		Article struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			Body        *string `json:"body"`
		} `json:"article"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	patch := store.ArticlePatch{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
	}
	if err := h.articles.UpdateFields(article, patch); err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update article")
		return
	}

	rendered, err := h.assembler.Article(viewer, article)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update article")
		return
	}
	h.articleResponse(c, http.StatusOK, &rendered)
}

// Delete DELETE /api/articles/:slug — deleting an absent slug is a no-op
func (h *ArticleHandler) Delete(c *gin.Context) {
	viewer := CurrentUser(c)

	article, err := h.articles.FindBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Status(http.StatusOK)
			return
		}
		JSONError(c, http.StatusInternalServerError, "failed to delete article")
		return
	}
	if article.AuthorID != viewer.ID {
		JSONError(c, http.StatusForbidden, "not the article author")
		return
	}

	if err := h.articles.Delete(article); err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to delete article")
		return
	}

	utils.GetCache().Delete(tagsCacheKey)
	c.Status(http.StatusOK)
}

// Favorite POST /api/articles/:slug/favorite
func (h *ArticleHandler) Favorite(c *gin.Context) {
	h.setFavorite(c, true)
}

// Unfavorite DELETE /api/articles/:slug/favorite
func (h *ArticleHandler) Unfavorite(c *gin.Context) {
	h.setFavorite(c, false)
}

func (h *ArticleHandler) setFavorite(c *gin.Context, favorited bool) {
	viewer := CurrentUser(c)

	article, err := h.articles.FindBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			JSONError(c, http.StatusNotFound, "article not found")
			return
		}
		JSONError(c, http.StatusInternalServerError, "failed to update favorite")
		return
	}

	if favorited {
		err = h.favorites.Favorite(viewer.ID, article.ID)
	} else {
		err = h.favorites.Unfavorite(viewer.ID, article.ID)
	}
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update favorite")
		return
	}

	rendered, err := h.assembler.Article(viewer, article)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update favorite")
		return
	}
	h.articleResponse(c, http.StatusOK, &rendered)
}
