package handlers

import (
	"net/http"
	"time"

	"conduit/internal/store"
	"conduit/internal/utils"

	"github.com/gin-gonic/gin"
)

const tagsCacheKey = "tags:all"

type TagHandler struct {
	articles *store.ArticleStore
}

func NewTagHandler(articles *store.ArticleStore) *TagHandler {
	return &TagHandler{
		articles: articles,
	}
}

// List GET /api/tags — cached; article create/delete invalidates the key
func (h *TagHandler) List(c *gin.Context) {
	if cached := utils.GetCache().Get(tagsCacheKey); cached != nil {
		if tags, ok := cached.([]string); ok {
			c.JSON(http.StatusOK, gin.H{"tags": tags})
			return
		}
	}

	tags, err := h.articles.AllTags()
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to list tags")
		return
	}

	utils.GetCache().Set(tagsCacheKey, tags, 1*time.Minute)
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
