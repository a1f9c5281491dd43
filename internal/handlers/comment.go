package handlers

import (
	"errors"
	"net/http"

	"conduit/internal/models"
	"conduit/internal/store"
	"conduit/internal/utils"
	"conduit/internal/views"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	articles  *store.ArticleStore
	comments  *store.CommentStore
	assembler *views.Assembler
}

func NewCommentHandler(articles *store.ArticleStore, comments *store.CommentStore, assembler *views.Assembler) *CommentHandler {
	return &CommentHandler{
		articles:  articles,
		comments:  comments,
		assembler: assembler,
	}
}

// Create POST /api/articles/:slug/comments
func (h *CommentHandler) Create(c *gin.Context) {
	viewer := CurrentUser(c)

	article, err := h.articles.FindBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			JSONError(c, http.StatusNotFound, "article not found")
			return
		}
		JSONError(c, http.StatusInternalServerError, "failed to create comment")
		return
	}

	var req struct {
		Comment struct {
			Body string `json:"body" binding:"required"`
		} `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	comment, err := h.comments.Add(article.ID, viewer.ID, req.Comment.Body)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create comment")
		return
	}
	comment.Author = *viewer

	rendered, err := h.assembler.Comment(viewer, comment)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create comment")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": rendered})
}

// List GET /api/articles/:slug/comments — a missing article reads as an empty
// board; callers that must distinguish not-found pre-check the article.
func (h *CommentHandler) List(c *gin.Context) {
	var comments []models.Comment

	article, err := h.articles.FindBySlug(c.Param("slug"))
	if err == nil {
		comments, err = h.comments.ListForArticle(article.ID)
		if err != nil {
			JSONError(c, http.StatusInternalServerError, "failed to list comments")
			return
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		JSONError(c, http.StatusInternalServerError, "failed to list comments")
		return
	}

	rendered, err := h.assembler.Comments(CurrentUser(c), comments)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to list comments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": rendered})
}

// Delete DELETE /api/articles/:slug/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	viewer := CurrentUser(c)

	id := uint(utils.StringToInt(c.Param("id")))
	comment, err := h.comments.FindByID(id)
	if err != nil {
		// Deleting an absent comment is a no-op
		c.Status(http.StatusOK)
		return
	}
	if comment.AuthorID != viewer.ID {
		JSONError(c, http.StatusForbidden, "not the comment author")
		return
	}

	if err := h.comments.DeleteByID(id); err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to delete comment")
		return
	}
	c.Status(http.StatusOK)
}
