package handlers

import (
	"conduit/internal/middleware"
	"conduit/internal/models"
	"conduit/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit  = 20
	defaultOffset = 0
)

// JSONError writes the standard error envelope
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"errors": gin.H{"body": []string{message}}})
}

// CurrentUser returns the viewer resolved by the LoadUser middleware, nil for
// anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

// PageParams reads limit/offset query params with the API defaults
func PageParams(c *gin.Context) (limit, offset int) {
	limit = utils.StringToIntDefault(c.Query("limit"), defaultLimit)
	offset = utils.StringToIntDefault(c.Query("offset"), defaultOffset)
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = defaultOffset
	}
	return limit, offset
}
