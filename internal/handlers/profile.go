package handlers

import (
	"errors"
	"net/http"

	"conduit/internal/store"
	"conduit/internal/views"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	users     *store.UserStore
	follows   *store.FollowStore
	assembler *views.Assembler
}

func NewProfileHandler(users *store.UserStore, follows *store.FollowStore, assembler *views.Assembler) *ProfileHandler {
	return &ProfileHandler{
		users:     users,
		follows:   follows,
		assembler: assembler,
	}
}

// Get GET /api/profiles/:username
func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.users.FindByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		JSONError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}

	profile, err := h.assembler.Profile(CurrentUser(c), user)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// Follow POST /api/profiles/:username/follow
func (h *ProfileHandler) Follow(c *gin.Context) {
	viewer := CurrentUser(c)

	user, err := h.users.FindByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		JSONError(c, http.StatusInternalServerError, "failed to follow")
		return
	}

	if err := h.follows.Follow(viewer.ID, user.ID); err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to follow")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": h.assembler.ProfileWithFollowing(user, true)})
}

// Unfollow DELETE /api/profiles/:username/follow
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	viewer := CurrentUser(c)

	user, err := h.users.FindByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		JSONError(c, http.StatusInternalServerError, "failed to unfollow")
		return
	}

	if err := h.follows.Unfollow(viewer.ID, user.ID); err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to unfollow")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": h.assembler.ProfileWithFollowing(user, false)})
}
