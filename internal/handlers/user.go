package handlers

import (
	"errors"
	"net/http"

	"conduit/internal/models"
	"conduit/internal/services"
	"conduit/internal/store"
	"conduit/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users  *store.UserStore
	tokens *services.TokenService
}

func NewUserHandler(users *store.UserStore, tokens *services.TokenService) *UserHandler {
	return &UserHandler{
		users:  users,
		tokens: tokens,
	}
}

type userPayload struct {
	Email    string  `json:"email"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

func (h *UserHandler) userResponse(c *gin.Context, code int, user *models.User, token string) {
	payload := userPayload{
		Email:    user.Email,
		Token:    token,
		Username: user.Username,
	}
	if user.Bio != "" {
		payload.Bio = &user.Bio
	}
	if user.Image != "" {
		payload.Image = &user.Image
	}
	c.JSON(code, gin.H{"user": payload})
}

func conflictMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, store.ErrEmailTaken):
		return "email already used", true
	case errors.Is(err, store.ErrUsernameTaken):
		return "username already used", true
	}
	return "", false
}

// Register POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		User struct {
			Username string `json:"username" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required,min=6"`
		} `json:"user"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	hash, err := utils.HashPassword(req.User.Password)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user, err := h.users.Create(req.User.Email, req.User.Username, hash)
	if err != nil {
		if msg, ok := conflictMessage(err); ok {
			JSONError(c, http.StatusConflict, msg)
			return
		}
		JSONError(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}
	h.userResponse(c, http.StatusCreated, user, token)
}

// Login POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		User struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		} `json:"user"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := h.users.FindByEmail(req.User.Email)
	if err != nil || !utils.CheckPasswordHash(req.User.Password, user.Password) {
		JSONError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}
	h.userResponse(c, http.StatusOK, user, token)
}

// Current GET /api/user
func (h *UserHandler) Current(c *gin.Context) {
	user := CurrentUser(c)

	token, err := h.tokens.Issue(user)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}
	h.userResponse(c, http.StatusOK, user, token)
}

// Update PUT /api/user — absent fields leave stored values untouched
func (h *UserHandler) Update(c *gin.Context) {
	user := CurrentUser(c)

	var req struct {
		User struct {
			Email    *string `json:"email"`
			Username *string `json:"username"`
			Password *string `json:"password"`
			Bio      *string `json:"bio"`
			Image    *string `json:"image"`
		} `json:"user"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	patch := store.UserPatch{
		Email:    req.User.Email,
		Username: req.User.Username,
		Bio:      req.User.Bio,
		Image:    req.User.Image,
	}
	if req.User.Password != nil {
		hash, err := utils.HashPassword(*req.User.Password)
		if err != nil {
			JSONError(c, http.StatusInternalServerError, "failed to hash password")
			return
		}
		patch.Password = &hash
	}

	if err := h.users.UpdateFields(user, patch); err != nil {
		if msg, ok := conflictMessage(err); ok {
			JSONError(c, http.StatusConflict, msg)
			return
		}
		JSONError(c, http.StatusInternalServerError, "failed to update user")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}
	h.userResponse(c, http.StatusOK, user, token)
}
