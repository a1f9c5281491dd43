package store

import (
	"errors"
	"fmt"

	"conduit/internal/db"
	"conduit/internal/models"

	"gorm.io/gorm"
)

// UserStore is the identity store: registration with uniqueness checks and
// self-service partial updates.
type UserStore struct{}

func NewUserStore() *UserStore {
	return &UserStore{}
}

// UserPatch carries optional fields for a self-service profile update.
// Password must already be hashed.
type UserPatch struct {
	Email    *string
	Username *string
	Password *string
	Bio      *string
	Image    *string
}

// Create inserts a new user. Username and email collisions are reported as
// distinct conflicts so the transport can name the offending field.
func (s *UserStore) Create(email, username, passwordHash string) (*models.User, error) {
	taken, err := s.usernameExists(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	taken, err = s.emailExists(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	user := models.User{
		Email:    email,
		Username: username,
		Password: passwordHash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// UpdateFields applies a partial patch, re-checking uniqueness when email or
// username actually change.
func (s *UserStore) UpdateFields(user *models.User, patch UserPatch) error {
	if patch.Email != nil && *patch.Email != user.Email {
		taken, err := s.emailExists(*patch.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
		user.Email = *patch.Email
	}
	if patch.Username != nil && *patch.Username != user.Username {
		taken, err := s.usernameExists(*patch.Username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
		user.Username = *patch.Username
	}
	if patch.Password != nil {
		user.Password = *patch.Password
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Image != nil {
		user.Image = *patch.Image
	}

	if err := db.DB.Save(user).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	return s.wrap(&user, db.DB.First(&user, id).Error)
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	return s.wrap(&user, db.DB.Where("email = ?", email).First(&user).Error)
}

func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	return s.wrap(&user, db.DB.Where("username = ?", username).First(&user).Error)
}

func (s *UserStore) wrap(user *models.User, err error) (*models.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *UserStore) usernameExists(username string) (bool, error) {
	var count int64
	if err := db.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return count > 0, nil
}

func (s *UserStore) emailExists(email string) (bool, error) {
	var count int64
	if err := db.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return count > 0, nil
}
