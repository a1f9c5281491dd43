package store

import (
	"fmt"
	"testing"

	"conduit/internal/db"
	"conduit/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupDB points the global handle at a fresh in-memory database so each test
// runs against a clean schema.
func setupDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection only, a pooled second connection would see an empty
	// in-memory database
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	db.DB = gdb
}

func createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.User{
		Email:    fmt.Sprintf("%s@example.com", username),
		Username: username,
		Password: "hash",
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return &user
}
