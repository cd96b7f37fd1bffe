package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sarcaxticlarka/urbanmeet/internal/models"
	"github.com/sarcaxticlarka/urbanmeet/internal/repositories"
	"github.com/sarcaxticlarka/urbanmeet/internal/storage"
	"github.com/sarcaxticlarka/urbanmeet/internal/utils"
)

// newTestDB opens an in-memory sqlite database with the full schema.
// A single connection keeps the shared-cache memory database alive for
// the whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, storage.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, name string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("Passw0rd!")
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}
	require.NoError(t, repositories.NewUserRepository(db).Create(user))
	return user
}

func createTestGroup(t *testing.T, db *gorm.DB, ownerID uint, name, city string) *models.Group {
	t.Helper()

	repo := repositories.NewGroupRepository(db)
	group := &models.Group{Name: name, City: city, OwnerID: ownerID}
	require.NoError(t, repo.Create(group))
	require.NoError(t, repo.AddMember(group.ID, ownerID, models.RoleAdmin))
	return group
}

func createTestEvent(t *testing.T, db *gorm.DB, groupID uint, title, city string, startsAt time.Time) *models.Event {
	t.Helper()

	repo := repositories.NewEventRepository(db)
	event := &models.Event{
		GroupID:  groupID,
		Title:    title,
		City:     city,
		StartsAt: startsAt,
	}
	require.NoError(t, repo.Create(event))

	loaded, err := repo.GetByID(event.ID)
	require.NoError(t, err)
	return loaded
}
