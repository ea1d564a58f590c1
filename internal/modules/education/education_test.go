package education

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedPortfolio(t *testing.T, db *gorm.DB) string {
	t.Helper()
	p := models.PortfolioModel{IsDraft: true, ProfileName: "Ada", ProfileTitle: "Engineer"}
	require.NoError(t, db.Create(&p).Error)
	return p.ID
}

func strp(s string) *string { return &s }

func TestUpdateCoursesAndDetails(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	pid := seedPortfolio(t, db)

	entry, err := svc.Create(&CreateDTO{
		PortfolioID: pid,
		School:      "MIT",
		Degree:      "BSc",
		Details:     strp("with honors"),
		Courses:     []models.CourseEntry{{Name: "Algorithms"}},
	})
	require.NoError(t, err)

	courses := []models.CourseEntry{
		{Name: "Algorithms"},
		{Name: "Databases", URL: strp("https://example.com/db")},
	}
	updated, err := svc.Update(entry.ID, &UpdateDTO{Courses: &courses})
	require.NoError(t, err)
	require.Len(t, updated.Courses, 2)
	assert.Equal(t, "Databases", updated.Courses[1].Name)
	require.NotNil(t, updated.Details, "absent details stays untouched")

	// explicit null clears the nullable column
	updated, err = svc.Update(entry.ID, &UpdateDTO{
		Details: models.Optional[string]{Set: true, Value: nil},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Details)
}
