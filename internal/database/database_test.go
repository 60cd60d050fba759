package database

import (
	"context"
	"testing"
	"time"

	"expense-services/internal/config"
	"expense-services/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DatabaseTestSuite struct {
	suite.Suite
	db *DB
}

func (s *DatabaseTestSuite) SetupTest() {
	s.db = SetupTestDB(s.T())
}

func (s *DatabaseTestSuite) TestDefaultCategorySeeded() {
	var categories []models.Category
	s.Require().NoError(s.db.Find(&categories).Error)

	s.Require().Len(categories, 1)
	s.Equal(models.DefaultCategoryName, categories[0].Name)
}

func (s *DatabaseTestSuite) TestEnsureDefaultCategoryIsIdempotent() {
	s.Require().NoError(s.db.EnsureDefaultCategory())
	s.Require().NoError(s.db.EnsureDefaultCategory())

	var count int64
	s.Require().NoError(s.db.Model(&models.Category{}).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *DatabaseTestSuite) TestForeignKeysEnforced() {
	err := s.db.Create(&models.Expense{
		UserID:     1,
		CategoryID: 9999,
		Date:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}).Error

	s.Error(err)
}

func (s *DatabaseTestSuite) TestHealthCheck() {
	s.NoError(s.db.HealthCheck(context.Background()))
}

func (s *DatabaseTestSuite) TestCleanupTestDB() {
	CreateTestUser(s.T(), s.db, "alice")
	CreateTestExpense(s.T(), s.db, 1, 1, 10, "2024-01-01")

	CleanupTestDB(s.T(), s.db)

	var count int64
	s.Require().NoError(s.db.Model(&models.Expense{}).Count(&count).Error)
	s.Zero(count)
}

func TestDatabaseTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}

func TestNew_SQLiteFile(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: t.TempDir() + "/nested/expenses.db",
	}

	db, err := New(cfg)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.AutoMigrate())
	require.NoError(t, db.EnsureDefaultCategory())
	assert.NoError(t, db.HealthCheck(context.Background()))
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(&config.DatabaseConfig{Driver: "oracle"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestInitialize_SQLite(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: t.TempDir() + "/expenses.db",
		},
	}

	db, err := Initialize(cfg)
	require.NoError(t, err)
	defer db.Close()

	var category models.Category
	require.NoError(t, db.First(&category).Error)
	assert.Equal(t, models.DefaultCategoryName, category.Name)
}

func TestRunMigrations_SQLiteCreatesSchema(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: t.TempDir() + "/schema.db",
	}

	db, err := New(cfg)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, runMigrations(db, cfg))

	for _, table := range []string{"users", "categories", "expenses"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
