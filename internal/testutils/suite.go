// Package testutils provides the shared database harness and data factories
// for the test suites. Tests run against a real SQLite store in a temp
// directory, the same engine production uses.
package testutils

import (
	"path/filepath"
	"testing"

	"calltime-backend/internal/database"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// BaseTestSuite carries a fresh database per suite.
type BaseTestSuite struct {
	suite.Suite
	DB *gorm.DB
}

// SetupTestSuite opens a fresh SQLite store in the test's temp directory. The
// file is removed with the temp dir when the test ends.
func SetupTestSuite(t *testing.T) *BaseTestSuite {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	s := &BaseTestSuite{DB: db}
	s.SetT(t)
	return s
}

// TruncateAll clears every table between tests without rebuilding the schema.
func (s *BaseTestSuite) TruncateAll() {
	for _, table := range []string{
		"client_donor_notes",
		"client_donor_research",
		"call_outcomes",
		"giving_history",
		"donor_assignments",
		"donors",
		"clients",
	} {
		s.Require().NoError(s.DB.Exec("DELETE FROM " + table).Error)
	}
}
