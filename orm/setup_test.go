package orm

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := Open("sqlite", filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	return db
}
