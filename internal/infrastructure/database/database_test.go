package database

import (
	"fmt"
	"testing"

	"launchpad-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSqlitePath(t *testing.T) {
	p, ok := sqlitePath("sqlite:/tmp/x.db")
	assert.True(t, ok)
	assert.Equal(t, "/tmp/x.db", p)

	_, ok = sqlitePath(":memory:")
	assert.True(t, ok)

	_, ok = sqlitePath("postgres://u:p@localhost:5432/db")
	assert.False(t, ok)
}

func TestOpen_SQLiteAndMigrate(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	for _, m := range domain.Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

type captureWriter struct{ lines []string }

func (w *captureWriter) Printf(format string, args ...interface{}) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

func TestLogger_IgnoresRecordNotFound(t *testing.T) {
	w := &captureWriter{}
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: newLogger(w)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Account{}))

	var a domain.Account
	err = db.Where("address = ?", "nobody").First(&a).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, w.lines)

	assert.Error(t, db.Exec("SELECT * FROM missing_table").Error)
	assert.NotEmpty(t, w.lines)
}
