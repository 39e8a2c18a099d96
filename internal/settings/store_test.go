// internal/settings/store_test.go
package settings

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vocab_tutor/internal/config"
	"vocab_tutor/internal/model"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Setting{}))
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStore(db, testLogger)
}

func Test_Store_GetSet(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Get("missing")
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, s.Set("k", "v1"))
	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v1", got)

	// Upsert on the same key.
	require.NoError(t, s.Set("k", "v2"))
	got, err = s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)
}

func Test_Store_NativeLanguage(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		skip   bool
		want   string
	}{
		{name: "absent falls back", skip: true, want: "pl"},
		{name: "valid code wins", stored: "es", want: "es"},
		{name: "corrupted value falls back", stored: "EN!", want: "pl"},
		{name: "empty value falls back", stored: "", want: "pl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestStore(t)
			if !tt.skip {
				require.NoError(t, s.Set(config.StorageKeyNativeLanguage, tt.stored))
			}
			assert.Equal(t, tt.want, s.NativeLanguage("pl"))
		})
	}
}

func Test_Store_SetNativeLanguageRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SetNativeLanguage("de"))
	assert.Equal(t, "de", s.NativeLanguage("pl"))
}

func Test_Store_DarkMode(t *testing.T) {
	s := setupTestStore(t)

	// Absent means light mode.
	assert.False(t, s.DarkMode())

	require.NoError(t, s.SetDarkMode(true))
	assert.True(t, s.DarkMode())

	require.NoError(t, s.SetDarkMode(false))
	assert.False(t, s.DarkMode())

	// Garbage in storage means light mode, not an error.
	require.NoError(t, s.Set(config.StorageKeyDarkMode, "banana"))
	assert.False(t, s.DarkMode())
}
