// internal/settings/store.go
package settings

import (
	"errors"
	"log/slog"
	"strconv"

	"vocab_tutor/internal/config"
	"vocab_tutor/internal/model"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting is one persisted key/value pair. The table is the client-side
// replacement for the browser's localStorage: it holds exactly the native
// language code and the dark-mode flag, nothing else.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

func (Setting) TableName() string {
	return "settings"
}

// Store reads and writes session-persistent user settings.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open opens (or creates) the settings database at path and migrates the
// schema.
func Open(path string, appLogger *slog.Logger) (*Store, error) {
	gormLogger := slogGorm.New(slogGorm.WithHandler(appLogger.Handler()))
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		appLogger.Error("Failed to open settings database", slog.String("path", path), slog.Any("error", err))
		return nil, err
	}
	if err := db.AutoMigrate(&Setting{}); err != nil {
		appLogger.Error("Failed to migrate settings schema", slog.Any("error", err))
		return nil, err
	}
	appLogger.Info("Settings storage ready", slog.String("path", path))
	return &Store{db: db, logger: appLogger}, nil
}

// NewStore wraps an existing connection. Used by tests with an in-memory
// database.
func NewStore(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get returns the stored value for key, or model.ErrNotFound.
func (s *Store) Get(key string) (string, error) {
	var setting Setting
	err := s.db.First(&setting, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", model.ErrNotFound
		}
		s.logger.Error("Failed to read setting", slog.String("key", key), slog.Any("error", err))
		return "", err
	}
	return setting.Value, nil
}

// Set writes key synchronously, inserting or updating as needed.
func (s *Store) Set(key, value string) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Setting{Key: key, Value: value}).Error
	if err != nil {
		s.logger.Error("Failed to write setting", slog.String("key", key), slog.Any("error", err))
	}
	return err
}

// NativeLanguage returns the persisted native-language code, falling back to
// fallbackCode when the value is absent or not a plausible language code.
func (s *Store) NativeLanguage(fallbackCode string) string {
	value, err := s.Get(config.StorageKeyNativeLanguage)
	if err != nil || !model.ValidLanguageCode(value) {
		if err == nil {
			s.logger.Warn("Ignoring invalid stored language code", slog.String("value", value))
		}
		return fallbackCode
	}
	return value
}

func (s *Store) SetNativeLanguage(code string) error {
	return s.Set(config.StorageKeyNativeLanguage, code)
}

// DarkMode returns the persisted theme flag; absent or unparsable values
// mean light mode.
func (s *Store) DarkMode() bool {
	value, err := s.Get(config.StorageKeyDarkMode)
	if err != nil {
		return false
	}
	dark, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return dark
}

func (s *Store) SetDarkMode(dark bool) error {
	return s.Set(config.StorageKeyDarkMode, strconv.FormatBool(dark))
}
