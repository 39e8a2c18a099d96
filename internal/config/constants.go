// internal/config/constants.go
package config

// Application info
const (
	AppName    = "VocabTutor"
	AppVersion = "0.3.0"
)

// Default settings
const (
	DefaultAPIBaseURL     = "http://localhost:5000"
	DefaultAPITimeoutSecs = 15
	DefaultStoragePath    = "vocab_tutor.db"
	DefaultLogLevel       = "info"
	DefaultNativeLanguage = "pl"
	DefaultPageSize       = 10
	DefaultMinPerPage     = 5
	DefaultMaxPerPage     = 50
	DefaultNotifySeconds  = 6
	DefaultStubPort       = ":5000"
)

// Client-side storage keys. StorageKeyNativeLanguage matches the key the web
// front end used in localStorage so migrated settings stay readable.
const (
	StorageKeyNativeLanguage = "nativeLanguage"
	StorageKeyDarkMode       = "darkMode"
)

// StreakMilestones are the quiz streak values that trigger a celebration.
var StreakMilestones = []int{3, 5, 10}
