// internal/lang/machine.go
package lang

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"vocab_tutor/internal/model"
)

// State of the machine: Idle holds a confirmed language; Switching covers
// the window where a bulk re-translation request is in flight.
type State int

const (
	StateIdle State = iota
	StateSwitching
)

func (s State) String() string {
	if s == StateSwitching {
		return "switching"
	}
	return "idle"
}

// SwitchAPI is the slice of the backend the machine needs.
type SwitchAPI interface {
	ListLanguages(ctx context.Context) ([]model.Language, error)
	SwitchLanguage(ctx context.Context, req *model.SwitchLanguageRequest) (*model.SwitchLanguageResult, error)
}

// SettingsStore persists the confirmed native-language code.
type SettingsStore interface {
	SetNativeLanguage(code string) error
}

// CardCache receives the re-translated collection after a successful switch.
// Implemented by the flashcard view-model.
type CardCache interface {
	ReplaceAll(cards []model.Flashcard)
}

// Machine owns the user's target language, the supported-language catalog,
// and the switch transition. The confirmed code only ever changes on a
// successful switch (or an explicit local SetLanguage); a failed switch
// leaves both the persisted setting and the in-memory code untouched, so the
// UI's displayed selection reverts by re-reading Current.
type Machine struct {
	api    SwitchAPI
	store  SettingsStore
	cache  CardCache
	logger *slog.Logger

	mu        sync.Mutex
	current   string
	target    string
	switching bool
	catalog   []model.Language
}

func NewMachine(api SwitchAPI, store SettingsStore, cache CardCache, initialCode string, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{
		api:     api,
		store:   store,
		cache:   cache,
		logger:  logger,
		current: initialCode,
	}
}

// Current returns the confirmed language code.
func (m *Machine) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// State returns Idle or Switching.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.switching {
		return StateSwitching
	}
	return StateIdle
}

// Target returns the code being switched to while in Switching, else "".
func (m *Machine) Target() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target
}

// LoadCatalog fetches the supported-language catalog once at startup. On
// failure the catalog stays empty and the switch control is disabled; the
// rest of the application keeps working.
func (m *Machine) LoadCatalog(ctx context.Context) error {
	languages, err := m.api.ListLanguages(ctx)
	if err != nil {
		m.logger.Warn("Failed to load language catalog, switching disabled", slog.Any("error", err))
		return err
	}
	m.mu.Lock()
	m.catalog = languages
	m.mu.Unlock()
	m.logger.Info("Language catalog loaded", slog.Int("count", len(languages)))
	return nil
}

// Catalog returns a copy of the supported languages.
func (m *Machine) Catalog() []model.Language {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Language, len(m.catalog))
	copy(out, m.catalog)
	return out
}

// CanSwitch reports whether the catalog is available.
func (m *Machine) CanSwitch() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.catalog) > 0
}

// Label resolves a code to its catalog label, falling back to the code.
func (m *Machine) Label(code string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.catalog {
		if l.Code == code {
			return l.Label
		}
	}
	return code
}

// SetLanguage changes the language locally, with no server round-trip. Used
// for the first-run default and pure preference changes. The code is
// persisted synchronously before the in-memory value moves.
func (m *Machine) SetLanguage(code string) error {
	if !model.ValidLanguageCode(code) {
		return fmt.Errorf("%w: language code %q", model.ErrInvalidInput, code)
	}
	m.mu.Lock()
	if m.switching {
		m.mu.Unlock()
		return model.ErrSwitchInProgress
	}
	m.mu.Unlock()

	if err := m.store.SetNativeLanguage(code); err != nil {
		return fmt.Errorf("persist language setting: %w", err)
	}
	m.mu.Lock()
	m.current = code
	m.mu.Unlock()
	return nil
}

// SwitchTo changes the target language through the server, re-translating
// the stored flashcards.
//
// Switching to the current code is a no-op: no request is issued and the
// (nil, nil) sentinel tells the caller that nothing changed, as opposed to a
// completed switch which always carries a result. A call made while another
// switch is in flight fails immediately with model.ErrSwitchInProgress,
// never queues: two overlapping bulk re-translations would race on the
// server and produce conflicting cache updates.
//
// On success the new code is persisted, the flashcard cache is replaced from
// the response, and the machine returns to Idle on the new code. On failure
// the machine returns to Idle on the old code with the setting untouched;
// the error has already been surfaced once through the API client's global
// handler, so callers revert their displayed selection without showing a
// second message.
func (m *Machine) SwitchTo(ctx context.Context, code string) (*model.SwitchLanguageResult, error) {
	m.mu.Lock()
	if m.switching {
		m.mu.Unlock()
		return nil, model.ErrSwitchInProgress
	}
	if code == m.current {
		m.mu.Unlock()
		return nil, nil
	}
	if len(m.catalog) > 0 && !m.inCatalog(code) {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: unsupported language code %q", model.ErrInvalidInput, code)
	}
	from := m.current
	m.switching = true
	m.target = code
	m.mu.Unlock()

	m.logger.Info("Switching target language", slog.String("from", from), slog.String("to", code))
	result, err := m.api.SwitchLanguage(ctx, &model.SwitchLanguageRequest{TargetLanguage: code})

	m.mu.Lock()
	m.switching = false
	m.target = ""
	if err != nil {
		m.mu.Unlock()
		m.logger.Warn("Language switch failed, keeping current language",
			slog.String("current", from), slog.String("target", code), slog.Any("error", err))
		return nil, err
	}

	// Persist before exposing the new code so a crash between the two leaves
	// storage and memory agreeing on the old value. A storage write failure
	// after the server already re-translated is logged but does not undo the
	// switch; the next successful write reconciles.
	if perr := m.store.SetNativeLanguage(code); perr != nil {
		m.logger.Error("Failed to persist language after switch", slog.Any("error", perr))
	}
	m.current = code
	m.mu.Unlock()

	m.cache.ReplaceAll(result.Flashcards)
	m.logger.Info("Language switch completed",
		slog.String("language", code),
		slog.Int("translated", result.Meta.TranslatedCount),
		slog.Int("skipped", result.Meta.SkippedCount))
	return result, nil
}

func (m *Machine) inCatalog(code string) bool {
	for _, l := range m.catalog {
		if l.Code == code {
			return true
		}
	}
	return false
}
