// internal/flashcards/viewmodel.go
package flashcards

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"vocab_tutor/internal/busy"
	"vocab_tutor/internal/model"
	"vocab_tutor/internal/webutil"
)

// API is the slice of the backend the list view-model needs.
type API interface {
	ListFlashcards(ctx context.Context) ([]model.Flashcard, error)
	CreateFlashcard(ctx context.Context, req *model.CreateFlashcardRequest) (*model.Flashcard, error)
	DeleteFlashcard(ctx context.Context, id int64) error
}

// Notifier is the message sink used for operation outcomes.
type Notifier interface {
	Success(message string)
}

// FilterAll matches every language in Filter.
const FilterAll = "all"

// ViewModel holds the client-side flashcard cache and drives the list
// screen: full re-fetch, pure filtering/pagination, create and delete with
// refresh. Failures of remote calls are surfaced once by the API client's
// global handler; this layer only adds success messages.
type ViewModel struct {
	api      API
	notifier Notifier
	gate     *busy.Gate
	logger   *slog.Logger

	mu    sync.Mutex
	cards []model.Flashcard
	// gen guards against a stale list response overwriting newer state:
	// every Load and every cache replacement bumps it, and a response is
	// applied only if its token is still the latest.
	gen uint64
}

func NewViewModel(api API, notifier Notifier, gate *busy.Gate, logger *slog.Logger) *ViewModel {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewModel{api: api, notifier: notifier, gate: gate, logger: logger}
}

// Load fetches the full collection and replaces the cache. No incremental
// merge; collections stay small enough that a full replace is simpler and
// always consistent.
func (vm *ViewModel) Load(ctx context.Context) error {
	vm.mu.Lock()
	vm.gen++
	token := vm.gen
	vm.mu.Unlock()

	var cards []model.Flashcard
	err := vm.gate.Do(func() error {
		var err error
		cards, err = vm.api.ListFlashcards(ctx)
		return err
	})
	if err != nil {
		return err
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if token != vm.gen {
		vm.logger.Debug("Discarding stale flashcard list response")
		return nil
	}
	vm.cards = cards
	return nil
}

// Cards returns a copy of the cached collection.
func (vm *ViewModel) Cards() []model.Flashcard {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]model.Flashcard, len(vm.cards))
	copy(out, vm.cards)
	return out
}

// ReplaceAll swaps the cache wholesale. Implements the language machine's
// cache contract; also invalidates any in-flight Load.
func (vm *ViewModel) ReplaceAll(cards []model.Flashcard) {
	vm.mu.Lock()
	vm.gen++
	vm.cards = cards
	vm.mu.Unlock()
}

// Create validates req, creates the card, shows a success message and
// refreshes the cache.
func (vm *ViewModel) Create(ctx context.Context, req *model.CreateFlashcardRequest) (*model.Flashcard, error) {
	if err := webutil.Validate(req); err != nil {
		return nil, err
	}
	var card *model.Flashcard
	err := vm.gate.Do(func() error {
		var err error
		card, err = vm.api.CreateFlashcard(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	vm.notifier.Success("Flashcard added successfully")
	if err := vm.Load(ctx); err != nil {
		vm.logger.Warn("Refresh after create failed", slog.Any("error", err))
	}
	return card, nil
}

// Delete removes the card, shows a success message and refreshes the cache.
func (vm *ViewModel) Delete(ctx context.Context, id int64) error {
	err := vm.gate.Do(func() error {
		return vm.api.DeleteFlashcard(ctx, id)
	})
	if err != nil {
		return err
	}
	vm.notifier.Success("Flashcard deleted successfully")
	if err := vm.Load(ctx); err != nil {
		vm.logger.Warn("Refresh after delete failed", slog.Any("error", err))
	}
	return nil
}

// Filter applies the list screen's predicate: a card matches when search is
// empty or a case-insensitive substring of the source or translated word,
// and when languageCode is FilterAll or equals the card's source or native
// language. Pure and synchronous over the given slice.
func Filter(cards []model.Flashcard, search, languageCode string) []model.Flashcard {
	needle := strings.ToLower(search)
	out := make([]model.Flashcard, 0, len(cards))
	for _, card := range cards {
		matchesSearch := needle == "" ||
			strings.Contains(strings.ToLower(card.SourceWord), needle) ||
			strings.Contains(strings.ToLower(card.TranslatedWord), needle)
		matchesLanguage := languageCode == FilterAll ||
			card.SourceLanguage == languageCode ||
			card.NativeLanguage == languageCode
		if matchesSearch && matchesLanguage {
			out = append(out, card)
		}
	}
	return out
}

// Paginate slices cards for the zero-based page. Out-of-range pages yield an
// empty slice.
func Paginate(cards []model.Flashcard, page, pageSize int) []model.Flashcard {
	if page < 0 || pageSize <= 0 {
		return []model.Flashcard{}
	}
	start := page * pageSize
	if start >= len(cards) {
		return []model.Flashcard{}
	}
	end := start + pageSize
	if end > len(cards) {
		end = len(cards)
	}
	return cards[start:end]
}

// AvailableLanguages returns the distinct language codes present in cards,
// sorted, for the filter dropdown.
func AvailableLanguages(cards []model.Flashcard) []string {
	seen := make(map[string]struct{})
	for _, card := range cards {
		if card.SourceLanguage != "" {
			seen[card.SourceLanguage] = struct{}{}
		}
		if card.NativeLanguage != "" {
			seen[card.NativeLanguage] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for code := range seen {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
