// internal/interpret/viewmodel.go
package interpret

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"vocab_tutor/internal/busy"
	"vocab_tutor/internal/model"
)

// API is the slice of the backend the interpret view-model needs.
type API interface {
	InterpretText(ctx context.Context, text, nativeLanguage string) ([]model.InterpretedItem, error)
	InterpretFiles(ctx context.Context, files []model.FileUpload, nativeLanguage string) ([]model.InterpretedItem, error)
	CreateFlashcard(ctx context.Context, req *model.CreateFlashcardRequest) (*model.Flashcard, error)
	CreateFlashcardsBulk(ctx context.Context, req *model.BulkCreateRequest) (*model.BulkCreateResult, error)
}

// Notifier is the message sink used for operation outcomes.
type Notifier interface {
	Success(message string)
	Warning(message string)
}

// fallbackSourceLanguage is used when an interpreted item carries no source
// language of its own.
const fallbackSourceLanguage = "es"

// ViewModel drives the interpret screen: submit raw text or files, hold the
// interpreted items, and add them to the collection one at a time or in
// bulk. Items are tracked by their index in the current result set; the set
// and both trackers reset on every new interpretation.
type ViewModel struct {
	api      API
	notifier Notifier
	gate     *busy.Gate
	logger   *slog.Logger

	mu      sync.Mutex
	items   []model.InterpretedItem
	pending map[int]struct{}
	added   map[int]struct{}
}

func NewViewModel(api API, notifier Notifier, gate *busy.Gate, logger *slog.Logger) *ViewModel {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewModel{
		api:      api,
		notifier: notifier,
		gate:     gate,
		logger:   logger,
		pending:  make(map[int]struct{}),
		added:    make(map[int]struct{}),
	}
}

// Items returns a copy of the current interpreted set.
func (vm *ViewModel) Items() []model.InterpretedItem {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]model.InterpretedItem, len(vm.items))
	copy(out, vm.items)
	return out
}

// Added reports whether the item at index has been added to the collection.
func (vm *ViewModel) Added(index int) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	_, ok := vm.added[index]
	return ok
}

// Pending reports whether an add for the item at index is in flight.
func (vm *ViewModel) Pending(index int) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	_, ok := vm.pending[index]
	return ok
}

func (vm *ViewModel) replaceItems(items []model.InterpretedItem) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.items = items
	vm.pending = make(map[int]struct{})
	vm.added = make(map[int]struct{})
}

// InterpretText sends raw text for interpretation and replaces the result
// set.
func (vm *ViewModel) InterpretText(ctx context.Context, text, nativeLanguage string) error {
	var items []model.InterpretedItem
	err := vm.gate.Do(func() error {
		var err error
		items, err = vm.api.InterpretText(ctx, text, nativeLanguage)
		return err
	})
	if err != nil {
		return err
	}
	vm.replaceItems(items)
	vm.notifier.Success(fmt.Sprintf("Interpreted %d words successfully", len(items)))
	return nil
}

// InterpretFiles sends uploaded files for interpretation and replaces the
// result set.
func (vm *ViewModel) InterpretFiles(ctx context.Context, files []model.FileUpload, nativeLanguage string) error {
	var items []model.InterpretedItem
	err := vm.gate.Do(func() error {
		var err error
		items, err = vm.api.InterpretFiles(ctx, files, nativeLanguage)
		return err
	})
	if err != nil {
		return err
	}
	vm.replaceItems(items)
	vm.notifier.Success(fmt.Sprintf("Interpreted %d words successfully from %d file(s)", len(items), len(files)))
	return nil
}

func requestForItem(item model.InterpretedItem, nativeLanguage string) *model.CreateFlashcardRequest {
	source := item.SourceLanguage
	if source == "" {
		source = fallbackSourceLanguage
	}
	return &model.CreateFlashcardRequest{
		SourceWord:                item.SourceWord,
		SourceLanguage:            source,
		TranslatedWord:            item.TranslatedWord,
		NativeLanguage:            nativeLanguage,
		ExampleSentence:           item.ExampleSentence,
		ExampleSentenceTranslated: item.ExampleSentenceTranslated,
	}
}

// AddOne adds the item at index as a single flashcard. Already-added and
// in-flight items are rejected with model.ErrConflict.
func (vm *ViewModel) AddOne(ctx context.Context, index int, nativeLanguage string) error {
	vm.mu.Lock()
	if index < 0 || index >= len(vm.items) {
		vm.mu.Unlock()
		return model.ErrInvalidInput
	}
	if _, ok := vm.added[index]; ok {
		vm.mu.Unlock()
		return model.ErrConflict
	}
	if _, ok := vm.pending[index]; ok {
		vm.mu.Unlock()
		return model.ErrConflict
	}
	vm.pending[index] = struct{}{}
	item := vm.items[index]
	vm.mu.Unlock()

	err := vm.gate.Do(func() error {
		_, err := vm.api.CreateFlashcard(ctx, requestForItem(item, nativeLanguage))
		return err
	})

	vm.mu.Lock()
	delete(vm.pending, index)
	if err == nil {
		vm.added[index] = struct{}{}
	}
	vm.mu.Unlock()

	if err != nil {
		return err
	}
	vm.notifier.Success("Flashcard added successfully")
	return nil
}

// AddAll adds every item that has not been added yet in one bulk request and
// reports the outcome in a single summary message. A backend without the
// bulk endpoint is detected by a 404 and handled by adding the same items
// one request at a time, continuing past individual failures.
func (vm *ViewModel) AddAll(ctx context.Context, nativeLanguage string) error {
	vm.mu.Lock()
	var indexes []int
	for i := range vm.items {
		if _, ok := vm.added[i]; ok {
			continue
		}
		if _, ok := vm.pending[i]; ok {
			continue
		}
		indexes = append(indexes, i)
		vm.pending[i] = struct{}{}
	}
	requests := make([]model.CreateFlashcardRequest, 0, len(indexes))
	for _, i := range indexes {
		requests = append(requests, *requestForItem(vm.items[i], nativeLanguage))
	}
	vm.mu.Unlock()

	if len(indexes) == 0 {
		vm.notifier.Success("Added 0 flashcards successfully")
		return nil
	}

	var result *model.BulkCreateResult
	err := vm.gate.Do(func() error {
		var err error
		result, err = vm.api.CreateFlashcardsBulk(ctx, &model.BulkCreateRequest{Flashcards: requests})
		return err
	})

	var remote *model.RemoteError
	if err != nil && errors.As(err, &remote) && remote.Status == http.StatusNotFound {
		vm.logger.Info("Bulk endpoint missing, adding flashcards sequentially")
		return vm.addAllSequential(ctx, indexes, requests)
	}

	vm.mu.Lock()
	for _, i := range indexes {
		delete(vm.pending, i)
		if err == nil {
			vm.added[i] = struct{}{}
		}
	}
	vm.mu.Unlock()

	if err != nil {
		return err
	}
	if result.SkippedCount > 0 {
		vm.notifier.Success(fmt.Sprintf("Added %d flashcards successfully (%d skipped)", result.CreatedCount, result.SkippedCount))
	} else {
		vm.notifier.Success(fmt.Sprintf("Added %d flashcards successfully", result.CreatedCount))
	}
	return nil
}

func (vm *ViewModel) addAllSequential(ctx context.Context, indexes []int, requests []model.CreateFlashcardRequest) error {
	createdCount := 0
	failedCount := 0
	for pos, i := range indexes {
		req := requests[pos]
		err := vm.gate.Do(func() error {
			_, err := vm.api.CreateFlashcard(ctx, &req)
			return err
		})
		vm.mu.Lock()
		delete(vm.pending, i)
		if err == nil {
			vm.added[i] = struct{}{}
			createdCount++
		} else {
			failedCount++
		}
		vm.mu.Unlock()
		if err != nil {
			vm.logger.Warn("Sequential add failed", slog.Int("index", i), slog.Any("error", err))
		}
	}
	if failedCount > 0 {
		vm.notifier.Warning(fmt.Sprintf("Added %d flashcards successfully (%d failed)", createdCount, failedCount))
	} else {
		vm.notifier.Success(fmt.Sprintf("Added %d flashcards successfully", createdCount))
	}
	return nil
}
