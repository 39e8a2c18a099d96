// internal/stub/store.go
package stub

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"vocab_tutor/internal/model"
)

// Catalog is the fixed set of languages the stub backend offers.
var Catalog = []model.Language{
	{Code: "pl", Label: "Polish"},
	{Code: "en", Label: "English"},
	{Code: "es", Label: "Spanish"},
	{Code: "de", Label: "German"},
	{Code: "fr", Label: "French"},
	{Code: "nl", Label: "Dutch"},
}

// Store is the in-memory flashcard collection backing the development
// server. It mimics the real backend's behavior closely enough for the
// client to be exercised end to end without a database.
type Store struct {
	mu     sync.Mutex
	nextID int64
	cards  []model.Flashcard
	rng    *rand.Rand
}

func NewStore() *Store {
	return &Store{
		nextID: 1,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func dedupeKey(sourceWord, sourceLanguage string) string {
	return strings.ToLower(strings.TrimSpace(sourceWord)) + "|" + strings.ToLower(strings.TrimSpace(sourceLanguage))
}

// List returns the cards sorted by id.
func (s *Store) List() []model.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Flashcard, len(s.cards))
	copy(out, s.cards)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create inserts a card. A card with the same normalized source word and
// source language already present is a conflict.
func (s *Store) Create(req *model.CreateFlashcardRequest) (*model.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := dedupeKey(req.SourceWord, req.SourceLanguage)
	for _, c := range s.cards {
		if dedupeKey(c.SourceWord, c.SourceLanguage) == key {
			return nil, model.ErrConflict
		}
	}
	now := time.Now().UTC()
	card := model.Flashcard{
		ID:                        s.nextID,
		SourceWord:                strings.TrimSpace(req.SourceWord),
		SourceLanguage:            req.SourceLanguage,
		TranslatedWord:            strings.TrimSpace(req.TranslatedWord),
		NativeLanguage:            req.NativeLanguage,
		ExampleSentence:           req.ExampleSentence,
		ExampleSentenceTranslated: req.ExampleSentenceTranslated,
		IsManual:                  req.IsManual,
		CreatedAt:                 &now,
	}
	s.nextID++
	s.cards = append(s.cards, card)
	return &card, nil
}

// CreateBulk inserts every card, counting duplicates as skipped instead of
// failing the batch.
func (s *Store) CreateBulk(reqs []model.CreateFlashcardRequest) model.BulkCreateResult {
	var result model.BulkCreateResult
	for i := range reqs {
		if _, err := s.Create(&reqs[i]); err != nil {
			result.SkippedCount++
			continue
		}
		result.CreatedCount++
	}
	return result
}

// Delete removes the card with the given id.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.cards {
		if c.ID == id {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

// Get returns the card with the given id.
func (s *Store) Get(id int64) (*model.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == id {
			card := s.cards[i]
			return &card, nil
		}
	}
	return nil, model.ErrNotFound
}

// Random picks a random card, optionally restricted to a native language.
func (s *Store) Random(nativeLanguage string) (*model.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var pool []int
	for i := range s.cards {
		if nativeLanguage == "" || s.cards[i].NativeLanguage == nativeLanguage {
			pool = append(pool, i)
		}
	}
	if len(pool) == 0 {
		return nil, model.ErrNotFound
	}
	card := s.cards[pool[s.rng.Intn(len(pool))]]
	return &card, nil
}

// RecordAnswer bumps the card's correct or incorrect counter.
func (s *Store) RecordAnswer(id int64, correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == id {
			if correct {
				s.cards[i].CorrectCount++
			} else {
				s.cards[i].IncorrectCount++
			}
			return
		}
	}
}

// SwitchLanguage rewrites every card's native side to target. Cards already
// in the target language are skipped unless force is set. The stub has no
// translator, so the translated word is tagged with the target code to make
// the rewrite visible.
func (s *Store) SwitchLanguage(target string, ids []int64, force bool) ([]model.Flashcard, model.SwitchMeta) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := func(id int64) bool {
		if len(ids) == 0 {
			return true
		}
		for _, want := range ids {
			if want == id {
				return true
			}
		}
		return false
	}

	meta := model.SwitchMeta{TargetLanguage: target, ForceRetranslate: force}
	for i := range s.cards {
		if !wanted(s.cards[i].ID) {
			continue
		}
		if s.cards[i].NativeLanguage == target && !force {
			meta.SkippedCount++
			continue
		}
		s.cards[i].NativeLanguage = target
		s.cards[i].TranslatedWord = s.cards[i].SourceWord + " (" + target + ")"
		meta.TranslatedCount++
	}

	out := make([]model.Flashcard, len(s.cards))
	copy(out, s.cards)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, meta
}
