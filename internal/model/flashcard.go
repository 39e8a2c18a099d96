// internal/model/flashcard.go
package model

import "time"

// Flashcard is a single vocabulary card. The server owns the record; the
// client holds a read-through cache that is replaced wholesale after
// create/delete/switch operations.
type Flashcard struct {
	ID                        int64      `json:"id"`
	SourceWord                string     `json:"source_word"`
	SourceLanguage            string     `json:"source_language"`
	TranslatedWord            string     `json:"translated_word"`
	NativeLanguage            string     `json:"native_language"`
	ExampleSentence           string     `json:"example_sentence,omitempty"`
	ExampleSentenceTranslated string     `json:"example_sentence_translated,omitempty"`
	DifficultyLevel           string     `json:"difficulty_level,omitempty"`
	IsManual                  bool       `json:"is_manual"`
	CorrectCount              int        `json:"correct_count"`
	IncorrectCount            int        `json:"incorrect_count"`
	CreatedAt                 *time.Time `json:"created_at,omitempty"`
}

// CreateFlashcardRequest is the payload for POST /api/flashcards.
type CreateFlashcardRequest struct {
	SourceWord                string `json:"source_word" validate:"required"`
	TranslatedWord            string `json:"translated_word" validate:"required"`
	SourceLanguage            string `json:"source_language" validate:"required"`
	NativeLanguage            string `json:"native_language" validate:"required"`
	ExampleSentence           string `json:"example_sentence,omitempty"`
	ExampleSentenceTranslated string `json:"example_sentence_translated,omitempty"`
	IsManual                  bool   `json:"is_manual"`
}

// BulkCreateRequest is the payload for POST /api/flashcards/bulk.
type BulkCreateRequest struct {
	Flashcards []CreateFlashcardRequest `json:"flashcards" validate:"required,min=1,dive"`
}

// BulkCreateResult reports how many cards the server created and how many it
// skipped as duplicates.
type BulkCreateResult struct {
	CreatedCount int `json:"created_count"`
	SkippedCount int `json:"skipped_count"`
}
