// internal/model/language.go
package model

import "fmt"

// Language is one entry of the server-provided catalog. Immutable once
// fetched; the catalog is keyed by Code.
type Language struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// ValidLanguageCode reports whether s looks like an ISO-639-1-style code:
// two or three lowercase ASCII letters. Used to reject corrupted values read
// from client-side storage.
func ValidLanguageCode(s string) bool {
	if len(s) < 2 || len(s) > 3 {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// SwitchLanguageRequest is the payload for POST /api/languages/switch.
type SwitchLanguageRequest struct {
	TargetLanguage   string  `json:"target_language" validate:"required"`
	FlashcardIDs     []int64 `json:"flashcard_ids,omitempty"`
	ForceRetranslate bool    `json:"force_retranslate,omitempty"`
}

// SwitchMeta summarizes a bulk re-translation run.
type SwitchMeta struct {
	TargetLanguage   string `json:"target_language"`
	TranslatedCount  int    `json:"translated_count"`
	SkippedCount     int    `json:"skipped_count"`
	ForceRetranslate bool   `json:"force_retranslate"`
}

// Summary builds the user-facing message for a completed switch.
func (m SwitchMeta) Summary() string {
	return fmt.Sprintf("Translated %d flashcards to %s (%d skipped).",
		m.TranslatedCount, m.TargetLanguage, m.SkippedCount)
}

// SwitchLanguageResult is the response of a language switch: the full
// re-translated flashcard collection plus counters. Consumed once to refresh
// the local cache and compose a summary message.
type SwitchLanguageResult struct {
	Flashcards []Flashcard `json:"flashcards"`
	Meta       SwitchMeta  `json:"meta"`
}
