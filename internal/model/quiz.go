// internal/model/quiz.go
package model

// QuizQuestion is the one live question. Word is the prompt shown to the
// user; From/To describe the translation direction already adjusted for
// reverse mode. Superseded whenever a new question is loaded or an answer is
// submitted.
type QuizQuestion struct {
	FlashcardID int64  `json:"flashcard_id"`
	Word        string `json:"word"`
	From        string `json:"from_language"`
	To          string `json:"to_language"`
	Reverse     bool   `json:"reverse"`
}

// QuizAnswerRequest is the payload for POST /api/quiz.
type QuizAnswerRequest struct {
	FlashcardID int64  `json:"flashcard_id" validate:"required"`
	Answer      string `json:"answer" validate:"required"`
	Reverse     bool   `json:"reverse,omitempty"`
}

// QuizAnswerResult is the server's verdict. Correctness is determined
// server-side; the client only records the flag.
type QuizAnswerResult struct {
	Correct            bool       `json:"correct"`
	CorrectAnswer      string     `json:"correctAnswer"`
	Hint               string     `json:"hint,omitempty"`
	ExampleSentence    string     `json:"example_sentence,omitempty"`
	ExampleTranslation string     `json:"example_translation,omitempty"`
	Flashcard          *Flashcard `json:"flashcard,omitempty"`
}

// GenerateQuizRequest is the payload for POST /api/quiz/generate.
type GenerateQuizRequest struct {
	NumQuestions    int    `json:"num_questions" validate:"required,min=1"`
	SourceLanguage  string `json:"source_language,omitempty"`
	DifficultyLevel string `json:"difficulty_level,omitempty"`
}

// GeneratedQuestion is one AI-generated quiz entry.
type GeneratedQuestion struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
}
