// internal/stub/handlers.go
package stub

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"vocab_tutor/internal/model"
	"vocab_tutor/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// Handler serves the development backend's HTTP surface on top of Store.
type Handler struct {
	store  *Store
	logger *slog.Logger
}

func NewHandler(store *Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, logger: logger}
}

func (h *Handler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	webutil.RespondWithJSON(w, http.StatusOK, h.store.List(), h.logger)
}

func (h *Handler) PostFlashcard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostFlashcard"))

	var req model.CreateFlashcardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Request body is malformed", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.Validate(&req); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	card, err := h.store.Create(&req)
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("DUPLICATE_FLASHCARD", "Flashcard already exists", "source_word", err))
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, card, logger)
}

func (h *Handler) PostFlashcardsBulk(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostFlashcardsBulk"))

	var req model.BulkCreateRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Request body is malformed", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.Validate(&req); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	result := h.store.CreateBulk(req.Flashcards)
	webutil.RespondWithJSON(w, http.StatusCreated, result, logger)
}

func (h *Handler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteFlashcard"))

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_ID", "Flashcard id must be a number", "id", model.ErrInvalidInput))
		return
	}
	if err := h.store.Delete(id); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("NOT_FOUND", "Flashcard not found", "", err))
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Flashcard deleted successfully"}, logger)
}

func (h *Handler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	webutil.RespondWithJSON(w, http.StatusOK, map[string][]model.Language{"languages": Catalog}, h.logger)
}

func (h *Handler) SwitchLanguage(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SwitchLanguage"))

	var req model.SwitchLanguageRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Request body is malformed", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.Validate(&req); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	known := false
	for _, lang := range Catalog {
		if lang.Code == req.TargetLanguage {
			known = true
			break
		}
	}
	if !known {
		webutil.HandleError(w, logger, model.NewAppError("UNKNOWN_LANGUAGE", "Unknown target language", "target_language", model.ErrInvalidInput))
		return
	}

	cards, meta := h.store.SwitchLanguage(req.TargetLanguage, req.FlashcardIDs, req.ForceRetranslate)
	logger.Info("Language switched",
		slog.String("target_language", meta.TargetLanguage),
		slog.Int("translated", meta.TranslatedCount),
		slog.Int("skipped", meta.SkippedCount),
	)
	webutil.RespondWithJSON(w, http.StatusOK, model.SwitchLanguageResult{Flashcards: cards, Meta: meta}, logger)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetQuiz"))

	card, err := h.store.Random(r.URL.Query().Get("target_language"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("NO_FLASHCARDS", "No flashcards available", "", model.ErrNotFound))
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]*model.Flashcard{"flashcard": card}, logger)
}

// normalizeAnswer strips surrounding whitespace and case before comparing.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (h *Handler) PostQuizAnswer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostQuizAnswer"))

	var req model.QuizAnswerRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Request body is malformed", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.Validate(&req); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	card, err := h.store.Get(req.FlashcardID)
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("NOT_FOUND", "Flashcard not found", "flashcard_id", err))
		return
	}

	expected := card.TranslatedWord
	if req.Reverse {
		expected = card.SourceWord
	}
	correct := normalizeAnswer(req.Answer) == normalizeAnswer(expected)
	h.store.RecordAnswer(card.ID, correct)

	result := model.QuizAnswerResult{
		Correct:            correct,
		CorrectAnswer:      expected,
		ExampleSentence:    card.ExampleSentence,
		ExampleTranslation: card.ExampleSentenceTranslated,
		Flashcard:          card,
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

func (h *Handler) PostQuizGenerate(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostQuizGenerate"))

	var req model.GenerateQuizRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Request body is malformed", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.Validate(&req); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	cards := h.store.List()
	var questions []model.GeneratedQuestion
	for _, card := range cards {
		if req.SourceLanguage != "" && card.SourceLanguage != req.SourceLanguage {
			continue
		}
		questions = append(questions, model.GeneratedQuestion{
			Question: "Translate: " + card.SourceWord,
			Answer:   card.TranslatedWord,
			Type:     "open",
		})
		if len(questions) == req.NumQuestions {
			break
		}
	}
	if len(questions) == 0 {
		webutil.HandleError(w, logger, model.NewAppError("NO_FLASHCARDS", "No flashcards available", "", model.ErrNotFound))
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string][]model.GeneratedQuestion{"questions": questions}, logger)
}

// interpretLines turns "word - translation" lines into interpreted items.
// Lines without a separator become items with an empty translation.
func interpretLines(text, nativeLanguage string) []model.InterpretedItem {
	items := []model.InterpretedItem{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		word, translation := line, ""
		if before, after, found := strings.Cut(line, " - "); found {
			word = strings.TrimSpace(before)
			translation = strings.TrimSpace(after)
		}
		items = append(items, model.InterpretedItem{
			SourceWord:     word,
			TranslatedWord: translation,
			NativeLanguage: nativeLanguage,
		})
	}
	return items
}

func (h *Handler) PostInterpret(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostInterpret"))

	var req struct {
		Text           string `json:"text"`
		NativeLanguage string `json:"native_language"`
	}
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "Request body is malformed", "", model.ErrInvalidInput))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		webutil.HandleError(w, logger, model.NewAppError("EMPTY_TEXT", "Text is required", "text", model.ErrInvalidInput))
		return
	}

	items := interpretLines(req.Text, req.NativeLanguage)
	webutil.RespondWithJSON(w, http.StatusOK, model.InterpretResponse{Items: items}, logger)
}

func (h *Handler) PostInterpretFile(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostInterpretFile"))

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		logger.Warn("Failed to parse multipart form", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_FORM", "Multipart form is malformed", "", model.ErrInvalidInput))
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		webutil.HandleError(w, logger, model.NewAppError("NO_FILES", "At least one file is required", "files", model.ErrInvalidInput))
		return
	}
	nativeLanguage := r.FormValue("native_language")

	var items []model.InterpretedItem
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			webutil.HandleError(w, logger, model.NewAppError("UNREADABLE_FILE", "Could not read uploaded file", "files", model.ErrInvalidInput))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			webutil.HandleError(w, logger, model.NewAppError("UNREADABLE_FILE", "Could not read uploaded file", "files", model.ErrInvalidInput))
			return
		}
		items = append(items, interpretLines(string(data), nativeLanguage)...)
	}
	if items == nil {
		items = []model.InterpretedItem{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.InterpretResponse{Items: items}, logger)
}
