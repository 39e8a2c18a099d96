// internal/stub/handlers_test.go
package stub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocab_tutor/internal/model"
)

func newTestServer(t *testing.T) (*httptest.Server, *Store) {
	t.Helper()
	store := NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(store, logger))
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func seedCard(t *testing.T, srv *httptest.Server, word, translation string) model.Flashcard {
	t.Helper()
	resp := postJSON(t, srv.URL+"/api/flashcards", model.CreateFlashcardRequest{
		SourceWord: word, SourceLanguage: "es", TranslatedWord: translation, NativeLanguage: "pl",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[model.Flashcard](t, resp)
}

func Test_Stub_CreateAndListFlashcards(t *testing.T) {
	srv, _ := newTestServer(t)

	card := seedCard(t, srv, "hola", "cześć")
	assert.Equal(t, int64(1), card.ID)
	assert.NotNil(t, card.CreatedAt)

	resp, err := http.Get(srv.URL + "/api/flashcards")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cards := decodeBody[[]model.Flashcard](t, resp)
	require.Len(t, cards, 1)
	assert.Equal(t, "hola", cards[0].SourceWord)
}

func Test_Stub_CreateFlashcard_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/flashcards", map[string]string{"source_word": "hola"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[model.APIErrorBody](t, resp)
	assert.NotEmpty(t, body.Error)
}

func Test_Stub_CreateFlashcard_DuplicateConflicts(t *testing.T) {
	srv, _ := newTestServer(t)
	seedCard(t, srv, "hola", "cześć")

	resp := postJSON(t, srv.URL+"/api/flashcards", model.CreateFlashcardRequest{
		SourceWord: "  HOLA ", SourceLanguage: "es", TranslatedWord: "siema", NativeLanguage: "pl",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody[model.APIErrorBody](t, resp)
	assert.Equal(t, "Flashcard already exists", body.Error)
}

func Test_Stub_BulkCreateSkipsDuplicates(t *testing.T) {
	srv, _ := newTestServer(t)
	seedCard(t, srv, "hola", "cześć")

	resp := postJSON(t, srv.URL+"/api/flashcards/bulk", model.BulkCreateRequest{
		Flashcards: []model.CreateFlashcardRequest{
			{SourceWord: "hola", SourceLanguage: "es", TranslatedWord: "cześć", NativeLanguage: "pl"},
			{SourceWord: "perro", SourceLanguage: "es", TranslatedWord: "pies", NativeLanguage: "pl"},
			{SourceWord: "gato", SourceLanguage: "es", TranslatedWord: "kot", NativeLanguage: "pl"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	result := decodeBody[model.BulkCreateResult](t, resp)
	assert.Equal(t, 2, result.CreatedCount)
	assert.Equal(t, 1, result.SkippedCount)
}

func Test_Stub_DeleteFlashcard(t *testing.T) {
	srv, store := newTestServer(t)
	card := seedCard(t, srv, "hola", "cześć")

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/flashcards/%d", srv.URL, card.ID), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Empty(t, store.List())

	// Deleting again is a 404 with the expected body shape.
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp2.StatusCode)
	body := decodeBody[model.APIErrorBody](t, resp2)
	assert.Equal(t, "Flashcard not found", body.Error)
}

func Test_Stub_ListLanguages(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/languages")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[map[string][]model.Language](t, resp)
	require.Len(t, body["languages"], 6)
	assert.Equal(t, "pl", body["languages"][0].Code)
}

func Test_Stub_SwitchLanguage(t *testing.T) {
	srv, store := newTestServer(t)
	seedCard(t, srv, "hola", "cześć")
	seedCard(t, srv, "perro", "pies")
	// Third card is already in the target language.
	store.Create(&model.CreateFlashcardRequest{
		SourceWord: "gato", SourceLanguage: "es", TranslatedWord: "gato (es)", NativeLanguage: "es",
	})

	resp := postJSON(t, srv.URL+"/api/languages/switch", model.SwitchLanguageRequest{TargetLanguage: "es"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeBody[model.SwitchLanguageResult](t, resp)

	assert.Equal(t, 2, result.Meta.TranslatedCount)
	assert.Equal(t, 1, result.Meta.SkippedCount)
	assert.Equal(t, "Translated 2 flashcards to es (1 skipped).", result.Meta.Summary())
	require.Len(t, result.Flashcards, 3)
	for _, card := range result.Flashcards {
		assert.Equal(t, "es", card.NativeLanguage)
	}
}

func Test_Stub_SwitchLanguage_UnknownCode(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/languages/switch", model.SwitchLanguageRequest{TargetLanguage: "xx"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_Stub_Quiz_EmptyPoolIs404(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/quiz")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody[model.APIErrorBody](t, resp)
	assert.Equal(t, "No flashcards available", body.Error)
}

func Test_Stub_Quiz_AnswerGrading(t *testing.T) {
	srv, _ := newTestServer(t)
	card := seedCard(t, srv, "hola", "cześć")

	tests := []struct {
		name    string
		answer  string
		reverse bool
		correct bool
		want    string
	}{
		{name: "exact match", answer: "cześć", correct: true, want: "cześć"},
		{name: "case and whitespace ignored", answer: "  CZEŚĆ ", correct: true, want: "cześć"},
		{name: "wrong answer", answer: "pies", correct: false, want: "cześć"},
		{name: "reverse grades the source word", answer: "hola", reverse: true, correct: true, want: "hola"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/quiz", model.QuizAnswerRequest{
				FlashcardID: card.ID, Answer: tt.answer, Reverse: tt.reverse,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)
			result := decodeBody[model.QuizAnswerResult](t, resp)
			assert.Equal(t, tt.correct, result.Correct)
			assert.Equal(t, tt.want, result.CorrectAnswer)
		})
	}
}

func Test_Stub_Quiz_CountersTracked(t *testing.T) {
	srv, store := newTestServer(t)
	card := seedCard(t, srv, "hola", "cześć")

	postJSON(t, srv.URL+"/api/quiz", model.QuizAnswerRequest{FlashcardID: card.ID, Answer: "cześć"}).Body.Close()
	postJSON(t, srv.URL+"/api/quiz", model.QuizAnswerRequest{FlashcardID: card.ID, Answer: "pies"}).Body.Close()

	stored, err := store.Get(card.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CorrectCount)
	assert.Equal(t, 1, stored.IncorrectCount)
}

func Test_Stub_QuizGenerate(t *testing.T) {
	srv, _ := newTestServer(t)
	seedCard(t, srv, "hola", "cześć")
	seedCard(t, srv, "perro", "pies")
	seedCard(t, srv, "gato", "kot")

	resp := postJSON(t, srv.URL+"/api/quiz/generate", model.GenerateQuizRequest{NumQuestions: 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[map[string][]model.GeneratedQuestion](t, resp)
	require.Len(t, body["questions"], 2)
	assert.Equal(t, "Translate: hola", body["questions"][0].Question)
}

func Test_Stub_InterpretText(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/interpret", map[string]string{
		"text":            "hola - cześć\nperro - pies\nmalformed line without separator\n",
		"native_language": "pl",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[model.InterpretResponse](t, resp)
	require.Len(t, body.Items, 3)
	assert.Equal(t, "hola", body.Items[0].SourceWord)
	assert.Equal(t, "cześć", body.Items[0].TranslatedWord)
	assert.Equal(t, "pl", body.Items[0].NativeLanguage)
	assert.Empty(t, body.Items[2].TranslatedWord)
}

func Test_Stub_InterpretText_EmptyRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/interpret", map[string]string{"text": "   "})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_Stub_InterpretFile(t *testing.T) {
	srv, _ := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("files", "words.txt")
	require.NoError(t, err)
	part.Write([]byte("hola - cześć\nperro - pies"))
	require.NoError(t, mw.WriteField("native_language", "pl"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/interpret/file", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[model.InterpretResponse](t, resp)
	require.Len(t, body.Items, 2)
	assert.Equal(t, "perro", body.Items[1].SourceWord)
}

func Test_Stub_Health(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
