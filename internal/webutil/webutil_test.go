// internal/webutil/webutil_test.go
package webutil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocab_tutor/internal/model"
)

func Test_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantErr bool
		wantMsg string
	}{
		{
			name: "valid request passes",
			input: &model.CreateFlashcardRequest{
				SourceWord: "hola", SourceLanguage: "es", TranslatedWord: "cześć", NativeLanguage: "pl",
			},
		},
		{
			name:    "missing field reported by json tag",
			input:   &model.CreateFlashcardRequest{SourceWord: "hola", SourceLanguage: "es", TranslatedWord: "cześć"},
			wantErr: true,
			wantMsg: "native_language is required",
		},
		{
			name:    "empty bulk request reports min",
			input:   &model.BulkCreateRequest{Flashcards: []model.CreateFlashcardRequest{}},
			wantErr: true,
			wantMsg: "flashcards must have at least 1 entries",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, model.ErrInvalidInput)
			var appErr *model.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func Test_DecodeJSONBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid body", body: `{"name":"x"}`},
		{name: "unknown field rejected", body: `{"name":"x","extra":1}`, wantErr: true},
		{name: "malformed body rejected", body: `{"name":`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst payload
			err := DecodeJSONBody(r, &dst)
			if tt.wantErr {
				require.ErrorIs(t, err, model.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "x", dst.Name)
		})
	}
}

func Test_HandleError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "app error carries its message",
			err:        model.NewAppError("NOT_FOUND", "Flashcard not found", "", model.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   "Flashcard not found",
		},
		{
			name:       "bare sentinel gets generic message",
			err:        model.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid request",
		},
		{
			name:       "conflict",
			err:        model.ErrConflict,
			wantStatus: http.StatusConflict,
			wantBody:   "Resource already exists",
		},
		{
			name:       "unknown error is internal",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal server error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleError(w, logger, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			var body model.APIErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Error)
		})
	}
}
