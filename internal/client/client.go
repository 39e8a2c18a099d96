// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"vocab_tutor/internal/model"

	"github.com/google/uuid"
)

// API is the full surface of the backend consumed by the view-models. Tests
// substitute the mocks package; production code uses *Client.
type API interface {
	ListFlashcards(ctx context.Context) ([]model.Flashcard, error)
	CreateFlashcard(ctx context.Context, req *model.CreateFlashcardRequest) (*model.Flashcard, error)
	CreateFlashcardsBulk(ctx context.Context, req *model.BulkCreateRequest) (*model.BulkCreateResult, error)
	DeleteFlashcard(ctx context.Context, id int64) error
	ListLanguages(ctx context.Context) ([]model.Language, error)
	SwitchLanguage(ctx context.Context, req *model.SwitchLanguageRequest) (*model.SwitchLanguageResult, error)
	GetQuizQuestion(ctx context.Context, reverse bool, targetLanguage string) (*model.QuizQuestion, error)
	SubmitQuizAnswer(ctx context.Context, req *model.QuizAnswerRequest) (*model.QuizAnswerResult, error)
	GenerateQuiz(ctx context.Context, req *model.GenerateQuizRequest) ([]model.GeneratedQuestion, error)
	InterpretText(ctx context.Context, text, nativeLanguage string) ([]model.InterpretedItem, error)
	InterpretFiles(ctx context.Context, files []model.FileUpload, nativeLanguage string) ([]model.InterpretedItem, error)
}

// ErrorHandler receives a human-readable message for every failing call.
// It fires exactly once per failure, before the error is returned to the
// call site. Call sites may still inspect the returned error for local
// control flow but must not show a second message for the same failure.
type ErrorHandler func(message string)

// Client is a thin typed HTTP client for the vocabulary backend. No retries
// are performed at this layer.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger

	mu      sync.Mutex
	onError ErrorHandler
}

func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		logger:  logger,
	}
}

// NewWithHTTPClient builds a client around an existing *http.Client, used by
// tests to point at an httptest server.
func NewWithHTTPClient(hc *http.Client, baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{http: hc, baseURL: baseURL, logger: logger}
}

// SetErrorHandler installs the process-wide failure sink. A nil handler
// disables reporting.
func (c *Client) SetErrorHandler(h ErrorHandler) {
	c.mu.Lock()
	c.onError = h
	c.mu.Unlock()
}

func (c *Client) report(re *model.RemoteError) {
	c.mu.Lock()
	h := c.onError
	c.mu.Unlock()
	if h != nil {
		h(re.UserMessage())
	}
}

type sendOpts struct {
	// quietNotFound maps a 404 to model.ErrNoQuestions without invoking the
	// error handler. The empty quiz pool is an expected state, not a failure.
	quietNotFound bool
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		buf = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// send executes req and decodes a 2xx JSON body into out (out may be nil).
// Every failure exit goes through exactly one report() call, except the
// quiet empty-quiz case.
func (c *Client) send(req *http.Request, out any, opts sendOpts) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		re := &model.RemoteError{Err: err}
		c.logger.Warn("Request failed", slog.String("method", req.Method), slog.String("path", req.URL.Path), slog.Any("error", err))
		c.report(re)
		return re
	}
	defer resp.Body.Close()

	c.logger.Debug("Request completed",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)))

	if resp.StatusCode >= 400 {
		var body model.APIErrorBody
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			body.Error = ""
		}
		if resp.StatusCode == http.StatusNotFound && opts.quietNotFound {
			return model.ErrNoQuestions
		}
		re := &model.RemoteError{Status: resp.StatusCode, Message: body.Error}
		c.report(re)
		return re
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			re := &model.RemoteError{Err: fmt.Errorf("decode response: %w", err)}
			c.report(re)
			return re
		}
	}
	return nil
}

func (c *Client) ListFlashcards(ctx context.Context) ([]model.Flashcard, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/api/flashcards", nil)
	if err != nil {
		return nil, err
	}
	var cards []model.Flashcard
	if err := c.send(req, &cards, sendOpts{}); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Client) CreateFlashcard(ctx context.Context, body *model.CreateFlashcardRequest) (*model.Flashcard, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/flashcards", body)
	if err != nil {
		return nil, err
	}
	var card model.Flashcard
	if err := c.send(req, &card, sendOpts{}); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) CreateFlashcardsBulk(ctx context.Context, body *model.BulkCreateRequest) (*model.BulkCreateResult, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/flashcards/bulk", body)
	if err != nil {
		return nil, err
	}
	var res model.BulkCreateResult
	if err := c.send(req, &res, sendOpts{}); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteFlashcard(ctx context.Context, id int64) error {
	req, err := c.newJSONRequest(ctx, http.MethodDelete, "/api/flashcards/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return err
	}
	return c.send(req, nil, sendOpts{})
}

func (c *Client) ListLanguages(ctx context.Context) ([]model.Language, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/api/languages", nil)
	if err != nil {
		return nil, err
	}
	var res struct {
		Languages []model.Language `json:"languages"`
	}
	if err := c.send(req, &res, sendOpts{}); err != nil {
		return nil, err
	}
	return res.Languages, nil
}

func (c *Client) SwitchLanguage(ctx context.Context, body *model.SwitchLanguageRequest) (*model.SwitchLanguageResult, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/languages/switch", body)
	if err != nil {
		return nil, err
	}
	var res model.SwitchLanguageResult
	if err := c.send(req, &res, sendOpts{}); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetQuizQuestion fetches the next question. The wire response carries the
// selected flashcard; the prompt and direction are derived here so the
// answer stays hidden behind the server-side check.
func (c *Client) GetQuizQuestion(ctx context.Context, reverse bool, targetLanguage string) (*model.QuizQuestion, error) {
	q := url.Values{}
	q.Set("reverse", strconv.FormatBool(reverse))
	if targetLanguage != "" {
		q.Set("target_language", targetLanguage)
	}
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/api/quiz?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var res struct {
		Flashcard model.Flashcard `json:"flashcard"`
	}
	if err := c.send(req, &res, sendOpts{quietNotFound: true}); err != nil {
		return nil, err
	}
	fc := res.Flashcard
	question := &model.QuizQuestion{
		FlashcardID: fc.ID,
		Word:        fc.SourceWord,
		From:        fc.SourceLanguage,
		To:          fc.NativeLanguage,
		Reverse:     reverse,
	}
	if reverse {
		question.Word = fc.TranslatedWord
		question.From = fc.NativeLanguage
		question.To = fc.SourceLanguage
	}
	return question, nil
}

func (c *Client) SubmitQuizAnswer(ctx context.Context, body *model.QuizAnswerRequest) (*model.QuizAnswerResult, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/quiz", body)
	if err != nil {
		return nil, err
	}
	var res model.QuizAnswerResult
	if err := c.send(req, &res, sendOpts{}); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GenerateQuiz(ctx context.Context, body *model.GenerateQuizRequest) ([]model.GeneratedQuestion, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/quiz/generate", body)
	if err != nil {
		return nil, err
	}
	var res struct {
		Questions []model.GeneratedQuestion `json:"questions"`
	}
	if err := c.send(req, &res, sendOpts{quietNotFound: true}); err != nil {
		return nil, err
	}
	return res.Questions, nil
}

func (c *Client) InterpretText(ctx context.Context, text, nativeLanguage string) ([]model.InterpretedItem, error) {
	payload := map[string]string{
		"text":            text,
		"native_language": nativeLanguage,
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/interpret", payload)
	if err != nil {
		return nil, err
	}
	var res model.InterpretResponse
	if err := c.send(req, &res, sendOpts{}); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *Client) InterpretFiles(ctx context.Context, files []model.FileUpload, nativeLanguage string) ([]model.InterpretedItem, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("create multipart field: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("write multipart field: %w", err)
		}
	}
	if err := mw.WriteField("native_language", nativeLanguage); err != nil {
		return nil, fmt.Errorf("write multipart field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/interpret/file", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.NewString())

	var res model.InterpretResponse
	if err := c.send(req, &res, sendOpts{}); err != nil {
		return nil, err
	}
	return res.Items, nil
}
