// internal/client/mocks/api.go
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vocab_tutor/internal/model"
)

// API is a testify mock of client.API.
type API struct {
	mock.Mock
}

func (m *API) ListFlashcards(ctx context.Context) ([]model.Flashcard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Flashcard), args.Error(1)
}

func (m *API) CreateFlashcard(ctx context.Context, req *model.CreateFlashcardRequest) (*model.Flashcard, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Flashcard), args.Error(1)
}

func (m *API) CreateFlashcardsBulk(ctx context.Context, req *model.BulkCreateRequest) (*model.BulkCreateResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BulkCreateResult), args.Error(1)
}

func (m *API) DeleteFlashcard(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *API) ListLanguages(ctx context.Context) ([]model.Language, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Language), args.Error(1)
}

func (m *API) SwitchLanguage(ctx context.Context, req *model.SwitchLanguageRequest) (*model.SwitchLanguageResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SwitchLanguageResult), args.Error(1)
}

func (m *API) GetQuizQuestion(ctx context.Context, reverse bool, targetLanguage string) (*model.QuizQuestion, error) {
	args := m.Called(ctx, reverse, targetLanguage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuizQuestion), args.Error(1)
}

func (m *API) SubmitQuizAnswer(ctx context.Context, req *model.QuizAnswerRequest) (*model.QuizAnswerResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuizAnswerResult), args.Error(1)
}

func (m *API) GenerateQuiz(ctx context.Context, req *model.GenerateQuizRequest) ([]model.GeneratedQuestion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GeneratedQuestion), args.Error(1)
}

func (m *API) InterpretText(ctx context.Context, text, nativeLanguage string) ([]model.InterpretedItem, error) {
	args := m.Called(ctx, text, nativeLanguage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InterpretedItem), args.Error(1)
}

func (m *API) InterpretFiles(ctx context.Context, files []model.FileUpload, nativeLanguage string) ([]model.InterpretedItem, error) {
	args := m.Called(ctx, files, nativeLanguage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InterpretedItem), args.Error(1)
}
