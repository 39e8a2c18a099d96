// internal/quiz/viewmodel_test.go
package quiz

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vocab_tutor/internal/busy"
	"vocab_tutor/internal/client/mocks"
	"vocab_tutor/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleQuestion() *model.QuizQuestion {
	return &model.QuizQuestion{FlashcardID: 7, Word: "perro", From: "es", To: "pl"}
}

func loadedViewModel(t *testing.T, mockAPI *mocks.API) *ViewModel {
	t.Helper()
	vm := NewViewModel(mockAPI, busy.NewGate(), testLogger())
	mockAPI.On("GetQuizQuestion", mock.Anything, false, "pl").Return(sampleQuestion(), nil).Once()
	require.NoError(t, vm.LoadQuestion(context.Background(), false, "pl"))
	return vm
}

func Test_ViewModel_LoadQuestion(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(mocks.API)
	mockAPI.On("GetQuizQuestion", ctx, false, "pl").Return(sampleQuestion(), nil).Once()

	vm := NewViewModel(mockAPI, busy.NewGate(), testLogger())
	require.NoError(t, vm.LoadQuestion(ctx, false, "pl"))

	assert.Equal(t, StateHasQuestion, vm.State())
	require.NotNil(t, vm.Question())
	assert.Equal(t, "perro", vm.Question().Word)
	assert.Empty(t, vm.Feedback())
}

func Test_ViewModel_LoadQuestion_EmptyPool(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(mocks.API)
	mockAPI.On("GetQuizQuestion", ctx, false, "pl").Return(nil, model.ErrNoQuestions).Once()

	vm := NewViewModel(mockAPI, busy.NewGate(), testLogger())
	err := vm.LoadQuestion(ctx, false, "pl")
	require.ErrorIs(t, err, model.ErrNoQuestions)
	assert.Equal(t, StateNoQuestion, vm.State())
	assert.Nil(t, vm.Question())
}

func Test_ViewModel_SubmitAnswer_WithoutQuestion(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(mocks.API)
	vm := NewViewModel(mockAPI, busy.NewGate(), testLogger())

	_, err := vm.SubmitAnswer(ctx, "pies")
	require.ErrorIs(t, err, model.ErrNoActiveQuestion)
	mockAPI.AssertNotCalled(t, "SubmitQuizAnswer", mock.Anything, mock.Anything)
}

func Test_ViewModel_SubmitAnswer_CorrectAndFeedback(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(mocks.API)
	vm := loadedViewModel(t, mockAPI)

	mockAPI.On("SubmitQuizAnswer", ctx, &model.QuizAnswerRequest{FlashcardID: 7, Answer: "pies"}).
		Return(&model.QuizAnswerResult{Correct: true, CorrectAnswer: "pies"}, nil).Once()

	result, err := vm.SubmitAnswer(ctx, "pies")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, StateAnswered, vm.State())
	assert.Equal(t, "Correct!", vm.Feedback())
	assert.Equal(t, 1, vm.Streak())
}

func Test_ViewModel_SubmitAnswer_IncorrectResetsStreak(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(mocks.API)
	vm := loadedViewModel(t, mockAPI)

	mockAPI.On("SubmitQuizAnswer", ctx, mock.Anything).
		Return(&model.QuizAnswerResult{Correct: true, CorrectAnswer: "pies"}, nil).Once()
	_, err := vm.SubmitAnswer(ctx, "pies")
	require.NoError(t, err)
	require.Equal(t, 1, vm.Streak())

	mockAPI.On("GetQuizQuestion", mock.Anything, false, "pl").Return(sampleQuestion(), nil).Once()
	require.NoError(t, vm.LoadQuestion(ctx, false, "pl"))

	mockAPI.On("SubmitQuizAnswer", ctx, mock.Anything).
		Return(&model.QuizAnswerResult{Correct: false, CorrectAnswer: "pies"}, nil).Once()
	_, err = vm.SubmitAnswer(ctx, "kot")
	require.NoError(t, err)

	assert.Equal(t, 0, vm.Streak())
	assert.Equal(t, "Incorrect. Correct answer: pies", vm.Feedback())
}

func Test_ViewModel_SubmitAnswer_DuplicateIssuesNoRequest(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(mocks.API)
	vm := loadedViewModel(t, mockAPI)

	mockAPI.On("SubmitQuizAnswer", ctx, mock.Anything).
		Return(&model.QuizAnswerResult{Correct: false, CorrectAnswer: "pies"}, nil).Once()
	_, err := vm.SubmitAnswer(ctx, "kot")
	require.NoError(t, err)

	// Same answer string again: rejected locally.
	_, err = vm.SubmitAnswer(ctx, "kot")
	require.ErrorIs(t, err, model.ErrDuplicateAnswer)
	mockAPI.AssertNumberOfCalls(t, "SubmitQuizAnswer", 1)

	// A different string is a real retry and goes through.
	mockAPI.On("SubmitQuizAnswer", ctx, mock.Anything).
		Return(&model.QuizAnswerResult{Correct: true, CorrectAnswer: "pies"}, nil).Once()
	result, err := vm.SubmitAnswer(ctx, "pies")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	mockAPI.AssertNumberOfCalls(t, "SubmitQuizAnswer", 2)
}

func Test_ViewModel_StreakMilestones(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(mocks.API)
	vm := NewViewModel(mockAPI, busy.NewGate(), testLogger())

	var milestones []int
	vm.OnMilestone(func(streak int) { milestones = append(milestones, streak) })

	for i := 0; i < 5; i++ {
		mockAPI.On("GetQuizQuestion", mock.Anything, false, "pl").Return(sampleQuestion(), nil).Once()
		require.NoError(t, vm.LoadQuestion(ctx, false, "pl"))
		mockAPI.On("SubmitQuizAnswer", ctx, mock.Anything).
			Return(&model.QuizAnswerResult{Correct: true, CorrectAnswer: "pies"}, nil).Once()
		_, err := vm.SubmitAnswer(ctx, "pies")
		require.NoError(t, err)
	}

	assert.Equal(t, 5, vm.Streak())
	assert.Equal(t, []int{3, 5}, milestones)
}

func Test_ViewModel_Generate(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(mocks.API)
	req := &model.GenerateQuizRequest{NumQuestions: 3}
	questions := []model.GeneratedQuestion{{Question: "Translate: perro", Answer: "pies", Type: "open"}}
	mockAPI.On("GenerateQuiz", ctx, req).Return(questions, nil).Once()

	vm := NewViewModel(mockAPI, busy.NewGate(), testLogger())
	got, err := vm.Generate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, questions, got)
}
