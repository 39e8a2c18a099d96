// internal/quiz/viewmodel.go
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"vocab_tutor/internal/busy"
	"vocab_tutor/internal/config"
	"vocab_tutor/internal/model"
)

// API is the slice of the backend the quiz view-model needs.
type API interface {
	GetQuizQuestion(ctx context.Context, reverse bool, targetLanguage string) (*model.QuizQuestion, error)
	SubmitQuizAnswer(ctx context.Context, req *model.QuizAnswerRequest) (*model.QuizAnswerResult, error)
	GenerateQuiz(ctx context.Context, req *model.GenerateQuizRequest) ([]model.GeneratedQuestion, error)
}

// State is the quiz screen's phase.
type State int

const (
	StateNoQuestion State = iota
	StateHasQuestion
	StateAnswered
)

func (s State) String() string {
	switch s {
	case StateNoQuestion:
		return "no_question"
	case StateHasQuestion:
		return "has_question"
	case StateAnswered:
		return "answered"
	default:
		return "unknown"
	}
}

// ViewModel drives the quiz screen: one current question, answer submission
// with duplicate protection, and a correct-streak counter with milestone
// callbacks.
type ViewModel struct {
	api    API
	gate   *busy.Gate
	logger *slog.Logger

	mu          sync.Mutex
	state       State
	question    *model.QuizQuestion
	result      *model.QuizAnswerResult
	lastAnswer  string
	streak      int
	onMilestone func(streak int)
	milestones  []int
}

func NewViewModel(api API, gate *busy.Gate, logger *slog.Logger) *ViewModel {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewModel{
		api:        api,
		gate:       gate,
		logger:     logger,
		milestones: config.StreakMilestones,
	}
}

// OnMilestone registers a callback fired when the streak reaches one of the
// celebration thresholds.
func (vm *ViewModel) OnMilestone(fn func(streak int)) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.onMilestone = fn
}

func (vm *ViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

func (vm *ViewModel) Question() *model.QuizQuestion {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.question
}

func (vm *ViewModel) Result() *model.QuizAnswerResult {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.result
}

func (vm *ViewModel) Streak() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.streak
}

// LoadQuestion fetches the next question. An empty pool clears the screen to
// StateNoQuestion and returns model.ErrNoQuestions; the caller renders that
// as information, not as a failure.
func (vm *ViewModel) LoadQuestion(ctx context.Context, reverse bool, targetLanguage string) error {
	var question *model.QuizQuestion
	err := vm.gate.Do(func() error {
		var err error
		question, err = vm.api.GetQuizQuestion(ctx, reverse, targetLanguage)
		return err
	})

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err != nil {
		if errors.Is(err, model.ErrNoQuestions) {
			vm.state = StateNoQuestion
			vm.question = nil
			vm.result = nil
		}
		return err
	}
	vm.state = StateHasQuestion
	vm.question = question
	vm.result = nil
	vm.lastAnswer = ""
	return nil
}

// SubmitAnswer grades answer against the current question. Submitting with
// no question returns model.ErrNoActiveQuestion. Re-submitting the same
// answer string after grading returns model.ErrDuplicateAnswer without
// issuing a request; a different string is a genuine retry and goes through.
func (vm *ViewModel) SubmitAnswer(ctx context.Context, answer string) (*model.QuizAnswerResult, error) {
	vm.mu.Lock()
	if vm.question == nil || vm.state == StateNoQuestion {
		vm.mu.Unlock()
		return nil, model.ErrNoActiveQuestion
	}
	if vm.state == StateAnswered && answer == vm.lastAnswer {
		vm.mu.Unlock()
		return nil, model.ErrDuplicateAnswer
	}
	req := &model.QuizAnswerRequest{
		FlashcardID: vm.question.FlashcardID,
		Answer:      answer,
		Reverse:     vm.question.Reverse,
	}
	vm.mu.Unlock()

	var result *model.QuizAnswerResult
	err := vm.gate.Do(func() error {
		var err error
		result, err = vm.api.SubmitQuizAnswer(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	vm.mu.Lock()
	vm.state = StateAnswered
	vm.result = result
	vm.lastAnswer = answer
	var fire func(int)
	var reached int
	if result.Correct {
		vm.streak++
		for _, m := range vm.milestones {
			if vm.streak == m && vm.onMilestone != nil {
				fire = vm.onMilestone
				reached = vm.streak
			}
		}
	} else {
		vm.streak = 0
	}
	vm.mu.Unlock()

	if fire != nil {
		fire(reached)
	}
	return result, nil
}

// Feedback renders the grading outcome for display. Empty before grading.
func (vm *ViewModel) Feedback() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.state != StateAnswered || vm.result == nil {
		return ""
	}
	if vm.result.Correct {
		return "Correct!"
	}
	return fmt.Sprintf("Incorrect. Correct answer: %s", vm.result.CorrectAnswer)
}

// Generate asks the backend for a batch of generated questions.
func (vm *ViewModel) Generate(ctx context.Context, req *model.GenerateQuizRequest) ([]model.GeneratedQuestion, error) {
	var questions []model.GeneratedQuestion
	err := vm.gate.Do(func() error {
		var err error
		questions, err = vm.api.GenerateQuiz(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}
