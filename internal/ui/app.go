// internal/ui/app.go
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"vocab_tutor/internal/busy"
	"vocab_tutor/internal/client"
	"vocab_tutor/internal/config"
	"vocab_tutor/internal/flashcards"
	"vocab_tutor/internal/interpret"
	"vocab_tutor/internal/lang"
	"vocab_tutor/internal/model"
	"vocab_tutor/internal/notify"
	"vocab_tutor/internal/quiz"
	"vocab_tutor/internal/settings"
)

// App is the interactive terminal front end. It owns the screen view-models
// and renders notifications and the busy state as they change.
type App struct {
	flashcards *flashcards.ViewModel
	quiz       *quiz.ViewModel
	interpret  *interpret.ViewModel
	machine    *lang.Machine
	notifier   *notify.Notifier
	gate       *busy.Gate
	store      *settings.Store
	logger     *slog.Logger

	in  *bufio.Scanner
	out io.Writer
}

// NewApp wires the screens together. cards doubles as the language
// machine's flashcard cache, so the caller builds it first and hands it to
// both.
func NewApp(
	api client.API,
	cards *flashcards.ViewModel,
	machine *lang.Machine,
	notifier *notify.Notifier,
	gate *busy.Gate,
	store *settings.Store,
	logger *slog.Logger,
) *App {
	if logger == nil {
		logger = slog.Default()
	}
	app := &App{
		flashcards: cards,
		quiz:       quiz.NewViewModel(api, gate, logger),
		interpret:  interpret.NewViewModel(api, notifier, gate, logger),
		machine:    machine,
		notifier:   notifier,
		gate:       gate,
		store:      store,
		logger:     logger,
		in:         bufio.NewScanner(os.Stdin),
		out:        os.Stdout,
	}
	app.quiz.OnMilestone(func(streak int) {
		notifier.Info(fmt.Sprintf("Streak of %d! Keep going!", streak))
	})
	return app
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// renderNotification writes the current message line in the style the
// severity calls for.
func (a *App) renderNotification(note *notify.Notification) {
	if note == nil {
		return
	}
	var prefix string
	switch note.Severity {
	case notify.SeveritySuccess:
		prefix = "[ok]"
	case notify.SeverityError:
		prefix = "[error]"
	case notify.SeverityWarning:
		prefix = "[warn]"
	default:
		prefix = "[info]"
	}
	a.printf("%s %s\n", prefix, note.Message)
}

func (a *App) prompt(label string) (string, bool) {
	a.printf("%s", label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// Run is the main menu loop. It returns when the user quits or the context
// is canceled.
func (a *App) Run(ctx context.Context) error {
	a.notifier.OnChange(a.renderNotification)
	a.gate.OnChange(func(busy bool) {
		if busy {
			a.printf("...\n")
		}
	})

	if err := a.machine.LoadCatalog(ctx); err != nil {
		a.logger.Warn("Language catalog unavailable", slog.Any("error", err))
	}
	if err := a.flashcards.Load(ctx); err != nil {
		a.logger.Warn("Initial flashcard load failed", slog.Any("error", err))
	}

	a.printf("%s %s\n", config.AppName, config.AppVersion)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		a.printf("\nLanguage: %s (%s)\n", a.machine.Label(a.machine.Current()), a.machine.Current())
		a.printf("1) List flashcards  2) Add  3) Delete  4) Quiz  5) Interpret  6) Switch language  7) Toggle dark mode  q) Quit\n")
		choice, ok := a.prompt("> ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			a.listFlashcards(ctx)
		case "2":
			a.addFlashcard(ctx)
		case "3":
			a.deleteFlashcard(ctx)
		case "4":
			a.runQuiz(ctx)
		case "5":
			a.runInterpret(ctx)
		case "6":
			a.switchLanguage(ctx)
		case "7":
			a.toggleDarkMode()
		case "q", "Q":
			return nil
		default:
			a.printf("Unknown choice: %q\n", choice)
		}
	}
}

func (a *App) listFlashcards(ctx context.Context) {
	if err := a.flashcards.Load(ctx); err != nil {
		return
	}
	search, _ := a.prompt("Search (empty for all): ")
	langCode, _ := a.prompt("Language filter (empty for all): ")
	if langCode == "" {
		langCode = flashcards.FilterAll
	}

	filtered := flashcards.Filter(a.flashcards.Cards(), search, langCode)
	pageSize := config.Cfg.App.PageSize
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}

	page := 0
	for {
		cards := flashcards.Paginate(filtered, page, pageSize)
		if len(cards) == 0 {
			a.printf("No flashcards.\n")
			return
		}
		for _, card := range cards {
			a.printf("  #%d  %s [%s] -> %s [%s]\n", card.ID, card.SourceWord, card.SourceLanguage, card.TranslatedWord, card.NativeLanguage)
		}
		totalPages := (len(filtered) + pageSize - 1) / pageSize
		a.printf("Page %d/%d. n) next  p) prev  other) back\n", page+1, totalPages)
		choice, ok := a.prompt("> ")
		if !ok {
			return
		}
		switch choice {
		case "n":
			if page < totalPages-1 {
				page++
			}
		case "p":
			if page > 0 {
				page--
			}
		default:
			return
		}
	}
}

func (a *App) addFlashcard(ctx context.Context) {
	sourceWord, _ := a.prompt("Source word: ")
	sourceLanguage, _ := a.prompt("Source language code: ")
	translatedWord, _ := a.prompt("Translation: ")
	req := &model.CreateFlashcardRequest{
		SourceWord:     sourceWord,
		SourceLanguage: sourceLanguage,
		TranslatedWord: translatedWord,
		NativeLanguage: a.machine.Current(),
		IsManual:       true,
	}
	if _, err := a.flashcards.Create(ctx, req); err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			a.printf("Invalid input: %s\n", appErr.Message)
		}
	}
}

func (a *App) deleteFlashcard(ctx context.Context) {
	raw, ok := a.prompt("Flashcard id: ")
	if !ok {
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		a.printf("Not a number: %q\n", raw)
		return
	}
	a.flashcards.Delete(ctx, id)
}

func (a *App) runQuiz(ctx context.Context) {
	reverseRaw, _ := a.prompt("Reverse direction? (y/N): ")
	reverse := strings.EqualFold(reverseRaw, "y")

	for {
		err := a.quiz.LoadQuestion(ctx, reverse, a.machine.Current())
		if err != nil {
			if errors.Is(err, model.ErrNoQuestions) {
				a.printf("No flashcards to quiz on yet. Add some first.\n")
			}
			return
		}
		question := a.quiz.Question()
		a.printf("Translate %q (%s -> %s), streak %d\n", question.Word, question.From, question.To, a.quiz.Streak())
		answer, ok := a.prompt("Answer (empty to stop): ")
		if !ok || answer == "" {
			return
		}
		if _, err := a.quiz.SubmitAnswer(ctx, answer); err != nil {
			continue
		}
		a.printf("%s\n", a.quiz.Feedback())
	}
}

func (a *App) runInterpret(ctx context.Context) {
	a.printf("Enter lines like \"word - translation\", finish with an empty line:\n")
	var lines []string
	for {
		line, ok := a.prompt("")
		if !ok || line == "" {
			break
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return
	}
	if err := a.interpret.InterpretText(ctx, strings.Join(lines, "\n"), a.machine.Current()); err != nil {
		return
	}

	items := a.interpret.Items()
	for i, item := range items {
		a.printf("  %d) %s -> %s\n", i+1, item.SourceWord, item.TranslatedWord)
	}
	choice, _ := a.prompt("a) add all  number) add one  other) back: ")
	switch {
	case choice == "a":
		a.interpret.AddAll(ctx, a.machine.Current())
	case choice != "":
		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(items) {
			return
		}
		a.interpret.AddOne(ctx, n-1, a.machine.Current())
	}
}

func (a *App) switchLanguage(ctx context.Context) {
	if !a.machine.CanSwitch() {
		a.printf("Language switching is unavailable right now.\n")
		return
	}
	for _, langOption := range a.machine.Catalog() {
		marker := " "
		if langOption.Code == a.machine.Current() {
			marker = "*"
		}
		a.printf("  %s %s (%s)\n", marker, langOption.Label, langOption.Code)
	}
	code, ok := a.prompt("Target language code: ")
	if !ok || code == "" {
		return
	}

	result, err := a.machine.SwitchTo(ctx, code)
	if err != nil {
		if errors.Is(err, model.ErrSwitchInProgress) {
			a.printf("A language switch is already running.\n")
		} else if errors.Is(err, model.ErrInvalidInput) {
			a.printf("Unknown language code: %q\n", code)
		}
		return
	}
	if result == nil {
		a.printf("Already using %s.\n", a.machine.Label(code))
		return
	}
	a.notifier.Success(result.Meta.Summary())
}

func (a *App) toggleDarkMode() {
	dark := !a.store.DarkMode()
	if err := a.store.SetDarkMode(dark); err != nil {
		a.logger.Warn("Failed to persist dark mode", slog.Any("error", err))
		return
	}
	if dark {
		a.printf("Dark mode on.\n")
	} else {
		a.printf("Dark mode off.\n")
	}
}
