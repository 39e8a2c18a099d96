// internal/stub/routes.go
package stub

import (
	"log/slog"
	"net/http"
	"time"

	appmiddleware "vocab_tutor/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// NewRouter assembles the development backend with the same middleware
// stack a real deployment would carry.
func NewRouter(store *Store, logger *slog.Logger) chi.Router {
	h := NewHandler(store, logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(appmiddleware.NewStructuredLogger(logger))
	r.Use(appmiddleware.RequestBodyLogger(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Route("/flashcards", func(r chi.Router) {
			r.Get("/", h.ListFlashcards)
			r.Post("/", h.PostFlashcard)
			r.Post("/bulk", h.PostFlashcardsBulk)
			r.Delete("/{id}", h.DeleteFlashcard)
		})
		r.Route("/languages", func(r chi.Router) {
			r.Get("/", h.ListLanguages)
			r.Post("/switch", h.SwitchLanguage)
		})
		r.Route("/quiz", func(r chi.Router) {
			r.Get("/", h.GetQuiz)
			r.Post("/", h.PostQuizAnswer)
			r.Post("/generate", h.PostQuizGenerate)
		})
		r.Post("/interpret", h.PostInterpret)
		r.Post("/interpret/file", h.PostInterpretFile)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
