package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scry-flashcards/internal/api"
	apiMiddleware "github.com/phrazzld/scry-flashcards/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	// Create a router
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	// Health check endpoint, outside the session middleware
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	sessionMiddleware := apiMiddleware.NewSessionMiddleware(
		app.sessions,
		apiMiddleware.DefaultSessionCookie,
		app.config.Server.SecureCookies,
	)

	pageHandler := api.NewPageHandler(app.generator, app.logger)
	deckHandler := api.NewDeckHandler(app.generator, app.logger)
	flashcardHandler := api.NewFlashcardHandler(app.generator, app.logger)

	// Stateless JSON generation
	r.Post("/api/flashcards", flashcardHandler.GenerateFlashcards)

	// Session-bound routes
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware.Attach)

		// Browser viewer
		r.Get("/", pageHandler.Index)
		r.Post("/generate", pageHandler.Generate)
		r.Post("/next", pageHandler.Next)
		r.Post("/previous", pageHandler.Previous)

		// Deck API
		r.Route("/api/deck", func(r chi.Router) {
			r.Get("/", deckHandler.GetDeck)
			r.Post("/generate", deckHandler.GenerateDeck)
			r.Post("/next", deckHandler.Next)
			r.Post("/previous", deckHandler.Previous)
			r.Get("/export", deckHandler.Export)
		})
	})

	return r
}
