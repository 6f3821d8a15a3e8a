package api

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-flashcards/internal/api/shared"
	"github.com/phrazzld/scry-flashcards/internal/domain"
	"github.com/phrazzld/scry-flashcards/internal/export"
	"github.com/phrazzld/scry-flashcards/internal/generation"
	"github.com/phrazzld/scry-flashcards/internal/platform/logger"
	"github.com/phrazzld/scry-flashcards/internal/redact"
	"github.com/phrazzld/scry-flashcards/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// pageData is the view model for templates/index.html.
type pageData struct {
	Topic          string
	Notice         string
	Deck           DeckResponse
	Formats        []export.Format
	MaxTopicLength int
}

// PageHandler serves the browser flip-card viewer. Mutating actions follow
// post/redirect/get so a reload never repeats a generation.
type PageHandler struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(generator generation.Generator, logger *slog.Logger) *PageHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageHandler{generator: generator, logger: logger}
}

func (h *PageHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := shared.SessionFromContext(r.Context())
	if !ok {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Session unavailable", errNoSession)
		return nil, false
	}
	return sess, true
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Index handles GET / requests
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	topic, snap := sess.View()
	data := pageData{
		Topic:          topic,
		Notice:         sess.TakeNotice(),
		Deck:           snapshotToResponse(topic, snap, ""),
		Formats:        export.Formats(),
		MaxTopicLength: domain.MaxTopicLength,
	}

	// Render into a buffer so a template failure still yields a clean 500.
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to render page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to write page", "error", err)
	}
}

// Generate handles POST /generate form submissions
func (h *PageHandler) Generate(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, shared.MaxRequestBodyBytes)
	if err := r.ParseForm(); err != nil {
		sess.SetNotice("Invalid form submission")
		redirectHome(w, r)
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)

	topic, err := domain.NormalizeTopic(r.PostForm.Get("topic"))
	if err != nil {
		sess.SetNotice(GetSafeErrorMessage(err))
		redirectHome(w, r)
		return
	}

	if _, err := loadDeck(r.Context(), log, h.generator, sess, topic); err != nil {
		log.Error("flashcard generation failed",
			"topic", topic,
			"status", MapErrorToStatusCode(err),
			"error", redact.Error(err))
		sess.SetNotice(GetSafeErrorMessage(err))
	}

	redirectHome(w, r)
}

// Next handles POST /next requests
func (h *PageHandler) Next(w http.ResponseWriter, r *http.Request) {
	if sess, ok := h.session(w, r); ok {
		sess.Viewer.Next()
		redirectHome(w, r)
	}
}

// Previous handles POST /previous requests
func (h *PageHandler) Previous(w http.ResponseWriter, r *http.Request) {
	if sess, ok := h.session(w, r); ok {
		sess.Viewer.Previous()
		redirectHome(w, r)
	}
}
