package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/phrazzld/scry-flashcards/internal/api/shared"
	"github.com/phrazzld/scry-flashcards/internal/export"
	"github.com/phrazzld/scry-flashcards/internal/generation"
	"github.com/phrazzld/scry-flashcards/internal/platform/logger"
	"github.com/phrazzld/scry-flashcards/internal/session"
	"github.com/phrazzld/scry-flashcards/internal/viewer"
)

// DeckHandler serves the JSON API over the caller's session viewer.
type DeckHandler struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(generator generation.Generator, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckHandler{
		generator: generator,
		logger:    logger,
	}
}

func (h *DeckHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := shared.SessionFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, errNoSession, "Session unavailable")
		return nil, false
	}
	return sess, true
}

func (h *DeckHandler) respondDeck(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	topic, snap := sess.View()
	shared.RespondWithJSON(w, r, http.StatusOK, snapshotToResponse(topic, snap, sess.TakeNotice()))
}

// GetDeck handles GET /api/deck requests
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.respondDeck(w, r, sess)
}

// GenerateDeck handles POST /api/deck/generate requests
func (h *DeckHandler) GenerateDeck(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	topic, ok := decodeTopic(w, r)
	if !ok {
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)
	if _, err := loadDeck(r.Context(), log, h.generator, sess, topic); err != nil {
		HandleAPIError(w, r, err, "Flashcard generation failed")
		return
	}

	h.respondDeck(w, r, sess)
}

// Next handles POST /api/deck/next requests
func (h *DeckHandler) Next(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.Viewer.Next()
	h.respondDeck(w, r, sess)
}

// Previous handles POST /api/deck/previous requests
func (h *DeckHandler) Previous(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.Viewer.Previous()
	h.respondDeck(w, r, sess)
}

// Export handles GET /api/deck/export requests
func (h *DeckHandler) Export(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	topic, cards := sess.Deck()
	if len(cards) == 0 {
		HandleAPIError(w, r, viewer.ErrNoCards, "")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s.%s"`, fileSlug(topic), format.Extension()))
	w.WriteHeader(http.StatusOK)

	if err := export.Write(w, format, export.Deck{Topic: topic, Cards: cards}); err != nil {
		// Headers are already sent; all that is left is to log.
		logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to write deck export",
			"format", string(format),
			"error", err)
	}
}

// fileSlug turns a topic into a safe download file name.
func fileSlug(topic string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(topic) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "flashcards"
	}
	return slug
}
