package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/scry-flashcards/internal/generation"
	"github.com/phrazzld/scry-flashcards/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFlashcards(t *testing.T) {
	gen := mocks.NewMockGeneratorWithCards(
		mustCard(t, "What is the powerhouse of the cell?", "Mitochondria"),
		mustCard(t, "What does ATP stand for?", "Adenosine triphosphate"),
	)
	gen.SkippedBlocks = 1
	h := NewFlashcardHandler(gen, discardLogger())

	rec := httptest.NewRecorder()
	h.GenerateFlashcards(rec, newSessionRequest(http.MethodPost, "/api/flashcards",
		`{"topic":"  Mitochondria  "}`, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Mitochondria", resp.Topic)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 1, resp.SkippedBlocks)
	assert.Equal(t, "Mitochondria", resp.Cards[0].Answer)
	assert.Equal(t, "Mitochondria", gen.LastTopic(), "topic is trimmed before generation")
}

func TestGenerateFlashcards_PaddedTopicWithinLimit(t *testing.T) {
	gen := mocks.NewMockGeneratorWithCards(mustCard(t, "Q", "A"))
	h := NewFlashcardHandler(gen, discardLogger())

	topic := strings.Repeat("b", 200)
	body := fmt.Sprintf(`{"topic":%q}`, "   "+topic+strings.Repeat(" ", 300))

	rec := httptest.NewRecorder()
	h.GenerateFlashcards(rec, newSessionRequest(http.MethodPost, "/api/flashcards", body, nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, topic, gen.LastTopic())
}

func TestGenerateFlashcards_EmptyResult(t *testing.T) {
	h := NewFlashcardHandler(mocks.NewMockGeneratorWithCards(), discardLogger())

	rec := httptest.NewRecorder()
	h.GenerateFlashcards(rec, newSessionRequest(http.MethodPost, "/api/flashcards",
		`{"topic":"Nothing"}`, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cards":[]`)
	assert.Contains(t, rec.Body.String(), `"count":0`)
}

func TestGenerateFlashcards_InvalidRequests(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{"malformed json", `{"topic":`, "Invalid request format"},
		{"unknown field", `{"topic":"x","extra":1}`, "Invalid request format"},
		{"missing topic", `{}`, "Invalid topic: required field"},
		{"whitespace topic", `{"topic":"   "}`, "Topic cannot be empty"},
		{"topic too long", fmt.Sprintf(`{"topic":%q}`, strings.Repeat("a", 201)), "Topic must be at most 200 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mocks.MockGenerator{}
			h := NewFlashcardHandler(gen, discardLogger())

			rec := httptest.NewRecorder()
			h.GenerateFlashcards(rec, newSessionRequest(http.MethodPost, "/api/flashcards", tt.body, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
			assert.Zero(t, gen.CallCount(), "generator must not run for invalid input")
		})
	}
}

func TestGenerateFlashcards_ProviderErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"blocked", fmt.Errorf("%w: %w", generation.ErrProvider, generation.ErrContentBlocked), http.StatusUnprocessableEntity},
		{"timeout", fmt.Errorf("%w: %w", generation.ErrProvider, generation.ErrStageTimeout), http.StatusGatewayTimeout},
		{"auth", fmt.Errorf("%w: %w: key=secret", generation.ErrProvider, generation.ErrAuthentication), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewFlashcardHandler(mocks.NewMockGeneratorWithError(tt.err), discardLogger())

			rec := httptest.NewRecorder()
			h.GenerateFlashcards(rec, newSessionRequest(http.MethodPost, "/api/flashcards",
				`{"topic":"Mitochondria"}`, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.NotContains(t, rec.Body.String(), "secret")
		})
	}
}
