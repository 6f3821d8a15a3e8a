package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/scry-flashcards/internal/redact"
)

// SearchToolName is the name the model uses to call web search.
const SearchToolName = "web_search"

// DefaultSearchResults caps how many results are shown to the model per query.
const DefaultSearchResults = 5

// SearchResult is one organic web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher performs a web search for a query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// SearchTool exposes a Searcher to the model as a Tool.
type SearchTool struct {
	searcher   Searcher
	maxResults int
	logger     *slog.Logger
}

var _ Tool = (*SearchTool)(nil)

// NewSearchTool wraps searcher. maxResults below one selects DefaultSearchResults.
func NewSearchTool(searcher Searcher, maxResults int, logger *slog.Logger) (*SearchTool, error) {
	if searcher == nil {
		return nil, fmt.Errorf("%w: searcher cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if maxResults < 1 {
		maxResults = DefaultSearchResults
	}
	return &SearchTool{searcher: searcher, maxResults: maxResults, logger: logger}, nil
}

// Name implements Tool.
func (t *SearchTool) Name() string { return SearchToolName }

// Description implements Tool.
func (t *SearchTool) Description() string {
	return "Search the web for a short keyword phrase and return the top results with titles, snippets and links."
}

// Call implements Tool. Search failures are reported as text so the stage
// can continue from general knowledge.
func (t *SearchTool) Call(ctx context.Context, input string) string {
	query := strings.TrimSpace(input)
	if query == "" {
		return "Search skipped: the query was empty."
	}

	results, err := t.searcher.Search(ctx, query)
	if err != nil {
		t.logger.WarnContext(ctx, "web search failed",
			"query", query,
			"error", redact.Error(err))
		return fmt.Sprintf("Search for %q failed: %s. Continue from general knowledge.", query, redact.Error(err))
	}

	if len(results) > t.maxResults {
		results = results[:t.maxResults]
	}

	t.logger.DebugContext(ctx, "web search completed",
		"query", query,
		"results", len(results))

	if len(results) == 0 {
		return fmt.Sprintf("No results found for %q.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Results for %q:\n", query)
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(r.Title))
		if snippet := strings.TrimSpace(r.Snippet); snippet != "" {
			fmt.Fprintf(&b, "   %s\n", snippet)
		}
		if r.URL != "" {
			fmt.Fprintf(&b, "   Source: %s\n", r.URL)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
