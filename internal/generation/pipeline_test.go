package generation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/scry-flashcards/internal/config"
	"github.com/phrazzld/scry-flashcards/internal/domain"
	"github.com/phrazzld/scry-flashcards/internal/generation"
	"github.com/phrazzld/scry-flashcards/internal/mocks"
	"github.com/phrazzld/scry-flashcards/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mitochondriaPlan = "Subtopic: Structure\nKeywords: mitochondria membranes; cristae\n\n" +
		"Subtopic: Function\nKeywords: ATP production mitochondria"
	mitochondriaResearch = "Structure\n- Two membranes\n- Cristae fold the inner membrane\n- Own DNA\n\n" +
		"Function\n- Produce ATP\n- Site of the Krebs cycle\n- Regulate apoptosis"
	mitochondriaCards = "Q: What is the main function of mitochondria?\nA: Producing ATP.\n\n" +
		"Q: What are the folds of the inner membrane called?\nA: Cristae."
)

func fullConfig() config.PipelineConfig {
	return config.PipelineConfig{Mode: config.ModeFull, CardCount: 5}
}

func newPipeline(t *testing.T, cfg config.PipelineConfig, llm generation.LLM, tool generation.Tool) *generation.Pipeline {
	t.Helper()

	log, _ := logger.GetTestLogger(t)
	p, err := generation.NewPipeline(cfg, llm, tool, log)
	require.NoError(t, err)
	return p
}

func TestNewPipelineValidation(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)
	llm := &mocks.MockLLM{}
	tool := &mocks.MockTool{}

	tests := []struct {
		name string
		cfg  config.PipelineConfig
		llm  generation.LLM
		tool generation.Tool
	}{
		{name: "nil llm", cfg: fullConfig(), llm: nil, tool: tool},
		{name: "full mode without search", cfg: fullConfig(), llm: llm, tool: nil},
		{name: "unknown mode", cfg: config.PipelineConfig{Mode: "turbo", CardCount: 5}, llm: llm, tool: tool},
		{name: "zero cards", cfg: config.PipelineConfig{Mode: config.ModeFull}, llm: llm, tool: tool},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := generation.NewPipeline(tc.cfg, tc.llm, tc.tool, log)
			require.ErrorIs(t, err, generation.ErrInvalidConfig)
		})
	}

	_, err := generation.NewPipeline(fullConfig(), llm, tool, nil)
	require.ErrorIs(t, err, generation.ErrInvalidConfig)

	p, err := generation.NewPipeline(config.PipelineConfig{Mode: config.ModeSingle, CardCount: 5}, llm, nil, log)
	require.NoError(t, err, "single mode does not need search")
	assert.Equal(t, config.ModeSingle, p.Mode())
}

func TestPipelineFullModeEndToEnd(t *testing.T) {
	t.Parallel()

	llm := &mocks.MockLLM{
		ResponsesByStage: map[string]generation.Completion{
			generation.StagePlanning:  generation.TextCompletion(mitochondriaPlan),
			generation.StageSearch:    generation.TextCompletion(mitochondriaResearch),
			generation.StageAuthoring: generation.TextCompletion(mitochondriaCards),
		},
	}
	tool := &mocks.MockTool{}
	p := newPipeline(t, fullConfig(), llm, tool)

	cards, err := p.Generate(context.Background(), "  Mitochondria  ")
	require.NoError(t, err)

	assert.Equal(t, []domain.Flashcard{
		{Question: "What is the main function of mitochondria?", Answer: "Producing ATP."},
		{Question: "What are the folds of the inner membrane called?", Answer: "Cristae."},
	}, cards)

	assert.Equal(t, []string{
		generation.StagePlanning,
		generation.StageSearch,
		generation.StageAuthoring,
	}, llm.Stages(), "stages run strictly in order")

	planning, err := llm.Request(generation.StagePlanning)
	require.NoError(t, err)
	assert.Empty(t, planning.Tools)
	assert.Contains(t, planning.Goal, `"Mitochondria"`, "topic is trimmed before prompting")

	search, err := llm.Request(generation.StageSearch)
	require.NoError(t, err)
	require.Len(t, search.Tools, 1, "only the search stage gets web search")
	assert.Same(t, tool, search.Tools[0])
	assert.Contains(t, search.Task, "Keywords: ATP production mitochondria")

	authoring, err := llm.Request(generation.StageAuthoring)
	require.NoError(t, err)
	assert.Empty(t, authoring.Tools)
	assert.Contains(t, authoring.Task, "- Regulate apoptosis")
	assert.Contains(t, authoring.Task, "exactly 5 flashcards")
}

func TestPipelineSingleMode(t *testing.T) {
	t.Parallel()

	llm := &mocks.MockLLM{
		ResponsesByStage: map[string]generation.Completion{
			generation.StageSingle: generation.TextCompletion("Q: What is 2+2?\nA: 4\n\nQ: Capital of France?\nA: Paris"),
		},
	}
	p := newPipeline(t, config.PipelineConfig{Mode: config.ModeSingle, CardCount: 10}, llm, nil)

	result, err := p.GenerateWithReport(context.Background(), "Trivia")
	require.NoError(t, err)

	assert.Len(t, result.Cards, 2)
	assert.Equal(t, []string{generation.StageSingle}, llm.Stages())

	req, err := llm.Request(generation.StageSingle)
	require.NoError(t, err)
	assert.Contains(t, req.Task, "exactly 10 flashcards")
	assert.Empty(t, req.Tools)
}

func TestPipelineReportsSkippedBlocks(t *testing.T) {
	t.Parallel()

	llm := &mocks.MockLLM{
		ResponsesByStage: map[string]generation.Completion{
			generation.StageAuthoring: generation.TextCompletion("Sure! Here you go.\n\nQ: Q1\nA: A1\n\nQ: orphan"),
		},
	}
	log, logBuf := logger.GetTestLogger(t)
	p, err := generation.NewPipeline(fullConfig(), llm, &mocks.MockTool{}, log)
	require.NoError(t, err)

	result, err := p.GenerateWithReport(context.Background(), "Anything")
	require.NoError(t, err)

	assert.Len(t, result.Cards, 1)
	assert.Equal(t, 2, result.SkippedBlocks)
	logger.AssertLogContains(t, logBuf, "skipped malformed flashcard blocks")
}

func TestPipelineEmptyOutputIsNotAnError(t *testing.T) {
	t.Parallel()

	llm := &mocks.MockLLM{}
	p := newPipeline(t, fullConfig(), llm, &mocks.MockTool{})

	cards, err := p.Generate(context.Background(), "Anything")
	require.NoError(t, err)
	require.NotNil(t, cards)
	assert.Empty(t, cards)
	assert.Len(t, llm.Stages(), 3)

	search, err := llm.Request(generation.StageSearch)
	require.NoError(t, err)
	assert.Contains(t, search.Task, "No plan was produced")

	authoring, err := llm.Request(generation.StageAuthoring)
	require.NoError(t, err)
	assert.Contains(t, authoring.Task, "Rely on general knowledge")
}

func TestPipelineNonTextPayloads(t *testing.T) {
	t.Parallel()

	structured := generation.Completion{Payload: map[string]any{"parts": 2}}
	llm := &mocks.MockLLM{
		ResponsesByStage: map[string]generation.Completion{
			generation.StagePlanning:  structured,
			generation.StageSearch:    generation.TextCompletion("- a fact"),
			generation.StageAuthoring: structured,
		},
	}
	p := newPipeline(t, fullConfig(), llm, &mocks.MockTool{})

	result, err := p.GenerateWithReport(context.Background(), "Anything")
	require.NoError(t, err)

	assert.Empty(t, result.Cards)
	assert.True(t, result.NonText)

	search, err := llm.Request(generation.StageSearch)
	require.NoError(t, err)
	assert.Contains(t, search.Task, "No plan was produced")
}

func TestPipelineProviderErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		failStage string
		err       error
		wantIs    []error
		wantCalls int
	}{
		{
			name:      "planning failure stops the run",
			failStage: generation.StagePlanning,
			err:       errors.New("boom"),
			wantIs:    []error{generation.ErrProvider},
			wantCalls: 1,
		},
		{
			name:      "search failure skips authoring",
			failStage: generation.StageSearch,
			err:       errors.New("rate limited"),
			wantIs:    []error{generation.ErrProvider},
			wantCalls: 2,
		},
		{
			name:      "classified errors keep their kind",
			failStage: generation.StageAuthoring,
			err:       errors.Join(generation.ErrProvider, generation.ErrAuthentication),
			wantIs:    []error{generation.ErrProvider, generation.ErrAuthentication},
			wantCalls: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			llm := &mocks.MockLLM{ErrByStage: map[string]error{tc.failStage: tc.err}}
			p := newPipeline(t, fullConfig(), llm, &mocks.MockTool{})

			cards, err := p.Generate(context.Background(), "Mitochondria")

			require.Error(t, err)
			assert.Nil(t, cards)
			for _, target := range tc.wantIs {
				assert.ErrorIs(t, err, target)
			}
			assert.Contains(t, err.Error(), tc.failStage+" stage")
			assert.Len(t, llm.Stages(), tc.wantCalls)
		})
	}
}

func TestPipelineStageTimeout(t *testing.T) {
	t.Parallel()

	llm := &mocks.MockLLM{
		RunFn: func(ctx context.Context, req generation.StageRequest) (generation.Completion, error) {
			<-ctx.Done()
			return generation.Completion{}, ctx.Err()
		},
	}
	cfg := config.PipelineConfig{Mode: config.ModeSingle, CardCount: 5, StageTimeoutSeconds: 1}
	p := newPipeline(t, cfg, llm, nil)

	start := time.Now()
	_, err := p.Generate(context.Background(), "Slow topic")

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrProvider)
	assert.ErrorIs(t, err, generation.ErrStageTimeout)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestPipelineCallerCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	llm := &mocks.MockLLM{
		RunFn: func(ctx context.Context, req generation.StageRequest) (generation.Completion, error) {
			cancel()
			return generation.Completion{}, ctx.Err()
		},
	}
	p := newPipeline(t, fullConfig(), llm, &mocks.MockTool{})

	_, err := p.Generate(ctx, "Anything")

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrProvider)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, generation.ErrStageTimeout)
	assert.Len(t, llm.Stages(), 1)
}

func TestPipelineRejectsInvalidTopic(t *testing.T) {
	t.Parallel()

	llm := &mocks.MockLLM{}
	p := newPipeline(t, fullConfig(), llm, &mocks.MockTool{})

	_, err := p.Generate(context.Background(), "   ")
	require.ErrorIs(t, err, domain.ErrEmptyTopic)
	assert.NotErrorIs(t, err, generation.ErrProvider)
	assert.Empty(t, llm.Stages(), "no provider call for an invalid topic")
}
