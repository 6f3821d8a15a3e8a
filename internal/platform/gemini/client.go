package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/scry-flashcards/internal/config"
	"github.com/phrazzld/scry-flashcards/internal/generation"
	"github.com/phrazzld/scry-flashcards/internal/platform/logger"
	"github.com/phrazzld/scry-flashcards/internal/redact"
	"github.com/phrazzld/scry-flashcards/internal/retry"
	"google.golang.org/genai"
)

const (
	roleUser = "user"

	// queryArg is the single argument every declared tool accepts.
	queryArg = "query"

	budgetSpentOutput = "Tool call budget exhausted. No call was made; answer with the information already gathered."
)

// contentGenerator is the subset of genai.Models used by GeminiClient.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiClient implements the generation.LLM interface using Google's Gemini API.
type GeminiClient struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// models issues GenerateContent calls; genai's client.Models in production
	models contentGenerator

	// sleep waits between retries; replaced in tests
	sleep func(ctx context.Context, d time.Duration) error
}

var _ generation.LLM = (*GeminiClient)(nil)

// NewGeminiClient creates a new GeminiClient with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name and retry settings
//
// Returns:
//   - A properly initialized GeminiClient or an error wrapping
//     generation.ErrInvalidConfig if initialization fails
func NewGeminiClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiClient, error) {
	if err := validateConfig(logger, cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, redact.Error(err))
	}

	return newGeminiClient(logger, cfg, client.Models)
}

func newGeminiClient(logger *slog.Logger, cfg config.LLMConfig, models contentGenerator) (*GeminiClient, error) {
	if err := validateConfig(logger, cfg); err != nil {
		return nil, err
	}
	if models == nil {
		return nil, fmt.Errorf("%w: models cannot be nil", generation.ErrInvalidConfig)
	}

	return &GeminiClient{
		logger: logger,
		config: cfg,
		models: models,
	}, nil
}

func validateConfig(logger *slog.Logger, cfg config.LLMConfig) error {
	if logger == nil {
		return errors.New("logger cannot be nil")
	}
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.ModelName) == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries cannot be negative", generation.ErrInvalidConfig)
	}
	if cfg.MaxToolCalls < 1 {
		return fmt.Errorf("%w: max tool calls must be at least 1", generation.ErrInvalidConfig)
	}
	return nil
}

// Run implements generation.LLM.
//
// When the request carries tools, Run loops: each model turn that asks for
// function calls is answered with the tools' output and sent back, until the
// model produces a final answer. After MaxToolCalls calls function calling is
// switched off for the remaining turns.
func (c *GeminiClient) Run(ctx context.Context, req generation.StageRequest) (generation.Completion, error) {
	if strings.TrimSpace(req.Task) == "" {
		return generation.Completion{}, fmt.Errorf("%w: stage task cannot be empty", generation.ErrInvalidConfig)
	}

	log := logger.FromContextOrDefault(ctx, c.logger).With(
		"stage", req.Stage,
		"model", c.config.ModelName,
	)

	genConfig := c.generateConfig(req)
	tools := indexTools(req.Tools)
	history := []*genai.Content{{
		Role:  roleUser,
		Parts: []*genai.Part{{Text: userPrompt(req)}},
	}}

	toolCalls := 0
	// Once the budget is spent a round may spend no calls, so the loop is
	// bounded by maxRounds alone: at most maxRounds+1 model requests.
	maxRounds := c.config.MaxToolCalls + 2

	for round := 0; ; round++ {
		resp, err := c.generateWithRetry(ctx, log, history, genConfig)
		if err != nil {
			return generation.Completion{}, err
		}

		if blocked, reason := isBlocked(resp); blocked {
			log.WarnContext(ctx, "Gemini blocked the request", "reason", reason)
			return generation.Completion{}, fmt.Errorf("%w: %w: %s",
				generation.ErrProvider, generation.ErrContentBlocked, reason)
		}

		candidate := firstCandidate(resp)
		if candidate == nil || candidate.Content == nil {
			log.WarnContext(ctx, "Gemini returned no candidate content")
			return generation.Completion{Payload: resp}, nil
		}

		calls := functionCalls(candidate.Content)
		if len(calls) == 0 || len(tools) == 0 || round >= maxRounds {
			completion := completionFromContent(candidate.Content)
			text, isText := completion.Text()
			log.DebugContext(ctx, "Gemini stage completed",
				"tool_calls", toolCalls,
				"rounds", round+1,
				"text", isText,
				"output_length", len(text))
			return completion, nil
		}

		history = append(history, candidate.Content)
		responses := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			output := budgetSpentOutput
			if toolCalls < c.config.MaxToolCalls {
				output = c.callTool(ctx, log, tools, call)
				toolCalls++
			}
			responses = append(responses, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					ID:       call.ID,
					Name:     call.Name,
					Response: map[string]any{"output": output},
				},
			})
		}
		history = append(history, &genai.Content{Role: roleUser, Parts: responses})

		if toolCalls >= c.config.MaxToolCalls && genConfig.ToolConfig == nil {
			log.InfoContext(ctx, "tool call budget spent, disabling function calling",
				"tool_calls", toolCalls)
			genConfig = withoutFunctionCalling(genConfig)
		}
	}
}

func (c *GeminiClient) callTool(
	ctx context.Context,
	log *slog.Logger,
	tools map[string]generation.Tool,
	call *genai.FunctionCall,
) string {
	tool, ok := tools[call.Name]
	if !ok {
		log.WarnContext(ctx, "model called an unknown tool", "tool", call.Name)
		return fmt.Sprintf("Unknown tool %q.", call.Name)
	}

	input := toolInput(call.Args)
	log.DebugContext(ctx, "executing tool call", "tool", call.Name, "input", input)
	return tool.Call(ctx, input)
}

// generateWithRetry makes a call to the Gemini API with exponential backoff retry logic.
// Permanent errors (bad credentials, invalid requests) are returned immediately.
func (c *GeminiClient) generateWithRetry(
	ctx context.Context,
	log *slog.Logger,
	history []*genai.Content,
	genConfig *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = c.config.MaxRetries
	retryCfg.BaseDelay = time.Duration(c.config.RetryDelaySeconds) * time.Second
	retryCfg.Sleep = c.sleep
	retryCfg.OnRetry = func(attempt int, delay time.Duration, err error) {
		log.WarnContext(ctx, "transient Gemini API error, retrying",
			"attempt", attempt,
			"max_attempts", c.config.MaxRetries+1,
			"delay_ms", delay.Milliseconds(),
			"error", redact.Error(err))
	}

	resp, err := retry.Do(ctx, retryCfg, isTransient,
		func(ctx context.Context) (*genai.GenerateContentResponse, error) {
			resp, err := c.models.GenerateContent(ctx, c.config.ModelName, history, genConfig)
			if err != nil {
				return nil, classifyError(err)
			}
			return resp, nil
		})
	if err != nil {
		log.ErrorContext(ctx, "Gemini API call failed", "error", redact.Error(err))
		return nil, err
	}

	return resp, nil
}

func (c *GeminiClient) generateConfig(req generation.StageRequest) *genai.GenerateContentConfig {
	temperature := c.config.Temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	if instruction := systemInstruction(req); instruction != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		}
	}

	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, tool := range req.Tools {
			decls = append(decls, functionDeclaration(tool))
		}
		genConfig.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	return genConfig
}
