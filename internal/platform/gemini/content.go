package gemini

import (
	"fmt"
	"strings"

	"github.com/phrazzld/scry-flashcards/internal/generation"
	"google.golang.org/genai"
)

func systemInstruction(req generation.StageRequest) string {
	var parts []string
	if req.Role != "" {
		parts = append(parts, fmt.Sprintf("You are the %s.", req.Role))
	}
	if req.Backstory != "" {
		parts = append(parts, req.Backstory)
	}
	if req.Goal != "" {
		parts = append(parts, "Your goal: "+req.Goal)
	}
	return strings.Join(parts, "\n\n")
}

func userPrompt(req generation.StageRequest) string {
	prompt := strings.TrimSpace(req.Task)
	if expected := strings.TrimSpace(req.ExpectedOutput); expected != "" {
		prompt += "\n\nExpected output: " + expected
	}
	return prompt
}

func functionDeclaration(tool generation.Tool) *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        tool.Name(),
		Description: tool.Description(),
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				queryArg: {
					Type:        genai.TypeString,
					Description: "A short keyword phrase.",
				},
			},
			Required: []string{queryArg},
		},
	}
}

func indexTools(tools []generation.Tool) map[string]generation.Tool {
	index := make(map[string]generation.Tool, len(tools))
	for _, tool := range tools {
		index[tool.Name()] = tool
	}
	return index
}

func withoutFunctionCalling(cfg *genai.GenerateContentConfig) *genai.GenerateContentConfig {
	next := *cfg
	next.ToolConfig = &genai.ToolConfig{
		FunctionCallingConfig: &genai.FunctionCallingConfig{
			Mode: genai.FunctionCallingConfigModeNone,
		},
	}
	return &next
}

func toolInput(args map[string]any) string {
	if q, ok := args[queryArg].(string); ok {
		return q
	}
	// Tolerate a model that renamed the only argument.
	if len(args) == 1 {
		for _, v := range args {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

func firstCandidate(resp *genai.GenerateContentResponse) *genai.Candidate {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	return resp.Candidates[0]
}

func isBlocked(resp *genai.GenerateContentResponse) (bool, string) {
	if resp == nil {
		return false, ""
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return true, "prompt blocked: " + string(resp.PromptFeedback.BlockReason)
	}
	if c := firstCandidate(resp); c != nil {
		switch c.FinishReason {
		case genai.FinishReasonSafety, genai.FinishReasonBlocklist, genai.FinishReasonProhibitedContent:
			return true, "response blocked: " + string(c.FinishReason)
		}
	}
	return false, ""
}

func functionCalls(content *genai.Content) []*genai.FunctionCall {
	var calls []*genai.FunctionCall
	for _, part := range content.Parts {
		if part != nil && part.FunctionCall != nil {
			calls = append(calls, part.FunctionCall)
		}
	}
	return calls
}

// completionFromContent returns the concatenated text of content, or the
// content itself when it carries no text.
func completionFromContent(content *genai.Content) generation.Completion {
	var b strings.Builder
	hasText := false
	for _, part := range content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		b.WriteString(part.Text)
		hasText = true
	}
	if !hasText {
		return generation.Completion{Payload: content}
	}
	return generation.TextCompletion(b.String())
}
