package generation

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

// Stage names.
const (
	StagePlanning  = "planning"
	StageSearch    = "search"
	StageAuthoring = "authoring"
	StageSingle    = "single"
)

// Prompt shape constants.
const (
	MaxSubtopics        = 3
	KeywordsPerSubtopic = "1-2"
	BulletsPerSubtopic  = 3
)

// Capability describes an external capability a stage is granted.
type Capability int

const (
	// CapabilityNone means the stage only talks to the model.
	CapabilityNone Capability = iota
	// CapabilityWebSearch means the stage may call the web-search tool.
	CapabilityWebSearch
)

func (c Capability) String() string {
	switch c {
	case CapabilityWebSearch:
		return "web_search"
	default:
		return "none"
	}
}

//go:embed prompts/*.tmpl
var promptFS embed.FS

var prompts = template.Must(template.New("prompts").ParseFS(promptFS, "prompts/*.tmpl"))

// StageSpec is a fully rendered stage definition.
type StageSpec struct {
	Name           string
	Role           string
	Goal           string
	Backstory      string
	Task           string
	ExpectedOutput string
	Capability     Capability
}

// Request turns the spec into a provider request. Tools are attached only
// when the stage has a capability that needs them.
func (s StageSpec) Request(tools ...Tool) StageRequest {
	req := StageRequest{
		Stage:          s.Name,
		Role:           s.Role,
		Goal:           s.Goal,
		Backstory:      s.Backstory,
		Task:           s.Task,
		ExpectedOutput: s.ExpectedOutput,
	}
	if s.Capability != CapabilityNone {
		req.Tools = tools
	}
	return req
}

type promptData struct {
	Topic               string
	Plan                string
	Research            string
	ToolName            string
	CardCount           int
	MaxSubtopics        int
	KeywordsPerSubtopic string
	BulletsPerSubtopic  int
}

func newPromptData(topic string) promptData {
	return promptData{
		Topic:               topic,
		ToolName:            SearchToolName,
		MaxSubtopics:        MaxSubtopics,
		KeywordsPerSubtopic: KeywordsPerSubtopic,
		BulletsPerSubtopic:  BulletsPerSubtopic,
	}
}

// PlanningStage builds the subtopic planning stage.
func PlanningStage(topic string) (StageSpec, error) {
	return renderStage(StagePlanning, CapabilityNone, newPromptData(topic))
}

// SearchStage builds the research stage. It is the only stage granted web search.
func SearchStage(topic, plan string) (StageSpec, error) {
	data := newPromptData(topic)
	data.Plan = strings.TrimSpace(plan)
	return renderStage(StageSearch, CapabilityWebSearch, data)
}

// AuthoringStage builds the final flashcard authoring stage.
func AuthoringStage(topic, research string, cardCount int) (StageSpec, error) {
	data := newPromptData(topic)
	data.Research = strings.TrimSpace(research)
	data.CardCount = cardCount
	return renderStage(StageAuthoring, CapabilityNone, data)
}

// SingleStage builds the one-shot stage used when planning and search are disabled.
func SingleStage(topic string, cardCount int) (StageSpec, error) {
	data := newPromptData(topic)
	data.CardCount = cardCount
	return renderStage(StageSingle, CapabilityNone, data)
}

func renderStage(name string, capability Capability, data promptData) (StageSpec, error) {
	spec := StageSpec{Name: name, Capability: capability}

	fields := []struct {
		key  string
		dest *string
	}{
		{"role", &spec.Role},
		{"goal", &spec.Goal},
		{"backstory", &spec.Backstory},
		{"task", &spec.Task},
		{"expected_output", &spec.ExpectedOutput},
	}

	for _, f := range fields {
		var buf bytes.Buffer
		if err := prompts.ExecuteTemplate(&buf, name+"."+f.key, data); err != nil {
			return StageSpec{}, fmt.Errorf("failed to render %s %s prompt: %w", name, f.key, err)
		}
		*f.dest = strings.TrimSpace(buf.String())
	}

	return spec, nil
}
