package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/phrazzld/promptlab/internal/domain"
	"gopkg.in/yaml.v3"
)

// Prompt set keys used by the built-in provider strategies.
const (
	PromptSetGemini = "gemini"
	PromptSetOpenAI = "openai"
)

//go:embed prompts.yaml
var defaultPromptsYAML []byte

// promptTemplateFile mirrors one system/user template pair in the YAML catalog.
type promptTemplateFile struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

type promptSetFile struct {
	Analysis    promptTemplateFile `yaml:"analysis"`
	Enhancement promptTemplateFile `yaml:"enhancement"`
}

type promptCatalogFile struct {
	Providers     map[string]promptSetFile `yaml:"providers"`
	ImageAnalysis struct {
		Instruction string `yaml:"instruction"`
	} `yaml:"image_analysis"`
}

// analysisData is the data available to analysis templates.
type analysisData struct {
	Prompt string
}

// enhancementData is the data available to enhancement templates.
type enhancementData struct {
	Prompt         string
	Tone           string
	Intent         string
	MissingDetails string
}

// requestTemplate is a compiled system/user template pair.
type requestTemplate struct {
	system *template.Template
	user   *template.Template
}

func (t requestTemplate) render(data any) (Request, error) {
	var req Request
	if t.system != nil {
		s, err := execute(t.system, data)
		if err != nil {
			return Request{}, err
		}
		req.System = strings.TrimSpace(s)
	}
	u, err := execute(t.user, data)
	if err != nil {
		return Request{}, err
	}
	req.User = strings.TrimSpace(u)
	return req, nil
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt template %q: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// PromptSet holds the compiled analysis and enhancement templates for one provider.
type PromptSet struct {
	name        string
	analysis    requestTemplate
	enhancement requestTemplate
}

// Name returns the catalog key of the set.
func (s *PromptSet) Name() string {
	return s.name
}

// AnalysisRequest renders the analysis request for prompt.
func (s *PromptSet) AnalysisRequest(prompt string) (Request, error) {
	return s.analysis.render(analysisData{Prompt: prompt})
}

// EnhancementRequest renders the enhancement request for prompt using the
// fields of analysis. Absent or blank missing details render as domain.NoneText.
func (s *PromptSet) EnhancementRequest(prompt string, analysis domain.AnalysisResult) (Request, error) {
	return s.enhancement.render(enhancementData{
		Prompt:         prompt,
		Tone:           analysis.Tone,
		Intent:         analysis.Intent,
		MissingDetails: analysis.MissingDetailsText(),
	})
}

// PromptCatalog is the parsed, compiled set of provider prompts.
// It is read-only after construction and safe for concurrent use.
type PromptCatalog struct {
	sets                     map[string]*PromptSet
	imageAnalysisInstruction string
}

// DefaultPromptCatalog returns the catalog embedded in the binary.
func DefaultPromptCatalog() (*PromptCatalog, error) {
	return ParsePromptCatalog(defaultPromptsYAML)
}

// LoadPromptCatalog reads a catalog from path. An empty path selects the
// embedded default catalog.
func LoadPromptCatalog(path string) (*PromptCatalog, error) {
	if path == "" {
		return DefaultPromptCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read prompt catalog: %v", ErrInvalidConfig, err)
	}
	return ParsePromptCatalog(data)
}

// ParsePromptCatalog parses and compiles a YAML prompt catalog.
func ParsePromptCatalog(data []byte) (*PromptCatalog, error) {
	var file promptCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt catalog: %v", ErrInvalidConfig, err)
	}
	if len(file.Providers) == 0 {
		return nil, fmt.Errorf("%w: prompt catalog defines no providers", ErrInvalidConfig)
	}

	catalog := &PromptCatalog{
		sets:                     make(map[string]*PromptSet, len(file.Providers)),
		imageAnalysisInstruction: strings.TrimSpace(file.ImageAnalysis.Instruction),
	}
	for name, setFile := range file.Providers {
		set, err := compileSet(name, setFile)
		if err != nil {
			return nil, err
		}
		catalog.sets[name] = set
	}
	return catalog, nil
}

func compileSet(name string, file promptSetFile) (*PromptSet, error) {
	analysis, err := compileTemplate(name+".analysis", file.Analysis)
	if err != nil {
		return nil, err
	}
	enhancement, err := compileTemplate(name+".enhancement", file.Enhancement)
	if err != nil {
		return nil, err
	}
	return &PromptSet{name: name, analysis: analysis, enhancement: enhancement}, nil
}

func compileTemplate(name string, file promptTemplateFile) (requestTemplate, error) {
	if strings.TrimSpace(file.User) == "" {
		return requestTemplate{}, fmt.Errorf("%w: prompt %s.user cannot be empty", ErrInvalidConfig, name)
	}

	var t requestTemplate
	var err error
	t.user, err = template.New(name + ".user").Option("missingkey=error").Parse(file.User)
	if err != nil {
		return requestTemplate{}, fmt.Errorf("%w: failed to parse prompt %s.user: %v", ErrInvalidConfig, name, err)
	}
	if strings.TrimSpace(file.System) != "" {
		t.system, err = template.New(name + ".system").Option("missingkey=error").Parse(file.System)
		if err != nil {
			return requestTemplate{}, fmt.Errorf("%w: failed to parse prompt %s.system: %v", ErrInvalidConfig, name, err)
		}
	}
	return t, nil
}

// Set returns the prompt set registered under name.
func (c *PromptCatalog) Set(name string) (*PromptSet, error) {
	set, ok := c.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: prompt set %q not found (available: %s)",
			ErrInvalidConfig, name, strings.Join(c.Names(), ", "))
	}
	return set, nil
}

// Names returns the sorted keys of all prompt sets.
func (c *PromptCatalog) Names() []string {
	names := make([]string, 0, len(c.sets))
	for name := range c.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ImageAnalysisInstruction returns the fixed instruction sent with images to
// the multimodal model.
func (c *PromptCatalog) ImageAnalysisInstruction() string {
	return c.imageAnalysisInstruction
}
