package domain

import "strings"

// Enhancement is the outcome of one successful enhancement request: the
// analysis and the rewritten prompt, both produced by the same provider.
type Enhancement struct {
	Analysis AnalysisResult `json:"analysis"`
	Enhanced string         `json:"enhanced"`
	Provider string         `json:"provider"`
}

// NewEnhancement creates an Enhancement and validates it. The enhanced text
// is trimmed of surrounding whitespace but otherwise kept as returned.
func NewEnhancement(analysis AnalysisResult, enhanced, provider string) (*Enhancement, error) {
	e := &Enhancement{
		Analysis: analysis,
		Enhanced: strings.TrimSpace(enhanced),
		Provider: provider,
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate checks that the enhancement is complete.
func (e *Enhancement) Validate() error {
	if e.Enhanced == "" {
		return ErrEmptyEnhancement
	}

	if e.Provider == "" {
		return ErrEmptyProvider
	}

	return nil
}

// ValidatePrompt returns ErrEmptyPrompt when prompt is empty or only
// whitespace. The prompt itself is passed to providers unchanged.
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}
