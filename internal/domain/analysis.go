package domain

import "strings"

// NoneText is what an absent missing_details value renders as inside
// provider prompts. It never appears in a returned AnalysisResult.
const NoneText = "None"

// AnalysisResult is the structured analysis of a user prompt produced by a
// provider's analysis call.
type AnalysisResult struct {
	Tone   string `json:"tone"`
	Intent string `json:"intent"`

	// MissingDetails is nil when the provider reported nothing missing or
	// omitted the field. It is serialized as null in that case.
	MissingDetails *string `json:"missing_details"`
}

// MissingDetailsText returns the missing details for display inside a
// prompt, substituting NoneText when the value is absent or blank.
func (a AnalysisResult) MissingDetailsText() string {
	if a.MissingDetails == nil || strings.TrimSpace(*a.MissingDetails) == "" {
		return NoneText
	}
	return *a.MissingDetails
}
