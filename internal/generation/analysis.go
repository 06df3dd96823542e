package generation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/promptlab/internal/domain"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// analysisSchemaURL identifies the schema in validation errors. It must not
// be a relative name: the compiler would resolve it to a file:// URL under
// the working directory and leak that path into error text.
const analysisSchemaURL = "https://promptlab.local/schemas/analysis.json"

// analysisSchemaJSON describes the analysis object providers must return.
// missing_details is free-form; see missingDetailsText for how it is read.
const analysisSchemaJSON = `{
	"type": "object",
	"required": ["tone", "intent"],
	"properties": {
		"tone": {"type": "string"},
		"intent": {"type": "string"}
	}
}`

var analysisSchema = mustCompileSchema(analysisSchemaURL, analysisSchemaJSON)

func mustCompileSchema(url, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, strings.NewReader(schema)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", url, err))
	}
	return compiler.MustCompile(url)
}

// ParseAnalysis converts raw provider output into an AnalysisResult. Code
// fences are stripped first, then the text must decode as JSON and validate
// against the analysis schema. Any failure wraps ErrUnparseableAnalysis.
func ParseAnalysis(text string) (domain.AnalysisResult, error) {
	cleaned := StripFormattingFences(text)
	if cleaned == "" {
		return domain.AnalysisResult{}, fmt.Errorf("%w: empty analysis text", ErrUnparseableAnalysis)
	}

	var doc any
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: %v", ErrUnparseableAnalysis, err)
	}
	if err := analysisSchema.Validate(doc); err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("%w: %v", ErrUnparseableAnalysis, err)
	}

	// The schema guarantees an object with string tone and intent.
	fields := doc.(map[string]any)
	result := domain.AnalysisResult{
		Tone:   fields["tone"].(string),
		Intent: fields["intent"].(string),
	}
	if missing, ok := missingDetailsText(fields["missing_details"]); ok {
		result.MissingDetails = &missing
	}
	return result, nil
}

// missingDetailsText renders a decoded missing_details value as text. Null,
// absent and empty lists report false. Lists are joined with ", ", scalars
// use their JSON spelling and objects are kept as compact JSON.
func missingDetailsText(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := missingDetailsText(item); ok && s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, ", "), true
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return "", false
		}
		return string(data), true
	}
}
