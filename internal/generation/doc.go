// Package generation defines the boundary between the application core and
// external generative-AI providers (Gemini, OpenAI). It holds the
// TextGenerator interface that every provider client implements, the
// normalization steps applied to provider output (fence stripping and
// analysis parsing), and the prompt catalog used to build each provider's
// analysis and enhancement requests.
//
// Provider SDKs are never imported here; adapters live under
// internal/platform and translate SDK errors into the sentinels in errors.go.
package generation
