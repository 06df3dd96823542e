// Package gemini adapts Google's Gemini API (google.golang.org/genai) to the
// generation interfaces.
//
// This package is an infrastructure adapter: it translates between the
// application's request types and the genai SDK without exposing SDK types
// to the core. A single Client serves three roles:
//
//   - generation.TextGenerator for prompt analysis and enhancement
//   - generation.ImageGenerator using the image model
//   - generation.ImageAnalyzer using the multimodal model
//
// Each method performs exactly one API call. SDK and HTTP errors are wrapped
// with generation.ErrProviderCallFailed; empty or blocked responses map to
// generation.ErrInvalidResponse and generation.ErrContentBlocked.
package gemini
