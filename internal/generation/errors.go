package generation

import "errors"

// Common errors returned by the generation package and provider adapters.
var (
	// ErrNoProviderAvailable is returned when no provider has a credential configured.
	ErrNoProviderAvailable = errors.New("no API keys configured for text enhancement")

	// ErrAllProvidersFailed is returned when every configured provider failed.
	ErrAllProvidersFailed = errors.New("all text enhancement providers failed")

	// ErrProviderCallFailed is returned when a single provider call fails at the
	// network or API level.
	ErrProviderCallFailed = errors.New("provider call failed")

	// ErrUnparseableAnalysis is returned when analysis text cannot be parsed into
	// the expected shape.
	ErrUnparseableAnalysis = errors.New("unparseable analysis response")

	// ErrInvalidResponse is returned when a provider response is empty or malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the provider blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrNoImageReturned is returned when an image generation response carries no image
	ErrNoImageReturned = errors.New("no image returned by Gemini")

	// ErrImageProviderUnavailable is returned when image operations are requested
	// without a Gemini credential.
	ErrImageProviderUnavailable = errors.New("gemini API key not configured")

	// ErrInvalidConfig is returned when a provider or prompt configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
