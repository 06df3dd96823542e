// Package domain contains the core value types of the application: the
// structured analysis of a user prompt, the enhancement result returned to
// callers, and the image generation and analysis results. It is independent
// of any provider SDK or delivery mechanism.
package domain
