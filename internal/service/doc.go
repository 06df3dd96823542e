// Package service contains the application use cases. It coordinates the
// provider clients behind the generation interfaces without knowing which
// SDK implements them.
//
// EnhancementOrchestrator runs the analysis and enhancement steps against an
// ordered list of provider strategies and returns the first complete result.
// ImageService forwards image generation and analysis to a single provider.
package service
