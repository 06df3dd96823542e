// Package openai adapts the OpenAI chat completions API
// (github.com/openai/openai-go) to generation.TextGenerator.
//
// Each Generate call sends one chat completion request with a system and a
// user message. SDK retries are disabled so that fallback between providers
// is decided by the caller.
package openai
