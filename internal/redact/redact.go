// Package redact removes credentials and other sensitive fragments from
// strings before they are logged or returned in error responses. Provider
// SDK errors routinely echo request URLs, partial API keys and local paths;
// everything that reaches a log line or a client passes through here.
package redact

import (
	"regexp"
)

// Redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// rule is a pattern and its replacement. Replacements may reference
// submatches with ${n} to keep surrounding context.
type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules run in order; provider key formats come before the generic
// key=value rule so the more specific placeholder wins.
var rules = []rule{
	// Google API keys
	{regexp.MustCompile(`AIza[0-9A-Za-z_\-]{20,}`), RedactedKeyPlaceholder},
	// OpenAI keys, including the partially masked form echoed in 401 errors
	{regexp.MustCompile(`sk-(?:proj-|svcacct-)?[A-Za-z0-9_\-*]{6,}`), RedactedKeyPlaceholder},
	// key, api_key and access_token query parameters
	{regexp.MustCompile(`(?i)([?&](?:key|api_key|apikey|access_token)=)[^&\s"']+`), "${1}" + RedactedKeyPlaceholder},
	// bearer tokens
	{regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9._\-~+/]+=*`), "${1}" + RedactedCredentialPlaceholder},
	// JWTs
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), "[REDACTED_JWT]"},
	// generic key/secret/password assignments
	{
		regexp.MustCompile(`(?i)((?:api[_-]?key|secret|password|passwd|token)\s*[=:]\s*['"]?)[^'"&\s,]{6,}`),
		"${1}" + RedactedCredentialPlaceholder,
	},
	// remaining query strings on URLs
	{regexp.MustCompile(`(https?://[^\s?"']+)\?[^\s"']+`), "${1}?" + RedactionPlaceholder},
	// file URLs, which carry absolute local paths
	{regexp.MustCompile(`(?i)file://[^\s"']*[^\s"':,.]`), RedactedPathPlaceholder},
	// absolute unix paths not part of a URL
	{regexp.MustCompile(`(^|[\s"'(=])(?:/[\w.-]+){2,}`), "${1}" + RedactedPathPlaceholder},
	// windows paths
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(?:\\[^\\\s]+)+`), RedactedPathPlaceholder},
	// stack trace fragments
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), "[STACK_TRACE_REDACTED]"},
	// email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[REDACTED_EMAIL]"},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
