// Package testutils provides helpers for tests that exercise the HTTP API
// over a real listener. Helpers register their own cleanup with t.Cleanup.
package testutils
