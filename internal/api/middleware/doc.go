// Package middleware provides HTTP middleware shared by all routes: request
// tracing, metrics and request body limits.
package middleware
