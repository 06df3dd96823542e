// Package api handles incoming HTTP requests, request validation, and
// response formatting. It adapts the JSON endpoints used by the browser
// frontend to the enhancement and image services.
package api
