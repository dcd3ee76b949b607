// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response utilities shared by all endpoints. Success
// bodies are plain domain objects; every failure is an ErrorResponse envelope
// so clients can branch on a single shape.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{"error": "Contact not found"}
//
// Example success response:
//
//	HTTP/1.1 200 OK
//	{"id": 1755902830000, "name": "Alice", ...}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/speakergym/funnel-tracker/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
// The message is human-readable and stable enough for clients to match on
// (see the Msg* constants in errors.go).
type ErrorResponse struct {
	Error string `json:"error" example:"Contact not found"`
}

// fail aborts the request with a structured error body.
//
// Server errors (>=500) are additionally logged through the request-scoped
// logger so the access log line carries the failure context.
func fail(c *gin.Context, status int, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) call Fail to return consistent error
// envelopes without depending on unexported helpers.
func Fail(c *gin.Context, status int, msg string) { fail(c, status, msg) }

// ok writes a success JSON response with the given status code.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
