package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// Envelope is the uniform response wrapper for every operation.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Total   *int        `json:"total,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// corsHeaders returns the CORS headers attached to every response.
func corsHeaders(contentType string) map[string]string {
	headers := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type,Authorization",
	}
	if contentType != "" {
		headers["Content-Type"] = contentType
	}
	return headers
}

// respondJSON builds a JSON response with CORS headers.
func respondJSON(status int, env Envelope) events.LambdaFunctionURLResponse {
	body, err := json.Marshal(env)
	if err != nil {
		// Envelope marshaling cannot realistically fail; keep the
		// contract of never propagating a fault.
		return respondText(http.StatusInternalServerError, "encoding failure")
	}
	return events.LambdaFunctionURLResponse{
		StatusCode: status,
		Headers:    corsHeaders("application/json"),
		Body:       string(body),
	}
}

// respondText builds a plain-text response with CORS headers.
func respondText(status int, body string) events.LambdaFunctionURLResponse {
	return events.LambdaFunctionURLResponse{
		StatusCode: status,
		Headers:    corsHeaders("text/plain"),
		Body:       body,
	}
}

// respondError builds an error envelope carrying the failure message verbatim.
func respondError(status int, err error) events.LambdaFunctionURLResponse {
	return respondJSON(status, Envelope{Success: false, Error: err.Error()})
}
