package router

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Response codes carried in pipe responses.
const (
	CodeOK           = 200
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeNotFound     = 404
	CodeInternal     = 500
)

// Request is an inbound pipe request. Requester is the authenticated sender.
type Request struct {
	ID        string          `json:"id"`
	Requester common.Address  `json:"-"`
	Method    string          `json:"method"`
	Path      string          `json:"path"`
	Timestamp int64           `json:"timestamp"` // unix milliseconds
	Body      json.RawMessage `json:"body,omitempty"`
	Params    json.RawMessage `json:"params,omitempty"`
}

// Response is what the transport sends back.
type Response struct {
	ID   string `json:"id"`
	Code int    `json:"code"`
	Body any    `json:"body,omitempty"`
}

// ErrorBody is the body of a non-OK response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Endpoint serves a request on a pipe. It never fails; errors are already mapped to a Response.
type Endpoint func(ctx context.Context, req Request) Response

// Handler is route logic. Returned errors are mapped to responses by the router.
type Handler func(ctx context.Context, req Request) (any, error)

// PipeError is an error meant to be shown to the requester.
type PipeError struct {
	Code    int
	Message string
}

func (e *PipeError) Error() string {
	return e.Message
}

// NotFound reports that entity does not exist or is not visible to the requester.
func NotFound(entity string) *PipeError {
	return &PipeError{Code: CodeNotFound, Message: entity + " not found"}
}

// BadRequest reports a malformed request.
func BadRequest(format string, args ...any) *PipeError {
	return &PipeError{Code: CodeBadRequest, Message: fmt.Sprintf(format, args...)}
}
