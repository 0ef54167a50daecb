// Package net holds transport neutral request context and the error envelope
package net

import (
	"context"
	"net/http"

	perr "cinebot/internal/platform/errors"
	"cinebot/internal/platform/logger"
)

type userKey struct{}

// WithUser annotates ctx with the authenticated principal
func WithUser(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userKey{}, userID)
}

// UserID returns the authenticated principal on ctx, empty when anonymous
func UserID(ctx context.Context) string {
	s, _ := ctx.Value(userKey{}).(string)
	return s
}

// RequestID returns the correlation id on ctx
func RequestID(ctx context.Context) string { return logger.RequestID(ctx) }

// Wire is the response body every transport writes
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Success wraps data in an envelope for status
func Success(status int, data any, reqID string) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID, Data: data}
}

// Failure maps err to its status and a redacted envelope
func Failure(err error, reqID string) (int, Wire) {
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		RequestID:  reqID,
	}
}
