// Package context carries the conversation session id through calls so log
// lines can be correlated per session.
package context

import (
	stdctx "context"

	"github.com/google/uuid"
)

type contextKey int

const (
	// SessionIDKey is the context key for session ids
	SessionIDKey contextKey = iota
)

// NewSessionID generates a new unique session id
func NewSessionID() string {
	return uuid.NewString()
}

// WithSessionID adds a session id to the context
func WithSessionID(parent stdctx.Context, sessionID string) stdctx.Context {
	return stdctx.WithValue(parent, SessionIDKey, sessionID)
}

// SessionIDFromContext extracts the session id from the context
func SessionIDFromContext(ctx stdctx.Context) string {
	if ctx == nil {
		return ""
	}
	if sessionID, ok := ctx.Value(SessionIDKey).(string); ok {
		return sessionID
	}
	return ""
}
