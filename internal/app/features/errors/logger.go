// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorLogger logs failures with request context and renders a response the
// user can act on.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	return []zap.Field{
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	}
}

// LogServerError logs err and renders the server error page with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.Log.Error(logMsg, e.fields(r, err)...)
	RenderServerError(w, r, userMsg, backURL)
}

// LogJSONError logs err and writes a JSON error with the given status.
// Client errors (4xx) are logged at warn level.
func (e *ErrorLogger) LogJSONError(w http.ResponseWriter, r *http.Request, status int, logMsg string, err error, userMsg string) {
	if status >= http.StatusInternalServerError {
		e.Log.Error(logMsg, e.fields(r, err)...)
	} else {
		e.Log.Warn(logMsg, e.fields(r, err)...)
	}
	WriteJSON(w, status, userMsg)
}
