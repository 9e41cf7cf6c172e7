// internal/app/features/errors/render.go
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderNotFound shows a friendly "not found" page with a message.
// If backURL is empty, it defaults to /.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_page", pageData{
		Title:   "Not found",
		Message: msg,
		BackURL: backURL,
	})
}

// RenderServerError shows a friendly error page with a message.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_page", pageData{
		Title:   "Something went wrong",
		Message: msg,
		BackURL: backURL,
	})
}

// jsonError is the body of every JSON error response.
type jsonError struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON error body with the given status.
func WriteJSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: msg})
}
