// Package httpx is the single place failures cross from the error taxonomy
// into HTTP. Handlers hand any error here; nothing unclassified leaks out.
package httpx

import (
	"encoding/json"
	"net/http"

	"lifehub/pkg/apperr"
	"lifehub/pkg/logger"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Sugar.Errorf("Failed to encode response: %v", err)
		}
	}
}

// Error maps an error to its HTTP surface. Validation failures carry the
// per-field messages plus the submitted input so the form can be re-rendered
// with the original values; pass nil input when there is nothing to echo.
func Error(w http.ResponseWriter, r *http.Request, err error, loginPath string, input any) {
	switch {
	case apperr.IsUnauthenticated(err):
		// Never a raw error page; back to the login entry point.
		http.Redirect(w, r, loginPath, http.StatusFound)
	case apperr.IsNotFound(err):
		JSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case apperr.IsValidation(err):
		body := map[string]any{"errors": apperr.FieldErrors(err)}
		if input != nil {
			body["input"] = input
		}
		JSON(w, http.StatusUnprocessableEntity, body)
	default:
		logger.Sugar.Errorf("Unhandled error on %s %s: %v", r.Method, r.URL.Path, err)
		JSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
	}
}
