package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lumina/backend/internal/repository"
	"github.com/lumina/backend/internal/validation"
	"github.com/lumina/backend/pkg/auth"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type Handler struct {
	db          repository.DB
	frontendURL string
}

func New(db repository.DB, frontendURL string) *Handler {
	return &Handler{db: db, frontendURL: frontendURL}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+auth.AdminSecretHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Retry-After, X-Fallback")
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// dataResponse is the success envelope. Fallback is set when the payload
// came from the in-memory store.
type dataResponse struct {
	Data     any  `json:"data"`
	Fallback bool `json:"fallback,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a JSON body into v. It writes 400 and returns false when
// the body is missing, malformed or a literal null.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil || bytes.Equal(raw, []byte("null")) {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload.")
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload.")
		return false
	}
	return true
}

// issues mirrors the flattened validation error shape the site's forms
// render: form-level messages plus messages keyed by field.
type issues struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

type validationResponse struct {
	Error  string `json:"error"`
	Issues issues `json:"issues"`
}

// writeValidation writes 422 and returns true when err is a validation error.
func writeValidation(w http.ResponseWriter, err error) bool {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return false
	}
	out := issues{FormErrors: []string{}, FieldErrors: map[string][]string{}}
	for field, msgs := range verr.FieldErrors {
		if strings.HasPrefix(field, "_") {
			out.FormErrors = append(out.FormErrors, msgs...)
			continue
		}
		out.FieldErrors[field] = msgs
	}
	writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Error: "Validation failed.", Issues: out})
	return true
}
