package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lumina/backend/internal/validation"
)

func TestCORS_SetsHeaders(t *testing.T) {
	h := New(&mockDB{}, "http://localhost:3000")

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/test", nil)
	rec := httptest.NewRecorder()
	h.CORS(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected origin http://localhost:3000, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("expected no credentials header, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "x-admin-secret") {
		t.Errorf("expected x-admin-secret in allowed headers, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "PATCH") {
		t.Errorf("expected PATCH in allowed methods, got %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	h := New(&mockDB{}, "http://localhost:3000")

	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("OPTIONS", "/api/test", nil)
	rec := httptest.NewRecorder()
	h.CORS(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for OPTIONS, got %d", rec.Code)
	}
	if called {
		t.Error("inner handler should not be called for OPTIONS preflight")
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	var v map[string]any
	if decodeJSON(rec, req, &v) {
		t.Fatal("expected decodeJSON to fail")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDecodeJSON_RejectsNullAndEmpty(t *testing.T) {
	for _, body := range []string{"null", "  null\n", ""} {
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		rec := httptest.NewRecorder()

		var v struct{ Name string }
		if decodeJSON(rec, req, &v) {
			t.Fatalf("expected decodeJSON(%q) to fail", body)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
		var resp map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp["error"] != "Invalid JSON payload." {
			t.Errorf("body %q: unexpected error %q", body, resp["error"])
		}
	}
}

func TestDecodeJSON_Object(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"Name":"Asha"}`))
	rec := httptest.NewRecorder()

	var v struct{ Name string }
	if !decodeJSON(rec, req, &v) {
		t.Fatalf("expected decodeJSON to succeed, got %d", rec.Code)
	}
	if v.Name != "Asha" {
		t.Errorf("Name = %q", v.Name)
	}
}

func TestWriteValidation_SplitsFormErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	err := &validation.Error{FieldErrors: map[string][]string{
		"email":   {"Enter a valid email address."},
		"_wizard": {"Complete every step."},
	}}

	if !writeValidation(rec, err) {
		t.Fatal("expected validation error to be written")
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp validationResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "Validation failed." {
		t.Errorf("error = %q", resp.Error)
	}
	if len(resp.Issues.FormErrors) != 1 || resp.Issues.FormErrors[0] != "Complete every step." {
		t.Errorf("formErrors = %v", resp.Issues.FormErrors)
	}
	if _, ok := resp.Issues.FieldErrors["_wizard"]; ok {
		t.Error("form-level key leaked into fieldErrors")
	}
	if got := resp.Issues.FieldErrors["email"]; len(got) != 1 {
		t.Errorf("fieldErrors[email] = %v", got)
	}
}

func TestWriteValidation_OtherError(t *testing.T) {
	rec := httptest.NewRecorder()
	if writeValidation(rec, http.ErrBodyNotAllowed) {
		t.Error("non-validation error should not be written")
	}
}
