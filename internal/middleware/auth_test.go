package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vellum/internal/domain"
	"vellum/internal/domain/models"
	"vellum/internal/httputil"
)

type stubVerifier struct {
	principal *models.Principal
	err       error
}

func (v *stubVerifier) VerifyToken(token string) (*models.Principal, error) {
	return v.principal, v.err
}

func (v *stubVerifier) Close() error { return nil }

func TestAuth_RejectsMissingToken(t *testing.T) {
	verifier := &stubVerifier{}
	handler := Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without a token")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestAuth_RejectsInvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: domain.ErrUnauthorized}
	handler := Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuth_StoresPrincipal(t *testing.T) {
	verifier := &stubVerifier{principal: &models.Principal{
		ID: "user-1", Name: "Ada", Role: models.RoleAdmin,
	}}

	var got *models.Principal
	handler := Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = httputil.GetPrincipal(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got == nil || got.ID != "user-1" || got.Role != models.RoleAdmin {
		t.Errorf("principal = %+v, want user-1/admin", got)
	}
}

func TestAuth_HealthBypassesAuth(t *testing.T) {
	verifier := &stubVerifier{err: domain.ErrUnauthorized}
	handler := Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
