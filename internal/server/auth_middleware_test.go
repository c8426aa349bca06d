package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"churchadmin-backend/internal/domain"
	"churchadmin-backend/internal/server/authctx"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func accessToken(t *testing.T, role domain.UserRole) string {
	return signToken(t, jwt.MapClaims{
		"sub":        "7",
		"email":      "admin@example.com",
		"role":       string(role),
		"token_type": "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
}

func protect(handler http.HandlerFunc, roles ...domain.UserRole) http.Handler {
	h := http.Handler(handler)
	if len(roles) > 0 {
		h = RequireRole(roles...)(h)
	}
	return AuthMiddleware(testSecret)(h)
}

func TestAuthMiddleware(t *testing.T) {
	var seen *authctx.CurrentUser
	h := protect(func(w http.ResponseWriter, r *http.Request) {
		seen = authctx.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"refresh token rejected", "Bearer " + signToken(t, jwt.MapClaims{
			"sub": "7", "token_type": "refresh", "exp": time.Now().Add(time.Hour).Unix(),
		}), http.StatusUnauthorized},
		{"expired token", "Bearer " + signToken(t, jwt.MapClaims{
			"sub": "7", "token_type": "access", "exp": time.Now().Add(-time.Hour).Unix(),
		}), http.StatusUnauthorized},
		{"valid token", "Bearer " + accessToken(t, domain.RoleAdmin), http.StatusNoContent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Errorf("code = %d, want %d", rec.Code, tc.want)
			}
		})
	}

	if seen == nil {
		t.Fatal("current user not set for valid token")
	}
	if seen.ID != 7 || seen.Email != "admin@example.com" || seen.Role != domain.RoleAdmin {
		t.Errorf("current user = %+v", seen)
	}
}

func TestRequireRole(t *testing.T) {
	h := protect(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, domain.RoleStaff))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("staff on admin route: code = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, domain.RoleAdmin))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("admin on admin route: code = %d, want 204", rec.Code)
	}
}
