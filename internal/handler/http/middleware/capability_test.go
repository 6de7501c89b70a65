package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(t *testing.T, jwtService jwt.Service, capability user.Capability) *chi.Mux {
	t.Helper()
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(AuthRequired(jwtService.JWTAuth()))
		r.With(RequireCapability(capability)).Get("/protected", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func requestWithToken(t *testing.T, router http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireCapability(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "15m")
	router := newProtectedRouter(t, jwtService, user.CapabilityPayrollGenerate)

	tests := []struct {
		name       string
		role       user.Role
		wantStatus int
	}{
		{"admin can generate payroll", user.RoleAdmin, http.StatusOK},
		{"supervisor cannot generate payroll", user.RoleSupervisor, http.StatusForbidden},
		{"employee cannot generate payroll", user.RoleEmployee, http.StatusForbidden},
		{"unknown role holds nothing", user.Role("contractor"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, _, err := jwtService.GenerateAccessToken("user-1", nil, tt.role)
			require.NoError(t, err)

			rec := requestWithToken(t, router, token)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "15m")
	router := newProtectedRouter(t, jwtService, user.CapabilityPayrollGenerate)

	rec := requestWithToken(t, router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequiredRejectsForeignToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "15m")
	otherService := jwt.NewJWTService("other-secret", "15m")
	router := newProtectedRouter(t, jwtService, user.CapabilityPayrollGenerate)

	token, _, err := otherService.GenerateAccessToken("user-1", nil, user.RoleAdmin)
	require.NoError(t, err)

	rec := requestWithToken(t, router, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
