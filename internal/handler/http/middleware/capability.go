package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireCapability gates a route on the caller's role holding a capability.
// The role-to-capability table is closed; an unknown role holds nothing.
func RequireCapability(capability user.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			if !user.Can(user.Role(roleStr), capability) {
				response.HandleError(w, user.ErrCapabilityRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
