package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kayod-erp/timekeeping-backend-go/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// RequireCompany rejects tokens that carry no company claim. Handlers read
// the claim through CompanyID after this middleware has vetted it.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		companyID, err := CompanyID(r)
		if err != nil || companyID == "" {
			response.Forbidden(w, "Company membership required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CompanyID extracts the company claim from the request token.
func CompanyID(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}
	companyID, _ := claims["company_id"].(string)
	return companyID, nil
}

// AccountID extracts the employee account claim from the request token.
func AccountID(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}
	accountID, _ := claims["account_id"].(string)
	return accountID, nil
}
