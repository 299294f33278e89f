// internal/auth/basic.go

// Package auth gates the admin surface behind HTTP Basic credentials. The
// store and handlers behind it trust that this gate has already run.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"competition-intake/internal/common/config"
	"competition-intake/internal/common/errors"
	"competition-intake/internal/common/logger"
)

type BasicAuth struct {
	username [32]byte
	password [32]byte
	errs     *errors.ErrorHandler
}

func NewBasicAuth(cfg config.AdminConfig, log logger.Logger) *BasicAuth {
	return &BasicAuth{
		// Hashing first makes the comparison constant-time regardless of
		// credential length.
		username: sha256.Sum256([]byte(cfg.Username)),
		password: sha256.Sum256([]byte(cfg.Password)),
		errs:     errors.NewErrorHandler(log),
	}
}

// Middleware rejects requests without valid admin credentials.
func (a *BasicAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			a.deny(w, "missing credentials")
			return
		}

		userHash := sha256.Sum256([]byte(user))
		passHash := sha256.Sum256([]byte(pass))
		userOK := subtle.ConstantTimeCompare(userHash[:], a.username[:]) == 1
		passOK := subtle.ConstantTimeCompare(passHash[:], a.password[:]) == 1
		if !userOK || !passOK {
			a.deny(w, "invalid credentials")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *BasicAuth) deny(w http.ResponseWriter, details string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="Admin Access Required"`)
	a.errs.WriteHTTP(w, errors.NewUnauthorizedError(details))
}
