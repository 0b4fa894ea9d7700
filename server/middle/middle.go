// Package middle contains HTTP middleware for the shrdlite server, grounded
// on server/middle/middle.go: bearer-token authentication and a top-level
// panic recovery wrapper.
package middle

import (
	"context"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/dekarrin/shrdlite/server/result"
	"github.com/dekarrin/shrdlite/server/token"
)

type mwFunc http.HandlerFunc

func (f mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	f(w, req)
}

// Middleware wraps a handler with additional behavior.
type Middleware func(next http.Handler) http.Handler

// AuthKey is a key in a request's context populated by AuthHandler.
type AuthKey int64

const (
	AuthLoggedIn AuthKey = iota
	AuthUser
)

// AuthHandler extracts a bearer token, validates it, and attaches the
// resulting dao.User (or the zero value, if auth is optional and none was
// presented) to the request context before calling next.
type AuthHandler struct {
	users         dao.UserRepository
	secret        []byte
	required      bool
	unauthedDelay time.Duration
	next          http.Handler
}

func (ah *AuthHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var loggedIn bool
	var user dao.User

	tok, err := token.FromAuthHeader(req.Header.Get("Authorization"))
	if err != nil {
		if ah.required {
			writeUnauthorized(w, req, err)
			time.Sleep(ah.unauthedDelay)
			return
		}
	} else {
		lookupUser, err := token.Validate(req.Context(), tok, ah.secret, ah.users)
		if err != nil {
			if ah.required {
				writeUnauthorized(w, req, err)
				time.Sleep(ah.unauthedDelay)
				return
			}
		} else {
			user = lookupUser
			loggedIn = true
		}
	}

	ctx := context.WithValue(req.Context(), AuthLoggedIn, loggedIn)
	ctx = context.WithValue(ctx, AuthUser, user)
	ah.next.ServeHTTP(w, req.WithContext(ctx))
}

func writeUnauthorized(w http.ResponseWriter, req *http.Request, cause error) {
	r := result.Unauthorized("", cause.Error())
	r.WriteResponse(w)
	log.Printf("%s %s -> 401: %s", req.Method, req.URL.Path, r.InternalMsg)
}

// RequireAuth returns Middleware that rejects any request without a valid
// bearer token for an operator account.
func RequireAuth(users dao.UserRepository, secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{users: users, secret: secret, unauthedDelay: unauthDelay, required: true, next: next}
	}
}

// OptionalAuth returns Middleware that attaches the caller's identity if a
// valid bearer token is present, but does not reject the request otherwise.
func OptionalAuth(users dao.UserRepository, secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{users: users, secret: secret, unauthedDelay: unauthDelay, required: false, next: next}
	}
}

// DontPanic recovers from a panic in next, converting it to a 500 response
// instead of crashing the server.
func DontPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, req *http.Request) {
			defer panicTo500(w, req)
			next.ServeHTTP(w, req)
		})
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) {
	panicVal := recover()
	if panicVal == nil {
		return
	}
	r := result.TextErr(
		http.StatusInternalServerError,
		"An internal server error occurred",
		"panic: %v", panicVal,
	)
	r.WriteResponse(w)
	log.Printf("%s %s -> 500: panic: %v\n%s", req.Method, req.URL.Path, panicVal, debug.Stack())
}
