package middle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/dekarrin/shrdlite/server/dao/inmem"
	"github.com/dekarrin/shrdlite/server/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth_MissingTokenRejected(t *testing.T) {
	users := inmem.NewUsersRepository()
	mw := RequireAuth(users, []byte("secret"), 0)

	called := false
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodGet, "/worlds", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ValidTokenPasses(t *testing.T) {
	users := inmem.NewUsersRepository()
	u, err := users.Create(context.Background(), dao.User{Username: "op", Password: "hash", Role: dao.Operator})
	require.NoError(t, err)

	secret := []byte("secret")
	tok, err := token.Generate(secret, u, time.Hour)
	require.NoError(t, err)

	mw := RequireAuth(users, secret, 0)

	var sawUser dao.User
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawUser = r.Context().Value(AuthUser).(dao.User)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/worlds", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, u.ID, sawUser.ID)
}

func TestDontPanic_RecoversAndReturns500(t *testing.T) {
	mw := DontPanic()
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/worlds", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() { h.ServeHTTP(rec, req) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
