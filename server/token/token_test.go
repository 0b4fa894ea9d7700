package token

import (
	"context"
	"testing"
	"time"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/dekarrin/shrdlite/server/dao/inmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	u := dao.User{Password: hash}
	assert.NoError(t, CheckPassword(u, "correct horse battery staple"))
	assert.Error(t, CheckPassword(u, "wrong password"))
}

func TestGenerateAndValidate(t *testing.T) {
	users := inmem.NewUsersRepository()
	ctx := context.Background()

	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	u, err := users.Create(ctx, dao.User{Username: "op", Password: hash, Role: dao.Operator})
	require.NoError(t, err)

	secret := []byte("test-secret")
	tok, err := Generate(secret, u, time.Hour)
	require.NoError(t, err)

	got, err := Validate(ctx, tok, secret, users)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestValidate_WrongSecretRejected(t *testing.T) {
	users := inmem.NewUsersRepository()
	ctx := context.Background()

	u, err := users.Create(ctx, dao.User{Username: "op", Password: "hash"})
	require.NoError(t, err)

	tok, err := Generate([]byte("secret-a"), u, time.Hour)
	require.NoError(t, err)

	_, err = Validate(ctx, tok, []byte("secret-b"), users)
	assert.Error(t, err)
}

func TestValidate_TokenEpochBumpInvalidatesOldToken(t *testing.T) {
	users := inmem.NewUsersRepository()
	ctx := context.Background()

	u, err := users.Create(ctx, dao.User{Username: "op", Password: "hash"})
	require.NoError(t, err)
	secret := []byte("s")

	tok, err := Generate(secret, u, time.Hour)
	require.NoError(t, err)

	u.TokenEpoch = time.Now()
	_, err = users.Update(ctx, u.ID, u)
	require.NoError(t, err)

	_, err = Validate(ctx, tok, secret, users)
	assert.Error(t, err)
}

func TestFromAuthHeader(t *testing.T) {
	tok, err := FromAuthHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	_, err = FromAuthHeader("")
	assert.Error(t, err)

	_, err = FromAuthHeader("Basic abc")
	assert.Error(t, err)
}
