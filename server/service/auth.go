package service

import (
	"context"
	"errors"
	"time"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/dekarrin/shrdlite/server/serr"
	"github.com/dekarrin/shrdlite/server/token"
	"github.com/google/uuid"
)

// Login verifies the provided username and password against the existing
// user in persistence and returns that user if they match.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the credentials do not
// match a user or if the password is incorrect, it will match
// serr.ErrBadCredentials. If the error occurred due to an unexpected
// problem with the DB, it will match serr.ErrDB.
func (svc Service) Login(ctx context.Context, username string, password string) (dao.User, error) {
	user, err := svc.DB.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.User{}, serr.New("", serr.ErrBadCredentials)
		}
		return dao.User{}, serr.New("", err, serr.ErrDB)
	}

	if err := token.CheckPassword(user, password); err != nil {
		return dao.User{}, serr.New("", serr.ErrBadCredentials)
	}

	user.LastLogin = time.Now()
	user, err = svc.DB.Users().Update(ctx, user.ID, user)
	if err != nil {
		return dao.User{}, serr.New("could not update last login time", err, serr.ErrDB)
	}

	return user, nil
}

// Logout bumps the TokenEpoch of the user identified by who, invalidating
// every bearer token issued to them before this call. Returns the updated
// user entity.
func (svc Service) Logout(ctx context.Context, who uuid.UUID) (dao.User, error) {
	existing, err := svc.DB.Users().GetByID(ctx, who)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.User{}, serr.New("", serr.ErrNotFound)
		}
		return dao.User{}, serr.New("could not retrieve user", err, serr.ErrDB)
	}

	existing.TokenEpoch = time.Now()

	updated, err := svc.DB.Users().Update(ctx, existing.ID, existing)
	if err != nil {
		return dao.User{}, serr.New("could not update user", err, serr.ErrDB)
	}

	return updated, nil
}
