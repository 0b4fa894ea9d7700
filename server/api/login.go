package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/dekarrin/shrdlite/server/middle"
	"github.com/dekarrin/shrdlite/server/result"
	"github.com/dekarrin/shrdlite/server/serr"
	"github.com/dekarrin/shrdlite/server/token"
)

// HTTPCreateLogin returns a HandlerFunc that logs in a user with a username
// and password and returns a bearer token for that user.
func (api API) HTTPCreateLogin() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateLogin)
}

func (api API) epCreateLogin(req *http.Request) result.Result {
	loginData := LoginRequest{}
	if err := parseJSON(req, &loginData); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	if loginData.Username == "" {
		return result.BadRequest("username: property is empty or missing from request", "empty username")
	}
	if loginData.Password == "" {
		return result.BadRequest("password: property is empty or missing from request", "empty password")
	}

	user, err := api.Backend.Login(req.Context(), loginData.Username, loginData.Password)
	if err != nil {
		if errors.Is(err, serr.ErrBadCredentials) {
			return result.Unauthorized(serr.ErrBadCredentials.Error(), "user '%s': %s", loginData.Username, err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	tok, err := token.Generate(api.Secret, user, tokenTTL)
	if err != nil {
		return result.InternalServerError("could not generate JWT: " + err.Error())
	}

	resp := LoginResponse{Token: tok, UserID: user.ID.String()}
	return result.Created(resp, "user '"+user.Username+"' successfully logged in")
}

// HTTPDeleteLogin returns a HandlerFunc that invalidates every bearer token
// previously issued to a user (by bumping its TokenEpoch). Only an admin
// can delete a login for someone other than themselves.
func (api API) HTTPDeleteLogin() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteLogin)
}

func (api API) epDeleteLogin(req *http.Request) result.Result {
	id := requireIDParam(req)
	user := req.Context().Value(middle.AuthUser).(dao.User)

	if id != user.ID && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) logout of user %s: forbidden", user.Username, user.Role, id)
	}

	loggedOut, err := api.Backend.Logout(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not log out user: " + err.Error())
	}

	otherStr := "self"
	if id != user.ID {
		otherStr = fmt.Sprintf("user '%s'", loggedOut.Username)
	}
	return result.NoContent("user '%s' successfully logged out %s", user.Username, otherStr)
}
