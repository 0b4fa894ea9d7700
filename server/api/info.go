package api

import (
	"net/http"

	"github.com/dekarrin/shrdlite/internal/version"
	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/dekarrin/shrdlite/server/middle"
	"github.com/dekarrin/shrdlite/server/result"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API
// and server.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	loggedIn := req.Context().Value(middle.AuthLoggedIn).(bool)

	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.Shrdlite = version.Current

	userStr := "unauthed client"
	if loggedIn {
		user := req.Context().Value(middle.AuthUser).(dao.User)
		userStr = "user '" + user.Username + "'"
	}
	return result.OK(resp, "%s got API info", userStr)
}
