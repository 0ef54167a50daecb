package httpkit

import (
	"net/http"
	"strconv"

	perrs "cinebot/internal/platform/errors"
	pnet "cinebot/internal/platform/net"
)

// User returns the authenticated user id from the request context
func User(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return uid, nil
}

// Actor returns the authenticated user as a numeric chat user id
// non numeric ids are reported through ok=false so callers can pick the error
func Actor(r *http.Request) (id int64, ok bool, err error) {
	uid, err := User(r)
	if err != nil {
		return 0, false, err
	}
	id, parseErr := strconv.ParseInt(uid, 10, 64)
	if parseErr != nil {
		return 0, false, nil
	}
	return id, true, nil
}
