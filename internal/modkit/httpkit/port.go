package httpkit

import (
	"net/http"
	"strings"

	perrs "cinebot/internal/platform/errors"
)

// TokenFunc maps a bearer token to a principal id
type TokenFunc func(token string) (userID string, err error)

// Port implements middleware.AuthPort over the Authorization header
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a token parser
func NewPortFunc(fn TokenFunc) *Port { return &Port{parse: fn} }

// Parse reads "Authorization: Bearer <token>", the scheme is case insensitive
// any failure surfaces as unauthorized without echoing the parser error
func (p *Port) Parse(r *http.Request) (string, error) {
	scheme, token, _ := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	token = strings.TrimSpace(token)
	if !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	if p.parse == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	uid, err := p.parse(token)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return uid, nil
}
