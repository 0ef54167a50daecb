// Package api composes the admin HTTP surface under /api/v1
package api

import (
	"crypto/subtle"
	"strconv"

	"cinebot/internal/modkit"
	"cinebot/internal/modkit/httpkit"
	"cinebot/internal/modkit/module"
	"cinebot/internal/modkit/swaggerkit"
	"cinebot/internal/platform/config"
	perr "cinebot/internal/platform/errors"
	phttp "cinebot/internal/platform/net/http"

	metamod "cinebot/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Deps modkit.Deps

	// Modules are mounted behind bearer auth
	Modules []module.Module

	// Token is the shared admin bearer token, empty rejects every protected call
	Token string
	// Operator is the user id attached to authenticated calls
	Operator int64

	EnableSwagger  bool
	EnableProfiler bool
}

// OptionsFromConfig reads the HTTP knobs
// API_TOKEN is the bearer token for protected routes
// API_SWAGGER (default false) serves /api/docs
// API_PROFILER (default false) serves pprof under /debug
func OptionsFromConfig(cfg config.Conf) Options {
	a := cfg.Prefix("API_")
	return Options{
		Token:          a.MayString("TOKEN", ""),
		EnableSwagger:  a.MayBool("SWAGGER", false),
		EnableProfiler: a.MayBool("PROFILER", false),
	}
}

// Mount mounts the API onto the given router
func Mount(r phttp.Router, opt Options) {
	meta := metamod.New(opt.Deps)
	auth := httpkit.NewPortFunc(tokenFunc(opt.Token, opt.Operator))

	swaggerkit.Describe("cinebot admin", docPaths()...)
	swaggerkit.Mount(r, "/api/docs", opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		module.Register(meta.Name(), meta.Ports())
		meta.MountRoutes(api)

		httpkit.Protected(api, auth, func(pr httpkit.Router) {
			for _, m := range opt.Modules {
				module.Register(m.Name(), m.Ports())
				m.MountRoutes(pr)
			}
		})
	})
}

// tokenFunc accepts exactly one token and maps it to the operator id
func tokenFunc(want string, operator int64) httpkit.TokenFunc {
	uid := strconv.FormatInt(operator, 10)
	return func(got string) (string, error) {
		if want == "" || subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
			return "", perr.Unauthorizedf("invalid bearer token")
		}
		return uid, nil
	}
}

func docPaths() []swaggerkit.Path {
	return []swaggerkit.Path{
		{Method: "get", Route: "/meta/health", Summary: "Health check", Tag: "Meta"},
		{Method: "get", Route: "/meta/ready", Summary: "Readiness with dependency checks", Tag: "Meta"},
		{Method: "get", Route: "/meta/version", Summary: "Build and version info", Tag: "Meta"},
		{Method: "get", Route: "/meta/service", Summary: "Service info and uptime", Tag: "Meta"},
		{Method: "get", Route: "/usage/stats", Summary: "Usage totals, unique users and the last 24 hours", Tag: "Usage", Secured: true},
		{Method: "get", Route: "/watchlist/{owner}", Summary: "List a user's watchlist in insertion order", Tag: "Watchlist", Secured: true},
		{Method: "delete", Route: "/watchlist/{owner}/{type}/{id}", Summary: "Remove one watchlist entry", Tag: "Watchlist", Secured: true},
	}
}
