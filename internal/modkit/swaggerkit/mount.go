// Package swaggerkit serves the admin API document and its browser
package swaggerkit

import (
	"net/http"
	"strings"

	phttp "cinebot/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves the described operations under prefix when enabled
// prefix/doc.json is the raw document, prefix/ is the UI reading it
func Mount(r phttp.Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	prefix = "/" + strings.Trim(prefix, "/")
	doc := prefix + "/doc.json"

	r.Get(prefix, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, prefix+"/", http.StatusPermanentRedirect)
	})
	r.Get(doc, serveDocJSON())
	r.Handle(prefix+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("cinebot"),
		httpSwagger.URL(doc),
	))
}
