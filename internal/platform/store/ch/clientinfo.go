package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo labels our queries in system.query_log
// the order is app tag, role, go, commit, host and blank values are left out
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	host, _ := os.Hostname()

	var ci clickhouse.ClientInfo
	for _, p := range [...][2]string{
		{"cinebot", tag},
		{"role", role},
		{"go", runtime.Version()},
		{"commit", revision()},
		{"host", host},
	} {
		if v := strings.TrimSpace(p[1]); v != "" {
			ci.Products = append(ci.Products, struct{ Name, Version string }{p[0], v})
		}
	}
	return ci
}

// revision is the short vcs hash stamped by go build, "+dirty" marks local edits
func revision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var sha, dirty string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			sha = s.Value
		case "vcs.modified":
			if s.Value == "true" {
				dirty = "+dirty"
			}
		}
	}
	if len(sha) < 7 {
		return ""
	}
	return sha[:7] + dirty
}
