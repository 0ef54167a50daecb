//go:build integration_pg || integration_ch

package testkit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Backend describes a disposable database container
type Backend struct {
	Image string
	Port  nat.Port
	Env   map[string]string
	Ready wait.Strategy
	DSN   func(host, port string) string
}

// Postgres is the relational backend used by the integration suites
var Postgres = Backend{
	Image: "postgres:16-alpine",
	Port:  "5432/tcp",
	Env:   map[string]string{"POSTGRES_USER": "cinebot", "POSTGRES_PASSWORD": "cinebot", "POSTGRES_DB": "cinebot"},
	Ready: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	DSN: func(host, port string) string {
		return fmt.Sprintf("postgres://cinebot:cinebot@%s:%s/cinebot?sslmode=disable", host, port)
	},
}

// ClickHouse is the columnar usage log backend
var ClickHouse = Backend{
	Image: "clickhouse/clickhouse-server:24.3-alpine",
	Port:  "9000/tcp",
	Env:   map[string]string{"CLICKHOUSE_USER": "cinebot", "CLICKHOUSE_PASSWORD": "cinebot", "CLICKHOUSE_DB": "cinebot"},
	Ready: wait.ForLog("Ready for connections"),
	DSN: func(host, port string) string {
		return fmt.Sprintf("clickhouse://cinebot:cinebot@%s:%s/cinebot", host, port)
	},
}

// Start runs b until the test ends and returns its DSN
func Start(t *testing.T, b Backend) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        b.Image,
			ExposedPorts: []string{string(b.Port)},
			Env:          b.Env,
			WaitingFor:   wait.ForAll(wait.ForListeningPort(b.Port), b.Ready).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start %s: %v", b.Image, err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("%s host: %v", b.Image, err)
	}
	port, err := c.MappedPort(ctx, b.Port)
	if err != nil {
		t.Fatalf("%s port: %v", b.Image, err)
	}
	return b.DSN(host, port.Port())
}
