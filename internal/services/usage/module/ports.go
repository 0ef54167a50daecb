package module

import (
	"context"
	"time"

	"cinebot/internal/services/usage/domain"
	ussvc "cinebot/internal/services/usage/service"
)

// Ports is what the usage module offers other modules
type Ports struct {
	Usage domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Port returns the typed usage port
func (m *Module) Port() domain.ServicePort { return m.ports.Usage }

type adaptUsagePort struct{ svc ussvc.Service }

// Record appends one usage record
func (a adaptUsagePort) Record(ctx context.Context, in domain.RecordInput) error {
	return a.svc.Record(ctx, in)
}

// Aggregate returns stats for the admin actor
func (a adaptUsagePort) Aggregate(ctx context.Context, actor int64, now time.Time) (domain.Stats, error) {
	return a.svc.Aggregate(ctx, actor, now)
}
