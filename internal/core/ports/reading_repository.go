package ports

import (
	"context"
	"time"

	"github.com/carewatch/monitoring-api/internal/core/domain"
)

// ReadingRepository defines the interface for telemetry persistence.
type ReadingRepository interface {
	Insert(ctx context.Context, reading *domain.SensorReading) error
	ListRecent(ctx context.Context, deviceID string, limit int, since time.Time) ([]domain.SensorReading, error)
}
