package ports

import (
	"context"
	"time"
)

// SensorReadingInput is the DTO handed from the HTTP layer to the ingest
// pipeline.
type SensorReadingInput struct {
	DeviceID    string
	PatientID   string
	Temperature float64
	MotionLevel int
	SoundLevel  int
	Timestamp   time.Time
}

type ReadingService interface {
	Process(ctx context.Context, in SensorReadingInput) error
}
