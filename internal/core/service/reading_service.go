package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/carewatch/monitoring-api/internal/api/metrics"
	"github.com/carewatch/monitoring-api/internal/core/domain"
	"github.com/carewatch/monitoring-api/internal/core/ports"
	"github.com/carewatch/monitoring-api/internal/validation"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, deviceID string, ts time.Time) (bool, error)
	Mark(ctx context.Context, deviceID string, ts time.Time) error
}

type readingService struct {
	repo  ports.ReadingRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewReadingService returns a ReadingService implementation.
func NewReadingService(repo ports.ReadingRepository, dedup DedupChecker, log zerolog.Logger) ports.ReadingService {
	return &readingService{repo: repo, dedup: dedup, log: log}
}

// Process validates, deduplicates, and persists a single sensor reading.
func (s *readingService) Process(ctx context.Context, in ports.SensorReadingInput) error {
	start := time.Now()

	// 1. Range checks. Readings arrive from untrusted devices and the queue
	// accepts before validation, so every sample is re-checked here.
	if err := validateReading(in); err != nil {
		metrics.ReadingsErrorsTotal.WithLabelValues("out_of_range").Inc()
		return fmt.Errorf("process reading: %w", err)
	}

	// 2. Idempotency check: silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, in.DeviceID, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("device", in.DeviceID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.ReadingsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("device", in.DeviceID).Msg("duplicate reading skipped")
		return nil
	}
	metrics.ReadingsDedupTotal.WithLabelValues("miss").Inc()

	// 3. Mark as processed before writing (prevents duplicate processing on retry).
	if markErr := s.dedup.Mark(ctx, in.DeviceID, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("device", in.DeviceID).Msg("failed to set dedup key")
	}

	reading := &domain.SensorReading{
		DeviceID:    in.DeviceID,
		PatientID:   in.PatientID,
		Temperature: in.Temperature,
		MotionLevel: in.MotionLevel,
		SoundLevel:  in.SoundLevel,
		Timestamp:   in.Timestamp.UTC(),
	}

	if err := s.repo.Insert(ctx, reading); err != nil {
		metrics.ReadingsErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("process reading: insert: %w", err)
	}

	metrics.ReadingsProcessedTotal.Inc()
	metrics.ReadingProcessingDuration.Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("device", in.DeviceID).
		Float64("temperature", in.Temperature).
		Int("motion", in.MotionLevel).
		Int("sound", in.SoundLevel).
		Msg("reading processed")

	return nil
}

func validateReading(in ports.SensorReadingInput) error {
	if in.DeviceID == "" {
		return validation.NewError(validation.InvalidInput, "device id cannot be empty")
	}
	if err := validation.ValidateTemperature(in.Temperature); err != nil {
		return err
	}
	if err := validation.ValidateMotionLevel(in.MotionLevel); err != nil {
		return err
	}
	return validation.ValidateSoundLevel(in.SoundLevel)
}
