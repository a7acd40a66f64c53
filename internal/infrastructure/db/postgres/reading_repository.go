package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/carewatch/monitoring-api/internal/core/domain"
)

// ReadingRepository implements ports.ReadingRepository on PostgreSQL.
type ReadingRepository struct {
	db DB
}

func NewReadingRepository(db DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

func (r *ReadingRepository) Insert(ctx context.Context, reading *domain.SensorReading) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sensor_readings (device_id, patient_id, temperature, motion_level, sound_level, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, reading.DeviceID, reading.PatientID, reading.Temperature, reading.MotionLevel, reading.SoundLevel, reading.Timestamp)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

func (r *ReadingRepository) ListRecent(ctx context.Context, deviceID string, limit int, since time.Time) ([]domain.SensorReading, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, device_id, COALESCE(patient_id, ''), temperature, motion_level, sound_level, recorded_at
		FROM sensor_readings
		WHERE device_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at DESC
		LIMIT $3
	`, deviceID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	defer rows.Close()

	readings := make([]domain.SensorReading, 0, limit)
	for rows.Next() {
		var sr domain.SensorReading
		if err := rows.Scan(&sr.ID, &sr.DeviceID, &sr.PatientID, &sr.Temperature, &sr.MotionLevel, &sr.SoundLevel, &sr.Timestamp); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		readings = append(readings, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	return readings, nil
}
