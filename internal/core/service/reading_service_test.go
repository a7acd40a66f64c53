package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/carewatch/monitoring-api/internal/core/domain"
	"github.com/carewatch/monitoring-api/internal/core/ports"
	"github.com/carewatch/monitoring-api/internal/validation"
)

type stubReadingRepo struct {
	inserted  []*domain.SensorReading
	insertErr error
}

func (r *stubReadingRepo) Insert(_ context.Context, reading *domain.SensorReading) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, reading)
	return nil
}

func (r *stubReadingRepo) ListRecent(context.Context, string, int, time.Time) ([]domain.SensorReading, error) {
	return nil, nil
}

type stubDedup struct {
	seen     map[string]bool
	checkErr error
	marked   int
}

func dedupKey(deviceID string, ts time.Time) string {
	return deviceID + "|" + ts.UTC().Format(time.RFC3339)
}

func (d *stubDedup) IsDuplicate(_ context.Context, deviceID string, ts time.Time) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[dedupKey(deviceID, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, deviceID string, ts time.Time) error {
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	d.seen[dedupKey(deviceID, ts)] = true
	d.marked++
	return nil
}

func validInput() ports.SensorReadingInput {
	return ports.SensorReadingInput{
		DeviceID:    "pi-001",
		PatientID:   "patient-7",
		Temperature: 22.5,
		MotionLevel: 40,
		SoundLevel:  120,
		Timestamp:   time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC),
	}
}

func TestReadingService_Process(t *testing.T) {
	repo := &stubReadingRepo{}
	dedup := &stubDedup{}
	svc := NewReadingService(repo, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), validInput()); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.inserted))
	}
	if dedup.marked != 1 {
		t.Fatalf("expected dedup mark, got %d", dedup.marked)
	}
	got := repo.inserted[0]
	if got.DeviceID != "pi-001" || got.Temperature != 22.5 {
		t.Fatalf("unexpected persisted reading: %+v", got)
	}
}

func TestReadingService_Process_SkipsDuplicate(t *testing.T) {
	repo := &stubReadingRepo{}
	dedup := &stubDedup{}
	svc := NewReadingService(repo, dedup, zerolog.Nop())

	in := validInput()
	if err := svc.Process(context.Background(), in); err != nil {
		t.Fatalf("first process failed: %v", err)
	}
	if err := svc.Process(context.Background(), in); err != nil {
		t.Fatalf("duplicate must be dropped silently: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("duplicate must not be inserted, got %d inserts", len(repo.inserted))
	}
}

func TestReadingService_Process_DedupFailureIsNonFatal(t *testing.T) {
	repo := &stubReadingRepo{}
	dedup := &stubDedup{checkErr: errors.New("redis down")}
	svc := NewReadingService(repo, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), validInput()); err != nil {
		t.Fatalf("process must survive a dedup outage: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("reading must still be inserted, got %d", len(repo.inserted))
	}
}

func TestReadingService_Process_OutOfRange(t *testing.T) {
	repo := &stubReadingRepo{}
	svc := NewReadingService(repo, &stubDedup{}, zerolog.Nop())

	cases := []struct {
		name   string
		mutate func(*ports.SensorReadingInput)
		kind   validation.ErrorKind
	}{
		{"empty device", func(in *ports.SensorReadingInput) { in.DeviceID = "" }, validation.InvalidInput},
		{"temperature high", func(in *ports.SensorReadingInput) { in.Temperature = 51 }, validation.InvalidRange},
		{"temperature low", func(in *ports.SensorReadingInput) { in.Temperature = -1 }, validation.InvalidRange},
		{"motion high", func(in *ports.SensorReadingInput) { in.MotionLevel = 101 }, validation.InvalidRange},
		{"sound high", func(in *ports.SensorReadingInput) { in.SoundLevel = 1024 }, validation.InvalidRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			err := svc.Process(context.Background(), in)
			var ve *validation.Error
			if !errors.As(err, &ve) || ve.Kind != tc.kind {
				t.Fatalf("expected %s error, got %v", tc.kind, err)
			}
		})
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("rejected readings must not be inserted, got %d", len(repo.inserted))
	}
}

func TestReadingService_Process_InsertFailure(t *testing.T) {
	repo := &stubReadingRepo{insertErr: errors.New("connection refused")}
	svc := NewReadingService(repo, &stubDedup{}, zerolog.Nop())

	if err := svc.Process(context.Background(), validInput()); err == nil {
		t.Fatalf("insert failure must surface")
	}
}
