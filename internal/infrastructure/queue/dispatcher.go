package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/carewatch/monitoring-api/internal/api/metrics"
	"github.com/carewatch/monitoring-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes sensor readings to a fixed set of workers using
// consistent hashing on the device id, guaranteeing per-device ordering.
type Dispatcher struct {
	workers []chan ports.SensorReadingInput
	service ports.ReadingService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ReadingService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.SensorReadingInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.SensorReadingInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a reading to the worker responsible for its device.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(reading ports.SensorReadingInput) {
	i := d.shardIndex(reading.DeviceID)
	d.workers[i] <- reading
	metrics.ReadingsQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple readings preserving per-device ordering.
func (d *Dispatcher) EnqueueBatch(readings []ports.SensorReadingInput) {
	for _, r := range readings {
		d.Enqueue(r)
	}
}

// shardIndex maps a device id deterministically to a worker index.
func (d *Dispatcher) shardIndex(deviceID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(deviceID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.SensorReadingInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case reading, ok := <-ch:
			if !ok {
				return
			}
			metrics.ReadingsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.service.Process(ctx, reading); err != nil {
				d.log.Error().Err(err).
					Str("device", reading.DeviceID).
					Int("worker_id", id).
					Msg("reading processing failed")
			}
		}
	}
}
