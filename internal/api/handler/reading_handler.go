package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carewatch/monitoring-api/internal/core/domain"
	"github.com/carewatch/monitoring-api/internal/core/ports"
	"github.com/carewatch/monitoring-api/internal/validation"
)

const (
	defaultListLimit   = 100
	maxListLimit       = 1000
	defaultListMinutes = 60
)

// ReadingDispatcher is the interface the handler uses to enqueue readings.
type ReadingDispatcher interface {
	Enqueue(reading ports.SensorReadingInput)
	EnqueueBatch(readings []ports.SensorReadingInput)
}

// ReadingHandler handles sensor telemetry ingestion and queries.
type ReadingHandler struct {
	dispatcher ReadingDispatcher
	repo       ports.ReadingRepository
}

func NewReadingHandler(dispatcher ReadingDispatcher, repo ports.ReadingRepository) *ReadingHandler {
	return &ReadingHandler{dispatcher: dispatcher, repo: repo}
}

// Receive handles POST /v1/readings: enqueues a single reading, returns 202.
//
// @Summary      Ingest a single sensor reading
// @Tags         readings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sensorReadingRequest  true  "Sensor reading"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/readings [post]
func (h *ReadingHandler) Receive(c echo.Context) error {
	var req sensorReadingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if err := validateReadingRequest(req); err != nil {
		return err
	}

	h.dispatcher.Enqueue(toReadingInput(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "reading accepted"})
}

// ReceiveBatch handles POST /v1/readings/batch: enqueues a batch, returns 202.
//
// @Summary      Ingest a batch of sensor readings
// @Tags         readings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []sensorReadingRequest  true  "Array of sensor readings"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/readings/batch [post]
func (h *ReadingHandler) ReceiveBatch(c echo.Context) error {
	var reqs []sensorReadingRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.SensorReadingInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("reading[%d]: %s", i, err.Error()))
		}
		if err := validateReadingRequest(req); err != nil {
			return fmt.Errorf("reading[%d]: %w", i, err)
		}
		inputs = append(inputs, toReadingInput(req))
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "readings accepted",
		Count:   len(inputs),
	})
}

type listReadingsResponse struct {
	Readings []domain.SensorReading `json:"readings"`
	Count    int                    `json:"count"`
}

// List handles GET /v1/readings?device_id=&limit=&minutes=.
//
// @Summary      List recent readings for a device
// @Tags         readings
// @Produce      json
// @Security     BearerAuth
// @Param        device_id  query     string  true   "Device identifier"
// @Param        limit      query     int     false  "Maximum rows (default 100, max 1000)"
// @Param        minutes    query     int     false  "Look-back window in minutes (default 60, max 10080)"
// @Success      200        {object}  listReadingsResponse
// @Failure      400        {object}  map[string]string
// @Router       /v1/readings [get]
func (h *ReadingHandler) List(c echo.Context) error {
	deviceID := c.QueryParam("device_id")
	if deviceID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "device_id is required")
	}

	limit := defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		limit = n
	}
	limit, err := validation.ValidateLimit(limit, maxListLimit)
	if err != nil {
		return err
	}

	minutes := int64(defaultListMinutes)
	if raw := c.QueryParam("minutes"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "minutes must be an integer")
		}
		minutes = n
	}
	if err := validation.ValidateTimeRangeMinutes(minutes); err != nil {
		return err
	}

	since := time.Now().UTC().Add(-time.Duration(minutes) * time.Minute)
	readings, err := h.repo.ListRecent(c.Request().Context(), deviceID, limit, since)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listReadingsResponse{Readings: readings, Count: len(readings)})
}

// validateReadingRequest runs the firewall range checks before a reading is
// accepted into the queue.
func validateReadingRequest(req sensorReadingRequest) error {
	if err := validation.ValidateTemperature(req.Temperature); err != nil {
		return err
	}
	if err := validation.ValidateMotionLevel(req.MotionLevel); err != nil {
		return err
	}
	return validation.ValidateSoundLevel(req.SoundLevel)
}

// toReadingInput maps the HTTP request to the service DTO.
func toReadingInput(r sensorReadingRequest) ports.SensorReadingInput {
	return ports.SensorReadingInput{
		DeviceID:    r.DeviceID,
		PatientID:   r.PatientID,
		Temperature: r.Temperature,
		MotionLevel: r.MotionLevel,
		SoundLevel:  r.SoundLevel,
		Timestamp:   r.Timestamp,
	}
}
