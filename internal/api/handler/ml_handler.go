package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/carewatch/monitoring-api/internal/api/metrics"
	"github.com/carewatch/monitoring-api/internal/core/domain"
	"github.com/carewatch/monitoring-api/internal/infrastructure/mlclient"
	"github.com/carewatch/monitoring-api/internal/validation"
)

// Classifier is the interface the handler uses to reach the ML service.
type Classifier interface {
	Classify(ctx context.Context, features mlclient.Features) (*mlclient.Prediction, error)
	HealthCheck(ctx context.Context) (*mlclient.Health, error)
}

// MLHandler proxies activity classification requests to the ML service.
type MLHandler struct {
	classifier Classifier
	log        zerolog.Logger
}

func NewMLHandler(classifier Classifier, log zerolog.Logger) *MLHandler {
	return &MLHandler{classifier: classifier, log: log}
}

type classifyRequest struct {
	Temperature float64  `json:"temperature"`
	MotionLevel int      `json:"motion_level"`
	SoundLevel  int      `json:"sound_level"`
	HourOfDay   *int     `json:"hour_of_day,omitempty"`
	MotionTrend *float64 `json:"motion_trend,omitempty"`
}

type classifyResponse struct {
	ActivityClass string  `json:"activity_class"`
	Confidence    float64 `json:"confidence"`
	RiskLevel     string  `json:"risk_level"`
	RiskColor     string  `json:"risk_color"`
	Timestamp     string  `json:"timestamp"`
}

type mlHealthResponse struct {
	MLServiceAvailable bool     `json:"ml_service_available"`
	ModelLoaded        bool     `json:"model_loaded"`
	Classes            []string `json:"classes"`
}

// Classify handles POST /v1/ml/classify: range-checks the reading, derives
// the feature vector, and forwards it to the ML service.
//
// @Summary      Classify a sensor reading
// @Tags         ml
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      classifyRequest  true  "Sensor values"
// @Success      200   {object}  classifyResponse
// @Failure      400   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /v1/ml/classify [post]
func (h *MLHandler) Classify(c echo.Context) error {
	var req classifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := validation.ValidateTemperature(req.Temperature); err != nil {
		return err
	}
	if err := validation.ValidateMotionLevel(req.MotionLevel); err != nil {
		return err
	}
	if err := validation.ValidateSoundLevel(req.SoundLevel); err != nil {
		return err
	}

	now := time.Now()
	trend := 0.0
	if req.MotionTrend != nil {
		trend = *req.MotionTrend
	}
	features := mlclient.BuildFeatures(req.Temperature, req.MotionLevel, req.SoundLevel, now, trend)
	if req.HourOfDay != nil {
		features.HourOfDay = *req.HourOfDay
		features.IsNight = 0
		if features.HourOfDay >= 22 || features.HourOfDay < 6 {
			features.IsNight = 1
		}
	}

	prediction, err := h.classifier.Classify(c.Request().Context(), features)
	if err != nil {
		h.log.Error().Err(err).Msg("ml classification failed")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "classification service unavailable")
	}

	metrics.ClassificationsTotal.WithLabelValues(prediction.ActivityClass).Inc()

	level, color := domain.RiskLevel(prediction.ActivityClass)
	return c.JSON(http.StatusOK, classifyResponse{
		ActivityClass: prediction.ActivityClass,
		Confidence:    prediction.Confidence,
		RiskLevel:     level,
		RiskColor:     color,
		Timestamp:     now.UTC().Format(time.RFC3339),
	})
}

// Health handles GET /v1/ml/health and reports ML service availability.
//
// @Summary      ML service health
// @Tags         ml
// @Produce      json
// @Success      200  {object}  mlHealthResponse
// @Failure      503  {object}  mlHealthResponse
// @Router       /v1/ml/health [get]
func (h *MLHandler) Health(c echo.Context) error {
	health, err := h.classifier.HealthCheck(c.Request().Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("ml service health check failed")
		return c.JSON(http.StatusServiceUnavailable, mlHealthResponse{
			MLServiceAvailable: false,
		})
	}

	return c.JSON(http.StatusOK, mlHealthResponse{
		MLServiceAvailable: true,
		ModelLoaded:        health.ModelLoaded,
		Classes:            domain.ActivityClasses,
	})
}
