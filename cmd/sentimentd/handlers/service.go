package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apierr "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/api/types/errors"
	apisent "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/api/types/sentiment"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/analyzer"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/metrics"
)

// RootHandler serves the service card at GET / .
func RootHandler(version string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, apisent.ServiceCard{
			Message: "Sentiment Analysis API",
			Version: version,
			Health:  "/health",
			Metrics: "/metrics",
		})
	}
}

// HealthHandler serves GET /health .
//
// It answers 200 while the model is loaded, 503 otherwise.
// Container orchestrators probe this endpoint to decide restarts.
func HealthHandler(ana analyzer.Analyzer, version string, mtr *metrics.Set) echo.HandlerFunc {
	const endpoint = "/health"

	return func(c echo.Context) error {
		begin := time.Now()
		defer func() {
			mtr.ObserveDuration(endpoint, time.Since(begin).Seconds())
		}()

		if ana == nil || ana.ModelVersion() == "" {
			mtr.RequestDone(endpoint, metrics.StatusError)
			log.Error().Str("event", "health_check_failed").Msg("model is not loaded")
			return apierr.ServiceUnavailable("service unhealthy", nil)
		}

		mtr.RequestDone(endpoint, metrics.StatusSuccess)
		return c.JSON(http.StatusOK, apisent.Health{
			Status:      "healthy",
			Version:     version,
			ModelLoaded: true,
		})
	}
}
