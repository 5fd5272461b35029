package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apierr "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/api/types/errors"
	apihist "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/api/types/history"
	kdb "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/db"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/metrics"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/utils"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// GetHistoryHandler serves GET /history .
func GetHistoryHandler(hist kdb.HistoryInterface, mtr *metrics.Set) echo.HandlerFunc {
	const endpoint = "/history"

	return func(c echo.Context) error {
		ctx := c.Request().Context()
		begin := time.Now()
		defer func() {
			mtr.ObserveDuration(endpoint, time.Since(begin).Seconds())
		}()

		limit := defaultHistoryLimit
		if rawLimit := c.QueryParam("limit"); rawLimit != "" {
			parsed, err := strconv.Atoi(rawLimit)
			if err != nil || parsed < 1 {
				mtr.RequestDone(endpoint, metrics.StatusError)
				return apierr.BadRequest(`"limit" should be a positive integer`, err)
			}
			limit = parsed
			if maxHistoryLimit < limit {
				limit = maxHistoryLimit
			}
		}

		predictions, err := hist.Recent(ctx, limit)
		if err != nil {
			mtr.RequestDone(endpoint, metrics.StatusError)
			if errors.Is(err, kdb.ErrHistoryDisabled) {
				return apierr.ServiceUnavailable("prediction history is not enabled", err)
			}
			return apierr.InternalServerError(err)
		}

		mtr.RequestDone(endpoint, metrics.StatusSuccess)
		found := utils.Map(predictions, composeDetail)
		return c.JSON(http.StatusOK, found)
	}
}

func composeDetail(p kdb.Prediction) apihist.Detail {
	return apihist.Detail{
		TextLength:       p.TextLength,
		Sentiment:        string(p.Verdict),
		Confidence:       p.Confidence,
		ProcessingTimeMs: float64(p.ProcessingTime) / float64(time.Millisecond),
		ModelVersion:     p.ModelVersion,
		Timestamp:        p.Timestamp,
	}
}

// GetHistoryStatsHandler serves GET /history/stats .
func GetHistoryStatsHandler(hist kdb.HistoryInterface, mtr *metrics.Set) echo.HandlerFunc {
	const endpoint = "/history/stats"

	return func(c echo.Context) error {
		ctx := c.Request().Context()
		begin := time.Now()
		defer func() {
			mtr.ObserveDuration(endpoint, time.Since(begin).Seconds())
		}()

		counts, err := hist.Stats(ctx)
		if err != nil {
			mtr.RequestDone(endpoint, metrics.StatusError)
			if errors.Is(err, kdb.ErrHistoryDisabled) {
				return apierr.ServiceUnavailable("prediction history is not enabled", err)
			}
			return apierr.InternalServerError(err)
		}

		mtr.RequestDone(endpoint, metrics.StatusSuccess)
		stats := apihist.Stats{Counts: map[string]int64{}}
		for verdict, count := range counts {
			stats.Counts[string(verdict)] = count
		}
		return c.JSON(http.StatusOK, stats)
	}
}

// PurgeHistoryHandler serves DELETE /history . Admin only.
func PurgeHistoryHandler(hist kdb.HistoryInterface, mtr *metrics.Set) echo.HandlerFunc {
	const endpoint = "/history"

	return func(c echo.Context) error {
		ctx := c.Request().Context()
		begin := time.Now()
		defer func() {
			mtr.ObserveDuration(endpoint, time.Since(begin).Seconds())
		}()

		deleted, err := hist.Purge(ctx)
		if err != nil {
			mtr.RequestDone(endpoint, metrics.StatusError)
			if errors.Is(err, kdb.ErrHistoryDisabled) {
				return apierr.ServiceUnavailable("prediction history is not enabled", err)
			}
			return apierr.InternalServerError(err)
		}

		mtr.RequestDone(endpoint, metrics.StatusSuccess)
		return c.JSON(http.StatusOK, apihist.Purged{Deleted: deleted})
	}
}
