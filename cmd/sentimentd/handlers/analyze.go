package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apierr "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/api/types/errors"
	apisent "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/api/types/sentiment"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/analyzer"
	kdb "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/db"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/metrics"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/utils"
)

const (
	// bounds of a single text, in characters.
	minTextLength = 1
	maxTextLength = 5000

	// upper bound of texts per batch request.
	maxBatchSize = 64
)

var errTextOutOfBounds = errors.New("text is out of bounds")

func validateText(text string) error {
	length := utf8.RuneCountInString(text)
	if length < minTextLength || maxTextLength < length {
		return fmt.Errorf(
			"%w: length %d is not in %d..%d",
			errTextOutOfBounds, length, minTextLength, maxTextLength,
		)
	}
	return nil
}

// AnalyzeHandler serves POST /analyze .
func AnalyzeHandler(
	ana analyzer.Analyzer,
	hist kdb.HistoryInterface,
	mtr *metrics.Set,
	costUSD float64,
) echo.HandlerFunc {
	const endpoint = "/analyze"

	return func(c echo.Context) error {
		ctx := c.Request().Context()
		begin := time.Now()
		defer func() {
			mtr.ObserveDuration(endpoint, time.Since(begin).Seconds())
		}()

		req := apisent.AnalyzeRequest{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			mtr.RequestDone(endpoint, metrics.StatusError)
			return apierr.BadRequest("format error", err)
		}

		if err := validateText(req.Text); err != nil {
			mtr.RequestDone(endpoint, metrics.StatusError)
			return apierr.UnprocessableEntity(
				fmt.Sprintf("text should be %d..%d characters long", minTextLength, maxTextLength),
				err,
			)
		}

		detail, err := analyzeOne(ctx, ana, req.Text, costUSD)
		if err != nil {
			mtr.RequestDone(endpoint, metrics.StatusError)
			if errors.Is(err, analyzer.ErrEmptyText) {
				return apierr.UnprocessableEntity("text has no analyzable content", err)
			}
			log.Error().Str("event", "analysis_failed").
				Err(err).
				Int("text_length", utf8.RuneCountInString(req.Text)).
				Msg("analysis failed")
			return apierr.InternalServerError(err)
		}

		recordPrediction(ctx, hist, detail)

		mtr.RequestDone(endpoint, metrics.StatusSuccess)
		mtr.Predicted(analyzer.Verdict(detail.Sentiment))

		return c.JSON(http.StatusOK, detail)
	}
}

// BatchAnalyzeHandler serves POST /analyze/batch .
//
// The whole batch is rejected when any text is invalid or unanalyzable,
// and nothing reaches the history store before every text is analyzed,
// so that clients never guess which results are missing.
func BatchAnalyzeHandler(
	ana analyzer.Analyzer,
	hist kdb.HistoryInterface,
	mtr *metrics.Set,
	costUSD float64,
) echo.HandlerFunc {
	const endpoint = "/analyze/batch"

	return func(c echo.Context) error {
		ctx := c.Request().Context()
		begin := time.Now()
		defer func() {
			mtr.ObserveDuration(endpoint, time.Since(begin).Seconds())
		}()

		req := apisent.BatchAnalyzeRequest{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			mtr.RequestDone(endpoint, metrics.StatusError)
			return apierr.BadRequest("format error", err)
		}

		if len(req.Texts) == 0 || maxBatchSize < len(req.Texts) {
			mtr.RequestDone(endpoint, metrics.StatusError)
			return apierr.UnprocessableEntity(
				fmt.Sprintf("batch should hold 1..%d texts", maxBatchSize), nil,
			)
		}
		for nth, text := range req.Texts {
			if err := validateText(text); err != nil {
				mtr.RequestDone(endpoint, metrics.StatusError)
				return apierr.UnprocessableEntity(
					fmt.Sprintf("text #%d should be %d..%d characters long", nth, minTextLength, maxTextLength),
					err,
				)
			}
		}

		results, err := utils.MapUntilError(req.Texts, func(text string) (apisent.Detail, error) {
			return analyzeOne(ctx, ana, text, costUSD)
		})
		if err != nil {
			mtr.RequestDone(endpoint, metrics.StatusError)
			if errors.Is(err, analyzer.ErrEmptyText) {
				return apierr.UnprocessableEntity("a text has no analyzable content", err)
			}
			log.Error().Str("event", "analysis_failed").Err(err).Msg("batch analysis failed")
			return apierr.InternalServerError(err)
		}

		for _, detail := range results {
			recordPrediction(ctx, hist, detail)
		}

		mtr.RequestDone(endpoint, metrics.StatusSuccess)
		for _, detail := range results {
			mtr.Predicted(analyzer.Verdict(detail.Sentiment))
		}

		return c.JSON(http.StatusOK, apisent.BatchDetail{Results: results})
	}
}

// analyzeOne scores a single text. It does not touch the history store,
// so callers can analyze a whole batch before persisting anything.
func analyzeOne(
	ctx context.Context,
	ana analyzer.Analyzer,
	text string,
	costUSD float64,
) (apisent.Detail, error) {
	result, err := ana.Analyze(ctx, text)
	if err != nil {
		return apisent.Detail{}, err
	}

	processingTimeMs := float64(result.Duration) / float64(time.Millisecond)

	log.Info().Str("event", "sentiment_analyzed").
		Str("sentiment", string(result.Verdict)).
		Float64("confidence", result.Confidence).
		Float64("processing_time_ms", processingTimeMs).
		Int("text_length", utf8.RuneCountInString(text)).
		Float64("cost_usd", costUSD).
		Msg("analyzed")

	return apisent.Detail{
		Text:             text,
		Sentiment:        string(result.Verdict),
		Confidence:       result.Confidence,
		ProcessingTimeMs: processingTimeMs,
		ModelVersion:     ana.ModelVersion(),
		Timestamp:        time.Now().UTC(),
		CostEstimateUSD:  costUSD,
	}, nil
}

// recordPrediction stores an analysis outcome. Best-effort: a dead
// history store must not take analysis down with it.
func recordPrediction(ctx context.Context, hist kdb.HistoryInterface, d apisent.Detail) {
	if err := hist.Record(ctx, kdb.Prediction{
		TextLength:     utf8.RuneCountInString(d.Text),
		Verdict:        analyzer.Verdict(d.Sentiment),
		Confidence:     d.Confidence,
		ProcessingTime: time.Duration(d.ProcessingTimeMs * float64(time.Millisecond)),
		ModelVersion:   d.ModelVersion,
		Timestamp:      d.Timestamp,
	}); err != nil {
		log.Warn().Str("event", "history_record_failed").Err(err).Msg("prediction is not recorded")
	}
}
