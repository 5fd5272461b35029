package metrics_test

import (
	"testing"

	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/analyzer"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/metrics"
)

func TestSet(t *testing.T) {
	t.Run("all collectors are gatherable under their exposition names", func(t *testing.T) {
		testee := metrics.New()

		testee.RequestDone("/analyze", metrics.StatusSuccess)
		testee.ObserveDuration("/analyze", 0.125)
		testee.Predicted(analyzer.Positive)

		families, err := testee.Gather().Gather()
		if err != nil {
			t.Fatal(err)
		}

		found := map[string]bool{}
		for _, mf := range families {
			found[mf.GetName()] = true
		}

		for _, name := range []string{
			"sentiment_api_requests_total",
			"sentiment_api_request_duration_seconds",
			"sentiment_api_predictions_total",
		} {
			if !found[name] {
				t.Errorf("metric %s is not gathered: %v", name, found)
			}
		}
	})

	t.Run("prediction series exist for every sentiment before any hit", func(t *testing.T) {
		testee := metrics.New()

		families, err := testee.Gather().Gather()
		if err != nil {
			t.Fatal(err)
		}

		for _, mf := range families {
			if mf.GetName() != "sentiment_api_predictions_total" {
				continue
			}
			if len(mf.GetMetric()) != len(analyzer.Verdicts()) {
				t.Errorf("unexpected number of series: %d", len(mf.GetMetric()))
			}
			return
		}
		t.Error("sentiment_api_predictions_total is not gathered")
	})

	t.Run("two Sets do not share counters", func(t *testing.T) {
		a := metrics.New()
		b := metrics.New()

		a.RequestDone("/health", metrics.StatusSuccess)

		families, err := b.Gather().Gather()
		if err != nil {
			t.Fatal(err)
		}
		for _, mf := range families {
			if mf.GetName() != "sentiment_api_requests_total" {
				continue
			}
			if len(mf.GetMetric()) != 0 {
				t.Error("counter of another Set is incremented, unexpectedly.")
			}
		}
	})
}
