package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	httptestutil "github.com/mrsteppenwolf627/sentiment-api-mlops/internal/testutils/http"
	anamock "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/analyzer/mocks"
	apisent "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/api/types/sentiment"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/metrics"

	"github.com/mrsteppenwolf627/sentiment-api-mlops/cmd/sentimentd/handlers"
)

func TestRootHandler(t *testing.T) {
	t.Run("it serves the service card", func(t *testing.T) {
		e := echo.New()
		c, respRec := httptestutil.Get(e, "/")

		testee := handlers.RootHandler("1.0.0")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if respRec.Code != http.StatusOK {
			t.Errorf("unexpected status code: %d", respRec.Code)
		}

		card := apisent.ServiceCard{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &card); err != nil {
			t.Fatal(err)
		}
		if card.Message == "" {
			t.Error("message is empty")
		}
		if card.Version != "1.0.0" {
			t.Errorf("unexpected version: %s", card.Version)
		}
		if card.Health != "/health" || card.Metrics != "/metrics" {
			t.Errorf("unexpected links: %+v", card)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	t.Run("it reports healthy when the model is loaded", func(t *testing.T) {
		mckana := anamock.NewAnalyzer()
		mckana.Impl.ModelVersion = func() string { return "lexicon-en-v1+builtin" }

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/health")

		testee := handlers.HealthHandler(mckana, "1.0.0", metrics.New())
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if respRec.Code != http.StatusOK {
			t.Errorf("unexpected status code: %d", respRec.Code)
		}

		health := apisent.Health{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &health); err != nil {
			t.Fatal(err)
		}
		if health.Status != "healthy" {
			t.Errorf("unexpected status: %s", health.Status)
		}
		if !health.ModelLoaded {
			t.Error("model_loaded is false, unexpectedly.")
		}
		if health.Version != "1.0.0" {
			t.Errorf("unexpected version: %s", health.Version)
		}
	})

	t.Run("it reports unhealthy when no model is loaded", func(t *testing.T) {
		e := echo.New()
		c, _ := httptestutil.Get(e, "/health")

		testee := handlers.HealthHandler(nil, "1.0.0", metrics.New())
		err := testee(c)
		if err == nil {
			t.Fatal("no error is caused, unexpectedly.")
		}

		httpErr := new(echo.HTTPError)
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusServiceUnavailable {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
