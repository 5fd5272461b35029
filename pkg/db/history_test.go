package db_test

import (
	"context"
	"errors"
	"testing"

	kdb "github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/db"
)

func TestNull(t *testing.T) {
	ctx := context.Background()
	testee := kdb.Null()

	t.Run("Record is a silent no-op", func(t *testing.T) {
		if err := testee.History().Record(ctx, kdb.Prediction{}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("reading operations report that history is disabled", func(t *testing.T) {
		if _, err := testee.History().Recent(ctx, 10); !errors.Is(err, kdb.ErrHistoryDisabled) {
			t.Errorf("unexpected error: %v", err)
		}
		if _, err := testee.History().Stats(ctx); !errors.Is(err, kdb.ErrHistoryDisabled) {
			t.Errorf("unexpected error: %v", err)
		}
		if _, err := testee.History().Purge(ctx); !errors.Is(err, kdb.ErrHistoryDisabled) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Close is a no-op", func(t *testing.T) {
		if err := testee.Close(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
