package try_test

import (
	"errors"
	"testing"

	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/utils/try"
)

type fakeFataler struct {
	called []any
}

func (f *fakeFataler) Fatal(v ...any) {
	f.called = append(f.called, v...)
}

func TestTo(t *testing.T) {
	t.Run("ok value passes through Get and OrFatal", func(t *testing.T) {
		testee := try.To(42, nil)

		v, err := testee.Get()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 42 {
			t.Errorf("unexpected value: %d", v)
		}

		ftl := &fakeFataler{}
		if got := testee.OrFatal(ftl); got != 42 {
			t.Errorf("unexpected value: %d", got)
		}
		if len(ftl.called) != 0 {
			t.Error("Fatal is called, unexpectedly.")
		}

		if got := testee.OrDefault(7); got != 42 {
			t.Errorf("unexpected value: %d", got)
		}
	})

	t.Run("error value trips OrFatal and falls back in OrDefault", func(t *testing.T) {
		expectedError := errors.New("expected error")
		testee := try.To(0, expectedError)

		if _, err := testee.Get(); !errors.Is(err, expectedError) {
			t.Errorf("unexpected error: %v", err)
		}

		ftl := &fakeFataler{}
		testee.OrFatal(ftl)
		if len(ftl.called) == 0 {
			t.Error("Fatal is not called.")
		}

		if got := testee.OrDefault(7); got != 7 {
			t.Errorf("unexpected value: %d", got)
		}
	})
}
