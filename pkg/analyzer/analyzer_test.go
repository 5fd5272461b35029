package analyzer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/analyzer"
	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/utils/try"
)

func TestAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("it classifies clearly positive text as positive", func(t *testing.T) {
		testee := try.To(analyzer.New()).OrFatal(t)

		result := try.To(testee.Analyze(ctx, "I love this product! It's amazing and wonderful.")).OrFatal(t)

		if result.Verdict != analyzer.Positive {
			t.Errorf("unexpected verdict: %s", result.Verdict)
		}
		if result.Confidence <= 0.8 {
			t.Errorf("confidence is too low: %f", result.Confidence)
		}
		if result.Duration <= 0 {
			t.Errorf("duration is not measured: %v", result.Duration)
		}
	})

	t.Run("it classifies clearly negative text as negative", func(t *testing.T) {
		testee := try.To(analyzer.New()).OrFatal(t)

		result := try.To(testee.Analyze(ctx, "This is terrible and awful. I hate it.")).OrFatal(t)

		if result.Verdict != analyzer.Negative {
			t.Errorf("unexpected verdict: %s", result.Verdict)
		}
		if result.Confidence <= 0.8 {
			t.Errorf("confidence is too low: %f", result.Confidence)
		}
	})

	t.Run("it classifies text without scored words as neutral", func(t *testing.T) {
		testee := try.To(analyzer.New()).OrFatal(t)

		result := try.To(testee.Analyze(ctx, "The product exists.")).OrFatal(t)

		if result.Verdict != analyzer.Neutral {
			t.Errorf("unexpected verdict: %s", result.Verdict)
		}
		if result.Confidence < 0 || 1 < result.Confidence {
			t.Errorf("confidence is out of [0, 1]: %f", result.Confidence)
		}
	})

	t.Run("negators flip the valence of following words", func(t *testing.T) {
		testee := try.To(analyzer.New()).OrFatal(t)

		result := try.To(testee.Analyze(ctx, "This is not good at all.")).OrFatal(t)

		if result.Verdict != analyzer.Negative {
			t.Errorf("unexpected verdict: %s", result.Verdict)
		}
	})

	t.Run("contracted negation (don't) also flips valence", func(t *testing.T) {
		testee := try.To(analyzer.New()).OrFatal(t)

		result := try.To(testee.Analyze(ctx, "I don't like it.")).OrFatal(t)

		if result.Verdict != analyzer.Negative {
			t.Errorf("unexpected verdict: %s", result.Verdict)
		}
	})

	t.Run("boosters raise confidence", func(t *testing.T) {
		testee := try.To(analyzer.New()).OrFatal(t)

		plain := try.To(testee.Analyze(ctx, "good")).OrFatal(t)
		boosted := try.To(testee.Analyze(ctx, "very good")).OrFatal(t)

		if boosted.Confidence <= plain.Confidence {
			t.Errorf(
				"boosted confidence (%f) is not higher than plain (%f)",
				boosted.Confidence, plain.Confidence,
			)
		}
	})

	t.Run("it rejects text with no analyzable content", func(t *testing.T) {
		testee := try.To(analyzer.New()).OrFatal(t)

		for _, text := range []string{"", "   ", "!!! ... ???"} {
			if _, err := testee.Analyze(ctx, text); !errors.Is(err, analyzer.ErrEmptyText) {
				t.Errorf("unexpected error for %q: %v", text, err)
			}
		}
	})

	t.Run("it truncates overlong text instead of failing", func(t *testing.T) {
		testee := try.To(analyzer.New(analyzer.WithMaxTokens(16))).OrFatal(t)

		longText := strings.Repeat("this is great! ", 200)
		result := try.To(testee.Analyze(ctx, longText)).OrFatal(t)

		if result.Verdict != analyzer.Positive {
			t.Errorf("unexpected verdict: %s", result.Verdict)
		}
	})

	t.Run("it stops when the context is canceled", func(t *testing.T) {
		testee := try.To(analyzer.New()).OrFatal(t)

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		if _, err := testee.Analyze(cctx, "good"); !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestModelVersion(t *testing.T) {
	t.Run("builtin lexicon is reflected in the model version", func(t *testing.T) {
		testee := try.To(analyzer.New()).OrFatal(t)

		if v := testee.ModelVersion(); v != "lexicon-en-v1+builtin" {
			t.Errorf("unexpected model version: %s", v)
		}
	})

	t.Run("external lexicon file is reflected in the model version", func(t *testing.T) {
		dir := t.TempDir()
		lexfile := filepath.Join(dir, "custom.tsv")
		if err := os.WriteFile(lexfile, []byte("splendid\t4\nrotten\t-4\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		testee := try.To(analyzer.New(analyzer.WithLexiconFile(lexfile))).OrFatal(t)

		if v := testee.ModelVersion(); v != "lexicon-en-v1+custom.tsv" {
			t.Errorf("unexpected model version: %s", v)
		}

		result := try.To(testee.Analyze(context.Background(), "splendid work")).OrFatal(t)
		if result.Verdict != analyzer.Positive {
			t.Errorf("unexpected verdict: %s", result.Verdict)
		}
	})

	t.Run("missing external lexicon file is a construction error", func(t *testing.T) {
		_, err := analyzer.New(analyzer.WithLexiconFile(filepath.Join(t.TempDir(), "no-such.tsv")))
		if err == nil {
			t.Fatal("no error is caused, unexpectedly.")
		}
	})
}
