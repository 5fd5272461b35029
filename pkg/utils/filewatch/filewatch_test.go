package filewatch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/utils/filewatch"
)

func deadline(t *testing.T) <-chan time.Time {
	deadlineCh := make(<-chan time.Time)
	if dl, ok := t.Deadline(); ok {
		deadlineCh = time.After(time.Until(dl) - 1*time.Second)
	}
	return deadlineCh
}

func TestUntilModifyContext(t *testing.T) {
	t.Run("when a watched file is written, it cancels context", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "lexicon.tsv")
		if err := os.WriteFile(file, []byte("good\t3\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), file)
		if err != nil {
			t.Fatal(err)
		}
		defer cancel()

		if err := ctx.Err(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := os.WriteFile(file, []byte("good\t3\nbad\t-3\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		select {
		case <-ctx.Done():
			// expected
		case <-deadline(t):
			t.Fatal("context is not canceled")
		}
	})

	t.Run("when a file is created in a watched directory, it cancels context", func(t *testing.T) {
		dir := t.TempDir()

		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), dir)
		if err != nil {
			t.Fatal(err)
		}
		defer cancel()

		file := filepath.Join(dir, "file")
		if f, err := os.Create(file); err != nil {
			t.Fatal(err)
		} else {
			f.Close()
		}

		select {
		case <-ctx.Done():
			// expected
		case <-deadline(t):
			t.Fatal("context is not canceled")
		}
	})

	t.Run("when target does not exist, it returns error", func(t *testing.T) {
		dir := t.TempDir()
		_, _, err := filewatch.UntilModifyContext(
			context.Background(), filepath.Join(dir, "no-such-file"),
		)
		if err == nil {
			t.Fatal("no error is caused, unexpectedly.")
		}
	})
}
