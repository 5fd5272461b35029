package filewatch

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// UntilModifyContext derives from ctx a context that is canceled as soon
// as any of files is written, created, removed, or renamed. The cause of
// the cancellation names the file and the operation.
//
// The returned cancel stops watching and releases the watcher; call it
// even when no file ever changes. On error, context and cancel are nil.
func UntilModifyContext(ctx context.Context, files ...string) (context.Context, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	for _, f := range files {
		if err := w.Add(f); err != nil {
			w.Close()
			return nil, nil, err
		}
	}

	cctx, cancel := context.WithCancelCause(ctx)
	go func() {
		defer w.Close()

		select {
		case <-cctx.Done():
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			cancel(fmt.Errorf("%s is modified (%s)", event.Name, event.Op))
		}
	}()

	return cctx, func() { cancel(nil) }, nil
}
