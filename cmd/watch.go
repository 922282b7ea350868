package cmd

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aricart/proto-srv-generator/internal/pipeline"
)

// watchSchema blocks until ctx is cancelled, regenerating the output tree
// whenever the schema file is written. Watch runs are forced: the first
// change backs up the handler seeds once, later changes replace that backup.
func watchSchema(ctx context.Context, opts pipeline.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save,
	// which drops a watch held on the file itself.
	if err := watcher.Add(filepath.Dir(opts.SchemaPath)); err != nil {
		return err
	}

	opts.Force = true
	opts.Logger.Info().Str("schema", opts.SchemaPath).Msg("watching for changes")

	target := filepath.Clean(opts.SchemaPath)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			// Editors often emit a burst of events per save.
			time.Sleep(100 * time.Millisecond)
			if err := pipeline.Run(opts); err != nil {
				opts.Logger.Error().Err(err).Msg("regeneration failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			opts.Logger.Error().Err(err).Msg("watch error")
		}
	}
}
