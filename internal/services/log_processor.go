package services

import (
	"context"
	"fmt"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/extract"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/facts"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/files/filesystem"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

// LogProcessor loads the NextSong events of one activity log file: time
// buckets first, then users, then the songplay facts.
type LogProcessor struct {
	fs     filesystem.FileSystemProvider
	loader *facts.Loader
	logger sparkify.Logger
}

// NewLogProcessor creates a LogProcessor.
//
// Panics if any dependency is nil.
func NewLogProcessor(fsProvider filesystem.FileSystemProvider, loader *facts.Loader, logger sparkify.Logger) *LogProcessor {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if loader == nil {
		panic("loader cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &LogProcessor{fs: fsProvider, loader: loader, logger: logger}
}

func (p *LogProcessor) ProcessFile(ctx context.Context, store sparkify.Store, path string) error {
	content, err := p.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}

	events, err := extract.ParseLogFile(content)
	if err != nil {
		return err
	}
	plays := extract.FilterNextSong(events)

	for _, ev := range plays {
		if err := store.InsertTime(ctx, extract.DeriveTimeBucket(ev.TS)); err != nil {
			return err
		}
	}

	for _, ev := range plays {
		if err := store.UpsertUser(ctx, extract.ProjectUser(ev)); err != nil {
			return err
		}
	}

	candidates := make([]sparkify.Songplay, 0, len(plays))
	matched := 0
	for _, ev := range plays {
		ref, err := resolve(ctx, store, ev)
		if err != nil {
			return err
		}
		if ref.Resolved() {
			matched++
		}
		candidates = append(candidates, extract.Songplay(ev, ref))
	}

	if _, err := p.loader.Load(ctx, store, candidates); err != nil {
		return err
	}

	p.logger.Verbose("%s: %d events, %d songplays, %d matched a known song", path, len(events), len(plays), matched)
	return nil
}

// resolve looks up the event's song. Events missing a title, artist or
// length are unresolved without a query.
func resolve(ctx context.Context, store sparkify.Store, ev sparkify.LogEvent) (sparkify.SongRef, error) {
	if ev.Song == nil || ev.Artist == nil || ev.Length == nil {
		return sparkify.SongRef{}, nil
	}
	return store.ResolveSong(ctx, *ev.Song, *ev.Artist, *ev.Length)
}

var _ sparkify.FileProcessor = (*LogProcessor)(nil)
