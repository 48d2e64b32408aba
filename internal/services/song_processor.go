package services

import (
	"context"
	"fmt"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/extract"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/files/filesystem"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

// SongProcessor loads the song and artist of one song metadata file.
type SongProcessor struct {
	fs     filesystem.FileSystemProvider
	logger sparkify.Logger
}

// NewSongProcessor creates a SongProcessor reading files from fsProvider.
func NewSongProcessor(fsProvider filesystem.FileSystemProvider, logger sparkify.Logger) *SongProcessor {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SongProcessor{fs: fsProvider, logger: logger}
}

func (p *SongProcessor) ProcessFile(ctx context.Context, store sparkify.Store, path string) error {
	content, err := p.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read song file: %w", err)
	}

	parsed, err := extract.ParseSongFile(content)
	if err != nil {
		return err
	}
	if parsed.ExtraRecords > 0 {
		p.logger.Verbose("%s: ignoring %d records after the first", path, parsed.ExtraRecords)
	}

	if err := store.InsertSong(ctx, parsed.Song); err != nil {
		return err
	}
	return store.InsertArtist(ctx, parsed.Artist)
}

var _ sparkify.FileProcessor = (*SongProcessor)(nil)
