package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

// Pipeline walks an input directory and runs every data file through a
// processor, one transaction per file.
//
// Thread-Safety: calls are serialized. Songplay ids are derived from the
// table maximum, so only one pipeline may load at a time; the advisory lock
// taken by the fact loader extends that to other processes.
type Pipeline struct {
	mu         sync.Mutex
	locator    sparkify.FileLocator
	transactor sparkify.Transactor
	logger     sparkify.Logger
}

// NewPipeline creates a Pipeline.
//
// Panics if any dependency is nil.
func NewPipeline(locator sparkify.FileLocator, transactor sparkify.Transactor, logger sparkify.Logger) *Pipeline {
	if locator == nil {
		panic("locator cannot be nil")
	}
	if transactor == nil {
		panic("transactor cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Pipeline{locator: locator, transactor: transactor, logger: logger}
}

// ProcessData processes every data file below root in walk order and commits
// after each one. The first failure stops the run; files committed before it
// stay committed.
func (p *Pipeline) ProcessData(ctx context.Context, root string, processor sparkify.FileProcessor) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.processData(ctx, root, processor)
}

func (p *Pipeline) processData(ctx context.Context, root string, processor sparkify.FileProcessor) error {
	paths, err := p.locator.Find(root, sparkify.DataFileExtension)
	if err != nil {
		return fmt.Errorf("failed to locate data files in %s: %w", root, err)
	}

	total := len(paths)
	p.logger.Info("%d files found in %s", total, root)

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run cancelled before %s: %w", path, err)
		}

		err := p.transactor.WithinTransaction(ctx, func(ctx context.Context, store sparkify.Store) error {
			return processor.ProcessFile(ctx, store, path)
		})
		if err != nil {
			return fmt.Errorf("failed to process %s: %w", path, err)
		}

		p.logger.Info("%d/%d files processed.", i+1, total)
	}

	return nil
}

// Run loads song data, then log data.
func (p *Pipeline) Run(ctx context.Context, songRoot string, songs sparkify.FileProcessor, logRoot string, logs sparkify.FileProcessor) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.processData(ctx, songRoot, songs); err != nil {
		return err
	}
	return p.processData(ctx, logRoot, logs)
}
