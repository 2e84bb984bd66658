//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package gsod

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Defaults of the observed batch configuration.
const (
	DefaultStartYear = 1929
	DefaultEndYear   = 2023
	DefaultOutputDir = "gsod_archive_parallel"
	DefaultWorkers   = 24
)

// YearFetcher handles the archive of one year.
type YearFetcher interface {
	Fetch(ctx context.Context, archiveURL, dir string, year int) (Outcome, error)
}

// Options configures an Orchestrator.
type Options struct {
	// BaseURL is the location the yearly archives are served from.
	BaseURL string
	// StartYear and EndYear are the closed range of years to fetch.
	StartYear int
	EndYear   int
	// OutputDir is the base directory; each year is extracted in a
	// subdirectory named after it.
	OutputDir string
	// Workers is the maximum number of years processed at the same time.
	Workers int
}

// DefaultOptions returns the options of the full GSOD batch.
func DefaultOptions() Options {
	return Options{
		BaseURL:   DefaultArchiveBase,
		StartYear: DefaultStartYear,
		EndYear:   DefaultEndYear,
		OutputDir: DefaultOutputDir,
		Workers:   DefaultWorkers,
	}
}

// Orchestrator runs one fetch task per year on a bounded worker pool.
type Orchestrator struct {
	fetcher YearFetcher
	opts    Options
	logger  *slog.Logger
}

// NewOrchestrator creates an Orchestrator. Zero fields of opts are replaced
// by the corresponding DefaultOptions value.
func NewOrchestrator(fetcher YearFetcher, opts Options, logger *slog.Logger) *Orchestrator {
	def := DefaultOptions()
	if opts.BaseURL == "" {
		opts.BaseURL = def.BaseURL
	}
	if opts.StartYear == 0 && opts.EndYear == 0 {
		opts.StartYear, opts.EndYear = def.StartYear, def.EndYear
	}
	if opts.OutputDir == "" {
		opts.OutputDir = def.OutputDir
	}
	if opts.Workers <= 0 {
		opts.Workers = def.Workers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		fetcher: fetcher,
		opts:    opts,
		logger:  logger,
	}
}

// Options returns the effective options.
func (o *Orchestrator) Options() Options {
	return o.opts
}

// Years returns the years to process, in order.
func (o *Orchestrator) Years() []int {
	var years []int
	for y := o.opts.StartYear; y <= o.opts.EndYear; y++ {
		years = append(years, y)
	}
	return years
}

// Run processes every year and waits for all the tasks to finish.
// Failures of single years are logged and do not stop the batch; only a
// failure to create the output directory is returned.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := os.MkdirAll(o.opts.OutputDir, 0755); err != nil {
		return goerr.Wrap(err, "failed to create output directory", goerr.V("dir", o.opts.OutputDir))
	}

	var pool errgroup.Group
	pool.SetLimit(o.opts.Workers)

	for _, year := range o.Years() {
		yearDir := filepath.Join(o.opts.OutputDir, strconv.Itoa(year))
		if err := os.MkdirAll(yearDir, 0755); err != nil {
			o.logger.Error("Error processing year", slog.Int("year", year), slog.Any("error", err))
			continue
		}
		for _, archiveURL := range ListArchives(o.opts.BaseURL, year) {
			pool.Go(func() error {
				o.runTask(ctx, archiveURL, yearDir, year)
				return nil
			})
		}
	}

	_ = pool.Wait()
	o.logger.Info("Download and extraction completed.")
	return nil
}

func (o *Orchestrator) runTask(ctx context.Context, archiveURL, dir string, year int) {
	logger := o.logger.With(slog.Int("year", year), slog.String("url", archiveURL))
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in year task",
				"recover", r,
				"stack", string(debug.Stack()))
		}
	}()

	outcome, err := o.fetcher.Fetch(ctx, archiveURL, dir, year)
	if err != nil {
		logger.Error("Year task failed", slog.Any("error", err))
		return
	}
	logger.Debug("Year task done", slog.String("outcome", outcome.String()))
}
