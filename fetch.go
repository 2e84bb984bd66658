//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package gsod

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// Outcome tells what a Fetch did with a year's archive.
type Outcome int

const (
	// OutcomeFailed means the archive could not be downloaded or extracted.
	OutcomeFailed Outcome = iota
	// OutcomeSkipped means a local archive was already present: it has been
	// removed and nothing was downloaded.
	OutcomeSkipped
	// OutcomeExtracted means the archive was downloaded, extracted and removed.
	OutcomeExtracted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeExtracted:
		return "extracted"
	default:
		return "failed"
	}
}

// Fetcher downloads one archive and extracts it into a target directory.
type Fetcher struct {
	config   Config
	progress *ProgressPrinter
	logger   *slog.Logger
}

// NewFetcher creates a Fetcher. Progress lines are written by progress, if
// not nil, and status messages by logger (slog.Default() if nil).
func NewFetcher(config Config, progress *ProgressPrinter, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		config:   config,
		progress: progress,
		logger:   logger,
	}
}

// Fetch downloads archiveURL into dir and extracts it there.
//
// If a file named like the archive already exists in dir, it is considered
// already handled: the file is deleted and Fetch returns OutcomeSkipped
// without performing any request.
func (f *Fetcher) Fetch(ctx context.Context, archiveURL, dir string, year int) (Outcome, error) {
	name := ArchiveName(archiveURL)
	archivePath := filepath.Join(dir, name)
	logger := f.logger.With(slog.Int("year", year), slog.String("archive", name))

	if _, err := os.Stat(archivePath); err == nil {
		logger.Info("Skipping archive, already downloaded and extracted")
		if err := os.Remove(archivePath); err != nil {
			return OutcomeFailed, goerr.Wrap(err, "failed to remove existing archive", goerr.V("path", archivePath))
		}
		logger.Info("Removed archive")
		return OutcomeSkipped, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return OutcomeFailed, goerr.Wrap(err, "failed to stat archive", goerr.V("path", archivePath))
	}

	config := f.config
	if f.progress != nil {
		config.PollFunction = f.progress.Track(year, name)
	}
	if err := f.download(ctx, archivePath, archiveURL, config); err != nil {
		return OutcomeFailed, goerr.Wrap(err, "failed to download archive", goerr.V("url", archiveURL))
	}
	logger.Info("Downloaded archive")

	if err := Extract(archivePath, dir); err != nil {
		return OutcomeFailed, goerr.Wrap(err, "failed to extract archive", goerr.V("path", archivePath))
	}
	logger.Info("Extracted and deleted archive", slog.String("path", archivePath))
	return OutcomeExtracted, nil
}

func (f *Fetcher) download(ctx context.Context, archivePath, archiveURL string, config Config) error {
	d, err := DownloadWithConfigAndContext(ctx, archivePath, archiveURL, config)
	if err != nil {
		return err
	}
	if err := d.Run(); err != nil {
		_ = os.Remove(archivePath)
		return err
	}
	return nil
}
