//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	gsod "github.com/pupperemeritus/WeatherVoyageR"
	"github.com/pupperemeritus/WeatherVoyageR/internal/cli/config"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg   config.Logger
		batchCfg    config.Batch
		downloadCfg config.Download
		logger      *slog.Logger
	)

	var flags []cli.Flag
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, batchCfg.Flags()...)
	flags = append(flags, downloadCfg.Flags()...)

	app := &cli.Command{
		Name:  "gsod-fetch",
		Usage: "Download and extract the yearly Global Summary of the Day archives",
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			opts, err := batchCfg.Options()
			if err != nil {
				return goerr.Wrap(err, "invalid batch configuration")
			}
			dlConfig, err := downloadCfg.Config()
			if err != nil {
				return goerr.Wrap(err, "invalid download configuration")
			}

			var progress *gsod.ProgressPrinter
			if downloadCfg.Progress {
				progress = gsod.NewProgressPrinter(os.Stdout)
			}

			logger.Info("Starting GSOD download",
				slog.Int("start_year", opts.StartYear),
				slog.Int("end_year", opts.EndYear),
				slog.String("output_dir", opts.OutputDir),
				slog.Int("workers", opts.Workers),
			)

			fetcher := gsod.NewFetcher(dlConfig, progress, logger)
			return gsod.NewOrchestrator(fetcher, opts, logger).Run(ctx)
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
