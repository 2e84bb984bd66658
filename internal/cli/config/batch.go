//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package config

import (
	"github.com/m-mizutani/goerr/v2"
	gsod "github.com/pupperemeritus/WeatherVoyageR"
	"github.com/urfave/cli/v3"
)

// Batch holds the year range, destination and parallelism of a run
type Batch struct {
	BaseURL   string
	StartYear int
	EndYear   int
	OutputDir string
	Workers   int
}

// Flags returns CLI flags for batch configuration
func (c *Batch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Base URL of the yearly archives",
			Value:       gsod.DefaultArchiveBase,
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("GSOD_BASE_URL"),
		},
		&cli.IntFlag{
			Name:        "start-year",
			Usage:       "First year to download",
			Value:       gsod.DefaultStartYear,
			Destination: &c.StartYear,
			Sources:     cli.EnvVars("GSOD_START_YEAR"),
		},
		&cli.IntFlag{
			Name:        "end-year",
			Usage:       "Last year to download (inclusive)",
			Value:       gsod.DefaultEndYear,
			Destination: &c.EndYear,
			Sources:     cli.EnvVars("GSOD_END_YEAR"),
		},
		&cli.StringFlag{
			Name:        "output-dir",
			Aliases:     []string{"o"},
			Usage:       "Directory receiving one subdirectory per year",
			Value:       gsod.DefaultOutputDir,
			Destination: &c.OutputDir,
			Sources:     cli.EnvVars("GSOD_OUTPUT_DIR"),
		},
		&cli.IntFlag{
			Name:        "workers",
			Aliases:     []string{"w"},
			Usage:       "Number of years downloaded concurrently",
			Value:       gsod.DefaultWorkers,
			Destination: &c.Workers,
			Sources:     cli.EnvVars("GSOD_WORKERS"),
		},
	}
}

// Options validates the configuration and converts it to orchestrator options
func (c *Batch) Options() (gsod.Options, error) {
	if c.BaseURL == "" {
		return gsod.Options{}, goerr.New("base URL is required")
	}
	if c.OutputDir == "" {
		return gsod.Options{}, goerr.New("output directory is required")
	}
	if c.StartYear > c.EndYear {
		return gsod.Options{}, goerr.New("start year is after end year",
			goerr.V("start_year", c.StartYear),
			goerr.V("end_year", c.EndYear))
	}
	if c.Workers < 1 {
		return gsod.Options{}, goerr.New("at least one worker is required", goerr.V("workers", c.Workers))
	}

	return gsod.Options{
		BaseURL:   c.BaseURL,
		StartYear: c.StartYear,
		EndYear:   c.EndYear,
		OutputDir: c.OutputDir,
		Workers:   c.Workers,
	}, nil
}
