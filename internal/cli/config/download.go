//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	gsod "github.com/pupperemeritus/WeatherVoyageR"
	"github.com/urfave/cli/v3"
)

// Download holds the settings of each archive transfer
type Download struct {
	ChunkSize         int
	PollInterval      time.Duration
	InactivityTimeout time.Duration
	Progress          bool
}

// Flags returns CLI flags for download configuration
func (c *Download) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "chunk-size",
			Usage:       "Size in bytes of each write to disk",
			Value:       gsod.DefaultChunkSize,
			Destination: &c.ChunkSize,
			Sources:     cli.EnvVars("GSOD_CHUNK_SIZE"),
		},
		&cli.DurationFlag{
			Name:        "poll-interval",
			Usage:       "Interval between progress lines of a download",
			Value:       gsod.DefaultPollInterval,
			Destination: &c.PollInterval,
			Sources:     cli.EnvVars("GSOD_POLL_INTERVAL"),
		},
		&cli.DurationFlag{
			Name:        "inactivity-timeout",
			Usage:       "Abort a download receiving no data for this long (0 disables)",
			Value:       0,
			Destination: &c.InactivityTimeout,
			Sources:     cli.EnvVars("GSOD_INACTIVITY_TIMEOUT"),
		},
		&cli.BoolFlag{
			Name:        "progress",
			Usage:       "Print download progress",
			Value:       true,
			Destination: &c.Progress,
			Sources:     cli.EnvVars("GSOD_PROGRESS"),
		},
	}
}

// Config validates the settings and converts them to a downloader config
func (c *Download) Config() (gsod.Config, error) {
	if c.ChunkSize < 1 {
		return gsod.Config{}, goerr.New("chunk size must be positive", goerr.V("chunk_size", c.ChunkSize))
	}
	if c.PollInterval <= 0 {
		return gsod.Config{}, goerr.New("poll interval must be positive", goerr.V("poll_interval", c.PollInterval))
	}
	if c.InactivityTimeout < 0 {
		return gsod.Config{}, goerr.New("inactivity timeout cannot be negative", goerr.V("inactivity_timeout", c.InactivityTimeout))
	}

	return gsod.Config{
		ChunkSize:         c.ChunkSize,
		PollInterval:      c.PollInterval,
		InactivityTimeout: c.InactivityTimeout,
	}, nil
}
