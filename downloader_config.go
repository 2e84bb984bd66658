//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package gsod

import (
	"net/http"
	"sync"
	"time"
)

// DefaultChunkSize is the size of the buffer used to copy the response body
// to disk.
const DefaultChunkSize = 1024

// DefaultPollInterval is how often the PollFunction is called while a
// download is running.
const DefaultPollInterval = 500 * time.Millisecond

// Config contains the configuration for the downloader
type Config struct {
	// HttpClient to use to perform HTTP requests
	HttpClient http.Client
	// ExtraHeaders to add to the HTTP requests.
	ExtraHeaders map[string]string
	// AcceptFunc is an optional function that will be called with the
	// response headers, before any byte is written to disk.
	// If the function returns an error, the download is aborted.
	AcceptFunc func(resp *http.Response) error
	// DoNotErrorOnNon2xxStatusCode set to true to not return an error
	// if the server returns a non-2xx status code.
	DoNotErrorOnNon2xxStatusCode bool
	// InactivityTimeout is the duration after which, if no data is received,
	// the download is aborted. If set to 0, no timeout is applied.
	InactivityTimeout time.Duration
	// ChunkSize is the size of each read from the response body.
	// Defaults to DefaultChunkSize.
	ChunkSize int
	// PollInterval is the interval between PollFunction calls.
	// Defaults to DefaultPollInterval.
	PollInterval time.Duration
	// PollFunction, if set, is called periodically during Run with the
	// number of bytes written so far and the declared size (-1 if unknown).
	PollFunction func(current, size int64)
}

func (c Config) chunkSize() int {
	if c.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return c.ChunkSize
}

func (c Config) pollInterval() time.Duration {
	if c.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return c.PollInterval
}

var defaultConfig Config = Config{}
var defaultConfigLock sync.Mutex

// SetDefaultConfig sets the configuration that will be used by the Download
// function.
func SetDefaultConfig(newConfig Config) {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()
	defaultConfig = newConfig
}

// GetDefaultConfig returns a copy of the default configuration. The default
// configuration can be changed using the SetDefaultConfig function.
func GetDefaultConfig() Config {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()

	// ExtraHeaders is the only reference field, copy it
	res := defaultConfig
	if defaultConfig.ExtraHeaders != nil {
		res.ExtraHeaders = make(map[string]string, len(defaultConfig.ExtraHeaders))
		for k, v := range defaultConfig.ExtraHeaders {
			res.ExtraHeaders[k] = v
		}
	}
	return res
}
