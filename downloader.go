//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package gsod

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// ErrUnexpectedStatus is returned by Download when the server answers with
// a non-2xx status code.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// Downloader is an asynchronous downloader
type Downloader struct {
	URL           string
	Done          chan struct{}
	Resp          *http.Response
	out           *os.File
	completed     int64
	completedLock sync.Mutex
	size          int64
	chunkSize     int
	ctx           context.Context
	watchdog      *inactivityWatchdog
	pollFunction  func(current, size int64)
	pollInterval  time.Duration
	err           error
}

// Close the download
func (d *Downloader) Close() error {
	var err1 error
	if d.out != nil {
		err1 = d.out.Close()
	}
	err2 := d.Resp.Body.Close()
	if err1 != nil {
		return goerr.Wrap(err1, "closing output file")
	}
	if err2 != nil {
		return goerr.Wrap(err2, "closing input stream")
	}
	return nil
}

// Size return the size of the download (or -1 if the server doesn't provide it)
func (d *Downloader) Size() int64 {
	return d.size
}

// RunAndPoll starts the downloader copy-loop and calls the poll function every
// interval time to update progress. The poll function is always called once
// more after the download ends.
func (d *Downloader) RunAndPoll(poll func(current, size int64), interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	go d.copyLoop()
	for {
		select {
		case <-t.C:
			poll(d.Completed(), d.size)
		case <-d.Done:
			poll(d.Completed(), d.size)
			return d.Error()
		}
	}
}

// Run starts the downloader and waits until it completes the download.
// If the Config used to create the Downloader has a PollFunction, progress is
// reported through it as in RunAndPoll.
// This method can be run in a goroutine to perform an asynchronous download;
// it will close the Done channel when the download is completed or an error occurs.
func (d *Downloader) Run() error {
	if d.pollFunction != nil {
		return d.RunAndPoll(d.pollFunction, d.pollInterval)
	}
	d.copyLoop()
	return d.Error()
}

func (d *Downloader) copyLoop() {
	defer close(d.Done)
	defer d.watchdog.Stop()

	in := d.Resp.Body
	buff := make([]byte, d.chunkSize)
	for {
		n, err := in.Read(buff)
		if n > 0 {
			d.watchdog.Kick()
			if _, werr := d.out.Write(buff[:n]); werr != nil {
				d.err = goerr.Wrap(werr, "writing to output file", goerr.V("file", d.out.Name()))
				break
			}
			d.completedLock.Lock()
			d.completed += int64(n)
			d.completedLock.Unlock()
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			if cause := context.Cause(d.ctx); cause != nil {
				err = cause
			}
			d.err = goerr.Wrap(err, "reading response body", goerr.V("url", d.URL))
			break
		}
	}
	if err := d.Close(); err != nil && d.err == nil {
		d.err = err
	}
}

// Error returns the error during download or nil if no errors happened
func (d *Downloader) Error() error {
	return d.err
}

// Completed returns the bytes read so far
func (d *Downloader) Completed() int64 {
	d.completedLock.Lock()
	res := d.completed
	d.completedLock.Unlock()
	return res
}

// Download returns an asynchronous downloader that will download the specified
// url in the specified file using the default configuration.
func Download(file string, reqURL string) (*Downloader, error) {
	return DownloadWithConfig(file, reqURL, GetDefaultConfig())
}

// DownloadWithConfig applies an additional configuration to the http client and
// returns an asynchronous downloader that will download the specified url
// in the specified file.
func DownloadWithConfig(file string, reqURL string, config Config) (*Downloader, error) {
	return DownloadWithConfigAndContext(context.Background(), file, reqURL, config)
}

// DownloadWithConfigAndContext performs the GET request for reqURL and returns
// an asynchronous downloader that streams the response body into file.
// The file is truncated if it already exists. It is not created at all if the
// request fails, the server answers with a non-2xx status code or the
// AcceptFunc rejects the response.
func DownloadWithConfigAndContext(ctx context.Context, file string, reqURL string, config Config) (*Downloader, error) {
	ctx, wd := newInactivityWatchdog(ctx, config.InactivityTimeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		wd.Stop()
		return nil, goerr.Wrap(err, "setting up HTTP request", goerr.V("url", reqURL))
	}
	for k, v := range config.ExtraHeaders {
		req.Header.Set(k, v)
	}
	resp, err := config.HttpClient.Do(req)
	if err != nil {
		wd.Stop()
		return nil, goerr.Wrap(err, "performing GET request", goerr.V("url", reqURL))
	}

	discard := func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		wd.Stop()
	}
	if !config.DoNotErrorOnNon2xxStatusCode && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		discard()
		return nil, goerr.Wrap(ErrUnexpectedStatus, resp.Status,
			goerr.V("url", reqURL),
			goerr.V("status", resp.StatusCode))
	}
	if config.AcceptFunc != nil {
		if err := config.AcceptFunc(resp); err != nil {
			discard()
			return nil, err
		}
	}

	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		discard()
		return nil, goerr.Wrap(err, "opening file for writing", goerr.V("file", file))
	}

	return &Downloader{
		URL:          reqURL,
		Done:         make(chan struct{}),
		Resp:         resp,
		out:          f,
		size:         resp.ContentLength, // -1 if server doesn't send Content-Length
		chunkSize:    config.chunkSize(),
		ctx:          ctx,
		watchdog:     wd,
		pollFunction: config.PollFunction,
		pollInterval: config.pollInterval(),
	}, nil
}
