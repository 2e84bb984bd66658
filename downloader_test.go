//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package gsod

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	payload := bytes.Repeat([]byte("0123456789abcdef"), 503)
	srv := newArchiveServer(t, map[string][]byte{"/test.txt": payload})
	tmpFile := filepath.Join(t.TempDir(), "test.txt")

	d, err := DownloadWithConfig(tmpFile, srv.URL+"/test.txt", Config{ChunkSize: 100})
	require.NoError(t, err)
	require.Equal(t, int64(len(payload)), d.Size())
	require.NoError(t, d.Run())
	require.Equal(t, int64(len(payload)), d.Completed())

	data, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	require.Equal(t, payload, data)
}

func TestDownloadPollFunction(t *testing.T) {
	payload := bytes.Repeat([]byte{'x'}, 4096)
	srv := newArchiveServer(t, map[string][]byte{"/test.txt": payload})
	tmpFile := filepath.Join(t.TempDir(), "test.txt")

	var mu sync.Mutex
	var polls [][2]int64
	d, err := DownloadWithConfig(tmpFile, srv.URL+"/test.txt", Config{
		PollInterval: time.Millisecond,
		PollFunction: func(current, size int64) {
			mu.Lock()
			polls = append(polls, [2]int64{current, size})
			mu.Unlock()
		},
	})
	require.NoError(t, err)
	require.NoError(t, d.Run())

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, polls)
	require.Equal(t, [2]int64{4096, 4096}, polls[len(polls)-1])
}

func TestDownloadNon2xx(t *testing.T) {
	srv := newArchiveServer(t, nil)
	tmpFile := filepath.Join(t.TempDir(), "missing.txt")

	d, err := Download(tmpFile, srv.URL+"/missing.txt")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnexpectedStatus))
	require.Nil(t, d)
	require.NoFileExists(t, tmpFile)
}

func TestDownloadDoNotErrorOnNon2xx(t *testing.T) {
	srv := newArchiveServer(t, nil)
	tmpFile := filepath.Join(t.TempDir(), "missing.txt")

	d, err := DownloadWithConfig(tmpFile, srv.URL+"/missing.txt", Config{DoNotErrorOnNon2xxStatusCode: true})
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, d.Resp.StatusCode)
	require.NoError(t, d.Run())
	require.FileExists(t, tmpFile)
}

func TestAcceptFunc(t *testing.T) {
	srv := newArchiveServer(t, map[string][]byte{"/big.bin": make([]byte, 3000)})
	tmpFile := filepath.Join(t.TempDir(), "big.bin")

	errTooBig := errors.New("insufficient space for download")
	d, err := DownloadWithConfig(tmpFile, srv.URL+"/big.bin", Config{
		AcceptFunc: func(resp *http.Response) error {
			if resp.ContentLength > 2000 {
				return errTooBig
			}
			return nil
		},
	})
	require.ErrorIs(t, err, errTooBig)
	require.Nil(t, d)
	require.NoFileExists(t, tmpFile)
}

func TestInvalidRequest(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.txt")

	d, err := Download(tmpFile, "asd://example.invalid/test.txt")
	require.Error(t, err)
	require.Nil(t, d)
}

func TestInactivityTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		_, _ = w.Write([]byte("partial"))
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	tmpFile := filepath.Join(t.TempDir(), "stalled.bin")
	d, err := DownloadWithConfig(tmpFile, srv.URL+"/stalled.bin", Config{InactivityTimeout: 50 * time.Millisecond})
	require.NoError(t, err)

	err = d.Run()
	require.ErrorIs(t, err, os.ErrDeadlineExceeded)
	require.Equal(t, int64(len("partial")), d.Completed())
}

func TestDefaultConfig(t *testing.T) {
	prev := GetDefaultConfig()
	defer SetDefaultConfig(prev)

	SetDefaultConfig(Config{ExtraHeaders: map[string]string{"User-Agent": "gsod-test"}})
	cfg := GetDefaultConfig()
	cfg.ExtraHeaders["User-Agent"] = "changed"
	require.Equal(t, "gsod-test", GetDefaultConfig().ExtraHeaders["User-Agent"])
}
