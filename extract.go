//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package gsod

import (
	"archive/tar"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/m-mizutani/goerr/v2"
)

// ErrUnsafeEntryPath is returned when an archive entry would be written
// outside of the extraction directory.
var ErrUnsafeEntryPath = errors.New("archive entry escapes extraction directory")

// Extract unpacks the gzip-compressed tar archive at archivePath into dir and
// removes the archive afterward. The archive is left in place if anything
// goes wrong during extraction.
func Extract(archivePath, dir string) error {
	if err := extractTarGz(archivePath, dir); err != nil {
		return err
	}
	if err := os.Remove(archivePath); err != nil {
		return goerr.Wrap(err, "removing archive", goerr.V("archive", archivePath))
	}
	return nil
}

func extractTarGz(archivePath, dir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return goerr.Wrap(err, "opening archive", goerr.V("archive", archivePath))
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return goerr.Wrap(err, "reading gzip header", goerr.V("archive", archivePath))
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return goerr.Wrap(err, "reading tar entry", goerr.V("archive", archivePath))
		}
		if !filepath.IsLocal(hdr.Name) {
			return goerr.Wrap(ErrUnsafeEntryPath, "invalid entry",
				goerr.V("archive", archivePath),
				goerr.V("entry", hdr.Name))
		}
		target := filepath.Join(dir, hdr.Name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return goerr.Wrap(err, "creating directory", goerr.V("path", target))
			}
		case tar.TypeReg:
			if err := writeEntry(tr, target, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		default:
			// links and special files are not part of the station archives
		}
	}
}

func writeEntry(r io.Reader, target string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return goerr.Wrap(err, "creating directory", goerr.V("path", filepath.Dir(target)))
	}
	if perm == 0 {
		perm = 0644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return goerr.Wrap(err, "creating file", goerr.V("path", target))
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return goerr.Wrap(err, "writing file", goerr.V("path", target))
	}
	if err := out.Close(); err != nil {
		return goerr.Wrap(err, "closing file", goerr.V("path", target))
	}
	return nil
}
