//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package gsod

import (
	"path"
	"strconv"
	"strings"
)

// DefaultArchiveBase is the public location of the yearly GSOD archives.
const DefaultArchiveBase = "https://www.ncei.noaa.gov/data/global-summary-of-the-day/archive"

// ArchiveURL returns the URL of the archive for the given year:
// <base>/<year>.tar.gz
func ArchiveURL(base string, year int) string {
	return strings.TrimRight(base, "/") + "/" + strconv.Itoa(year) + ".tar.gz"
}

// ListArchives returns the archives to download for a year. The archive
// naming is fixed, so there is exactly one per year and no listing is fetched.
func ListArchives(base string, year int) []string {
	return []string{ArchiveURL(base, year)}
}

// ArchiveName returns the trailing path segment of an archive URL, used as
// the local file name.
func ArchiveName(archiveURL string) string {
	if i := strings.IndexAny(archiveURL, "?#"); i >= 0 {
		archiveURL = archiveURL[:i]
	}
	return path.Base(archiveURL)
}
