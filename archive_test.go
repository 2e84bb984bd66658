//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package gsod

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArchiveURL(t *testing.T) {
	for year := DefaultStartYear; year <= DefaultEndYear; year++ {
		require.Equal(t, fmt.Sprintf("%s/%d.tar.gz", DefaultArchiveBase, year), ArchiveURL(DefaultArchiveBase, year))
	}
	require.Equal(t, "http://host/archive/1999.tar.gz", ArchiveURL("http://host/archive/", 1999))
}

func TestListArchives(t *testing.T) {
	require.Equal(t, []string{"http://host/2001.tar.gz"}, ListArchives("http://host", 2001))
}

func TestArchiveName(t *testing.T) {
	require.Equal(t, "1929.tar.gz", ArchiveName(ArchiveURL(DefaultArchiveBase, 1929)))
	require.Equal(t, "2020.tar.gz", ArchiveName("http://host/a/2020.tar.gz?token=x"))
}
