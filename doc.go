//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package gsod bulk-downloads the yearly Global Summary of the Day archives
// and extracts them into one directory per year.
//
// The per-year archive URL is synthesized from a fixed naming convention
// (see ArchiveURL). Each year is handled by an independent task: the archive
// is streamed to disk with progress reporting, unpacked in place and then
// removed. An Orchestrator runs the tasks on a bounded worker pool.
package gsod
