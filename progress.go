//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package gsod

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// ProgressPrinter writes one human-readable progress line per poll. Many
// downloads may share the same printer, lines are never interleaved.
type ProgressPrinter struct {
	mu    sync.Mutex
	out   io.Writer
	label func(a ...interface{}) string
}

// NewProgressPrinter returns a printer writing to out (os.Stdout if nil).
func NewProgressPrinter(out io.Writer) *ProgressPrinter {
	if out == nil {
		out = os.Stdout
	}
	return &ProgressPrinter{
		out:   out,
		label: color.New(color.FgCyan, color.Bold).SprintFunc(),
	}
}

// Track returns a poll function, suitable for Config.PollFunction, that
// reports the progress of the archive name of the given year.
func (p *ProgressPrinter) Track(year int, name string) func(current, size int64) {
	desc := p.label(fmt.Sprintf("%d - %s", year, name))
	return func(current, size int64) {
		line := formatProgress(current, size)
		p.mu.Lock()
		defer p.mu.Unlock()
		fmt.Fprintf(p.out, "%s: %s\n", desc, line)
	}
}

func formatProgress(current, size int64) string {
	if size <= 0 {
		return formatBytes(current)
	}
	percent := float64(current) / float64(size) * 100
	return fmt.Sprintf("%.1f%% | %s / %s", percent, formatBytes(current), formatBytes(size))
}

// formatBytes formats bytes using binary units.
func formatBytes(b int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case b >= GB:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
