//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package gsod

import (
	"context"
	"os"
	"time"
)

// inactivityWatchdog cancels the download context when no data has been
// received for the configured timeout. A zero timeout disables it and
// only the explicit stop cancels the context.
type inactivityWatchdog struct {
	cancel  context.CancelCauseFunc
	timer   *time.Timer
	timeout time.Duration
}

func newInactivityWatchdog(parent context.Context, timeout time.Duration) (context.Context, *inactivityWatchdog) {
	ctx, cancel := context.WithCancelCause(parent)
	wd := &inactivityWatchdog{cancel: cancel, timeout: timeout}
	if timeout > 0 {
		wd.timer = time.AfterFunc(timeout, func() {
			cancel(os.ErrDeadlineExceeded)
		})
	}
	return ctx, wd
}

// Kick postpones the deadline, call it every time data arrives.
func (wd *inactivityWatchdog) Kick() {
	if wd.timer != nil {
		wd.timer.Reset(wd.timeout)
	}
}

// Stop releases the timer and the context.
func (wd *inactivityWatchdog) Stop() {
	if wd.timer != nil {
		wd.timer.Stop()
	}
	wd.cancel(nil)
}
