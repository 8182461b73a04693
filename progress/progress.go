// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

// Package progress adapts progctx.ProgCtx's cancellation/waitgroup
// machinery into the percent-complete progress reporting and non-fatal
// status-message accumulation the analysis orchestrator needs (spec
// component L): `ceil(progressFraction*100)` percentage steps, a
// cancellation flag checked between outer-loop iterations, and the
// diagnostics later written to progress.txt / the response.
package progress

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/openafc/afc-engine/progctx"
)

// Tracker reports proportional progress over a known total unit count
// (channels in point mode, azimuths in exclusion-zone mode, grid cells in
// heatmap mode) and accumulates non-fatal status messages.
type Tracker struct {
	prog *progctx.ProgCtx

	total     int
	onPercent func(percent int)
	startedAt time.Time

	mu             sync.Mutex
	completed      int
	lastPercent    int
	statusMessages []string
}

// New builds a Tracker over `total` units of work. onPercent, if non-nil,
// is called with the new value each time the integer percentage advances
// (monotonically increasing; points skipped by a single Increment are not
// reported individually,
// spec §5 "ceil(progressFraction*100) percentage steps"). The returned
// Tracker's cancellation flag is tied to parent: cancelling parent or
// calling Tracker.Cancel both mark it cancelled.
func New(parent context.Context, total int, onPercent func(percent int)) *Tracker {
	if total <= 0 {
		total = 1
	}
	return &Tracker{
		prog:      progctx.New(parent),
		total:     total,
		onPercent: onPercent,
		startedAt: time.Now(),
	}
}

// Increment records one unit of work completed, invoking onPercent if the
// integer percentage advanced.
func (t *Tracker) Increment() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.completed++
	if t.completed > t.total {
		t.completed = t.total
	}
	percent := int(math.Ceil(float64(t.completed) / float64(t.total) * 100))
	if percent > t.lastPercent {
		t.lastPercent = percent
		if t.onPercent != nil {
			t.onPercent(percent)
		}
	}
}

// Cancelled reports whether the tracker (or its parent context) has been
// cancelled; callers check this between outer-loop iterations (spec §5).
func (t *Tracker) Cancelled() bool {
	return t.prog.Err() != nil
}

// Cancel marks the tracker cancelled with the given reason, mirroring
// progctx.ProgCtx.Cancel's "effective only the first time" semantics.
func (t *Tracker) Cancel(reason interface{}) {
	t.prog.Cancel(reason)
}

// AddStatus appends a non-fatal diagnostic message (spec §4.J "status
// message list"), e.g. "empty analysis region: 0 FS in range".
func (t *Tracker) AddStatus(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.statusMessages = append(t.statusMessages, msg)
}

// StatusMessages returns the accumulated status messages.
func (t *Tracker) StatusMessages() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.statusMessages))
	copy(out, t.statusMessages)
	return out
}

// Snapshot returns the current integer percent, elapsed time, and a
// naive linear estimate of remaining time, the fields progress.txt
// persists (spec §6: "integer percent; Elapsed Time: S s, Remaining: R s").
func (t *Tracker) Snapshot() (percent int, elapsed, remaining time.Duration) {
	t.mu.Lock()
	percent = t.lastPercent
	completed := t.completed
	total := t.total
	t.mu.Unlock()

	elapsed = time.Since(t.startedAt)
	if completed == 0 {
		return percent, elapsed, 0
	}
	perUnit := elapsed / time.Duration(completed)
	remaining = perUnit * time.Duration(total-completed)
	if remaining < 0 {
		remaining = 0
	}
	return percent, elapsed, remaining
}
