// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package afcio

import (
	"fmt"
	"os"
	"time"
)

// WriteProgressFile rewrites path with the two-line progress.txt shape
// (spec §6): an integer percent, then an "Elapsed Time/Remaining" line.
// Called from a progress.Tracker's OnPercent callback.
func WriteProgressFile(path string, percent int, elapsed, remaining time.Duration) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d\n", percent); err != nil {
		return err
	}
	_, err = fmt.Fprintf(f, "Elapsed Time: %d s, Remaining: %d s\n",
		int(elapsed.Seconds()), int(remaining.Seconds()))
	return err
}
