// Copyright (c) 2026, The AFC Engine Authors.
// All rights reserved. See geodesy/geodesy_test.go for the full header.

package afcio

import (
	"compress/gzip"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openafc/afc-engine/incumbent"
)

func readGzipCsv(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()

	rows, err := csv.NewReader(gz).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteExcThrProducesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exc_thr.csv.gz")
	err := WriteExcThr(path, []ExcThrRow{{FsId: 1, Callsign: "WQX123", IOverNDB: -3.5}})
	require.NoError(t, err)

	rows := readGzipCsv(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, excThrHeader, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "WQX123", rows[1][2])
}

func TestWriteFsAnomRecordsReason(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fs_anom.csv.gz")
	err := WriteFsAnom(path, []incumbent.AnomalyRepair{{FsId: 7, Field: "PeakGainDB", Note: "defaulted to TP service default"}})
	require.NoError(t, err)

	rows := readGzipCsv(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "7", rows[1][0])
	assert.Contains(t, rows[1][4], "PeakGainDB")
}

func TestWriteProgressFileWritesTwoLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.txt")
	require.NoError(t, WriteProgressFile(path, 42, 0, 0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "42\n")
	assert.Contains(t, string(data), "Elapsed Time:")
}
