package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lmstools/oracle-audit-rollup/pkg/config"
)

func TestWriteWorkbook(t *testing.T) {
	rep := Assemble(sampleInputs(), config.Default())
	dir := t.TempDir()

	path, err := NewWriter().Write(rep, &Options{
		Format:    XLSXFormat,
		OutputDir: dir,
		Filename:  "rollup",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rollup.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		"Evidence", "Database Details", "Virtual Devices", "Hosts",
		"Clusters", "Summary", "Entitlements",
	}, f.GetSheetList())

	header, err := f.GetCellValue("Database Details", "A1")
	require.NoError(t, err)
	assert.Equal(t, "device_name", header)

	first, err := f.GetCellValue("Database Details", "A2")
	require.NoError(t, err)
	assert.Equal(t, "vm-a", first)
}

func TestWriteJSON(t *testing.T) {
	rep := Assemble(sampleInputs(), config.Default())
	dir := t.TempDir()

	path, err := NewWriter().Write(rep, &Options{
		Format:    JSONFormat,
		OutputDir: dir,
		Filename:  "rollup",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Tables, 7)
	assert.Equal(t, "Evidence", decoded.Tables[0].Name)
}

func TestWriteDefaultFilenameIsTimestamped(t *testing.T) {
	rep := &Report{
		GeneratedAt: time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		Tables:      []Table{{Name: "Evidence"}},
	}
	dir := t.TempDir()

	path, err := NewWriter().Write(rep, &Options{Format: JSONFormat, OutputDir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "oracle_audit_rollup_20260314_150926.json"), path)
}

func TestWriteCreatesOutputDir(t *testing.T) {
	rep := Assemble(sampleInputs(), config.Default())
	dir := filepath.Join(t.TempDir(), "nested", "out")

	_, err := NewWriter().Write(rep, &Options{Format: JSONFormat, OutputDir: dir, Filename: "r"})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "r.json"))
	assert.NoError(t, err)
}
