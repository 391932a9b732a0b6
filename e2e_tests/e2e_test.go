package e2etest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/retrodev/mzmap/catalog"
	"github.com/retrodev/mzmap/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// writeSampleExe builds a minimal MZ executable: an entry function that
// issues int 21h and returns, followed by a helper function with a frame
// pointer prologue, called twice from the entry.
func writeSampleExe(t *testing.T, path string) {
	t.Helper()

	header := make([]byte, 32)
	header[0], header[1] = 'M', 'Z'
	binary.LittleEndian.PutUint16(header[8:], 2)  // header paragraphs
	binary.LittleEndian.PutUint16(header[22:], 2) // CS -> entry at 32

	code := make([]byte, 64)
	for i := range code {
		code[i] = 0x90
	}
	// entry (offset 32): int 21h, two calls to 64, ret.
	code[0], code[1] = 0xCD, 0x21
	code[2], code[3], code[4] = 0xE8, 0x1B, 0x00 // call +27 -> 64
	code[5], code[6], code[7] = 0xE8, 0x18, 0x00 // call +24 -> 64
	code[8] = 0xC3
	// helper (offset 64): push bp; mov bp, sp; int 10h; ret.
	copy(code[32:], []byte{0x55, 0x8B, 0xEC, 0xCD, 0x10, 0xC3})

	require.NoError(t, os.WriteFile(path, append(header, code...), 0o644))
}

func runApp(t *testing.T, args ...string) error {
	t.Helper()
	app := cli.NewApp()
	app.Commands = []*cli.Command{
		cmd.AnalyzeCommand,
		cmd.InspectCommand,
		cmd.SchemaCommand,
	}
	return app.Run(append([]string{"mzmap"}, args...))
}

func TestAnalyzeEndToEnd(t *testing.T) {
	dir := t.TempDir()
	exePath := filepath.Join(dir, "GAME.EXE")
	writeSampleExe(t, exePath)

	catalogPath := filepath.Join(dir, "artifacts", "symbols.json")
	reportPath := filepath.Join(dir, "report.txt")
	err := runApp(t,
		"analyze",
		"--catalog-output-path", catalogPath,
		"--format", "text",
		"--report-output-path", reportPath,
		exePath)
	require.NoError(t, err)

	cat, err := catalog.Load(catalogPath)
	require.NoError(t, err)
	require.Len(t, cat.Functions, 2)

	entry := cat.Functions[0]
	assert.Equal(t, "entry", entry.Name)
	assert.Equal(t, "0x20", entry.EntryLinear)
	assert.Equal(t, "Program entry point", entry.Notes)
	assert.Equal(t, []string{"0x21"}, entry.IntUsage)
	assert.Equal(t, "dos", entry.Subsystem)
	assert.Equal(t, 9, entry.SizeBytes) // ret at offset 40

	helper := cat.Functions[1]
	assert.Equal(t, "FUN_00040", helper.Name)
	assert.Equal(t, "auto-discovered (prologue+call)", helper.Notes)
	assert.Equal(t, []string{"0x22", "0x25"}, helper.Callers)
	assert.Equal(t, "video", helper.Subsystem)
	assert.Equal(t, 6, helper.SizeBytes)

	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "Total functions: 2")

	// Re-running over the same image is deterministic apart from the
	// generation timestamp.
	require.NoError(t, runApp(t,
		"analyze",
		"--catalog-output-path", catalogPath,
		"--format", "text",
		"--report-output-path", reportPath,
		exePath))
	again, err := catalog.Load(catalogPath)
	require.NoError(t, err)
	require.Len(t, again.Functions, 2)
	assert.Equal(t, cat.BinaryHash, again.BinaryHash)
	assert.Equal(t, cat.Functions[1].Callers, again.Functions[1].Callers)
}

func TestAnalyzeRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "NOTMZ.BIN")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o644))

	catalogPath := filepath.Join(dir, "symbols.json")
	err := runApp(t, "analyze", "--catalog-output-path", catalogPath, path)
	require.Error(t, err)

	// Fatal rejection writes no partial artifact.
	_, statErr := os.Stat(catalogPath)
	assert.True(t, os.IsNotExist(statErr))
}
