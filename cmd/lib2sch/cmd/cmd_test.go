package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const opampLib = "../../../pkg/kicad/library/testdata/opamp.lib"

// resetFlags restores the flag variables, which outlive a single Execute.
func resetFlags() {
	verbose = false
	convertOutput = "-"
	convertFormat = "json"
	convertConfig = ""
	convertLayout = false
	convertTheme = "default"
	convertInclude = nil
	convertExclude = nil
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestInfoSummary(t *testing.T) {
	out, _, err := run(t, "info", opampLib)
	require.NoError(t, err)

	assert.Contains(t, out, "Library: opamp")
	assert.Contains(t, out, "Symbols: 1")
	assert.Contains(t, out, "OPA340 (U)")
	assert.Contains(t, out, "Aliases: OPA341, TLV2371")
	assert.Contains(t, out, "Footprint: Package_TO_SOT_SMD:SOT-23-5")
	assert.Contains(t, out, "Graphics: 5 pin, 1 polygon, 4 annotation")
	assert.Contains(t, out, "Warnings: 2")
}

func TestInfoDefinition(t *testing.T) {
	out, _, err := run(t, "info", opampLib, "TLV2371")
	require.NoError(t, err)

	assert.Contains(t, out, "Symbol: OPA340")
	assert.Contains(t, out, "Alias: TLV2371")
	assert.Contains(t, out, "1 (+): input at (-30, -10) 0°")
	assert.Contains(t, out, "5 (): output at (30, 0) 180°")

	_, _, err = run(t, "info", opampLib, "LM358")
	assert.ErrorContains(t, err, "symbol 'LM358' not found")
}

func TestConvert(t *testing.T) {
	output := filepath.Join(t.TempDir(), "opamp.json")
	_, _, err := run(t, "convert", opampLib, "-o", output, "--layout", "--theme", "kicad")
	require.NoError(t, err)

	raw, err := os.ReadFile(output)
	require.NoError(t, err)

	var doc struct {
		ItemOrder []string                   `json:"itemOrder"`
		SchLib    map[string]json.RawMessage `json:"schlib"`
		BBox      map[string]float64         `json:"BBox"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc.ItemOrder, 3)
	assert.Len(t, doc.SchLib, 3)
	assert.Equal(t, 330.0, doc.BBox["height"])
}

func TestConvertMissingFile(t *testing.T) {
	_, _, err := run(t, "convert", "does-not-exist.lib", "-o", filepath.Join(t.TempDir(), "out.json"))
	assert.Error(t, err)
}

func TestConvertRejectsSharedLibraryName(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(opampLib)
	require.NoError(t, err)
	other := filepath.Join(dir, "opamp.lib")
	require.NoError(t, os.WriteFile(other, data, 0o644))

	output := filepath.Join(dir, "out.json")
	_, _, err = run(t, "convert", opampLib, other, "-o", output)
	assert.ErrorContains(t, err, "share the name opamp")
	assert.NoFileExists(t, output)
}

func TestConvertDefaultsAfterFlaggedRun(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, "convert", opampLib, "-o", filepath.Join(dir, "a.json"), "--layout", "--theme", "kicad")
	require.NoError(t, err)

	output := filepath.Join(dir, "b.json")
	_, _, err = run(t, "convert", opampLib, "-o", output)
	require.NoError(t, err)

	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	var doc struct {
		BBox map[string]float64 `json:"BBox"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	// Without layout every instance sits at the origin, 70 high.
	assert.Equal(t, 70.0, doc.BBox["height"])
	assert.NotContains(t, string(raw), "#840000")
}
