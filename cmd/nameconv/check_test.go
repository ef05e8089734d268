package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Args(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "check", "mdl_policeCar_v001", "mdl_policeCar")
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 2)

	assert.True(t, reports[0].Valid)
	assert.Equal(t, "mdl_policeCar_v001", reports[0].Canonical)
	assert.Equal(t, "policeCar", reports[0].Fields["name"])

	assert.False(t, reports[1].Valid)
	assert.Equal(t, "not_enough_tokens", reports[1].ErrorKind)
}

func TestCheck_Stdin(t *testing.T) {
	isolate(t)

	stdin := "# exported today\n\nshots/anm_hero_crashed_020_publish.ma\r\n// skipped\nbad\n"
	out, _, err := execute(t, stdin, "check")
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 2)
	assert.Equal(t, "anm_hero_crashed_020_publish", reports[0].Name)
	assert.True(t, reports[0].Valid)
	assert.Equal(t, "bad", reports[1].Name)
	assert.False(t, reports[1].Valid)
}

func TestCheck_Strict(t *testing.T) {
	isolate(t)

	out, stderr, err := execute(t, "", "check", "--strict", "rig_hero_v001", "rig_hero")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 names rejected")
	assert.Contains(t, stderr, "1 of 2 names rejected")
	assert.Len(t, decodeReports(t, out), 2)

	_, _, err = execute(t, "", "check", "--strict", "rig_hero_v001")
	assert.NoError(t, err)
}

func TestCheck_Pretty(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "check", "-f", "pretty", "rig_hero_v012", "rig")
	require.NoError(t, err)
	assert.Contains(t, out, "ok   rig_hero_v012 name=hero type=rig version=v012\n")
	assert.Contains(t, out, "FAIL rig: ")
}

func TestCheck_Asset(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "check", "--asset", "-f", "pretty", "lay_street_020_publish")
	require.NoError(t, err)
	assert.Contains(t, out, "(Layout)")
}

func TestCheck_ConventionFlag(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, filepath.Join(dir, "studio.yaml"), dottedConvention)

	out, _, err := execute(t, "", "check", "--convention", path, "sh010.anim.t2", "sh010_anim")
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 2)
	assert.True(t, reports[0].Valid)
	assert.Equal(t, "t2", reports[0].Fields["take"])
	assert.False(t, reports[1].Valid)
}

func TestCheck_ConventionLookup(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "nameconv.yaml"), dottedConvention)

	out, _, err := execute(t, "", "check", "sh020.comp")
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Valid)
}

func TestCheck_ConventionEnv(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, filepath.Join(dir, "env.yaml"), dottedConvention)
	t.Setenv("NAMECONV_CONVENTION", path)

	out, _, err := execute(t, "", "check", "sh020.comp")
	require.NoError(t, err)
	assert.True(t, decodeReports(t, out)[0].Valid)
}

func TestCheck_ConventionMissing(t *testing.T) {
	dir := isolate(t)

	_, _, err := execute(t, "", "check", "-c", filepath.Join(dir, "missing.yaml"), "x")
	assert.Error(t, err)
}

func TestCheck_ConventionInvalid(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, filepath.Join(dir, "bad.yaml"), "version: 1\nrules:\n  - name: a\n    pattern: '^[a-$'\n")

	_, _, err := execute(t, "", "check", "-c", path, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regular expression")
}

func TestCheck_SettingsFile(t *testing.T) {
	dir := isolate(t)
	settings := writeFile(t, filepath.Join(dir, "settings.yaml"), "format: pretty\nstrict: true\n")

	out, _, err := execute(t, "", "check", "--config", settings, "rig_hero_v001", "rig")
	require.Error(t, err)
	assert.Contains(t, out, "ok   rig_hero_v001")

	// Flags take precedence over the settings file.
	out, _, err = execute(t, "", "check", "--config", settings, "--format", "jsonl", "rig_hero_v001")
	require.NoError(t, err)
	assert.Len(t, decodeReports(t, out), 1)
}

func TestCheck_EnvSettings(t *testing.T) {
	isolate(t)
	t.Setenv("NAMECONV_FORMAT", "pretty")

	out, _, err := execute(t, "", "check", "rig_hero_v001")
	require.NoError(t, err)
	assert.Contains(t, out, "ok   rig_hero_v001")
}

func TestCheck_InvalidFormat(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "check", "-f", "xml", "rig_hero_v001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
}

func TestCheck_Verbose(t *testing.T) {
	isolate(t)

	_, stderr, err := execute(t, "", "check", "--verbose", "rig_hero_v001")
	require.NoError(t, err)
	assert.Contains(t, stderr, "convention loaded")
	assert.Contains(t, stderr, "source=built-in")
}

func TestCheck_LogLevel(t *testing.T) {
	isolate(t)

	_, stderr, err := execute(t, "", "check", "--log-level", "info", "rig_hero_v001")
	require.NoError(t, err)
	assert.Contains(t, stderr, "check finished")
	assert.NotContains(t, stderr, "convention loaded")
}

func TestCheck_KeepExt(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "check", "mdl_tree_v001.ma")
	require.NoError(t, err)
	assert.True(t, decodeReports(t, out)[0].Valid)

	out, _, err = execute(t, "", "check", "--keep-ext", "mdl_tree_v001.ma")
	require.NoError(t, err)
	r := decodeReports(t, out)[0]
	assert.Equal(t, "mdl_tree_v001.ma", r.Name)
	assert.False(t, r.Valid)
	assert.Equal(t, "unmatched_token", r.ErrorKind)
}
