package commands

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const euSource = `
Rule EU 1996 max - Mar lastSun 1:00u 1:00 S
Rule EU 1996 max - Oct lastSun 1:00u 0    -
Zone Europe/Test 1:00 EU CE%sT
`

// run executes the root command with a clean environment and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, name := range []string{"TEMPORAL_CONFIG", "ZONEINFO", "TEMPORAL_ZONEINFO_DIR", "TEMPORAL_TIME_ZONE", "TEMPORAL_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

// compileTree compiles euSource into dir/Europe/Test and returns dir.
func compileTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "europe")
	require.NoError(t, os.WriteFile(src, []byte(euSource), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Europe"), 0o755))
	_, err := run(t, "zone", "compile", src, "--name", "Europe/Test", "-o", filepath.Join(dir, "Europe", "Test"))
	require.NoError(t, err)
	return dir
}

func TestAdd(t *testing.T) {
	out, err := run(t, "add", "--at", "0", "--zone", "UTC", "--days", "1", "--hours", "5")
	require.NoError(t, err)
	require.Equal(t, "1970-01-02T05:00:00.000000000+00:00[UTC] (104400000000000 ns)\n", out)

	_, err = run(t, "add", "--at", "0", "--zone", "UTC", "--days", "1", "--hours", "-5")
	require.Error(t, err)

	_, err = run(t, "add", "--at", "soon")
	require.Error(t, err)
}

func TestUntil(t *testing.T) {
	out, err := run(t, "until", "--from", "0", "--to", "90000000000000", "--zone", "UTC", "--largest-unit", "hour")
	require.NoError(t, err)
	require.Contains(t, out, "Hours:25")
}

func TestResolveInGap(t *testing.T) {
	dir := compileTree(t)
	out, err := run(t, "resolve", "--zoneinfo-dir", dir, "--zone", "Europe/Test", "--date", "2024-03-31", "--time", "02:30")
	require.NoError(t, err)
	require.Equal(t, "compatible: 2024-03-31T03:30:00.000000000+02:00[Europe/Test] (1711848600000000000 ns)\n", out)

	_, err = run(t, "resolve", "--zoneinfo-dir", dir, "--zone", "Europe/Test", "--date", "2024-03-31", "--time", "02:30", "--disambiguation", "reject")
	require.Error(t, err)
}

func TestZoneCommands(t *testing.T) {
	dir := compileTree(t)
	file := filepath.Join(dir, "Europe", "Test")

	out, err := run(t, "zone", "info", file)
	require.NoError(t, err)
	require.Contains(t, out, "TZ string = CET-1CEST,M3.5.0,M10.5.0/3")
	require.NotContains(t, out, "Invalid")

	out, err = run(t, "zone", "diff", file, file)
	require.NoError(t, err)
	require.Equal(t, "files are identical\n", out)

	out, err = run(t, "zone", "transitions", "--zoneinfo-dir", dir, "Europe/Test", "--from", "2024", "--to", "2024")
	require.NoError(t, err)
	require.Equal(t, []string{
		"1711846800  CET +3600 -> CEST +7200 DST",
		"1729990800  CEST +7200 -> CET +3600",
	}, strings.Split(strings.TrimSpace(out), "\n"))

	_, err = run(t, "zone", "compile", filepath.Join(dir, "missing"), "--name", "Europe/Test")
	require.Error(t, err)
}

func TestZoneBuild(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, data := range map[string]string{
		"version": "2024b\n",
		"europe":  "# tzdb data for Europe and environs\n" + euSource,
	} {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0o644, Size: int64(len(data)), Typeflag: tar.TypeReg}))
		_, err := tw.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	archive := filepath.Join(dir, "tzdata2024b.tar.gz")
	require.NoError(t, os.WriteFile(archive, buf.Bytes(), 0o644))

	zoneinfoDir := filepath.Join(dir, "zoneinfo")
	out, err := run(t, "zone", "build", archive, "-o", zoneinfoDir)
	require.NoError(t, err)
	require.Equal(t, "tzdb 2024b: wrote 1 zones to "+zoneinfoDir+"\n", out)

	out, err = run(t, "add", "--zoneinfo-dir", zoneinfoDir, "--zone", "Europe/Test", "--at", "1711846800000000000", "--hours", "-1")
	require.NoError(t, err)
	require.Equal(t, "2024-03-31T01:00:00.000000000+01:00[Europe/Test] (1711843200000000000 ns)\n", out)

	_, err = run(t, "zone", "build", filepath.Join(dir, "missing.tar.gz"), "-o", zoneinfoDir)
	require.Error(t, err)
}
