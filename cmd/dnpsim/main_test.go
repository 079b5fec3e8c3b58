package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"dnpsim/pkg/report"
	"dnpsim/pkg/storage"
	"dnpsim/pkg/verify"
)

const raceScript = `3
rename to sv_attr v
rename to mv_attr u
add sv_attr w
`

const quietScript = `2
add mv_attr u
add mv_attr w
`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeConfig(t *testing.T, dir string, corpus bool) string {
	t.Helper()

	enabled := "false"
	if corpus {
		enabled = "true"
	}
	return writeFile(t, dir, "config.yaml", `simulation:
  runs: 3
  max_ops: 4
  seed: 11
catalog:
  values: [v, u, w]
output:
  log_level: error
corpus:
  enabled: `+enabled+`
  dir: `+filepath.Join(dir, "corpus")+`
`)
}

func TestReplay(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)
	race := writeFile(t, dir, "race.txt", raceScript)
	quiet := writeFile(t, dir, "quiet.txt", quietScript)

	tests := []struct {
		name    string
		args    []string
		stdin   string
		want    string
		wantErr error
	}{
		{
			name: "diverging script",
			args: []string{"replay", race},
			want: report.Message(verify.Diverged),
		},
		{
			name:    "diverging script fails on request",
			args:    []string{"replay", "--fail-on-divergence", race},
			want:    report.Message(verify.Diverged),
			wantErr: errNotConverged,
		},
		{
			name: "converging script",
			args: []string{"replay", "--fail-on-divergence", quiet},
			want: report.Message(verify.Converged),
		},
		{
			name:  "script from stdin",
			args:  []string{"replay", "-"},
			stdin: raceScript,
			want:  report.Message(verify.Diverged),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, tc.stdin, append([]string{"-c", cfg}, tc.args...)...)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Contains(t, out, tc.want)
		})
	}
}

func TestReplay_Errors(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)
	bad := writeFile(t, dir, "bad.txt", "1\nmodify mv_attr u\n")

	_, err := execute(t, "", "-c", cfg, "replay", bad)
	require.ErrorContains(t, err, "bad.txt")

	_, err = execute(t, "", "-c", cfg, "replay", filepath.Join(dir, "missing.txt"))
	require.Error(t, err)

	_, err = execute(t, "", "-c", cfg, "replay")
	require.Error(t, err)
}

func TestReplay_VerboseToFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)
	race := writeFile(t, dir, "race.txt", raceScript)
	reportPath := filepath.Join(dir, "report.txt")

	out, err := execute(t, "", "-c", cfg, "replay", "-v", "-f", reportPath, race)
	require.NoError(t, err)
	require.Empty(t, out)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "simulation run 6")
	require.Contains(t, string(data), report.Message(verify.Diverged))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)
	textfile := filepath.Join(dir, "dnpsim.prom")

	out, err := execute(t, "", "-c", cfg, "run", "-n", "5", "--seed", "3", "--metrics-textfile", textfile)
	require.NoError(t, err)
	require.Contains(t, out, "running simulation #5 (seed 3)")
	require.NotContains(t, out, "running simulation #6")

	metrics, err := os.ReadFile(textfile)
	require.NoError(t, err)
	require.Contains(t, string(metrics), "dnpsim_simulations_total")
}

func TestRun_SameSeedSameOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)

	first, err := execute(t, "", "-c", cfg, "run", "--seed", "42", "-p", "1")
	require.NoError(t, err)
	second, err := execute(t, "", "-c", cfg, "run", "--seed", "42", "-p", "3")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRun_InvalidFlags(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)

	_, err := execute(t, "", "-c", cfg, "run", "--max-ops", "11")
	require.Error(t, err)

	_, err = execute(t, "", "-c", cfg, "run", "extra")
	require.Error(t, err)
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "", "-c", filepath.Join(dir, "missing.yaml"), "run")
	require.ErrorContains(t, err, "load config")

	bad := writeFile(t, dir, "bad.yaml", "simulation:\n  max_ops: 20\n")
	_, err = execute(t, "", "-c", bad, "run")
	require.ErrorContains(t, err, "load config")
}

func TestCorpus(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, true)
	race := writeFile(t, dir, "race.txt", raceScript)
	quiet := writeFile(t, dir, "quiet.txt", quietScript)

	_, err := execute(t, "", "-c", cfg, "replay", race)
	require.NoError(t, err)
	_, err = execute(t, "", "-c", cfg, "replay", race)
	require.NoError(t, err)
	_, err = execute(t, "", "-c", cfg, "replay", quiet)
	require.NoError(t, err)

	store, err := storage.Open(storage.DefaultConfig(filepath.Join(dir, "corpus")))
	require.NoError(t, err)
	scenarios, err := store.List(context.Background())
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.Len(t, scenarios, 1)
	id := scenarios[0].ID.String()

	out, err := execute(t, "", "-c", cfg, "corpus", "list")
	require.NoError(t, err)
	require.Contains(t, out, id)
	require.Contains(t, out, "diverged")
	require.Contains(t, out, "2/6")

	out, err = execute(t, "", "-c", cfg, "corpus", "show", id)
	require.NoError(t, err)
	require.Contains(t, out, "rename to sv_attr v")
	require.Contains(t, out, "sv.current.id: w in the first run, v in this run")
	require.Contains(t, out, "final entry state of run 2:")
	require.Contains(t, out, "final entry state of run 5:")
	require.Contains(t, out, "attribute sv_attr is present and has the value of v")

	out, err = execute(t, "", "-c", cfg, "corpus", "replay", "--fail-on-divergence", id)
	require.ErrorIs(t, err, errNotConverged)
	require.Contains(t, out, report.Message(verify.Diverged))

	_, err = execute(t, "", "-c", cfg, "corpus", "show", "not-a-uuid")
	require.ErrorContains(t, err, "invalid scenario id")
}
