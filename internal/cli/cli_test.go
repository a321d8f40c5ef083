package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cmdassist/internal/cli"
	"github.com/yaklabco/cmdassist/internal/configloader"
	"github.com/yaklabco/cmdassist/pkg/config"
	"github.com/yaklabco/cmdassist/pkg/pack"
	"github.com/yaklabco/cmdassist/pkg/reporter"
)

var testInfo = cli.BuildInfo{
	Version: "test",
	Commit:  "test",
	Date:    "test",
}

// execute runs the root command with an empty explicit config so that
// project files do not leak into the test.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".cmdassist.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("log_level: error\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func writeFunction(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "load.mcfunction")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)
	assert.Equal(t, "cmdassist", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"debug", "config", "pack", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	for _, name := range []string{"check", "complete", "highlight", "structure", "ids", "rules", "init", "lsp", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestCheckCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	check, _, err := cmd.Find([]string{"check"})
	require.NoError(t, err)

	for _, name := range []string{"fix", "dry-run", "format", "max-level", "jobs", "ignore", "enable", "disable", "strict", "no-context"} {
		assert.NotNil(t, check.Flags().Lookup(name), "flag %q", name)
	}
	require.NoError(t, check.Args(check, []string{"a.mcfunction", "functions/"}))
}

func TestHelp(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "check", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Check every command of .mcfunction files.")
	assert.Contains(t, out, "Flags:")
	assert.Contains(t, out, "--max-level string")
	assert.Contains(t, out, "(default warning)")
	assert.Contains(t, out, "Global Flags:")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"}
	cmd := cli.NewRootCommand(info)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "version=1.2.3")
	assert.Contains(t, out.String(), "commit=abc123")
}

func TestCheck(t *testing.T) {
	t.Parallel()

	path := writeFunction(t, "# setup\nsay hi\nsya hi\n")
	out, err := execute(t, "", "check", path)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Equal(t, cli.ExitIssues, cli.ExitCode(err))
	assert.Contains(t, out, ":3:1  id-error")
	assert.Contains(t, out, "Did you mean: say")
	assert.Contains(t, out, "1 issue (1 id-error) in 1 file, 1 fixable")
}

func TestCheck_JSON(t *testing.T) {
	t.Parallel()

	path := writeFunction(t, "kill @e extra\n")
	out, err := execute(t, "", "check", "--format", "json", path)
	require.ErrorIs(t, err, cli.ErrIssuesFound)

	var report reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Files, 1)
	require.Len(t, report.Files[0].Diagnostics, 1)
	assert.Equal(t, 9, report.Files[0].Diagnostics[0].StartColumn)
	assert.Equal(t, 1, report.Summary.ByLevel["excess"])
}

func TestCheck_Summary(t *testing.T) {
	t.Parallel()

	path := writeFunction(t, "kill @e extra\nsya hi\n")
	out, err := execute(t, "", "check", "--format", "summary", path)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "By rule:\n")
	assert.Contains(t, out, "excess")
	assert.Contains(t, out, "id-error")
	assert.Contains(t, out, "By file:\n")
}

func TestCheck_MaxLevel(t *testing.T) {
	t.Parallel()

	path := writeFunction(t, "kill @e[r=5,r=6]\n")
	_, err := execute(t, "", "check", path)
	require.ErrorIs(t, err, cli.ErrIssuesFound)

	out, err := execute(t, "", "check", "--max-level", "content", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found")

	_, err = execute(t, "", "check", "--disable", "selector-duplicate", path)
	require.NoError(t, err)
}

func TestCheck_Stdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "say hi\n\nkill @e\n", "check", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found (2 commands in 1 file)")

	_, err = execute(t, "give\n", "check", "-")
	require.ErrorIs(t, err, cli.ErrIssuesFound)
}

func TestCheck_Fix(t *testing.T) {
	t.Parallel()

	path := writeFunction(t, "sya hi\n")

	out, err := execute(t, "", "check", "--dry-run", path)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "-sya hi")
	assert.Contains(t, out, "+say hi")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sya hi\n", string(data), "dry run leaves the file")

	_, err = execute(t, "", "check", "--fix", path)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "say hi\n", string(data))
}

func TestCheck_Errors(t *testing.T) {
	t.Parallel()

	path := writeFunction(t, "say hi\n")

	_, err := execute(t, "", "check", "--max-level", "severe", path)
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))

	_, err = execute(t, "", "--pack", filepath.Join(t.TempDir(), "missing.yaml"), "check", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("manifest: {name: x}\n"), 0o644))
	_, err = execute(t, "", "--pack", bad, "check", path)
	require.ErrorIs(t, err, pack.ErrInvalidPack)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestComplete(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "complete", "kill")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "  0  ␣"), out)

	out, err = execute(t, "kill\n", "complete", "--limit", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "  0  ␣"), "reads standard input")
	assert.NotContains(t, out, "  1  ")
}

func TestComplete_Accept(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "complete", "--format", "json", "ki")
	require.NoError(t, err)

	var candidates []struct {
		Text  string `json:"text"`
		Start int    `json:"start"`
		End   int    `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &candidates))
	index := -1
	for i, c := range candidates {
		if c.Text == "kill" {
			index = i
			assert.Equal(t, 0, c.Start)
			assert.Equal(t, 2, c.End)
		}
	}
	require.GreaterOrEqual(t, index, 0)

	out, err = execute(t, "", "complete", "--accept", strconv.Itoa(index), "ki")
	require.NoError(t, err)
	assert.Equal(t, "kill\ncursor: 4\n", out)

	_, err = execute(t, "", "complete", "--accept", "9999", "ki")
	require.Error(t, err)
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "highlight", "kill @e[r=5]")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "kill @e[r=5]", lines[0])
	assert.Contains(t, lines[1], "target-selector")

	out, err = execute(t, "", "highlight", "--legend=false", "--diagnostics", "sya hi")
	require.NoError(t, err)
	assert.Contains(t, out, "id-error")
	assert.Contains(t, out, "Did you mean: say")
}

func TestStructure(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "structure", "kill ")
	require.NoError(t, err)
	assert.Equal(t, "<command-name> [victim]\nentities to act on\n", out)

	out, err = execute(t, "", "structure", "--cursor", "2", "kill ")
	require.NoError(t, err)
	assert.Equal(t, "<command-name> [victim]\ncommand name\n", out)
}

func TestIDs(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "ids")
	require.NoError(t, err)
	assert.Contains(t, out, pack.TableBlocks)

	out, err = execute(t, "", "ids", "--format", "json", pack.TableBlocks)
	require.NoError(t, err)
	var entries []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "minecraft:stone")

	out, err = execute(t, "", "ids", "--filter", "stne", pack.TableBlocks)
	require.NoError(t, err)
	assert.Contains(t, out, "minecraft:stone")

	_, err = execute(t, "", "ids", "nope")
	require.Error(t, err)
}

func TestRules(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "selector-duplicate")

	out, err = execute(t, "", "rules", "--format", "json")
	require.NoError(t, err)
	var rules []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	assert.Len(t, rules, 4)
}

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".cmdassist.yml")
	_, err := execute(t, "", "init", "--full", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Len(t, cfg.Rules, 4)

	_, err = execute(t, "", "init", "--output", path)
	require.ErrorIs(t, err, configloader.ErrConfigExists)

	_, err = execute(t, "", "init", "--force", "--output", path)
	require.NoError(t, err)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitIssues, cli.ExitCode(cli.ErrIssuesFound))
	assert.Equal(t, cli.ExitWarnings, cli.ExitCode(cli.ErrWarningsFound))
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(cli.ErrConfig))
	assert.True(t, cli.IsResultError(cli.ErrWarningsFound))
	assert.False(t, cli.IsResultError(cli.ErrConfig))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil, true))
}
