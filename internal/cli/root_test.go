package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeNow is the time reported by the clock passed to commands under test.
var fakeNow = time.Date(2024, 2, 29, 13, 45, 7, 250_000_000, time.UTC)

// run executes the root command with args against fs and returns stdout
// and stderr.
func run(t *testing.T, fs afero.Fs, args ...string) (string, string, error) {
	t.Helper()
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	cmd := NewRootCommand(fs, clockwork.NewFakeClockAt(fakeNow))
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	cmd := NewRootCommand(afero.NewMemMapFs(), clockwork.NewFakeClock())
	a.Equal("sqltemporal", cmd.Use)

	for _, name := range []string{"parse", "format", "add", "extract", "now"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		a.Equal(name, sub.Name())
	}

	for _, name := range []string{"mode", "config", "verbose", "output"} {
		a.NotNil(cmd.PersistentFlags().Lookup(name), name)
	}
	a.Equal("v", cmd.PersistentFlags().Lookup("verbose").Shorthand)
	a.Equal("mode", cmd.PersistentFlags().Lookup("mode").Value.Type())
}

// splitExample splits an example command line into arguments, honoring
// double quotes.
func splitExample(line string) []string {
	var (
		args   []string
		cur    strings.Builder
		quoted bool
		inArg  bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			inArg = true
		case r == ' ' && !quoted:
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args
}

func TestExamples(t *testing.T) {
	t.Parallel()

	cmd := NewRootCommand(afero.NewMemMapFs(), clockwork.NewFakeClock())
	for _, sub := range cmd.Commands() {
		if sub.Example == "" {
			continue
		}
		for line := range strings.SplitSeq(sub.Example, "\n") {
			args := splitExample(strings.TrimSpace(line))
			require.Equal(t, "sqltemporal", args[0], line)
			t.Run(strings.Join(args[1:], " "), func(t *testing.T) {
				t.Parallel()
				out, _, err := run(t, nil, args[1:]...)
				require.NoError(t, err)
				assert.NotEmpty(t, out)
			})
		}
	}

	assert.Equal(t,
		[]string{"extract", "-q", "day to second", "--", "-1 02:03:04", "day"},
		splitExample(`extract -q "day to second" -- "-1 02:03:04" day`),
	)
}

func TestGetExitCode(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.Equal(ExitSuccess, GetExitCode(nil))
	a.Equal(ExitFailure, GetExitCode(errors.New("oops")))
	a.Equal(ExitUsage, GetExitCode(errUsage))
}

func TestUsageErrors(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		args []string
		err  string
	}{
		{
			name: "bad_output",
			args: []string{"--output", "xml", "parse", "2024-02-29"},
			err:  `usage: invalid output "xml": must be one of [text json yaml]`,
		},
		{
			name: "bad_mode",
			args: []string{"--mode", "klingon", "parse", "2024-02-29"},
		},
		{
			name: "unknown_flag",
			args: []string{"parse", "--nope", "2024-02-29"},
			err:  "usage: unknown flag: --nope",
		},
		{
			name: "no_args",
			args: []string{"parse"},
			err:  "usage: accepts 1 arg(s), received 0",
		},
		{
			name: "bad_type",
			args: []string{"parse", "--type", "duration", "1"},
			err:  `usage: unknown type "duration"`,
		},
		{
			name: "no_qualifier",
			args: []string{"parse", "--type", "interval", "1"},
			err:  "usage: --qualifier is required for intervals",
		},
		{
			name: "missing_config",
			args: []string{"--config", "/nope.yaml", "parse", "2024-02-29"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out, _, err := run(t, nil, tc.args...)
			require.Error(t, err)
			if tc.err != "" {
				require.EqualError(t, err, tc.err)
			}
			require.ErrorIs(t, err, errUsage)
			assert.Equal(t, ExitUsage, GetExitCode(err))
			assert.Empty(t, out)
		})
	}
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		path string
		body string
		args []string
		exp  string
	}{
		{
			name: "search_path_yaml",
			path: "/etc/sqltemporal/sqltemporal.yaml",
			body: "mode: oracle\n",
			args: []string{"parse", "-t", "interval", "-q", "second", "5"},
			exp:  "+00 00:00:05\nmonths: 0\nticks: 50000000\nprecision: 0\n",
		},
		{
			name: "flag_overrides_file",
			path: "/etc/sqltemporal/sqltemporal.yaml",
			body: "mode: oracle\n",
			args: []string{"--mode", "standard", "format", "-t", "interval", "-q", "second", "-m", "SS", "5"},
			exp:  "05\n",
		},
		{
			name: "explicit_toml",
			path: "/home/me/temporal.toml",
			body: "precision = 0\n",
			args: []string{"--config", "/home/me/temporal.toml", "now"},
			exp:  "2024-02-29 13:45:07\n",
		},
		{
			name: "explicit_json",
			path: "/home/me/temporal.json",
			body: `{"mode": "oracle", "precision": 1}`,
			args: []string{"--config", "/home/me/temporal.json", "now", "--type", "time"},
			exp:  "13:45:07.3\n",
		},
		{
			name: "output_from_file",
			path: "/etc/sqltemporal/sqltemporal.yaml",
			body: "output: json\n",
			args: []string{"format", "-m", "YYYY", "2024-02-29"},
			exp:  "{\n  \"type\": \"date\",\n  \"mode\": \"standard\",\n  \"value\": \"2024\"\n}\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, tc.path, []byte(tc.body), 0o644))
			out, _, err := run(t, fs, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, out)
		})
	}

	t.Run("bad_file", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/etc/sqltemporal/sqltemporal.yaml", []byte("mode: [\n"), 0o644))
		_, _, err := run(t, fs, "parse", "2024-02-29")
		require.ErrorIs(t, err, errUsage)
	})
}

func TestEnvironment(t *testing.T) {
	t.Setenv("SQLTEMPORAL_MODE", "oracle")
	t.Setenv("SQLTEMPORAL_OUTPUT", "yaml")

	out, _, err := run(t, nil, "now", "--type", "date")
	require.NoError(t, err)
	var r report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	assert.Equal(t, report{Type: "date", Mode: "oracle", Value: "2024-02-29"}, r)

	// Flags beat the environment.
	out, _, err = run(t, nil, "-o", "text", "--mode", "standard", "parse", "-t", "interval", "-q", "second", "5")
	require.NoError(t, err)
	assert.Equal(t, "00 00:00:05\nmonths: 0\nticks: 50000000\nprecision: 0\n", out)
}

func TestVerbose(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	out, errOut, err := run(t, nil, "--verbose", "parse", "2024-02-29")
	require.NoError(t, err)
	a.Equal("2024-02-29\ndays: 19782\n", out)
	a.Contains(errOut, "configured")
	a.Contains(errOut, "standard")
	a.Contains(errOut, "parsed")
	a.Contains(errOut, "2024-02-29")

	_, errOut, err = run(t, nil, "parse", "2024-02-29")
	require.NoError(t, err)
	a.Empty(errOut)
}
