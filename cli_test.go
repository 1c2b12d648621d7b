package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbool-dev/sbool/config"
	"github.com/sbool-dev/sbool/sbool"
	"github.com/sbool-dev/sbool/test"
	"github.com/sbool-dev/sbool/version"
)

func testCLI() (*CLI, *bytes.Buffer, *bytes.Buffer) {
	outStream, errStream := new(bytes.Buffer), new(bytes.Buffer)
	cli := NewCLI(outStream, errStream)
	cli.registry = sbool.NewRegistry()
	return cli, outStream, errStream
}

func TestCLI_ParseFlags(t *testing.T) {
	f := test.CreateTempfile(nil, t)
	defer test.DeleteTempfile(f, t)

	cases := []struct {
		name  string
		f     []string
		e     *config.Config
		paths []string
		exprs []string
		err   bool
	}{
		{
			"config",
			[]string{"-config", f.Name()},
			&config.Config{},
			[]string{f.Name()},
			[]string{},
			false,
		},
		{
			"config_multi",
			[]string{"-config", f.Name(), "-config", f.Name()},
			&config.Config{},
			[]string{f.Name(), f.Name()},
			[]string{},
			false,
		},
		{
			"flag",
			[]string{"-flag", "debug=true"},
			&config.Config{
				Flags: &config.FlagConfigs{
					&config.FlagConfig{
						Name:  config.String("debug"),
						Value: config.Bool(true),
					},
				},
			},
			nil,
			[]string{},
			false,
		},
		{
			"flag_flavored_multi",
			[]string{"-flag", "a:db=on", "-flag", "b:db=0"},
			&config.Config{
				Flags: &config.FlagConfigs{
					&config.FlagConfig{
						Name:   config.String("a"),
						Flavor: "db",
						Value:  config.Bool(true),
					},
					&config.FlagConfig{
						Name:   config.String("b"),
						Flavor: "db",
						Value:  config.Bool(false),
					},
				},
			},
			nil,
			[]string{},
			false,
		},
		{
			"flag_bad",
			[]string{"-flag", "debug"},
			nil,
			nil,
			nil,
			true,
		},
		{
			"log_level",
			[]string{"-log-level", "DEBUG"},
			&config.Config{
				LogLevel: config.String("DEBUG"),
			},
			nil,
			[]string{},
			false,
		},
		{
			"log_file",
			[]string{"-log-file", "/var/log/sbool.log"},
			&config.Config{
				LogFile: &config.LogFileConfig{
					LogFilePath: config.String("/var/log/sbool.log"),
				},
			},
			nil,
			[]string{},
			false,
		},
		{
			"syslog",
			[]string{"-syslog"},
			&config.Config{
				Syslog: &config.SyslogConfig{
					Enabled: config.Bool(true),
				},
			},
			nil,
			[]string{},
			false,
		},
		{
			"syslog_facility",
			[]string{"-syslog-facility", "LOCAL5", "-syslog-name", "sb"},
			&config.Config{
				Syslog: &config.SyslogConfig{
					Facility: config.String("LOCAL5"),
					Name:     config.String("sb"),
				},
			},
			nil,
			[]string{},
			false,
		},
		{
			"expressions",
			[]string{"-flag", "a=1", "a & TRUTH", "not a"},
			&config.Config{
				Flags: &config.FlagConfigs{
					&config.FlagConfig{
						Name:  config.String("a"),
						Value: config.Bool(true),
					},
				},
			},
			nil,
			[]string{"a & TRUTH", "not a"},
			false,
		},
		{
			"expressions_after_terminator",
			[]string{"--", "-a"},
			&config.Config{},
			nil,
			[]string{"-a"},
			false,
		},
		{
			"unknown",
			[]string{"-bacon", "delicious"},
			nil,
			nil,
			nil,
			true,
		},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d_%s", i, tc.name), func(t *testing.T) {
			cli, _, _ := testCLI()

			c, paths, exprs, _, err := cli.ParseFlags(tc.f)
			if (err != nil) != tc.err {
				t.Fatal(err)
			}
			if tc.err {
				return
			}

			var e *config.Config
			if tc.e != nil {
				e = config.DefaultConfig().Merge(tc.e)
			}
			assert.Equal(t, e, c)
			assert.Equal(t, tc.paths, paths)
			assert.Equal(t, tc.exprs, exprs)
		})
	}
}

func TestCLI_Run(t *testing.T) {
	t.Setenv("SBOOL_LOG", "")

	cfg := test.CreateTempfilePattern([]byte(`
		flag {
			name   = "db"
			flavor = "db-flag-A"
			value  = true
		}
		flag {
			name   = "cache"
			flavor = ["cache", 1]
			value  = false
		}
	`), "*.hcl", t)
	defer test.DeleteTempfile(cfg, t)

	cases := []struct {
		name   string
		args   []string
		status int
		out    string
		err    string
	}{
		{
			"version",
			[]string{"-version"},
			ExitCodeOK,
			"",
			fmt.Sprintf("%s v%s", version.Name, version.Version),
		},
		{
			"help",
			[]string{"-h"},
			ExitCodeOK,
			"",
			"Usage: sbool [options] EXPRESSION...",
		},
		{
			"unknown_flag",
			[]string{"-bacon", "delicious"},
			ExitCodeParseFlagsError,
			"",
			"flag provided but not defined: -bacon",
		},
		{
			"bad_flag",
			[]string{"-flag", "debug=maybe", "debug"},
			ExitCodeParseFlagsError,
			"",
			`flag "debug=maybe"`,
		},
		{
			"no_expressions",
			[]string{},
			ExitCodeParseFlagsError,
			"",
			"no expressions given",
		},
		{
			"missing_config",
			[]string{"-config", filepath.Join(os.TempDir(), "sbool-does-not-exist.hcl"), "TRUTH"},
			ExitCodeParseConfigError,
			"",
			"missing file/folder",
		},
		{
			"bad_log_level",
			[]string{"-log-level", "nope", "TRUTH"},
			ExitCodeLoggingError,
			"",
			`invalid log level "NOPE"`,
		},
		{
			"reserved_name",
			[]string{"-flag", "and=true", "TRUTH"},
			ExitCodeParseConfigError,
			"",
			`flag "and": name is reserved`,
		},
		{
			"duplicate_flag",
			[]string{"-flag", "a=true", "-flag", "a=false", "a"},
			ExitCodeParseConfigError,
			"",
			`duplicate name "a"`,
		},
		{
			"constants",
			[]string{"TRUTH & LIE", "TRUTH | LIE"},
			ExitCodeOK,
			"TRUTH & LIE => LIE\nTRUTH | LIE => TRUTH\n",
			"",
		},
		{
			"same_flavor",
			[]string{"-flag", "a:db=true", "-flag", "b:db=false", "a & b", "a | b", "~a is b"},
			ExitCodeOK,
			"a & b => FBool(false, \"db\")\na | b => FBool(true, \"db\")\n~a is b => true\n",
			"",
		},
		{
			"unflavored_flag",
			[]string{"-flag", "debug=yes", "debug is TRUTH"},
			ExitCodeOK,
			"debug is TRUTH => true\n",
			"",
		},
		{
			"config_flags",
			[]string{"-config", cfg.Name(), "db", `db is truthy("db-flag-A")`, "not cache"},
			ExitCodeOK,
			"db => FBool(true, \"db-flag-A\")\ndb is truthy(\"db-flag-A\") => true\nnot cache => true\n",
			"",
		},
		{
			"flag_overrides_config",
			[]string{"-config", cfg.Name(), "-flag", "db=false", "db"},
			ExitCodeOK,
			"db => LIE\n",
			"",
		},
		{
			"prints_bindings",
			[]string{"-flag", "b=0", "-flag", "a:x=1"},
			ExitCodeOK,
			"a => FBool(true, \"x\")\nb => LIE\n",
			"",
		},
		{
			"eval_error_continues",
			[]string{"-flag", "a:db=true", "a & 2", "missing", "a"},
			ExitCodeEvalError,
			"a => FBool(true, \"db\")\n",
			"2 error(s) evaluating expressions",
		},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d_%s", i, tc.name), func(t *testing.T) {
			cli, outStream, errStream := testCLI()

			status := cli.Run(append([]string{"sbool"}, tc.args...))
			assert.Equal(t, tc.status, status, errStream.String())
			if tc.out != "" || status == ExitCodeOK {
				assert.Equal(t, tc.out, outStream.String())
			}
			assert.Contains(t, errStream.String(), tc.err)
		})
	}
}

func TestCLI_Run_identity(t *testing.T) {
	cli, outStream, errStream := testCLI()

	status := cli.Run([]string{"sbool", "-flag", "a:db=true", "a"})
	require.Equal(t, ExitCodeOK, status, errStream.String())
	require.Equal(t, "a => FBool(true, \"db\")\n", outStream.String())

	b, err := cli.registry.Truthy("db")
	require.NoError(t, err)

	brain, err := cli.bind(&config.FlagConfigs{
		&config.FlagConfig{
			Name:   config.String("a"),
			Flavor: "db",
			Value:  config.Bool(true),
		},
	})
	require.NoError(t, err)

	v, ok := brain.Recall("a")
	require.True(t, ok)
	assert.Same(t, b, v)
}

func TestCLI_bind_structuredFlavor(t *testing.T) {
	cli, _, _ := testCLI()

	flavor := map[string]interface{}{"db": []interface{}{"a", 1}}
	brain, err := cli.bind(&config.FlagConfigs{
		&config.FlagConfig{Name: config.String("x"), Flavor: flavor, Value: config.Bool(true)},
		&config.FlagConfig{Name: config.String("y"), Flavor: flavor, Value: config.Bool(true)},
	})
	require.NoError(t, err)

	x, _ := brain.Recall("x")
	y, _ := brain.Recall("y")
	assert.Same(t, x, y)
	assert.IsType(t, config.HashedFlavor(0), x.(*sbool.Bool).Flavor())
}

func TestCLI_Run_traceLogging(t *testing.T) {
	t.Setenv("SBOOL_LOG", "")
	defer log.SetOutput(os.Stderr)

	cli, _, errStream := testCLI()

	status := cli.Run([]string{"sbool", "-log-level", "trace", "-flag", "a:db=true", "a & a"})
	require.Equal(t, ExitCodeOK, status, errStream.String())
	assert.Contains(t, errStream.String(), `[TRACE] (registry) created FBool(true, "db")`)
	assert.Contains(t, errStream.String(), "[TRACE] (expr) ")
}

func TestCLI_handleError(t *testing.T) {
	cli, _, errStream := testCLI()

	assert.Equal(t, ExitCodeError, cli.handleError(errors.New("plain")))
	assert.Equal(t, ExitCodeEvalError, cli.handleError(NewErrExitf(ExitCodeEvalError, "%d failed", 2)))
	assert.Equal(t, "plain\n2 failed\n", errStream.String())
}

func TestCLI_Run_configDir(t *testing.T) {
	dir := test.CreateTempDir(map[string]string{
		"a.hcl": `
			log_level = "warn"
			flag {
				name   = "a"
				flavor = "x"
				value  = true
			}
		`,
		"b.toml": `
			[[flag]]
			name = "b"
			value = false
		`,
	}, t)

	cli, outStream, errStream := testCLI()

	status := cli.Run([]string{"sbool", "-config", dir})
	require.Equal(t, ExitCodeOK, status, errStream.String())
	assert.Equal(t, "a => FBool(true, \"x\")\nb => LIE\n", outStream.String())
}
