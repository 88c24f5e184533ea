package cli

import (
	"bytes"
	"testing"

	"github.com/vvka-141/pgstar/pkg/pgstar"
)

// executeCommand runs the root command with args and returns its stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		loadFlags = loadFlagValues{}
		schemaConnFlags = connectionFlags{}
		schemaForce = false
		configConnFlags = connectionFlags{}
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands_UsageErrorsExitWithUsageCode(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"load", "--no-such-flag"}},
		{"positional argument to load", []string{"load", "data"}},
		{"positional argument to schema create", []string{"schema", "create", "extra"}},
		{"missing data paths", []string{"load", "--connection", "postgresql://localhost/sparkifydb"}},
		{"bad port value", []string{"load", "-p", "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)

			_, err := executeCommand(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := pgstar.ExitCodeForError(err); got != pgstar.ExitUsageError {
				t.Errorf("exit code = %d, want %d (err: %v)", got, pgstar.ExitUsageError, err)
			}
		})
	}
}

func TestCommands_ConflictingConnectionFlagsIsConfigError(t *testing.T) {
	isolateEnv(t)

	_, err := executeCommand(t, "load", "--song-data", "s", "--log-data", "l",
		"--connection", "postgresql://localhost/sparkifydb", "-h", "otherhost")

	if got := pgstar.ExitCodeForError(err); got != pgstar.ExitConfigError {
		t.Errorf("exit code = %d, want %d (err: %v)", got, pgstar.ExitConfigError, err)
	}
}

func TestCommands_SchemaFlagsAreInherited(t *testing.T) {
	for _, name := range []string{"create", "drop", "reset"} {
		cmd, _, err := rootCmd.Find([]string{"schema", name})
		if err != nil {
			t.Fatalf("schema %s not found: %v", name, err)
		}
		for _, flag := range []string{"connection", "host", "database", "auth-method"} {
			if cmd.InheritedFlags().Lookup(flag) == nil {
				t.Errorf("schema %s does not inherit --%s", name, flag)
			}
		}
	}
}
