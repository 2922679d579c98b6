package cmd

import (
	"strings"
	"testing"

	"golang.org/x/mod/semver"
)

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"render", "term"} {
		cmd, ok := commands[name]
		if !ok {
			t.Errorf("command %q not registered", name)
			continue
		}
		if cmd.Run == nil || cmd.Short == "" || !strings.HasPrefix(cmd.Usage, "luckywheel "+name) {
			t.Errorf("command %q incomplete: %+v", name, cmd)
		}
	}
}

func TestRunUnknownCommand(t *testing.T) {
	err := run([]string{"spin"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("run(spin) = %v, want unknown command error", err)
	}
}

func TestRunSubcommandHelp(t *testing.T) {
	// help must short-circuit before the command parses its flags
	if err := run([]string{"render", "--bogus", "--help"}); err != nil {
		t.Errorf("run(render --help) = %v", err)
	}
}

func TestVersion(t *testing.T) {
	v := version()
	if v == "" {
		t.Fatal("empty version")
	}
	if !semver.IsValid(v) {
		t.Errorf("version %q is not valid semver", v)
	}
}
