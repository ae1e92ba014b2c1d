package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestAllReturnsEveryRegisteredCommand(t *testing.T) {
	names := RegisteredNames()
	want := []string{
		"add", "add-spec", "create", "delete", "delete-spec", "list",
		"list-spec", "rename", "report", "restore", "restore-all",
		"retype", "tree", "truncate",
	}
	for _, w := range want {
		found := false
		for _, n := range names {
			if n == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("RegisteredNames() missing %q; got %v", w, names)
		}
	}

	cmds := All()
	if len(cmds) != len(names) {
		t.Errorf("All() returned %d commands, want %d", len(cmds), len(names))
	}
}

// runRoot builds a fresh root command with every registered subcommand
// attached, exactly as cmd/partcat/main.go does, and executes args
// against it, returning combined stdout/stderr.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "partcat"}
	root.PersistentFlags().String(CatalogFlag, "", "")
	for _, cmd := range All() {
		root.AddCommand(cmd)
	}
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCreateAddListRoundTrip(t *testing.T) {
	base := filepath.Join(t.TempDir(), "catalog")

	if _, err := runRoot(t, "create", "--catalog", base); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := runRoot(t, "add", "--catalog", base, "--type", "деталь", "piston"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := runRoot(t, "list", "--catalog", base)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !bytes.Contains([]byte(out), []byte("piston")) {
		t.Errorf("list output = %q, want it to contain %q", out, "piston")
	}
}

func TestAddRejectsUnknownType(t *testing.T) {
	base := filepath.Join(t.TempDir(), "catalog")
	if _, err := runRoot(t, "create", "--catalog", base); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := runRoot(t, "add", "--catalog", base, "--type", "gadget", "thing"); err == nil {
		t.Fatal("add with unknown --type expected an error")
	}
}
