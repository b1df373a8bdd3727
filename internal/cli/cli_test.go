package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/padring/pkg/layoutio"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return New(io.Discard, LogInfo)
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(t.Context())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"init", "check", "layout", "render", "inspect", "catalog", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLayoutAndRender(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "chip.layout.json")

	if err := execute(t, c, "layout", "-o", layoutPath, "-q"); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	doc, err := layoutio.ImportJSON(layoutPath)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if doc.Die.Width != 4760000 || doc.Die.Height != 4080000 {
		t.Errorf("die = %dx%d, want 4760000x4080000", doc.Die.Width, doc.Die.Height)
	}

	if err := execute(t, c, "render", layoutPath, "-f", "def,svg,dot", "--design", "zerosoc"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	def, err := os.ReadFile(filepath.Join(dir, "chip.def"))
	if err != nil {
		t.Fatalf("read def: %v", err)
	}
	if !bytes.Contains(def, []byte("DESIGN zerosoc ;")) {
		t.Error("def missing design name")
	}
	for _, name := range []string{"chip.svg", "chip.dot"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	c := newTestCLI(t)
	err := execute(t, c, "render", "missing.json", "-f", "gds")
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("render -f gds error = %v, want invalid format", err)
	}
}

func TestInitAndCheck(t *testing.T) {
	c := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "padring.toml")

	if err := execute(t, c, "init", path); err != nil {
		t.Fatalf("init error: %v", err)
	}
	if err := execute(t, c, "init", path); err == nil {
		t.Error("init over an existing file should fail without --force")
	}
	if err := execute(t, c, "init", path, "--force"); err != nil {
		t.Errorf("init --force error: %v", err)
	}
	if err := execute(t, c, "check", path); err != nil {
		t.Errorf("check error: %v", err)
	}
}

func TestInitTopDesign(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "top.toml")
	layoutPath := filepath.Join(dir, "top.layout.json")

	if err := execute(t, c, "init", cfgPath, "--design", "top"); err != nil {
		t.Fatalf("init --design top error: %v", err)
	}
	if err := execute(t, c, "layout", cfgPath, "-o", layoutPath, "-q"); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	doc, err := layoutio.ImportJSON(layoutPath)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}

	var core, ram bool
	for _, inst := range doc.Instances {
		switch inst.Role {
		case "asic_core":
			core = true
		case "ram":
			ram = true
		}
	}
	if !core || ram {
		t.Errorf("asic_core placed = %v, ram placed = %v; want core only", core, ram)
	}
	if len(doc.Pins) != 36 {
		t.Errorf("pins = %d, want 36", len(doc.Pins))
	}

	if err := execute(t, c, "init", "-", "--design", "soc"); err == nil {
		t.Error("init with an unknown design should fail")
	}
}

func TestCheckInvalidConfig(t *testing.T) {
	c := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("db_units = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, c, "check", path); err == nil {
		t.Error("check should fail for db_units = 0")
	}
}

func TestCompletion(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(buf.String(), appName) {
		t.Error("bash completion does not mention the command name")
	}
}
