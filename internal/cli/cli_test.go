package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/pathmaker/pkg/config"
	"github.com/matzehuels/pathmaker/pkg/errors"
	"github.com/matzehuels/pathmaker/pkg/observability"
	"github.com/matzehuels/pathmaker/pkg/store"
)

const lineScript = `
down 0 0 0
up 0 0 10
down 0 0 100
move 40 0
move 80 0
up 80 0 300
`

const lineMap = "$<{0(0,0)[1]}{1(40,0)[0][2]}{2(80,0)[1]}>$"

// runCLI executes the root command against st and returns its output.
func runCLI(t *testing.T, st store.Store, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	c := New(io.Discard, LogInfo)
	c.openStore = func(context.Context, *config.Config) (store.Store, error) { return st, nil }

	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDrawPrintsMap(t *testing.T) {
	out, err := runCLI(t, store.NewMemoryStore(), lineScript, "draw", "-")
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if strings.TrimSpace(out) != lineMap {
		t.Errorf("output = %q, want %q", out, lineMap)
	}
}

func TestDrawSaveShowLsRm(t *testing.T) {
	st := store.NewMemoryStore()

	out, err := runCLI(t, st, lineScript, "draw", "-", "--save", "line")
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if !strings.Contains(out, "Saved line.map") {
		t.Errorf("draw output = %q", out)
	}

	out, err = runCLI(t, st, "", "show", "line", "--raw")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if strings.TrimSpace(out) != lineMap {
		t.Errorf("show --raw = %q", out)
	}

	out, err = runCLI(t, st, "", "show", "line.map")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"line.map", "waypoints", "Reachable", "(0,0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, st, "", "ls", "-l")
	if err != nil {
		t.Fatalf("ls: %v", err)
	}
	if !strings.Contains(out, "line.map") || !strings.Contains(out, "3 waypoints") {
		t.Errorf("ls output = %q", out)
	}

	if _, err := runCLI(t, st, "", "rm", "line"); err != nil {
		t.Fatalf("rm: %v", err)
	}
	if _, err := runCLI(t, st, "", "rm", "line"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("second rm = %v, want NOT_FOUND", err)
	}
	out, _ = runCLI(t, st, "", "ls")
	if !strings.Contains(out, "No maps") {
		t.Errorf("ls after rm = %q", out)
	}
}

func TestDrawScale(t *testing.T) {
	out, err := runCLI(t, store.NewMemoryStore(), lineScript, "draw", "-", "--scale", "0.5")
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	want := "$<{0(0,0)[1]}{1(20,0)[0][2]}{2(40,0)[1]}>$"
	if strings.TrimSpace(out) != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	_, err = runCLI(t, store.NewMemoryStore(), lineScript, "draw", "-", "--scale", "0")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("draw --scale 0 = %v, want INVALID_INPUT", err)
	}
}

func TestDrawScriptOpenErrors(t *testing.T) {
	dir := t.TempDir()
	notDir := filepath.Join(dir, "plain")
	if err := os.WriteFile(notDir, []byte("down 0 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		script string
		code   errors.Code
	}{
		{"missing", filepath.Join(dir, "missing.txt"), errors.ErrCodeNotFound},
		{"parent is a file", filepath.Join(notDir, "script.txt"), errors.ErrCodeStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, store.NewMemoryStore(), "", "draw", tt.script)
			if !errors.Is(err, tt.code) {
				t.Errorf("draw %s = %v, want %s", tt.script, err, tt.code)
			}
		})
	}
}

func TestDrawFromExistingMap(t *testing.T) {
	st := store.NewMemoryStore()
	if err := st.Put(context.Background(), "base.map", []byte("$<{0(500,500)}>$")); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, st, lineScript, "draw", "-", "--from", "base")
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	want := "$<{0(500,500)}>" + strings.TrimPrefix(lineMap, "$")
	if strings.TrimSpace(out) != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.map")
	bad := filepath.Join(dir, "bad.map")
	if err := os.WriteFile(good, []byte(lineMap), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("$<{0(0,0)[7]}>$"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, store.NewMemoryStore(), "", "validate", good)
	if err != nil {
		t.Fatalf("validate good: %v\n%s", err, out)
	}

	out, err = runCLI(t, store.NewMemoryStore(), "", "validate", good, bad)
	if !errors.Is(err, errors.ErrCodeMalformedMap) {
		t.Fatalf("validate bad = %v, want MALFORMED_MAP", err)
	}
	if !strings.Contains(out, "at byte 10") {
		t.Errorf("validate output should report the offset:\n%s", out)
	}
}

func TestRenderDOT(t *testing.T) {
	st := store.NewMemoryStore()
	if err := st.Put(context.Background(), "line.map", []byte(lineMap)); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, st, "", "render", "line", "-f", "dot", "-o", "-")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "graph G {") || strings.Count(out, " -- ") != 2 {
		t.Errorf("render output:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "line.dot")
	if _, err := runCLI(t, st, "", "render", "line", "-f", "dot", "-o", path); err != nil {
		t.Fatalf("render to file: %v", err)
	}
	if data, err := os.ReadFile(path); err != nil || !strings.HasPrefix(string(data), "graph G {") {
		t.Errorf("rendered file = %q, %v", data, err)
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	_, err := runCLI(t, store.NewMemoryStore(), "", "render", "-", "-f", "pdf")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("render -f pdf = %v, want INVALID_INPUT", err)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, name, want string
	}{
		{"", "lab.map", "lab"},
		{"", "/tmp/maps/lab.map", "lab"},
		{"out.svg", "lab.map", "out"},
		{"out.dot", "lab.map", "out"},
		{"out", "lab.map", "out"},
		{"out.png", "lab.map", "out.png"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.name); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.name, got, tt.want)
		}
	}
}

func TestRootFlagsApply(t *testing.T) {
	cfg := config.Default()
	f := rootFlags{dir: "/tmp/maps", noCache: true}
	if err := f.apply(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Backend != config.BackendFile || cfg.Store.Dir != "/tmp/maps" || cfg.Store.CacheSize != 0 {
		t.Errorf("store config = %+v", cfg.Store)
	}

	f = rootFlags{backend: "floppy"}
	if err := f.apply(config.Default()); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("apply(floppy) = %v, want INVALID_CONFIG", err)
	}
}

func TestCompletion(t *testing.T) {
	out, err := runCLI(t, store.NewMemoryStore(), "", "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "pathmaker") {
		t.Error("bash completion should mention the command name")
	}
}

func TestCompleteMapNames(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	for _, n := range []string{"lab.map", "lobby.map", "roof.map"} {
		if err := st.Put(ctx, n, []byte(lineMap)); err != nil {
			t.Fatal(err)
		}
	}

	c := New(io.Discard, LogInfo)
	c.openStore = func(context.Context, *config.Config) (store.Store, error) { return st, nil }
	cmd := c.showCommand()
	cmd.SetContext(ctx)

	got, _ := c.completeMapNames(cmd, nil, "l")
	if len(got) != 2 || got[0] != "lab.map" || got[1] != "lobby.map" {
		t.Errorf("completions = %v", got)
	}
}
