package cli

import (
	"bytes"
	"context"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/cardforge/pkg/observability"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	want := map[string]bool{"render": false, "preview": false, "sheet": false, "build": false, "config": false, "completion": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestConfigPath(t *testing.T) {
	out, err := execute(t, "--config", "/etc/cardforge.toml", "config", "path")
	if err != nil {
		t.Fatalf("config path error: %v", err)
	}
	if strings.TrimSpace(out) != "/etc/cardforge.toml" {
		t.Errorf("config path = %q", out)
	}

	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	out, err = execute(t, "config", "path")
	if err != nil {
		t.Fatalf("config path error: %v", err)
	}
	if want := filepath.Join("/xdg", appName, "config.toml"); strings.TrimSpace(out) != want {
		t.Errorf("config path = %q, want %q", out, want)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if _, err := execute(t, "--config", path, "config", "init"); err != nil {
		t.Fatalf("config init error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if _, err := execute(t, "--config", path, "config", "init"); err == nil {
		t.Error("second config init should refuse to overwrite")
	}
	if _, err := execute(t, "--config", path, "config", "init", "--force"); err != nil {
		t.Errorf("config init --force error: %v", err)
	}

	out, err := execute(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	for _, want := range []string{"[render]", "[sheet]", "dpi = 300"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

// writeProject creates a frame, template, deck and config in a temp dir
// and returns the config and deck paths.
func writeProject(t *testing.T) (dir, cfgPath, deckPath string) {
	t.Helper()
	dir = t.TempDir()

	if err := imaging.Save(imaging.New(40, 62, color.NRGBA{255, 255, 255, 255}), filepath.Join(dir, "frame.png")); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"template.json": `{"title": {"x": 3, "y": 2, "w": 34, "h": 5, "size": 10}}`,
		"deck.json": `{
			"name": "Goblins",
			"deck_color": "#336699",
			"cards": [
				{"name": "Archer", "type": "unit", "atk": 2, "def": 1},
				{"name": "Archer", "type": "unit", "atk": 3},
				{"name": "Swamp", "type": "land"}
			]
		}`,
		"config.toml": `
workspace = "out"

[render]
dpi = 40
frame = "frame.png"
template = "template.json"
workers = 2
`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir, filepath.Join(dir, "config.toml"), filepath.Join(dir, "deck.json")
}

func TestRenderCommand(t *testing.T) {
	dir, cfgPath, deckPath := writeProject(t)

	if _, err := execute(t, "--config", cfgPath, "render", deckPath); err != nil {
		t.Fatalf("render error: %v", err)
	}
	files, err := filepath.Glob(filepath.Join(dir, "out", "goblins", "*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Errorf("rendered %d files, want 3: %v", len(files), files)
	}
}

func TestPreviewCommand(t *testing.T) {
	dir, cfgPath, deckPath := writeProject(t)
	out := filepath.Join(dir, "preview.png")

	if _, err := execute(t, "--config", cfgPath, "preview", deckPath, "--card", "2", "-o", out); err != nil {
		t.Fatalf("preview error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("preview not written: %v", err)
	}
	if _, err := execute(t, "--config", cfgPath, "preview", deckPath, "--card", "9"); err == nil {
		t.Error("preview of a missing card should fail")
	}
}

func TestBuildCommand(t *testing.T) {
	dir, cfgPath, deckPath := writeProject(t)

	if _, err := execute(t, "--config", cfgPath, "build", deckPath, "--bleed", "1"); err != nil {
		t.Fatalf("build error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "out", "goblins", "goblins.pdf"))
	if err != nil {
		t.Fatalf("pdf not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("build output is not a PDF")
	}
}

func TestSheetCommand(t *testing.T) {
	dir, cfgPath, deckPath := writeProject(t)
	if _, err := execute(t, "--config", cfgPath, "render", deckPath); err != nil {
		t.Fatal(err)
	}

	pdf := filepath.Join(dir, "sheet.pdf")
	plan := filepath.Join(dir, "plan.json")
	_, err := execute(t, "--config", cfgPath, "sheet", filepath.Join(dir, "out", "goblins"),
		"-o", pdf, "--plan", plan, "--margin", "10")
	if err != nil {
		t.Fatalf("sheet error: %v", err)
	}
	for _, p := range []string{pdf, plan} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s not written: %v", p, err)
		}
	}

	_, err = execute(t, "--config", cfgPath, "sheet", filepath.Join(dir, "frame.png"),
		"-o", pdf, "--card-width", "1000")
	if err == nil {
		t.Error("sheet with an oversized card should fail")
	}
}

func TestSheetInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := sheetInputs([]string{dir})
	if err != nil {
		t.Fatalf("sheetInputs() error: %v", err)
	}
	if len(got) != 2 || filepath.Base(got[0]) != "a.png" || filepath.Base(got[1]) != "b.png" {
		t.Errorf("sheetInputs(dir) = %v", got)
	}

	files := []string{"x.png", "y.png"}
	got, err = sheetInputs(files)
	if err != nil || len(got) != 2 || got[0] != "x.png" {
		t.Errorf("sheetInputs(files) = %v, %v", got, err)
	}
}
