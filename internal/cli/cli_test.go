package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"list", "render", "serve", "wheel", "cache", "config", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
}

func TestConfigShow(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "secret-token")
	path := writeConfig(t, `
[content]
owner = "someone"
repo = "Tutorials"

[cache]
backend = "none"
`)

	out, err := runCLI(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`owner = "someone"`, `repo = "Tutorials"`, `backend = "none"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "secret-token") {
		t.Error("token leaked into config show")
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if _, err := runCLI(t, "--config", path, "config", "init"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `owner = "TroelsMortensen"`) {
		t.Errorf("default config not written:\n%s", data)
	}

	if _, err := runCLI(t, "--config", path, "config", "init"); err == nil {
		t.Error("init over an existing file should fail without --force")
	}
	if _, err := runCLI(t, "--config", path, "config", "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestConfigPath(t *testing.T) {
	path := writeConfig(t, "")
	out, err := runCLI(t, "--config", path, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}
}

func TestCachePath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	path := writeConfig(t, "[cache]\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	out, err := runCLI(t, "--config", path, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != filepath.ToSlash(dir) {
		t.Errorf("cache path = %q, want %q", out, dir)
	}
}

func TestCacheClearFileBackend(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	path := writeConfig(t, "[cache]\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	// Missing directory is an empty cache, not an error.
	if _, err := runCLI(t, "--config", path, "cache", "clear"); err != nil {
		t.Fatal(err)
	}

	entry := filepath.Join(dir, "ab", "cdef.json")
	if err := os.MkdirAll(filepath.Dir(entry), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(entry, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "--config", path, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(entry); !os.IsNotExist(err) {
		t.Errorf("cache entry survived clear: %v", err)
	}
}

func TestRenderLocalFile(t *testing.T) {
	cfgPath := writeConfig(t, "[cache]\nbackend = \"none\"\n")
	md := writeMarkdown(t, filepath.Join(t.TempDir(), "Git"), "02 Branches.md", "# Branches\n\n![b](b.png)\n")
	outPath := filepath.Join(t.TempDir(), "out.html")

	if _, err := runCLI(t, "--config", cfgPath, "render", md, "-o", outPath); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	wantSrc := "https://raw.githubusercontent.com/TroelsMortensen/Codelabs2/refs/heads/master/Articles/Git/b.png"
	if !strings.Contains(html, wantSrc) {
		t.Errorf("rendered html missing %q:\n%s", wantSrc, html)
	}
	if !strings.Contains(html, "<h1>1. Branches</h1>") {
		t.Errorf("rendered html missing page title:\n%s", html)
	}
}

func TestRenderLocalFileJSONPageOutOfRange(t *testing.T) {
	cfgPath := writeConfig(t, "[cache]\nbackend = \"none\"\n")
	md := writeMarkdown(t, t.TempDir(), "a.md", "text")

	if _, err := runCLI(t, "--config", cfgPath, "render", md, "--page", "1", "--json"); err == nil {
		t.Error("page 1 of a single-page render should fail")
	}
}

func TestRenderLocalFilePretty(t *testing.T) {
	cfgPath := writeConfig(t, "[cache]\nbackend = \"none\"\n")
	md := writeMarkdown(t, t.TempDir(), "a.md", "<div><p>nested</p></div>\n")
	outPath := filepath.Join(t.TempDir(), "out.json")

	if _, err := runCLI(t, "--config", cfgPath, "render", md, "--pretty", "--json", "-o", outPath); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "nested") {
		t.Errorf("pretty output lost content:\n%s", data)
	}
	if !strings.Contains(string(data), `\n  <p>`) {
		t.Errorf("pretty output not indented:\n%s", data)
	}
}
