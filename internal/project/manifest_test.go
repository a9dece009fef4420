package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ManifestName), `
[project]
name = "demo"
root = "src"
ext = "sh"

[check]
max_diagnostics = 20
warnings_as_errors = true
`)
	if err := os.MkdirAll(filepath.Join(dir, "src", "deep", "er"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, err := Discover(filepath.Join(dir, "src", "deep", "er"))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if m.Name != "demo" || m.Ext != ".sh" || m.MaxDiagnostics != 20 || !m.WarningsAsErrors {
		t.Fatalf("manifest = %+v", m)
	}
	wantRoot, _ := filepath.Abs(filepath.Join(dir, "src"))
	if m.Root != wantRoot {
		t.Fatalf("root = %q, want %q", m.Root, wantRoot)
	}

	root, ok, err := FindProjectRoot(filepath.Join(dir, "src"))
	if err != nil || !ok {
		t.Fatalf("FindProjectRoot: %v %v", ok, err)
	}
	if abs, _ := filepath.Abs(dir); root != abs {
		t.Fatalf("project root = %q", root)
	}
}

func TestManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, "[project]\nname = \"x\"\n")
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Ext != DefaultExt || m.Root != dir || m.MaxDiagnostics != 0 || m.WarningsAsErrors {
		t.Fatalf("manifest = %+v", m)
	}
}

func TestManifestEmptyExt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, "[project]\next = \"\"\n")
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Ext != "" {
		t.Fatalf("explicit empty ext should be kept, got %q", m.Ext)
	}
}

func TestManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no project section", "[check]\nmax_diagnostics = 1\n", "missing [project]"},
		{"bad toml", "[project\n", "failed to parse TOML"},
		{"escaping root", "[project]\nroot = \"../..\"\n", "escapes project directory"},
		{"absolute root", "[project]\nroot = \"/tmp\"\n", "must be relative"},
		{"missing root dir", "[project]\nroot = \"nope\"\n", "invalid [project].root"},
		{"unknown key", "[project]\nnmae = \"x\"\n", "unknown key"},
		{"negative limit", "[project]\n[check]\nmax_diagnostics = -1\n", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, ManifestName)
			writeFile(t, path, tt.content)
			_, err := LoadManifest(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestManifestMissingSectionIsSentinel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, "")
	_, err := LoadManifest(path)
	if !errors.Is(err, ErrProjectSectionMissing) {
		t.Fatalf("err = %v", err)
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	if _, ok, err := FindManifest(dir); err != nil || ok {
		// a shoumei.toml above the temp dir would make this test meaningless
		t.Skipf("manifest found above %s", dir)
	}
	if _, err := Discover(dir); !errors.Is(err, ErrNoManifest) {
		t.Fatalf("err = %v, want ErrNoManifest", err)
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	var a, b, c Digest
	a[0], b[0], c[0] = 1, 2, 3
	if Combine(a, b, c) == Combine(a, c, b) {
		t.Fatalf("dependency order must affect the module hash")
	}
	if Combine(a, b) != Combine(a, b) {
		t.Fatalf("Combine must be deterministic")
	}
	if !(Digest{}).IsZero() || a.IsZero() {
		t.Fatalf("IsZero")
	}
	if len(a.Short()) != 12 {
		t.Fatalf("Short = %q", a.Short())
	}
}

func TestNormalizeExt(t *testing.T) {
	tests := map[string]string{
		"shoumei": ".shoumei",
		".sm":     ".sm",
		"  .sm ":  ".sm",
		"":        "",
	}
	for in, want := range tests {
		if got := NormalizeExt(in); got != want {
			t.Errorf("NormalizeExt(%q) = %q, want %q", in, got, want)
		}
	}
}
