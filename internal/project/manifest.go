package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultExt is the module file extension when the manifest sets none.
const DefaultExt = ".shoumei"

// Manifest is the decoded shoumei.toml.
type Manifest struct {
	// Path is the manifest file itself; Dir its directory.
	Path string
	Dir  string

	Name string
	// Root is the absolute module root directory.
	Root string
	Ext  string

	MaxDiagnostics   int
	WarningsAsErrors bool
}

type manifestFile struct {
	Project struct {
		Name string `toml:"name"`
		Root string `toml:"root"`
		Ext  string `toml:"ext"`
	} `toml:"project"`
	Check struct {
		MaxDiagnostics   int  `toml:"max_diagnostics"`
		WarningsAsErrors bool `toml:"warnings_as_errors"`
	} `toml:"check"`
}

// ErrProjectSectionMissing indicates that [project] is missing in shoumei.toml.
var ErrProjectSectionMissing = errors.New("missing [project]")

// LoadManifest parses a shoumei.toml and resolves its module root.
func LoadManifest(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: %w", path, ErrProjectSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	dir := filepath.Dir(path)
	root, err := ResolveRoot(dir, cfg.Project.Root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ext := DefaultExt
	if meta.IsDefined("project", "ext") {
		ext = NormalizeExt(cfg.Project.Ext)
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [check].max_diagnostics must not be negative", path)
	}
	return &Manifest{
		Path:             path,
		Dir:              dir,
		Name:             strings.TrimSpace(cfg.Project.Name),
		Root:             root,
		Ext:              ext,
		MaxDiagnostics:   cfg.Check.MaxDiagnostics,
		WarningsAsErrors: cfg.Check.WarningsAsErrors,
	}, nil
}

// NormalizeExt trims ext and gives it a leading dot.
func NormalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Discover finds and loads the manifest above startDir.
func Discover(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoManifest
	}
	return LoadManifest(path)
}

// ResolveRoot resolves and validates a module root relative to the project directory.
// An empty root means the project directory itself.
func ResolveRoot(projectDir, root string) (string, error) {
	root = strings.TrimSpace(root)
	if filepath.IsAbs(root) {
		return "", fmt.Errorf("invalid [project].root %q: must be relative", root)
	}
	clean := filepath.Clean(filepath.FromSlash(root))
	if clean == "." {
		clean = ""
	}
	rootPath := filepath.Join(projectDir, clean)
	if !pathWithin(projectDir, rootPath) {
		return "", fmt.Errorf("invalid [project].root %q: escapes project directory", root)
	}
	info, err := os.Stat(rootPath)
	if err != nil {
		return "", fmt.Errorf("invalid [project].root %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid [project].root %q: not a directory", root)
	}
	return rootPath, nil
}

func pathWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(rel, "..") && rel != ".."
}
