package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"shoumei/internal/driver"
	"shoumei/internal/project"
)

// settings is the effective configuration of one command run: manifest
// values first, then every flag the user set explicitly.
type settings struct {
	dir      string
	manifest *project.Manifest // nil without shoumei.toml

	root             string
	ext              string
	maxDiagnostics   int
	warningsAsErrors bool
	timings          bool
	reload           bool
	jobs             int
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	dir, err := flags.GetString("dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get dir flag: %w", err)
	}
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}
	if dir, err = filepath.Abs(dir); err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", dir, err)
	}

	s := &settings{
		dir:            dir,
		root:           dir,
		ext:            project.DefaultExt,
		maxDiagnostics: defaultMaxDiagnostics,
	}

	manifest, err := project.Discover(dir)
	switch {
	case err == nil:
		s.manifest = manifest
		s.root = manifest.Root
		s.ext = manifest.Ext
		if manifest.MaxDiagnostics > 0 {
			s.maxDiagnostics = manifest.MaxDiagnostics
		}
		s.warningsAsErrors = manifest.WarningsAsErrors
	case errors.Is(err, project.ErrNoManifest):
		// без манифеста работаем от dir
	default:
		return nil, err
	}

	if flags.Changed("root") {
		root, err := flags.GetString("root")
		if err != nil {
			return nil, fmt.Errorf("failed to get root flag: %w", err)
		}
		if !filepath.IsAbs(root) {
			root = filepath.Join(dir, root)
		}
		s.root = filepath.Clean(root)
	}
	if flags.Changed("ext") {
		ext, err := flags.GetString("ext")
		if err != nil {
			return nil, fmt.Errorf("failed to get ext flag: %w", err)
		}
		s.ext = project.NormalizeExt(ext)
	}
	if flags.Changed("max-diagnostics") || s.manifest == nil {
		if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		if s.maxDiagnostics < 0 {
			return nil, fmt.Errorf("--max-diagnostics must not be negative")
		}
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.reload, err = flags.GetBool("reload"); err != nil {
		return nil, fmt.Errorf("failed to get reload flag: %w", err)
	}
	if s.jobs, err = flags.GetInt("jobs"); err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}

	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("module root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("module root %s is not a directory", s.root)
	}
	return s, nil
}

func (s *settings) driverOptions() driver.Options {
	return driver.Options{
		Root:         s.root,
		Ext:          s.ext,
		Timings:      s.timings,
		AlwaysReload: s.reload,
	}
}
