package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"shoumei/internal/diag"
	"shoumei/internal/source"
	"shoumei/internal/trace"
)

// RootResult is the outcome of loading one root module with its own loader.
type RootResult struct {
	Path     source.ModulePath
	Compiled *Compiled
	OK       bool
	// Messages holds everything the loader emitted, dependencies first.
	Messages []diag.Message
	// Loaded counts the modules the loader touched, the root included.
	Loaded int
}

// ListModules возвращает отсортированный список модулей под root с расширением ext.
func ListModules(root, ext string) ([]source.ModulePath, error) {
	if ext == "" {
		return nil, fmt.Errorf("cannot list modules without a file extension")
	}
	var paths []source.ModulePath
	err := filepath.WalkDir(root, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if file != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		rel, err := filepath.Rel(root, strings.TrimSuffix(file, ext))
		if err != nil {
			return err
		}
		path, err := source.ModulePathFromFile(rel)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(paths, source.ModulePath.Compare)
	return paths, nil
}

// CheckRoots loads every root with a fresh loader, jobs at a time.
// Results come back in the order of roots regardless of scheduling.
func CheckRoots(ctx context.Context, opts Options, roots []source.ModulePath, jobs int) ([]RootResult, error) {
	results := make([]RootResult, len(roots))
	if len(roots) == 0 {
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check", 0).
		WithExtra("roots", fmt.Sprint(len(roots))).
		WithExtra("jobs", fmt.Sprint(jobs))
	defer span.End("")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(roots)))

	for i, root := range roots {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			l := NewLoader(opts, nil)
			compiled, ok := l.Load(trace.WithParent(gctx, span), root)
			results[i] = RootResult{
				Path:     root,
				Compiled: compiled,
				OK:       ok,
				Messages: l.TakeErrorEmitter().Take(),
				Loaded:   l.cache.Len(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
