package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives trace events. Emit must be safe for concurrent use:
// parallel checks share one tracer.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled is Level() > LevelOff.
	Enabled() bool
}

// Config selects a tracer for the CLI.
type Config struct {
	Level      Level
	Format     Format
	Output     io.Writer // wins over OutputPath
	OutputPath string    // "" or "-" is stderr
}

// New returns Nop for LevelOff and a stream tracer otherwise. A path ending
// in .ndjson forces the NDJSON format.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	w := cfg.Output
	if w == nil {
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") {
			cfg.Format = FormatNDJSON
		}
		sink, err := openSink(cfg.OutputPath)
		if err != nil {
			return nil, err
		}
		w = sink
	}
	return NewStreamTracer(w, cfg.Level, cfg.Format), nil
}

func openSink(path string) (io.Writer, error) {
	if path == "" || path == "-" {
		return stderrSink{os.Stderr}, nil
	}
	// #nosec G304 -- path comes from --trace
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return &fileSink{Writer: bufio.NewWriter(f), f: f}, nil
}

// stderrSink hides Close so the tracer never closes stderr.
type stderrSink struct{ io.Writer }

type fileSink struct {
	*bufio.Writer
	f *os.File
}

func (s *fileSink) Close() error {
	return errors.Join(s.Flush(), s.f.Close())
}
