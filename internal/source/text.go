package source

import (
	"bufio"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// ErrCannotOpen wraps failures to open a module file.
var ErrCannotOpen = errors.New("cannot open file")

// InvalidUTF8Error reports the first line that is not valid UTF-8.
type InvalidUTF8Error struct {
	Path string
	Line int // 1-based
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("%s: invalid UTF-8 on line %d", e.Path, e.Line)
}

// ReadText opens path, reads it line by line and closes it before returning.
// Reading stops at the first line that is not valid UTF-8.
func ReadText(path string) (*Text, error) {
	// #nosec G304 -- path is built from a validated module path
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCannotOpen, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return readLines(normalizePath(path), f)
}

func readLines(path string, r io.Reader) (*Text, error) {
	h := sha256.New()
	br := bufio.NewReader(io.TeeReader(r, h))

	text := &Text{Path: path}
	for lineNo := 1; ; lineNo++ {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: read line %d: %w", path, lineNo, err)
		}
		if raw == "" && errors.Is(err, io.EOF) {
			break
		}

		line, crlf := trimNewline(raw)
		if crlf {
			text.Flags |= FileNormalizedCRLF
		}
		if lineNo == 1 {
			var bom bool
			if line, bom = removeBOM(line); bom {
				text.Flags |= FileHadBOM
			}
		}
		if !utf8.ValidString(line) {
			return nil, &InvalidUTF8Error{Path: path, Line: lineNo}
		}
		text.Lines = append(text.Lines, line)

		if errors.Is(err, io.EOF) {
			break
		}
	}
	copy(text.Hash[:], h.Sum(nil))
	return text, nil
}
