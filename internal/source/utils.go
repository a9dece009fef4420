package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
)

const utf8BOM = "\uFEFF"

func removeBOM(line string) (string, bool) {
	if strings.HasPrefix(line, utf8BOM) {
		return line[len(utf8BOM):], true
	}
	return line, false
}

// trimNewline отрезает \n и \r\n. Одиночный \r без \n остаётся в строке.
func trimNewline(line string) (string, bool) {
	if !strings.HasSuffix(line, "\n") {
		return line, false
	}
	line = line[:len(line)-1]
	if strings.HasSuffix(line, "\r") {
		return line[:len(line)-1], true
	}
	return line, false
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("length overflow: %w", err))
	}
	return v
}

// ToU32 converts a non-negative length or index to uint32, panicking on overflow.
func ToU32(n int) uint32 {
	return mustU32(n)
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
