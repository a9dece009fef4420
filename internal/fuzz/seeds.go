package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"shoumei/internal/project"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var inlineSeeds = []string{
	"",
	"def nat : Type\n",
	"import logic/core\ntheorem refl : (a : nat) -> eq a a\n  by rfl\n",
	"def f : (nat -> nat\n",
	"def g : nat) -> nat]\n",
	"  def indented : Type\n",
	"def a : Type\n      def deep : Type\n    def dedent : Type\n",
	"def b\t: Type   \n",
	"def c : 12abc\n",
	"import a/\nimport /b\nimport\n",
	"def d : (x : nat)\n",
	"theorem : Type\ndef e\ndef f : \n",
	"def caf\u00e9 : Type\ndef cafe\u0301 : Type\n",
	"-- only a comment\n\n\n",
	"def x : ((((((((nat))))))))\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все модули
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != project.DefaultExt {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

// splitInput turns fuzz bytes into the lines a module reader would produce.
// Inputs that are not valid UTF-8 never reach the passes.
func splitInput(input []byte) ([]string, bool) {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	if !utf8.Valid(input) {
		return nil, false
	}
	text := strings.ReplaceAll(string(input), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, true
	}
	return strings.Split(text, "\n"), true
}
