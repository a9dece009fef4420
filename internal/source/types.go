package source

// FileFlags encodes metadata about how a source file was read.
type FileFlags uint8 // метаданные

const (
	// FileHadBOM reports that a UTF-8 byte order mark was stripped from the first line.
	FileHadBOM FileFlags = 1 << iota
	// FileNormalizedCRLF reports that at least one line ended with \r\n.
	FileNormalizedCRLF
)

// Text is the decoded content of one module file, split into lines.
type Text struct {
	Path  string
	Lines []string // без завершающих \n и \r\n
	Hash  [32]byte
	Flags FileFlags
}

// LineCount returns the number of lines as uint32.
func (t *Text) LineCount() uint32 {
	if t == nil {
		return 0
	}
	return mustU32(len(t.Lines))
}
