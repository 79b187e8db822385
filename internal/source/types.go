package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, re-parse).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM is set when a UTF-8 BOM was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF is set when \r\n line endings were rewritten to \n.
	FileNormalizedCRLF
)

// File captures metadata and content for a single manifest.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// HadCRLF reports whether the original content used \r\n line endings.
func (f *File) HadCRLF() bool {
	return f.Flags&FileNormalizedCRLF != 0
}
