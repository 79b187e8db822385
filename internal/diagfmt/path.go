package diagfmt

import (
	"path/filepath"
	"strings"

	"cargosort/internal/source"
)

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		return f.RelPath(fs.BaseDir())
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		rel := f.RelPath(fs.BaseDir())
		if strings.HasPrefix(rel, "../") {
			return f.Path
		}
		return rel
	}
}

// lineText возвращает строку line (1-based) без перевода строки.
func lineText(f *source.File, line uint32) string {
	if line == 0 {
		return ""
	}
	start := 0
	if line > 1 {
		if int(line-2) >= len(f.LineIdx) {
			return ""
		}
		start = int(f.LineIdx[line-2]) + 1
	}
	end := len(f.Content)
	if int(line-1) < len(f.LineIdx) {
		end = int(f.LineIdx[line-1])
	}
	if start > end {
		return ""
	}
	return strings.TrimSuffix(string(f.Content[start:end]), "\r")
}
