package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
)

var inlineSeeds = []string{
	"",
	"[package]\nname = \"demo\"\nversion = \"0.1.0\"\n",
	"[dependencies]\nserde = { version = \"1\", features = [\"derive\"] }\nanyhow = \"1\"\n",
	"# leading\n\n[dependencies]\nb = \"1\" # trailing\n\n# group\na = \"2\"\n",
	"[features]\ndefault = [\n  \"std\", # keep\n  \"alloc\",\n]\n",
	"[workspace]\nmembers = [\"crates/*\"]\n\n[workspace.dependencies]\nz = \"1\"\ny = \"2\"\n",
	"[target.'cfg(unix)'.dependencies]\nlibc = \"0.2\"\n[dev-dependencies]\nb = \"1\"\na = \"1\"\n",
	"s = '''\nmulti\nline\n'''\nt = \"\"\"\nbasic\n\"\"\"\n",
	"[[bin]]\nname = \"a\"\n[[bin]]\nname = \"b\"\n",
	"[package]\r\nname = \"crlf\"\r\n",
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
	// проходим по дереву testdata, добавляем все *.toml файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".toml" {
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
