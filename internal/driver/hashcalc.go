package driver

import (
	"github.com/vmihailenco/msgpack/v5"

	"cargosort/internal/format"
	"cargosort/internal/project"
)

// optionsKey is everything that can change a verdict besides the content.
type optionsKey struct {
	Config      format.Config
	Format      bool
	Grouped     bool
	TableOrder  []string
	CheckFormat bool
}

func optionsDigest(opts Options) (project.Digest, error) {
	data, err := msgpack.Marshal(optionsKey{
		Config:      opts.Config,
		Format:      opts.Format,
		Grouped:     opts.Grouped,
		TableOrder:  opts.TableOrder,
		CheckFormat: opts.CheckFormat,
	})
	if err != nil {
		return project.Digest{}, err
	}
	return project.DigestBytes(data), nil
}

// cacheKey: H(content || options).
func cacheKey(content []byte, opts Options) (project.Digest, error) {
	od, err := optionsDigest(opts)
	if err != nil {
		return project.Digest{}, err
	}
	return project.Combine(project.DigestBytes(content), od), nil
}
