package project

import (
	"crypto/sha256"
)

// Digest - фиксированный 256 битный хеш содержимого манифеста
type Digest [32]byte

// DigestBytes hashes raw content.
func DigestBytes(b []byte) Digest {
	return sha256.Sum256(b)
}

// Combine строит ключ кеша: H( content || part1 || part2 ... ).
// Порядок parts должен быть детерминированным.
func Combine(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
