package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// Keyer derives cache keys.
type Keyer interface {
	TranslationKey(sourceHash string, opts TranslationKeyOpts) string
}

// DefaultKeyer hashes all key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TranslationKey returns "translation:<sha256>" over the source hash and options.
// Components are NUL-separated, so ("ab", "c") and ("a", "bc") differ.
func (DefaultKeyer) TranslationKey(sourceHash string, opts TranslationKeyOpts) string {
	return hashKey("translation", sourceHash, opts.Input, opts.Output, opts.Kind, opts.Params)
}

// HashSource returns the hex SHA-256 of a diagram source. Keys carry this
// digest instead of the source text.
func HashSource(src string) string {
	return digest([]byte(src))
}

func digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func hashKey(prefix string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		_, _ = io.WriteString(h, p)
		_, _ = h.Write([]byte{0})
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}
