package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Stamp records path's size and modification time. Files that cannot be
// stat'ed (the placeholder, deleted photos) get a zero stamp, which still
// keys deterministically.
func Stamp(path string) SourceStamp {
	s := SourceStamp{Path: path}
	if fi, err := os.Stat(path); err == nil {
		s.Size = fi.Size()
		s.ModTime = fi.ModTime().UTC()
	}
	return s
}

// Stamps stamps every path.
func Stamps(paths []string) []SourceStamp {
	out := make([]SourceStamp, len(paths))
	for i, p := range paths {
		out[i] = Stamp(p)
	}
	return out
}
