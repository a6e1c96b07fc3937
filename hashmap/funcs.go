package hashmap

import (
	"bytes"

	"github.com/foundrylib/foundry/hashkit"
)

// Default hash and equality functions for common key types, ready to pass
// to New.

func HashUint64(k uint64) uint64 { return hashkit.Uint64(k) }
func EqUint64(a, b uint64) bool  { return a == b }

func HashString(k string) uint64 { return hashkit.String(k) }
func EqString(a, b string) bool  { return a == b }

// HashBytes and EqBytes treat a []byte key as content, not identity, which
// is what the string interner's borrowed views rely on.
func HashBytes(k []byte) uint64 { return hashkit.Bytes(k) }
func EqBytes(a, b []byte) bool  { return bytes.Equal(a, b) }
