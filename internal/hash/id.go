// Package hash provides a cheap, non-normative content fingerprint for FRU
// blobs, used to let callers compare encoded images without diffing the
// full byte buffer.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of data.
func ID(data []byte) uint64 {
	return xxhash.Sum64(data)
}
