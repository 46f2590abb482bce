// Package fru decodes, mutates, and re-encodes IPMI Platform Management
// FRU (Field Replaceable Unit) Information binary blobs conforming to the
// IPMI Platform Management FRU Information Storage Definition v1.0. It
// exposes a typed field API over the five standard areas (internal-use,
// chassis-info, board-info, product-info, multi-record) and a delta list
// of byte ranges to rewrite on commit, so a caller backed by a slow or
// transactional I/O path need not push back the whole blob on every edit.
package fru

import (
	"io"

	"github.com/liumorgan/openipmi/internal/core"
	"github.com/liumorgan/openipmi/internal/hash"
	"github.com/liumorgan/openipmi/internal/writer"
)

// DeltaList accumulates the byte ranges Encode touched, in the order they
// were written, so a caller can push back only what changed.
type DeltaList = writer.DeltaList

// DeltaEntry is one (offset, data) range within a DeltaList.
type DeltaEntry = writer.DeltaEntry

// FetchMask selects which areas Decode materializes; an area excluded
// from the mask is treated as absent even if the header declares a
// nonzero offset for it, for callers whose external fetcher only
// retrieved some areas' bytes.
type FetchMask = core.FetchMask

const (
	FetchInternalUse = core.FetchInternalUse
	FetchChassisInfo = core.FetchChassisInfo
	FetchBoardInfo   = core.FetchBoardInfo
	FetchProductInfo = core.FetchProductInfo
	FetchMultiRecord = core.FetchMultiRecord

	// FetchAll decodes every area the header declares.
	FetchAll = core.FetchAll
)

// FRU is an in-memory "normal" FRU: the common header plus whichever of
// the five areas it declares. It is the root handle every other type in
// this package (Area accessors, the typed field table, multi-record
// accessors) operates against.
type FRU struct {
	core *core.NormalFru
}

// New builds an empty FRU with no areas, ready for AddArea calls, whose
// placement checks are bounded by capacity bytes.
func New(capacity int) *FRU {
	return &FRU{core: core.New(capacity)}
}

// Decode parses a complete FRU blob, materializing only the areas
// selected by mask (pass FetchAll for the common case of a fully
// fetched blob). It fails with BadFormat if the header checksum is
// wrong, the format version isn't 1, area offsets aren't strictly
// increasing, or any fetched area's own checksum or length is invalid.
// No partial FRU is returned on error.
func Decode(blob []byte, mask FetchMask) (*FRU, error) {
	nf, err := core.Decode(blob, mask)
	if err != nil {
		return nil, err
	}
	return &FRU{core: nf}, nil
}

// DecodeFrom reads size bytes at offset 0 from r and decodes them as a
// FRU blob, for callers whose image lives embedded in a larger backing
// store (a flash device or firmware image) rather than as a standalone
// byte slice.
func DecodeFrom(r io.ReaderAt, size int, mask FetchMask) (*FRU, error) {
	blob := make([]byte, size)
	if _, err := r.ReadAt(blob, 0); err != nil {
		return nil, core.WrapError(core.BadFormat, "failed to read FRU blob", err)
	}
	return Decode(blob, mask)
}

// EncodedLen reports the total blob length Encode will produce.
func (f *FRU) EncodedLen() int {
	return f.core.EncodedLen()
}

// Encode renders the complete current state of f to a fresh byte slice.
// If delta is non-nil, every area (and the header) that changed since
// the last WriteComplete appends the byte ranges to rewrite for it,
// replacing whatever delta was recorded by a previous Encode call. A
// changed area's ranges cover its whole used span (or its whole reserved
// length after an add, move or growth) plus its checksum byte and any
// freed tail; they are not narrowed to the individual fields edited.
func (f *FRU) Encode(delta *DeltaList) []byte {
	if delta != nil {
		delta.Reset()
	}
	return f.core.Encode(delta)
}

// WriteComplete clears every area's dirty tracking after the caller has
// durably applied the most recent Encode's output (or its delta). It
// must not be called if the write was cancelled or failed partway.
func (f *FRU) WriteComplete() {
	f.core.WriteComplete()
}

// Fingerprint returns a cheap, non-normative content hash of blob, for
// callers that want to detect whether a freshly fetched image matches
// what they last committed without a byte-for-byte comparison.
func Fingerprint(blob []byte) uint64 {
	return hash.ID(blob)
}
