package fru

import "github.com/liumorgan/openipmi/internal/core"

// AreaKind identifies one of the five standard FRU areas.
type AreaKind = core.AreaKind

const (
	AreaInternalUse = core.AreaInternalUse
	AreaChassisInfo = core.AreaChassisInfo
	AreaBoardInfo   = core.AreaBoardInfo
	AreaProductInfo = core.AreaProductInfo
	AreaMultiRecord = core.AreaMultiRecord
)

// AddArea creates a new, empty area of the given kind at offset
// (8-byte aligned, non-zero, at most 2040), with the given reserved
// length (rounded down to a multiple of 8). It fails with Exists if the
// area is already present, or InvalidArg if the placement overlaps a
// neighboring area or the blob.
func (f *FRU) AddArea(kind AreaKind, offset, length int) error {
	return f.core.AddArea(kind, offset, length, f.core.Capacity())
}

// DeleteArea removes the area of the given kind, if present, clearing
// its header slot.
func (f *FRU) DeleteArea(kind AreaKind) error {
	return f.core.DeleteArea(kind)
}

// AreaOffset returns the given area's current byte offset, or
// NotPresent if absent.
func (f *FRU) AreaOffset(kind AreaKind) (int, error) {
	return f.core.AreaOffset(kind)
}

// AreaLength returns the given area's reserved capacity in bytes.
func (f *FRU) AreaLength(kind AreaKind) (int, error) {
	return f.core.AreaLength(kind)
}

// AreaUsedLength returns the given area's currently occupied length.
func (f *FRU) AreaUsedLength(kind AreaKind) (int, error) {
	return f.core.AreaUsedLength(kind)
}

// AreaSetOffset moves an existing area to a new 8-byte-aligned offset.
// Moving the multi-record area preserves its end position by adjusting
// its length, since it has no independent declared length of its own.
func (f *FRU) AreaSetOffset(kind AreaKind, offset int) error {
	return f.core.SetAreaOffset(kind, offset, f.core.Capacity())
}

// AreaSetLength resizes an existing area in place, failing with NoSpace
// if the new length is smaller than the content currently in use.
func (f *FRU) AreaSetLength(kind AreaKind, length int) error {
	return f.core.SetAreaLength(kind, length, f.core.Capacity())
}

// SetCapacity raises the total blob size area placement is checked
// against, e.g. when the caller has provisioned more backing storage
// than the most recently decoded image occupied. It has no effect if n
// is not larger than the current capacity.
func (f *FRU) SetCapacity(n int) {
	f.core.SetCapacity(n)
}

// Capacity returns the current blob-size bound area placement is
// checked against.
func (f *FRU) Capacity() int {
	return f.core.Capacity()
}
