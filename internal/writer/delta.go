// Package writer accumulates the byte-range rewrites an Encode pass
// produces, so a caller backed by a random-access medium (an EEPROM, a
// file) can apply only what changed instead of rewriting the whole blob.
package writer

// DeltaEntry is one contiguous byte-range rewrite: Data replaces
// blob[Offset:Offset+len(Data)].
type DeltaEntry struct {
	Offset int
	Data   []byte
}

// DeltaList accumulates delta entries produced during a single Encode
// pass. It holds no reference to the FRU object model, avoiding any
// import dependency on internal/core.
type DeltaList struct {
	Entries []DeltaEntry
	// BlobHash is the xxHash64 fingerprint of the fully-encoded blob the
	// Encode call that populated this list produced, letting a caller
	// confirm a committed image is unchanged without a full-buffer diff.
	BlobHash uint64
}

// Add records a rewrite of the given byte range. data is copied, since
// callers typically reuse their encode scratch buffer across calls.
func (d *DeltaList) Add(offset int, data []byte) {
	d.Entries = append(d.Entries, DeltaEntry{
		Offset: offset,
		Data:   append([]byte(nil), data...),
	})
}

// TotalBytes returns the sum of every entry's length, a cheap signal for
// deciding whether a delta write-back is worthwhile versus a full
// rewrite.
func (d *DeltaList) TotalBytes() int {
	total := 0
	for _, e := range d.Entries {
		total += len(e.Data)
	}
	return total
}

// Reset clears the list for reuse across multiple Encode calls.
func (d *DeltaList) Reset() {
	d.Entries = d.Entries[:0]
	d.BlobHash = 0
}
