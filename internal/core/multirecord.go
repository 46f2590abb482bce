package core

// MultiRecordHeaderSize is the fixed size of a multi-record element's
// header: type, format-version/end-of-list byte, length, data checksum,
// header checksum.
const MultiRecordHeaderSize = 5

// multiRecordGrowthChunk is the 16-slot block size the original library
// grows its record array by. Set does not use it: Elems grows through
// append, which amortizes reallocation on its own.
const multiRecordGrowthChunk = 16

// MultiRecordElem is one element of the multi-record area: an opaque
// manufacturer/type-specific record plus the bookkeeping the area needs
// to place it back into the blob.
type MultiRecordElem struct {
	Type          byte
	FormatVersion byte
	Data          []byte
	Offset        int // byte offset from the area's start
	Changed       bool
}

// rawLen returns the on-disk size of this element, header included.
func (e *MultiRecordElem) rawLen() int {
	return MultiRecordHeaderSize + len(e.Data)
}

// MultiRecordArea models the multi-record area: a sequence of elements,
// each individually checksummed, terminated by an end-of-list bit in the
// last element's header byte.
type MultiRecordArea struct {
	AreaEnvelope
	Elems []*MultiRecordElem
	// HeaderChanged marks that the area's presence changed (the last
	// element was deleted, or the first element was added), which the
	// caller must reflect by rewriting the common header's offset slot.
	HeaderChanged bool
}

// DecodeMultiRecordArea reads the multi-record area occupying
// data[offset:offset+gapLen]. It performs the same two-pass scan as the
// original decoder: first validating every element's header and data
// checksums and locating the end-of-list marker, then materializing the
// element slice.
func DecodeMultiRecordArea(data []byte, offset, gapLen int) (*MultiRecordArea, error) {
	if offset+gapLen > len(data) {
		return nil, NewError(BadFormat, "multi-record area extends past end of blob")
	}

	pos := 0
	numRecords := 0
	for {
		if gapLen-pos < MultiRecordHeaderSize {
			return nil, NewError(BadFormat, "multi-record header truncated")
		}
		hdr := data[offset+pos : offset+pos+MultiRecordHeaderSize]
		if !VerifyZeroSum(hdr) {
			return nil, NewError(BadFormat, "multi-record header checksum mismatch")
		}
		length := int(hdr[2])
		if length+MultiRecordHeaderSize > gapLen-pos {
			return nil, NewError(BadFormat, "multi-record element extends past area")
		}
		payload := data[offset+pos+MultiRecordHeaderSize : offset+pos+MultiRecordHeaderSize+length]
		if byte(Sum8(payload)+hdr[3]) != 0 {
			return nil, NewError(BadFormat, "multi-record data checksum mismatch")
		}
		numRecords++
		eol := hdr[1]&0x80 != 0
		pos += length + MultiRecordHeaderSize
		if eol {
			break
		}
	}

	usedLength := pos
	elems := make([]*MultiRecordElem, 0, numRecords)
	pos = 0
	for i := 0; i < numRecords; i++ {
		hdr := data[offset+pos : offset+pos+MultiRecordHeaderSize]
		length := int(hdr[2])
		payload := append([]byte(nil), data[offset+pos+MultiRecordHeaderSize:offset+pos+MultiRecordHeaderSize+length]...)
		elems = append(elems, &MultiRecordElem{
			Type:          hdr[0],
			FormatVersion: hdr[1] & 0x0F,
			Data:          payload,
			Offset:        pos,
		})
		pos += length + MultiRecordHeaderSize
	}

	return &MultiRecordArea{
		AreaEnvelope: AreaEnvelope{
			Offset:         offset,
			Length:         gapLen,
			UsedLength:     usedLength,
			OrigUsedLength: usedLength,
		},
		Elems: elems,
	}, nil
}

// Count returns the number of elements present.
func (a *MultiRecordArea) Count() int {
	return len(a.Elems)
}

// Get returns the nth element, or nil if out of range.
func (a *MultiRecordArea) Get(index int) *MultiRecordElem {
	if index < 0 || index >= len(a.Elems) {
		return nil
	}
	return a.Elems[index]
}

// Set replaces (or appends, when index == Count()) one element's type,
// format version and payload, and enforces NoSpace against a.Length when
// growth would not fit. Appending grows Elems with append.
func (a *MultiRecordArea) Set(index int, elemType, formatVersion byte, data []byte) error {
	if index > len(a.Elems) {
		return NewError(InvalidArg, "multi-record index leaves a gap")
	}

	if index == len(a.Elems) {
		if a.UsedLength+MultiRecordHeaderSize+len(data) > a.Length {
			return NewError(NoSpace, "multi-record area has no room for new element")
		}
		offset := a.UsedLength
		wasEmpty := len(a.Elems) == 0
		a.Elems = append(a.Elems, &MultiRecordElem{
			Type:          elemType,
			FormatVersion: formatVersion,
			Data:          append([]byte(nil), data...),
			Offset:        offset,
			Changed:       true,
		})
		if wasEmpty {
			a.HeaderChanged = true
		}
		a.UsedLength += MultiRecordHeaderSize + len(data)
		a.MarkChanged()
		return nil
	}

	elem := a.Elems[index]
	diff := len(data) - len(elem.Data)
	if a.UsedLength+diff > a.Length {
		return NewError(NoSpace, "multi-record area has no room for element growth")
	}
	elem.Type = elemType
	elem.FormatVersion = formatVersion
	elem.Data = append([]byte(nil), data...)
	elem.Changed = true
	if diff != 0 {
		for i := index + 1; i < len(a.Elems); i++ {
			a.Elems[i].Offset += diff
			a.Elems[i].Changed = true
		}
	}
	a.UsedLength += diff
	a.MarkChanged()
	return nil
}

// Delete removes the nth element, shifting every later element's Offset
// back to close the gap.
func (a *MultiRecordArea) Delete(index int) error {
	if index < 0 || index >= len(a.Elems) {
		return NewError(NotPresent, "multi-record index out of range")
	}
	removed := a.Elems[index]
	diff := -removed.rawLen()
	a.Elems = append(a.Elems[:index], a.Elems[index+1:]...)
	for i := index; i < len(a.Elems); i++ {
		a.Elems[i].Offset += diff
		a.Elems[i].Changed = true
	}
	a.UsedLength += diff
	if len(a.Elems) == 0 {
		a.HeaderChanged = true
	}
	a.MarkChanged()
	return nil
}

// envelope exposes the embedded AreaEnvelope for generic area handling
// in NormalFru.
func (a *MultiRecordArea) envelope() *AreaEnvelope { return &a.AreaEnvelope }

// EncodedLen returns the reserved byte length of the area.
func (a *MultiRecordArea) EncodedLen() int {
	return a.Length
}

// Encode writes every element, each individually checksummed and the
// last one flagged end-of-list, into buf (at least a.Length bytes). The
// multi-record area carries no area-level checksum of its own; each
// element is self-checksummed instead.
func (a *MultiRecordArea) Encode(buf []byte) {
	for i := range buf[:a.Length] {
		buf[i] = 0
	}
	pos := 0
	for i, e := range a.Elems {
		hdr := buf[pos : pos+MultiRecordHeaderSize]
		hdr[0] = e.Type
		hdr[1] = 0x02 // format version 2, per the original encoder
		if i == len(a.Elems)-1 {
			hdr[1] |= 0x80
		}
		hdr[2] = byte(len(e.Data))
		hdr[3] = ZeroSumChecksum(e.Data)
		hdr[4] = ZeroSumChecksum(hdr[:4])
		copy(buf[pos+MultiRecordHeaderSize:], e.Data)
		pos += MultiRecordHeaderSize + len(e.Data)
	}
	a.UsedLength = pos
}
