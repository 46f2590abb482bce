package core

// AreaEnvelope carries the placement and dirty-tracking state shared by
// every FRU area (internal-use, chassis, board, product, multi-record).
// It is embedded into each area's concrete struct rather than referenced
// by pointer, since every area owns exactly one envelope for its own
// lifetime.
type AreaEnvelope struct {
	// Offset is the area's byte position in the blob, a multiple of 8
	// (the header stores it divided by 8); 0 means the area is absent.
	Offset int
	// Length is the area's total allocated size in bytes (always a
	// multiple of 8).
	Length int
	// UsedLength is the number of bytes actually occupied by decoded
	// content within Length; the remainder is pad.
	UsedLength int
	// OrigUsedLength snapshots UsedLength as of the last WriteComplete;
	// when an area has shrunk, Encode's delta zero-fills the bytes
	// between UsedLength and OrigUsedLength.
	OrigUsedLength int
	// Changed marks that some field within the area was mutated since the
	// last WriteComplete.
	Changed bool
	// Rewrite marks that the area's layout moved or grew enough that a
	// field-by-field delta cannot express the change; Encode must emit
	// the whole area instead.
	Rewrite bool
}

// MarkChanged flags the envelope as holding unflushed mutations.
func (e *AreaEnvelope) MarkChanged() {
	e.Changed = true
}

// MarkRewrite flags the envelope as requiring a full-area rewrite on
// Encode, implicitly also marking it changed.
func (e *AreaEnvelope) MarkRewrite() {
	e.Changed = true
	e.Rewrite = true
}

// ResetDirty clears Changed/Rewrite and snapshots UsedLength, the way
// WriteComplete does for every area after a successful flush.
func (e *AreaEnvelope) ResetDirty() {
	e.Changed = false
	e.Rewrite = false
	e.OrigUsedLength = e.UsedLength
}

// Present reports whether the area exists in the FRU (a zero offset means
// the corresponding header slot was never populated).
func (e *AreaEnvelope) Present() bool {
	return e.Offset != 0
}

// FieldVector holds an area's variable-length custom fields: the fixed
// mandatory fields each area defines live directly on the area struct,
// but every area also ends in a vector of zero or more additional
// type/length strings terminated by the 0xC1 end marker.
type FieldVector struct {
	Fields []*FruString
}

// Count returns the number of custom fields currently present.
func (v *FieldVector) Count() int {
	return len(v.Fields)
}

// Get returns the nth custom field, or nil if index is out of range.
func (v *FieldVector) Get(index int) *FruString {
	if index < 0 || index >= len(v.Fields) {
		return nil
	}
	return v.Fields[index]
}

// Set replaces the nth custom field's value, re-selecting its encoding
// via EncodeString's narrowing rule and marking it changed. It shifts
// every later field's Offset by the signed difference in raw encoded
// length (new - old) and returns that difference.
func (v *FieldVector) Set(index int, kind StringKind, value []byte) (int, error) {
	if index < 0 || index >= len(v.Fields) {
		return 0, NewError(NotPresent, "custom field index out of range")
	}
	value = truncateString(value)
	encoded, err := EncodeString(kind, value)
	if err != nil {
		return 0, WrapError(InvalidArg, "encoding custom field", err)
	}
	old := v.Fields[index]
	diff := len(encoded) - old.RawLen
	v.Fields[index] = &FruString{
		Kind:    kind,
		Value:   append([]byte(nil), value...),
		Offset:  old.Offset,
		RawLen:  len(encoded),
		RawData: encoded,
		Changed: true,
	}
	v.shiftFollowing(index+1, diff)
	return diff, nil
}

// Append adds a new custom field at the end of the vector, returning its
// index and the number of raw bytes it adds (including the type/length
// byte).
func (v *FieldVector) Append(kind StringKind, value []byte) (int, int, error) {
	value = truncateString(value)
	encoded, err := EncodeString(kind, value)
	if err != nil {
		return 0, 0, WrapError(InvalidArg, "encoding custom field", err)
	}
	offset := 0
	if n := len(v.Fields); n > 0 {
		last := v.Fields[n-1]
		offset = last.Offset + last.RawLen
	}
	v.Fields = append(v.Fields, &FruString{
		Kind:    kind,
		Value:   append([]byte(nil), value...),
		Offset:  offset,
		RawLen:  len(encoded),
		RawData: encoded,
		Changed: true,
	})
	return len(v.Fields) - 1, len(encoded), nil
}

// Delete removes the nth custom field, shifting every later field's
// Offset back by the removed field's raw length.
func (v *FieldVector) Delete(index int) (int, error) {
	if index < 0 || index >= len(v.Fields) {
		return 0, NewError(NotPresent, "custom field index out of range")
	}
	removed := v.Fields[index]
	v.Fields = append(v.Fields[:index], v.Fields[index+1:]...)
	v.shiftFollowing(index, -removed.RawLen)
	return removed.RawLen, nil
}

// shiftFollowing adjusts the Offset of every field at or after index by
// diff bytes and marks each one changed, since its absolute position in
// the area moved even though its content did not.
func (v *FieldVector) shiftFollowing(index, diff int) {
	if diff == 0 {
		return
	}
	for i := index; i < len(v.Fields); i++ {
		v.Fields[i].Offset += diff
		v.Fields[i].Changed = true
	}
}

// shiftStrings adjusts Offset by diff and marks changed on every
// non-nil string in strs; used to keep fixed-field offsets consistent
// after an earlier fixed field in the same area grows or shrinks.
func shiftStrings(strs []*FruString, diff int) {
	if diff == 0 {
		return
	}
	for _, s := range strs {
		if s == nil {
			continue
		}
		s.Offset += diff
		s.Changed = true
	}
}

// EncodedLen returns the total raw byte length of every field in the
// vector plus the trailing 0xC1 end marker.
func (v *FieldVector) EncodedLen() int {
	total := 1 // end marker
	for _, f := range v.Fields {
		total += f.RawLen
	}
	return total
}

// Encode writes every field's raw bytes followed by the 0xC1 end marker
// into buf, which must be at least EncodedLen() bytes.
func (v *FieldVector) Encode(buf []byte) int {
	pos := 0
	for _, f := range v.Fields {
		encoded, err := EncodeString(f.Kind, f.Value)
		if err != nil {
			// Values are validated on Set/Append; a failure here means
			// a vector field was mutated outside the accessor methods.
			encoded = f.RawData
		}
		f.RawData = encoded
		f.RawLen = len(encoded)
		copy(buf[pos:], encoded)
		pos += len(encoded)
	}
	buf[pos] = EndMarker
	pos++
	return pos
}

// readAreaHeader validates and returns an area's declared length (in
// bytes, already multiplied by 8) at offset within data, checking it
// against both the end of the blob and gapLen (the distance to the next
// present area, as computed by the header walk), and verifying the
// zero-sum checksum over the whole area. It is shared by every
// fixed-length area decoder (chassis, board, product) that carries its
// own declared length byte rather than inferring its extent purely from
// neighboring offsets.
func readAreaHeader(data []byte, offset, gapLen int) (length int, err error) {
	if offset >= len(data) {
		return 0, NewError(BadFormat, "area offset past end of blob")
	}
	if offset+1 >= len(data) {
		return 0, NewError(BadFormat, "area truncated before length byte")
	}
	length = int(data[offset+1]) * 8
	if length == 0 {
		return 0, NewError(BadFormat, "area declares zero length")
	}
	if offset+length > len(data) {
		return 0, NewError(BadFormat, "area extends past end of blob")
	}
	if length > gapLen {
		return 0, NewError(BadFormat, "area length overruns the next area")
	}
	if !VerifyZeroSum(data[offset : offset+length]) {
		return 0, NewError(BadFormat, "area checksum mismatch")
	}
	return length, nil
}

// DecodeFieldVector reads zero or more type/length strings starting at
// offset within data until it hits the 0xC1 end marker or runs past
// limit, matching the original's field-walking loop in fru_areas_equal
// and the per-area decoders.
func DecodeFieldVector(data []byte, offset, limit int, langCode byte, forceEnglish bool) (*FieldVector, int, error) {
	v := &FieldVector{}
	pos := offset
	for {
		if pos >= limit {
			return nil, 0, NewError(BadFormat, "field vector missing end marker before area boundary")
		}
		if data[pos] == EndMarker {
			pos++
			return v, pos, nil
		}
		s, err := DecodeString(data, pos, langCode, forceEnglish)
		if err != nil {
			return nil, 0, WrapError(BadFormat, "decoding custom field", err)
		}
		v.Fields = append(v.Fields, s)
		pos += s.RawLen
	}
}
