package core

// BoardInfoArea models the board-info area: version, language code,
// manufacture time, five fixed strings, and a custom field vector.
type BoardInfoArea struct {
	AreaEnvelope
	Version      byte
	LangCode     byte
	MfgTime      uint32 // FRU minutes, see UnixToFRUTime/FRUTimeToUnix
	Manufacturer *FruString
	ProductName  *FruString
	SerialNumber *FruString
	PartNumber   *FruString
	FruFileID    *FruString
	Custom       FieldVector
}

// DecodeBoardInfoArea reads the board-info area starting at offset
// within data. gapLen is the distance to the next present area (or end
// of blob), bounding the area's own declared length.
func DecodeBoardInfoArea(data []byte, offset, gapLen int) (*BoardInfoArea, error) {
	length, err := readAreaHeader(data, offset, gapLen)
	if err != nil {
		return nil, err
	}
	pos := offset + 2
	if pos+4 > offset+length {
		return nil, NewError(BadFormat, "board-info area too short for language code and time")
	}
	langCode := data[pos]
	if langCode == 0 {
		langCode = LangCodeEnglish
	}
	pos++
	mfgTime := DecodeFRUTime(data[pos : pos+3])
	pos += 3

	strs, pos, err := decodeFixedStrings(data, pos, langCode,
		[]bool{false, false, true, true, true})
	if err != nil {
		return nil, err
	}

	custom, pos, err := DecodeFieldVector(data, pos, offset+length-1, langCode, false)
	if err != nil {
		return nil, WrapError(BadFormat, "decoding board custom fields", err)
	}

	used := pos - offset + 1
	area := &BoardInfoArea{
		AreaEnvelope: AreaEnvelope{
			Offset:         offset,
			Length:         length,
			UsedLength:     used,
			OrigUsedLength: used,
		},
		Version:      data[offset],
		LangCode:     langCode,
		MfgTime:      mfgTime,
		Manufacturer: strs[0],
		ProductName:  strs[1],
		SerialNumber: strs[2],
		PartNumber:   strs[3],
		FruFileID:    strs[4],
		Custom:       *custom,
	}
	return area, nil
}

// decodeFixedStrings decodes len(forceEnglish) consecutive type/length
// strings starting at pos, each honoring its own force_english flag
// against the shared area language code. It returns the decoded strings
// and the position immediately following the last one.
func decodeFixedStrings(data []byte, pos int, langCode byte, forceEnglish []bool) ([]*FruString, int, error) {
	out := make([]*FruString, len(forceEnglish))
	for i, force := range forceEnglish {
		s, err := DecodeString(data, pos, langCode, force)
		if err != nil {
			return nil, 0, WrapError(BadFormat, "decoding fixed string field", err)
		}
		out[i] = s
		pos += s.RawLen
	}
	return out, pos, nil
}

// SetMfgTime updates the manufacture time (in FRU minutes).
func (a *BoardInfoArea) SetMfgTime(fruMinutes uint32) {
	if a.MfgTime == fruMinutes {
		return
	}
	a.MfgTime = fruMinutes
	a.MarkChanged()
}

// SetLangCode updates the area's language code.
func (a *BoardInfoArea) SetLangCode(lang byte) {
	if a.LangCode == lang {
		return
	}
	a.LangCode = lang
	a.MarkChanged()
}

func (a *BoardInfoArea) setFixedString(slot **FruString, kind StringKind, value []byte) (int, error) {
	value = truncateString(value)
	encoded, err := EncodeString(kind, value)
	if err != nil {
		return 0, WrapError(InvalidArg, "encoding board string", err)
	}
	old := *slot
	diff := len(encoded) - old.RawLen
	*slot = &FruString{
		Kind:    kind,
		Value:   append([]byte(nil), value...),
		Offset:  old.Offset,
		RawLen:  len(encoded),
		RawData: encoded,
		Changed: true,
	}
	a.MarkChanged()
	return diff, nil
}

func (a *BoardInfoArea) SetManufacturer(kind StringKind, value []byte) (int, error) {
	diff, err := a.setFixedString(&a.Manufacturer, kind, value)
	if err != nil {
		return 0, err
	}
	a.shiftTrailing(diff, a.ProductName, a.SerialNumber, a.PartNumber, a.FruFileID)
	return diff, nil
}

func (a *BoardInfoArea) SetProductName(kind StringKind, value []byte) (int, error) {
	diff, err := a.setFixedString(&a.ProductName, kind, value)
	if err != nil {
		return 0, err
	}
	a.shiftTrailing(diff, a.SerialNumber, a.PartNumber, a.FruFileID)
	return diff, nil
}

func (a *BoardInfoArea) SetSerialNumber(kind StringKind, value []byte) (int, error) {
	diff, err := a.setFixedString(&a.SerialNumber, kind, value)
	if err != nil {
		return 0, err
	}
	a.shiftTrailing(diff, a.PartNumber, a.FruFileID)
	return diff, nil
}

func (a *BoardInfoArea) SetPartNumber(kind StringKind, value []byte) (int, error) {
	diff, err := a.setFixedString(&a.PartNumber, kind, value)
	if err != nil {
		return 0, err
	}
	a.shiftTrailing(diff, a.FruFileID)
	return diff, nil
}

func (a *BoardInfoArea) SetFruFileID(kind StringKind, value []byte) (int, error) {
	diff, err := a.setFixedString(&a.FruFileID, kind, value)
	if err != nil {
		return 0, err
	}
	a.shiftTrailing(diff)
	return diff, nil
}

// shiftTrailing shifts every fixed string listed (in encoding order
// after the one just mutated) plus the custom field vector by diff.
func (a *BoardInfoArea) shiftTrailing(diff int, after ...*FruString) {
	shiftStrings(after, diff)
	a.Custom.shiftFollowing(0, diff)
}

// envelope exposes the embedded AreaEnvelope for generic area handling
// in NormalFru.
func (a *BoardInfoArea) envelope() *AreaEnvelope { return &a.AreaEnvelope }

// EncodedLen returns the reserved byte length of the area.
func (a *BoardInfoArea) EncodedLen() int {
	return a.Length
}

// Encode writes the full board-info area into buf (at least a.Length
// bytes), including pad and checksum.
func (a *BoardInfoArea) Encode(buf []byte) {
	for i := range buf[:a.Length] {
		buf[i] = 0
	}
	buf[0] = 1
	buf[1] = byte(a.Length / 8)
	buf[2] = a.LangCode
	EncodeFRUTime(buf[3:6], a.MfgTime)
	pos := 6
	for _, s := range []*FruString{a.Manufacturer, a.ProductName, a.SerialNumber, a.PartNumber, a.FruFileID} {
		copy(buf[pos:], s.RawData)
		pos += s.RawLen
	}
	pos += a.Custom.Encode(buf[pos:])
	a.UsedLength = pos + 1
	buf[a.Length-1] = ZeroSumChecksum(buf[:a.Length-1])
}
