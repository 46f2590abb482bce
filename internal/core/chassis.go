package core

// ChassisInfoArea models the chassis-info area: version, allocated
// length, chassis type, a fixed part-number and serial-number string
// (both always interpreted as ASCII, independent of language code), and
// a trailing custom field vector.
type ChassisInfoArea struct {
	AreaEnvelope
	Version      byte
	Type         byte
	PartNumber   *FruString
	SerialNumber *FruString
	Custom       FieldVector
}

// chassisLangCode is fixed at English: chassis part/serial numbers are
// always ASCII regardless of any language code, mirroring the original
// decoder's hardcoded IPMI_LANG_CODE_ENGLISH assignment.
const chassisLangCode = LangCodeEnglish

// DecodeChassisInfoArea reads the chassis-info area starting at offset
// within data. gapLen is the distance to the next present area (or end
// of blob), bounding the area's own declared length.
func DecodeChassisInfoArea(data []byte, offset, gapLen int) (*ChassisInfoArea, error) {
	length, err := readAreaHeader(data, offset, gapLen)
	if err != nil {
		return nil, err
	}
	pos := offset + 2 // skip version, length bytes
	if pos >= offset+length {
		return nil, NewError(BadFormat, "chassis-info area too short for type byte")
	}
	chassisType := data[pos]
	pos++

	partNumber, err := DecodeString(data, pos, chassisLangCode, true)
	if err != nil {
		return nil, WrapError(BadFormat, "decoding chassis part number", err)
	}
	pos += partNumber.RawLen

	serialNumber, err := DecodeString(data, pos, chassisLangCode, true)
	if err != nil {
		return nil, WrapError(BadFormat, "decoding chassis serial number", err)
	}
	pos += serialNumber.RawLen

	custom, pos2, err := DecodeFieldVector(data, pos, offset+length-1, chassisLangCode, true)
	if err != nil {
		return nil, WrapError(BadFormat, "decoding chassis custom fields", err)
	}

	used := pos2 - offset + 1 // + 1 for the checksum byte
	area := &ChassisInfoArea{
		AreaEnvelope: AreaEnvelope{
			Offset:         offset,
			Length:         length,
			UsedLength:     used,
			OrigUsedLength: used,
		},
		Version:      data[offset],
		Type:         chassisType,
		PartNumber:   partNumber,
		SerialNumber: serialNumber,
		Custom:       *custom,
	}
	return area, nil
}

// SetType updates the chassis type byte.
func (a *ChassisInfoArea) SetType(t byte) {
	if a.Type == t {
		return
	}
	a.Type = t
	a.MarkChanged()
}

// SetPartNumber replaces the part-number string, shifts the serial
// number and custom fields by the change in raw length, and returns that
// signed byte-length delta.
func (a *ChassisInfoArea) SetPartNumber(kind StringKind, value []byte) (int, error) {
	diff, err := a.setFixedString(&a.PartNumber, kind, value)
	if err != nil {
		return 0, err
	}
	shiftStrings([]*FruString{a.SerialNumber}, diff)
	a.Custom.shiftFollowing(0, diff)
	return diff, nil
}

// SetSerialNumber replaces the serial-number string.
func (a *ChassisInfoArea) SetSerialNumber(kind StringKind, value []byte) (int, error) {
	diff, err := a.setFixedString(&a.SerialNumber, kind, value)
	if err != nil {
		return 0, err
	}
	a.Custom.shiftFollowing(0, diff)
	return diff, nil
}

func (a *ChassisInfoArea) setFixedString(slot **FruString, kind StringKind, value []byte) (int, error) {
	value = truncateString(value)
	encoded, err := EncodeString(kind, value)
	if err != nil {
		return 0, WrapError(InvalidArg, "encoding chassis string", err)
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

// envelope exposes the embedded AreaEnvelope for generic area handling
// in NormalFru.
func (a *ChassisInfoArea) envelope() *AreaEnvelope { return &a.AreaEnvelope }

// fixedFieldsLen returns the number of encoded bytes occupied by the
// version, length, type, part-number and serial-number fields, i.e.
// everything before the custom field vector.
func (a *ChassisInfoArea) fixedFieldsLen() int {
	return 3 + a.PartNumber.RawLen + a.SerialNumber.RawLen
}

// EncodedLen returns the total byte length this area occupies, honoring
// its reserved Length rather than just the used content, since encoded
// output always fills the full 8-byte-aligned allocation.
func (a *ChassisInfoArea) EncodedLen() int {
	return a.Length
}

// Encode writes the full chassis-info area, including trailing pad and
// checksum, into buf (which must be at least a.Length bytes).
func (a *ChassisInfoArea) Encode(buf []byte) {
	for i := range buf[:a.Length] {
		buf[i] = 0
	}
	buf[0] = 1
	buf[1] = byte(a.Length / 8)
	buf[2] = a.Type
	pos := 3
	copy(buf[pos:], a.PartNumber.RawData)
	pos += a.PartNumber.RawLen
	copy(buf[pos:], a.SerialNumber.RawData)
	pos += a.SerialNumber.RawLen
	pos += a.Custom.Encode(buf[pos:])
	a.UsedLength = pos + 1 // + 1 for checksum
	buf[a.Length-1] = ZeroSumChecksum(buf[:a.Length-1])
}
