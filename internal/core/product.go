package core

// ProductInfoArea models the product-info area: version, language code,
// seven fixed strings, and a custom field vector.
type ProductInfoArea struct {
	AreaEnvelope
	Version          byte
	LangCode         byte
	ManufacturerName *FruString
	ProductName      *FruString
	PartModelNumber  *FruString
	ProductVersion   *FruString
	SerialNumber     *FruString
	AssetTag         *FruString
	FruFileID        *FruString
	Custom           FieldVector
}

// DecodeProductInfoArea reads the product-info area starting at offset
// within data. gapLen is the distance to the next present area (or end
// of blob), bounding the area's own declared length.
func DecodeProductInfoArea(data []byte, offset, gapLen int) (*ProductInfoArea, error) {
	length, err := readAreaHeader(data, offset, gapLen)
	if err != nil {
		return nil, err
	}
	pos := offset + 2
	if pos >= offset+length {
		return nil, NewError(BadFormat, "product-info area too short for language code")
	}
	langCode := data[pos]
	if langCode == 0 {
		langCode = LangCodeEnglish
	}
	pos++

	strs, pos, err := decodeFixedStrings(data, pos, langCode,
		[]bool{false, false, false, false, true, false, true})
	if err != nil {
		return nil, err
	}

	custom, pos, err := DecodeFieldVector(data, pos, offset+length-1, langCode, false)
	if err != nil {
		return nil, WrapError(BadFormat, "decoding product custom fields", err)
	}

	used := pos - offset + 1
	area := &ProductInfoArea{
		AreaEnvelope: AreaEnvelope{
			Offset:         offset,
			Length:         length,
			UsedLength:     used,
			OrigUsedLength: used,
		},
		Version:          data[offset],
		LangCode:         langCode,
		ManufacturerName: strs[0],
		ProductName:      strs[1],
		PartModelNumber:  strs[2],
		ProductVersion:   strs[3],
		SerialNumber:     strs[4],
		AssetTag:         strs[5],
		FruFileID:        strs[6],
		Custom:           *custom,
	}
	return area, nil
}

// SetLangCode updates the area's language code.
func (a *ProductInfoArea) SetLangCode(lang byte) {
	if a.LangCode == lang {
		return
	}
	a.LangCode = lang
	a.MarkChanged()
}

func (a *ProductInfoArea) setFixedString(slot **FruString, kind StringKind, value []byte) (int, error) {
	value = truncateString(value)
	encoded, err := EncodeString(kind, value)
	if err != nil {
		return 0, WrapError(InvalidArg, "encoding product string", err)
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

func (a *ProductInfoArea) SetManufacturerName(kind StringKind, value []byte) (int, error) {
	diff, err := a.setFixedString(&a.ManufacturerName, kind, value)
	if err != nil {
		return 0, err
	}
	a.shiftTrailing(diff, a.ProductName, a.PartModelNumber, a.ProductVersion, a.SerialNumber, a.AssetTag, a.FruFileID)
	return diff, nil
}

func (a *ProductInfoArea) SetProductName(kind StringKind, value []byte) (int, error) {
	diff, err := a.setFixedString(&a.ProductName, kind, value)
	if err != nil {
		return 0, err
	}
	a.shiftTrailing(diff, a.PartModelNumber, a.ProductVersion, a.SerialNumber, a.AssetTag, a.FruFileID)
	return diff, nil
}

func (a *ProductInfoArea) SetPartModelNumber(kind StringKind, value []byte) (int, error) {
	diff, err := a.setFixedString(&a.PartModelNumber, kind, value)
	if err != nil {
		return 0, err
	}
	a.shiftTrailing(diff, a.ProductVersion, a.SerialNumber, a.AssetTag, a.FruFileID)
	return diff, nil
}

func (a *ProductInfoArea) SetProductVersion(kind StringKind, value []byte) (int, error) {
	diff, err := a.setFixedString(&a.ProductVersion, kind, value)
	if err != nil {
		return 0, err
	}
	a.shiftTrailing(diff, a.SerialNumber, a.AssetTag, a.FruFileID)
	return diff, nil
}

func (a *ProductInfoArea) SetSerialNumber(kind StringKind, value []byte) (int, error) {
	diff, err := a.setFixedString(&a.SerialNumber, kind, value)
	if err != nil {
		return 0, err
	}
	a.shiftTrailing(diff, a.AssetTag, a.FruFileID)
	return diff, nil
}

func (a *ProductInfoArea) SetAssetTag(kind StringKind, value []byte) (int, error) {
	diff, err := a.setFixedString(&a.AssetTag, kind, value)
	if err != nil {
		return 0, err
	}
	a.shiftTrailing(diff, a.FruFileID)
	return diff, nil
}

func (a *ProductInfoArea) SetFruFileID(kind StringKind, value []byte) (int, error) {
	diff, err := a.setFixedString(&a.FruFileID, kind, value)
	if err != nil {
		return 0, err
	}
	a.shiftTrailing(diff)
	return diff, nil
}

// shiftTrailing shifts every fixed string listed (in encoding order
// after the one just mutated) plus the custom field vector by diff.
func (a *ProductInfoArea) shiftTrailing(diff int, after ...*FruString) {
	shiftStrings(after, diff)
	a.Custom.shiftFollowing(0, diff)
}

// envelope exposes the embedded AreaEnvelope for generic area handling
// in NormalFru.
func (a *ProductInfoArea) envelope() *AreaEnvelope { return &a.AreaEnvelope }

// EncodedLen returns the reserved byte length of the area.
func (a *ProductInfoArea) EncodedLen() int {
	return a.Length
}

// Encode writes the full product-info area into buf (at least a.Length
// bytes), including pad and checksum.
func (a *ProductInfoArea) Encode(buf []byte) {
	for i := range buf[:a.Length] {
		buf[i] = 0
	}
	buf[0] = 1
	buf[1] = byte(a.Length / 8)
	buf[2] = a.LangCode
	pos := 3
	fields := []*FruString{
		a.ManufacturerName, a.ProductName, a.PartModelNumber, a.ProductVersion,
		a.SerialNumber, a.AssetTag, a.FruFileID,
	}
	for _, s := range fields {
		copy(buf[pos:], s.RawData)
		pos += s.RawLen
	}
	pos += a.Custom.Encode(buf[pos:])
	a.UsedLength = pos + 1
	buf[a.Length-1] = ZeroSumChecksum(buf[:a.Length-1])
}
