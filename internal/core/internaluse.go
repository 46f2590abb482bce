package core

// InternalUseArea is the internal-use area: a version byte followed by
// opaque board-vendor-defined bytes. It carries no checksum or
// type/length fields of its own; its extent is simply the gap between
// its header offset and the next present area (or end of blob).
type InternalUseArea struct {
	AreaEnvelope
	Version byte
	Data    []byte
}

// DecodeInternalUseArea reads the internal-use area occupying
// data[offset:offset+gapLen], where gapLen is the distance to the next
// present area (or end of blob) as computed by the header walk.
func DecodeInternalUseArea(data []byte, offset, gapLen int) (*InternalUseArea, error) {
	if gapLen < 1 || offset+gapLen > len(data) {
		return nil, NewError(BadFormat, "internal-use area extends past end of blob")
	}
	area := &InternalUseArea{
		AreaEnvelope: AreaEnvelope{
			Offset:         offset,
			Length:         gapLen,
			UsedLength:     gapLen,
			OrigUsedLength: gapLen,
		},
		Version: data[offset],
		Data:    append([]byte(nil), data[offset+1:offset+gapLen]...),
	}
	return area, nil
}

// SetData replaces the internal-use payload. Internal-use areas have no
// independent length field of their own; their reserved Length is fixed
// by the gap to the next area, so content must fit within Length-1
// bytes (growing it first requires NormalFru.SetLength).
func (a *InternalUseArea) SetData(data []byte) error {
	if 1+len(data) > a.Length {
		return NewError(NoSpace, "internal-use data exceeds reserved area length")
	}
	a.Data = append([]byte(nil), data...)
	a.MarkChanged()
	return nil
}

// envelope exposes the embedded AreaEnvelope for generic area handling
// in NormalFru.
func (a *InternalUseArea) envelope() *AreaEnvelope { return &a.AreaEnvelope }

// EncodedLen returns the reserved byte length of the area.
func (a *InternalUseArea) EncodedLen() int {
	return a.Length
}

// Encode writes the version byte and payload into buf (at least
// a.Length bytes), zero-padding any reserved space beyond the payload.
func (a *InternalUseArea) Encode(buf []byte) {
	for i := range buf[:a.Length] {
		buf[i] = 0
	}
	buf[0] = 1
	copy(buf[1:], a.Data)
	a.UsedLength = 1 + len(a.Data)
}
