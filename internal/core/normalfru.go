package core

import (
	"github.com/liumorgan/openipmi/internal/hash"
	"github.com/liumorgan/openipmi/internal/writer"
)

// maxAreaStart mirrors the original decoder's limit: an area's starting
// offset is stored in one byte of 8-byte units, so it cannot exceed
// 255*8 = 2040 bytes from the start of the blob.
const maxAreaStart = 2040

// encodableArea is implemented by every concrete area type so NormalFru
// can manipulate placement and drive encoding generically.
type encodableArea interface {
	envelope() *AreaEnvelope
	EncodedLen() int
	Encode(buf []byte)
}

// emptyAreaLength is the minimum allocation ipmi_fru_add_area reserves
// for a freshly added, otherwise-empty area of each kind.
var emptyAreaLength = [AreaSlots]int{
	AreaInternalUse: 8,
	AreaChassisInfo: 8,
	AreaBoardInfo:   16,
	AreaProductInfo: 16,
	AreaMultiRecord: 0,
}

// NormalFru is the in-memory representation of one "normal" (non-OEM)
// IPMI FRU Information blob: the 8-byte header plus whichever of the
// five areas it declares.
type NormalFru struct {
	Header *Header

	InternalUse *InternalUseArea
	Chassis     *ChassisInfoArea
	Board       *BoardInfoArea
	Product     *ProductInfoArea
	MultiRecord *MultiRecordArea

	// HeaderChanged tracks header-level mutations (SetAreaOffset, AddArea,
	// DeleteArea, or a multi-record area transitioning to/from empty,
	// which Encode folds in from MultiRecordArea.HeaderChanged).
	HeaderChanged bool

	origLen int
}

// New builds an empty NormalFru with no areas and a freshly zeroed
// header, ready for AddArea calls bounded by capacity bytes.
func New(capacity int) *NormalFru {
	return &NormalFru{
		Header:  &Header{FormatVersion: 1},
		origLen: capacity,
	}
}

// Decode parses a complete FRU blob: the common header followed by
// whichever areas it declares, in header-slot order. mask suppresses
// areas the caller did not fetch; a masked-out area is left absent even
// if the header declares a nonzero offset for it.
func Decode(data []byte, mask FetchMask) (*NormalFru, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}

	fru := &NormalFru{Header: h, origLen: len(data)}

	for i := 0; i < AreaSlots; i++ {
		offset := h.AreaOffsets[i]
		if offset == 0 || !mask.Includes(AreaKind(i)) {
			continue
		}
		next := len(data)
		for j := i + 1; j < AreaSlots; j++ {
			if h.AreaOffsets[j] != 0 {
				next = h.AreaOffsets[j]
				break
			}
		}
		gap := next - offset

		switch AreaKind(i) {
		case AreaInternalUse:
			fru.InternalUse, err = DecodeInternalUseArea(data, offset, gap)
		case AreaChassisInfo:
			fru.Chassis, err = DecodeChassisInfoArea(data, offset, gap)
		case AreaBoardInfo:
			fru.Board, err = DecodeBoardInfoArea(data, offset, gap)
		case AreaProductInfo:
			fru.Product, err = DecodeProductInfoArea(data, offset, gap)
		case AreaMultiRecord:
			fru.MultiRecord, err = DecodeMultiRecordArea(data, offset, gap)
		}
		if err != nil {
			return nil, err
		}
	}

	return fru, nil
}

// Capacity returns the total blob size area placement must fit within:
// the length of the buffer Decode was given, or whatever a later
// SetCapacity call raised it to.
func (f *NormalFru) Capacity() int {
	return f.origLen
}

// SetCapacity raises the usable blob capacity, e.g. when the caller has
// provisioned more backing storage than the most recently decoded image
// occupied. It has no effect if n is not larger than the current
// capacity.
func (f *NormalFru) SetCapacity(n int) {
	if n > f.origLen {
		f.origLen = n
	}
}

// area returns the generic handle for kind, or nil if absent.
func (f *NormalFru) area(kind AreaKind) encodableArea {
	switch kind {
	case AreaInternalUse:
		if f.InternalUse == nil {
			return nil
		}
		return f.InternalUse
	case AreaChassisInfo:
		if f.Chassis == nil {
			return nil
		}
		return f.Chassis
	case AreaBoardInfo:
		if f.Board == nil {
			return nil
		}
		return f.Board
	case AreaProductInfo:
		if f.Product == nil {
			return nil
		}
		return f.Product
	case AreaMultiRecord:
		if f.MultiRecord == nil {
			return nil
		}
		return f.MultiRecord
	default:
		return nil
	}
}

// neighborBounds returns the byte range an area at kind must not
// encroach on: the end of the previous present area, and the start of
// the next present area (or the blob length if none).
func (f *NormalFru) neighborBounds(kind AreaKind, blobLen int) (prevEnd, nextStart int) {
	for i := int(kind) - 1; i >= 0; i-- {
		if a := f.area(AreaKind(i)); a != nil {
			e := a.envelope()
			prevEnd = e.Offset + e.Length
			break
		}
	}
	nextStart = blobLen
	for i := int(kind) + 1; i < AreaSlots; i++ {
		if a := f.area(AreaKind(i)); a != nil {
			nextStart = a.envelope().Offset
			break
		}
	}
	return prevEnd, nextStart
}

// checkPlacement validates a prospective (offset, length) for kind
// against alignment, the 2040-byte start limit, and neighboring areas,
// mirroring check_rec_position.
func (f *NormalFru) checkPlacement(kind AreaKind, offset, length, blobLen int) error {
	if offset == 0 || offset%8 != 0 {
		return NewError(InvalidArg, "area offset must be non-zero and 8-byte aligned")
	}
	maxStart := blobLen - 8
	if maxStart > maxAreaStart {
		maxStart = maxAreaStart
	}
	if offset > maxStart || offset+length > blobLen {
		return NewError(InvalidArg, "area placement exceeds blob bounds")
	}

	prevEnd, nextStart := f.neighborBounds(kind, blobLen)
	if offset < prevEnd {
		return NewError(InvalidArg, "area overlaps the previous area")
	}
	if offset+length > nextStart {
		return NewError(InvalidArg, "area overlaps the next area")
	}
	return nil
}

// AddArea creates a new, empty area of the given kind at offset with
// the given length (truncated to a multiple of 8), failing with Exists
// if the area is already present.
func (f *NormalFru) AddArea(kind AreaKind, offset, length, blobLen int) error {
	if int(kind) >= AreaSlots {
		return NewError(InvalidArg, "unknown area kind")
	}
	if f.area(kind) != nil {
		return NewError(Exists, "area already present")
	}
	length &^= 7

	if err := f.checkPlacement(kind, offset, length, blobLen); err != nil {
		return err
	}

	switch kind {
	case AreaInternalUse:
		f.InternalUse = &InternalUseArea{
			AreaEnvelope: AreaEnvelope{Offset: offset, Length: length, Changed: true, Rewrite: true},
			Version:      1,
		}
	case AreaChassisInfo:
		f.Chassis = &ChassisInfoArea{
			AreaEnvelope: AreaEnvelope{Offset: offset, Length: length, Changed: true, Rewrite: true},
			Version:      1,
			PartNumber:   &FruString{Kind: KindASCII},
			SerialNumber: &FruString{Kind: KindASCII},
		}
	case AreaBoardInfo:
		f.Board = &BoardInfoArea{
			AreaEnvelope: AreaEnvelope{Offset: offset, Length: length, Changed: true, Rewrite: true},
			Version:      1,
			LangCode:     LangCodeEnglish,
			Manufacturer: &FruString{Kind: KindASCII},
			ProductName:  &FruString{Kind: KindASCII},
			SerialNumber: &FruString{Kind: KindASCII},
			PartNumber:   &FruString{Kind: KindASCII},
			FruFileID:    &FruString{Kind: KindASCII},
		}
	case AreaProductInfo:
		f.Product = &ProductInfoArea{
			AreaEnvelope:     AreaEnvelope{Offset: offset, Length: length, Changed: true, Rewrite: true},
			Version:          1,
			LangCode:         LangCodeEnglish,
			ManufacturerName: &FruString{Kind: KindASCII},
			ProductName:      &FruString{Kind: KindASCII},
			PartModelNumber:  &FruString{Kind: KindASCII},
			ProductVersion:   &FruString{Kind: KindASCII},
			SerialNumber:     &FruString{Kind: KindASCII},
			AssetTag:         &FruString{Kind: KindASCII},
			FruFileID:        &FruString{Kind: KindASCII},
		}
	case AreaMultiRecord:
		f.MultiRecord = &MultiRecordArea{
			AreaEnvelope: AreaEnvelope{Offset: offset, Length: length, Changed: true, Rewrite: true},
		}
	}

	a := f.area(kind)
	e := a.envelope()
	e.UsedLength = emptyAreaLength[kind]
	e.OrigUsedLength = e.UsedLength

	// Fixed string fields start out present but empty: one 0xC0
	// type/length byte each, so a fresh area encodes and decodes cleanly.
	var fixed []*FruString
	switch ar := a.(type) {
	case *ChassisInfoArea:
		fixed = []*FruString{ar.PartNumber, ar.SerialNumber}
	case *BoardInfoArea:
		fixed = []*FruString{ar.Manufacturer, ar.ProductName, ar.SerialNumber, ar.PartNumber, ar.FruFileID}
	case *ProductInfoArea:
		fixed = []*FruString{ar.ManufacturerName, ar.ProductName, ar.PartModelNumber,
			ar.ProductVersion, ar.SerialNumber, ar.AssetTag, ar.FruFileID}
	}
	for _, s := range fixed {
		s.RawLen, s.RawData = 1, []byte{0xC0}
	}

	f.Header.SetOffset(kind, offset)
	f.HeaderChanged = true
	return nil
}

// DeleteArea removes the area of the given kind, if present.
func (f *NormalFru) DeleteArea(kind AreaKind) error {
	if int(kind) >= AreaSlots {
		return NewError(InvalidArg, "unknown area kind")
	}
	switch kind {
	case AreaInternalUse:
		f.InternalUse = nil
	case AreaChassisInfo:
		f.Chassis = nil
	case AreaBoardInfo:
		f.Board = nil
	case AreaProductInfo:
		f.Product = nil
	case AreaMultiRecord:
		f.MultiRecord = nil
	}
	f.Header.SetOffset(kind, 0)
	f.HeaderChanged = true
	return nil
}

// AreaOffset returns the given area's current offset.
func (f *NormalFru) AreaOffset(kind AreaKind) (int, error) {
	a := f.area(kind)
	if a == nil {
		return 0, NewError(NotPresent, "area not present")
	}
	return a.envelope().Offset, nil
}

// AreaLength returns the given area's reserved length.
func (f *NormalFru) AreaLength(kind AreaKind) (int, error) {
	a := f.area(kind)
	if a == nil {
		return 0, NewError(NotPresent, "area not present")
	}
	return a.envelope().Length, nil
}

// AreaUsedLength returns the given area's currently occupied length.
func (f *NormalFru) AreaUsedLength(kind AreaKind) (int, error) {
	a := f.area(kind)
	if a == nil {
		return 0, NewError(NotPresent, "area not present")
	}
	e := a.envelope()
	// Re-encode into scratch space so field edits made since the last
	// Encode are counted.
	a.Encode(make([]byte, e.Length))
	return e.UsedLength, nil
}

// SetAreaOffset moves an existing area, mirroring
// ipmi_fru_area_set_offset's multi-record special case (its length is
// adjusted so the area still ends at the same place).
func (f *NormalFru) SetAreaOffset(kind AreaKind, offset, blobLen int) error {
	a := f.area(kind)
	if a == nil {
		return NewError(NotPresent, "area not present")
	}
	e := a.envelope()
	if e.Offset == offset {
		return nil
	}

	length := e.Length
	if kind == AreaMultiRecord {
		length = e.Length + e.Offset - offset
	}
	if err := f.checkPlacement(kind, offset, length, blobLen); err != nil {
		return err
	}
	if kind == AreaMultiRecord {
		e.Length = length
	}
	e.Offset = offset
	e.MarkRewrite()
	f.Header.SetOffset(kind, offset)
	f.HeaderChanged = true
	return nil
}

// SetAreaLength resizes an existing area in place.
func (f *NormalFru) SetAreaLength(kind AreaKind, length, blobLen int) error {
	length &^= 7
	if length == 0 {
		return NewError(InvalidArg, "area length must be non-zero")
	}
	a := f.area(kind)
	if a == nil {
		return NewError(NotPresent, "area not present")
	}
	e := a.envelope()
	if e.Length == length {
		return nil
	}
	// Re-encode into scratch space so UsedLength reflects field edits
	// made since the last Encode.
	a.Encode(make([]byte, e.Length))
	if length < e.UsedLength {
		return NewError(NoSpace, "new length is smaller than content in use")
	}
	if err := f.checkPlacement(kind, e.Offset, length, blobLen); err != nil {
		return err
	}
	if length > e.Length {
		e.Rewrite = true
	}
	e.Length = length
	e.Changed = true
	return nil
}

// EncodedLen returns the total blob length this FRU would encode to:
// the header plus every present area's reserved length, following
// whichever area currently sits last.
func (f *NormalFru) EncodedLen() int {
	total := HeaderSize
	for i := 0; i < AreaSlots; i++ {
		if a := f.area(AreaKind(i)); a != nil {
			e := a.envelope()
			if end := e.Offset + e.Length; end > total {
				total = end
			}
		}
	}
	return total
}

// Encode renders the complete blob and, when delta is non-nil, appends
// the byte ranges a caller must rewrite. The header contributes its 8
// bytes when HeaderChanged is set. An area marked Rewrite (grown, moved,
// or newly added) contributes one entry spanning its whole reserved
// length. Any other changed area contributes one entry spanning its used
// bytes, a zero-filled entry for any tail freed since the last
// WriteComplete, and, for chassis, board and product areas, an entry for
// the checksum in the area's last byte. Entries are not split per
// field: unchanged fields inside the used span are rewritten as well.
func (f *NormalFru) Encode(delta *writer.DeltaList) []byte {
	total := f.EncodedLen()
	buf := make([]byte, total)

	// An empty multi-record area is written as absent in the header; its
	// slot returns to the area's offset once it holds an element again.
	if mr := f.MultiRecord; mr != nil {
		off := mr.Offset
		if mr.Count() == 0 {
			off = 0
		}
		f.Header.AreaOffsets[AreaMultiRecord] = off
		if mr.HeaderChanged {
			f.HeaderChanged = true
		}
	}
	f.Header.Encode(buf[:HeaderSize])
	if f.HeaderChanged && delta != nil {
		delta.Add(0, buf[:HeaderSize])
	}

	for i := 0; i < AreaSlots; i++ {
		a := f.area(AreaKind(i))
		if a == nil {
			continue
		}
		e := a.envelope()
		origUsed := e.OrigUsedLength
		areaBuf := buf[e.Offset : e.Offset+e.Length]
		a.Encode(areaBuf)

		if delta == nil || !e.Changed {
			continue
		}
		if e.Rewrite {
			delta.Add(e.Offset, areaBuf)
			continue
		}
		delta.Add(e.Offset, areaBuf[:e.UsedLength])
		if e.UsedLength < origUsed {
			delta.Add(e.Offset+e.UsedLength, make([]byte, origUsed-e.UsedLength))
		}
		switch a.(type) {
		case *ChassisInfoArea, *BoardInfoArea, *ProductInfoArea:
			// The zero-sum checksum sits in the area's last byte, outside
			// the used span whenever the area carries padding.
			delta.Add(e.Offset+e.Length-1, areaBuf[e.Length-1:])
		}
	}

	if delta != nil {
		delta.BlobHash = hash.ID(buf)
	}

	return buf
}

// WriteComplete clears every area's dirty tracking after a caller has
// durably applied Encode's output (or the delta it produced),
// snapshotting UsedLength as the new baseline for future deltas.
func (f *NormalFru) WriteComplete() {
	f.HeaderChanged = false
	f.Header.Changed = false
	for i := 0; i < AreaSlots; i++ {
		a := f.area(AreaKind(i))
		if a == nil {
			continue
		}
		a.envelope().ResetDirty()
	}
	if f.MultiRecord != nil {
		f.MultiRecord.HeaderChanged = false
		for _, e := range f.MultiRecord.Elems {
			e.Changed = false
		}
	}
	clearFieldVectorChanged := func(strs ...*FruString) {
		for _, s := range strs {
			if s != nil {
				s.Changed = false
			}
		}
	}
	if f.Chassis != nil {
		clearFieldVectorChanged(f.Chassis.PartNumber, f.Chassis.SerialNumber)
		for _, s := range f.Chassis.Custom.Fields {
			s.Changed = false
		}
	}
	if f.Board != nil {
		clearFieldVectorChanged(f.Board.Manufacturer, f.Board.ProductName, f.Board.SerialNumber, f.Board.PartNumber, f.Board.FruFileID)
		for _, s := range f.Board.Custom.Fields {
			s.Changed = false
		}
	}
	if f.Product != nil {
		clearFieldVectorChanged(f.Product.ManufacturerName, f.Product.ProductName, f.Product.PartModelNumber,
			f.Product.ProductVersion, f.Product.SerialNumber, f.Product.AssetTag, f.Product.FruFileID)
		for _, s := range f.Product.Custom.Fields {
			s.Changed = false
		}
	}
}
