package core

import "testing"

func buildMultiRecordBytes(t *testing.T, elems [][]byte) []byte {
	t.Helper()
	total := 0
	for _, e := range elems {
		total += MultiRecordHeaderSize + len(e)
	}
	buf := make([]byte, total)
	pos := 0
	for i, e := range elems {
		hdr := buf[pos : pos+MultiRecordHeaderSize]
		hdr[0] = byte(0x10 + i)
		hdr[1] = 0x02
		if i == len(elems)-1 {
			hdr[1] |= 0x80
		}
		hdr[2] = byte(len(e))
		hdr[3] = ZeroSumChecksum(e)
		hdr[4] = ZeroSumChecksum(hdr[:4])
		copy(buf[pos+MultiRecordHeaderSize:], e)
		pos += MultiRecordHeaderSize + len(e)
	}
	return buf
}

func TestDecodeMultiRecordArea(t *testing.T) {
	data := buildMultiRecordBytes(t, [][]byte{{0x01, 0x02}, {0xAA, 0xBB, 0xCC}})
	area, err := DecodeMultiRecordArea(data, 0, len(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if area.Count() != 2 {
		t.Fatalf("count = %d, want 2", area.Count())
	}
	if area.Get(0).Type != 0x10 || area.Get(1).Type != 0x11 {
		t.Fatalf("types = %#x %#x", area.Get(0).Type, area.Get(1).Type)
	}
}

func TestDecodeMultiRecordAreaBadDataChecksum(t *testing.T) {
	data := buildMultiRecordBytes(t, [][]byte{{0x01, 0x02}})
	data[MultiRecordHeaderSize] ^= 0xFF // corrupt the payload; the header checksum still holds
	if _, err := DecodeMultiRecordArea(data, 0, len(data)); err == nil {
		t.Fatalf("expected data checksum error")
	}
}

func TestMultiRecordAreaAppendWithinCapacity(t *testing.T) {
	data := buildMultiRecordBytes(t, [][]byte{{0x01}})
	area, err := DecodeMultiRecordArea(data, 0, len(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	area.Length = area.UsedLength + MultiRecordHeaderSize + 4

	if err := area.Set(1, 0x20, 2, []byte{0xDE, 0xAD, 0xBE, 0xEF}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if area.Count() != 2 {
		t.Fatalf("count = %d, want 2", area.Count())
	}

	out := make([]byte, area.Length)
	area.Encode(out)

	redecoded, err := DecodeMultiRecordArea(out, 0, area.Length)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if redecoded.Count() != 2 {
		t.Fatalf("redecoded count = %d, want 2", redecoded.Count())
	}
	if redecoded.Get(1).Type != 0x20 {
		t.Fatalf("redecoded type = %#x, want 0x20", redecoded.Get(1).Type)
	}
}

func TestMultiRecordAreaAppendNoSpace(t *testing.T) {
	data := buildMultiRecordBytes(t, [][]byte{{0x01}})
	area, err := DecodeMultiRecordArea(data, 0, len(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	area.Length = area.UsedLength // no room to grow

	err = area.Set(1, 0x20, 2, []byte{0xDE, 0xAD})
	if err == nil {
		t.Fatalf("expected NoSpace error")
	}
	coreErr, ok := err.(*Error)
	if !ok || coreErr.Kind != NoSpace {
		t.Fatalf("expected NoSpace kind, got %v", err)
	}
	if area.Count() != 1 {
		t.Fatalf("failed append must not leave an orphan element: Count() = %d, want 1", area.Count())
	}
}

func TestMultiRecordAreaDeleteShiftsOffsets(t *testing.T) {
	data := buildMultiRecordBytes(t, [][]byte{{0x01}, {0x02, 0x03}, {0x04}})
	area, err := DecodeMultiRecordArea(data, 0, len(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	secondOffset := area.Get(2).Offset

	if err := area.Delete(0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if area.Count() != 2 {
		t.Fatalf("count = %d, want 2", area.Count())
	}
	if area.Get(1).Offset != secondOffset-(MultiRecordHeaderSize+1) {
		t.Fatalf("offset not shifted correctly: got %d", area.Get(1).Offset)
	}
}

func TestMultiRecordAreaDeleteLastTogglesHeaderChanged(t *testing.T) {
	data := buildMultiRecordBytes(t, [][]byte{{0x01}})
	area, err := DecodeMultiRecordArea(data, 0, len(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := area.Delete(0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !area.HeaderChanged {
		t.Fatalf("expected HeaderChanged after emptying area")
	}
}
