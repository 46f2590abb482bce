package core

import "testing"

func TestFieldVectorAppendAndEncode(t *testing.T) {
	v := &FieldVector{}
	if _, _, err := v.Append(KindASCII, []byte("first")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, _, err := v.Append(KindASCII, []byte("second")); err != nil {
		t.Fatalf("append: %v", err)
	}
	buf := make([]byte, v.EncodedLen())
	n := v.Encode(buf)
	if n != len(buf) {
		t.Fatalf("encode wrote %d bytes, expected %d", n, len(buf))
	}
	if buf[len(buf)-1] != EndMarker {
		t.Fatalf("expected trailing end marker")
	}

	decoded, pos, err := DecodeFieldVector(buf, 0, len(buf), LangCodeEnglish, false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pos != len(buf) {
		t.Fatalf("pos = %d, want %d", pos, len(buf))
	}
	if decoded.Count() != 2 {
		t.Fatalf("count = %d, want 2", decoded.Count())
	}
	if string(decoded.Get(0).Value) != "first" || string(decoded.Get(1).Value) != "second" {
		t.Fatalf("values mismatch: %q %q", decoded.Get(0).Value, decoded.Get(1).Value)
	}
}

func TestFieldVectorSetShiftsFollowing(t *testing.T) {
	v := &FieldVector{}
	v.Append(KindASCII, []byte("a"))
	v.Append(KindASCII, []byte("b"))
	oldOffset := v.Get(1).Offset

	diff, err := v.Set(0, KindASCII, []byte("muchlongervalue"))
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if v.Get(1).Offset != oldOffset+diff {
		t.Fatalf("offset not shifted: got %d want %d", v.Get(1).Offset, oldOffset+diff)
	}
	if !v.Get(1).Changed {
		t.Fatalf("expected following field marked changed")
	}
}

func TestFieldVectorDeleteShiftsFollowing(t *testing.T) {
	v := &FieldVector{}
	v.Append(KindASCII, []byte("alpha"))
	v.Append(KindASCII, []byte("beta"))
	v.Append(KindASCII, []byte("gamma"))
	oldOffset := v.Get(2).Offset

	removedLen, err := v.Delete(0)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if v.Count() != 2 {
		t.Fatalf("count = %d, want 2", v.Count())
	}
	if string(v.Get(0).Value) != "beta" {
		t.Fatalf("expected beta first, got %q", v.Get(0).Value)
	}
	if v.Get(1).Offset != oldOffset-removedLen {
		t.Fatalf("offset not shifted after delete: got %d want %d", v.Get(1).Offset, oldOffset-removedLen)
	}
}

func TestDecodeFieldVectorMissingEndMarker(t *testing.T) {
	buf := []byte{0xC2, 'a', 'b'} // ASCII len 2, no end marker within limit
	if _, _, err := DecodeFieldVector(buf, 0, len(buf), LangCodeEnglish, false); err == nil {
		t.Fatalf("expected missing end marker error")
	}
}

func TestReadAreaHeaderRejectsBadChecksum(t *testing.T) {
	data := []byte{0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF}
	if _, err := readAreaHeader(data, 0, len(data)); err == nil {
		t.Fatalf("expected checksum error")
	}
}

func TestAreaEnvelopeResetDirty(t *testing.T) {
	e := &AreaEnvelope{UsedLength: 20}
	e.MarkRewrite()
	if !e.Changed || !e.Rewrite {
		t.Fatalf("expected both flags set after MarkRewrite")
	}
	e.UsedLength = 30
	e.ResetDirty()
	if e.Changed || e.Rewrite {
		t.Fatalf("expected flags cleared after ResetDirty")
	}
	if e.OrigUsedLength != 30 {
		t.Fatalf("orig used length = %d, want 30", e.OrigUsedLength)
	}
}

func TestFruStringLenASCIIAddsNulTerminator(t *testing.T) {
	s := &FruString{Kind: KindASCII, Value: []byte("hi")}
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	bin := &FruString{Kind: KindBinary, Value: []byte{1, 2, 3}}
	if bin.Len() != 3 {
		t.Fatalf("len = %d, want 3", bin.Len())
	}
}
