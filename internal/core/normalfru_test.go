package core

import (
	"testing"

	"github.com/liumorgan/openipmi/internal/writer"
)

// buildMinimalBlob assembles a tiny valid FRU blob with just a chassis
// area, for exercising NormalFru's decode/encode/mutation paths.
func buildMinimalBlob(t *testing.T) []byte {
	t.Helper()
	chassis := buildChassisAreaBytes(t, 0x17, "PN1", "SN1")

	header := make([]byte, HeaderSize)
	header[0] = 1
	header[2] = byte(HeaderSize / 8) // chassis offset = 8
	header[7] = ZeroSumChecksum(header[:7])

	return append(header, chassis...)
}

func TestNormalFruDecode(t *testing.T) {
	blob := buildMinimalBlob(t)
	fru, err := Decode(blob, FetchAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fru.Chassis == nil {
		t.Fatalf("expected chassis area present")
	}
	if fru.Board != nil {
		t.Fatalf("expected board area absent")
	}
	if string(fru.Chassis.PartNumber.Value) != "PN1" {
		t.Fatalf("part number = %q", fru.Chassis.PartNumber.Value)
	}
}

func TestNormalFruDecodeFetchMaskExcludesArea(t *testing.T) {
	blob := buildMinimalBlob(t)
	fru, err := Decode(blob, FetchMask(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fru.Chassis != nil {
		t.Fatalf("expected chassis area excluded by an empty fetch mask")
	}
}

func TestNormalFruDecodeRejectsAreaLengthOverrunningNext(t *testing.T) {
	chassis := buildChassisAreaBytes(t, 0x17, "PN1", "SN1")
	chassis[1] = 4 // declare length 32, double the real 16-byte area
	chassis[15] = ZeroSumChecksum(chassis[:15])

	header := make([]byte, HeaderSize)
	header[0] = 1
	header[2] = byte(HeaderSize / 8) // chassis at offset 8
	header[3] = byte((HeaderSize + 16) / 8) // board at offset 24, 16 bytes after chassis starts
	header[7] = ZeroSumChecksum(header[:7])

	blob := append(header, chassis...)
	blob = append(blob, make([]byte, 16)...) // room for the (unparsed) board area

	if _, err := Decode(blob, FetchAll); err == nil {
		t.Fatalf("expected error when chassis length overruns the board area")
	}
}

func TestNormalFruEncodeRoundTrip(t *testing.T) {
	blob := buildMinimalBlob(t)
	fru, err := Decode(blob, FetchAll)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	out := fru.Encode(nil)
	redecoded, err := Decode(out, FetchAll)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if string(redecoded.Chassis.PartNumber.Value) != "PN1" {
		t.Fatalf("part number lost on round trip: %q", redecoded.Chassis.PartNumber.Value)
	}
}

func TestNormalFruAddAreaRejectsExisting(t *testing.T) {
	blob := buildMinimalBlob(t)
	fru, err := Decode(blob, FetchAll)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	err = fru.AddArea(AreaChassisInfo, 8, 16, len(blob))
	if err == nil {
		t.Fatalf("expected Exists error")
	}
	coreErr, ok := err.(*Error)
	if !ok || coreErr.Kind != Exists {
		t.Fatalf("expected Exists kind, got %v", err)
	}
}

func TestNormalFruAddAreaRejectsMisalignedOffset(t *testing.T) {
	blob := buildMinimalBlob(t)
	fru, err := Decode(blob, FetchAll)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	err = fru.AddArea(AreaBoardInfo, 25, 16, len(blob)+16)
	if err == nil {
		t.Fatalf("expected alignment error")
	}
}

func TestNormalFruAddAreaSetsHeaderAndChanged(t *testing.T) {
	blob := buildMinimalBlob(t)
	fru, err := Decode(blob, FetchAll)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	newLen := len(blob) + 16
	if err := fru.AddArea(AreaBoardInfo, len(blob), 16, newLen); err != nil {
		t.Fatalf("add area: %v", err)
	}
	if !fru.HeaderChanged {
		t.Fatalf("expected header changed")
	}
	if fru.Header.Offset(AreaBoardInfo) != len(blob) {
		t.Fatalf("board offset = %d, want %d", fru.Header.Offset(AreaBoardInfo), len(blob))
	}
	if !fru.Board.Rewrite {
		t.Fatalf("expected newly added area marked for rewrite")
	}
}

func TestNormalFruDeleteAreaClearsHeaderSlot(t *testing.T) {
	blob := buildMinimalBlob(t)
	fru, err := Decode(blob, FetchAll)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := fru.DeleteArea(AreaChassisInfo); err != nil {
		t.Fatalf("delete area: %v", err)
	}
	if fru.Chassis != nil {
		t.Fatalf("expected chassis area cleared")
	}
	if fru.Header.Offset(AreaChassisInfo) != 0 {
		t.Fatalf("expected header slot cleared")
	}
}

func TestNormalFruSetAreaLengthRejectsZeroLength(t *testing.T) {
	blob := buildMinimalBlob(t)
	fru, err := Decode(blob, FetchAll)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	err = fru.SetAreaLength(AreaChassisInfo, 0, len(blob))
	if err == nil {
		t.Fatalf("expected error for zero length")
	}
}

func TestNormalFruEncodeWithDeltaTracksFieldChange(t *testing.T) {
	blob := buildMinimalBlob(t)
	fru, err := Decode(blob, FetchAll)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	fru.Chassis.SetType(0x02)

	var delta writer.DeltaList
	fru.Encode(&delta)
	if len(delta.Entries) == 0 {
		t.Fatalf("expected at least one delta entry for changed chassis area")
	}
}

func TestNormalFruWriteCompleteClearsDirtyFlags(t *testing.T) {
	blob := buildMinimalBlob(t)
	fru, err := Decode(blob, FetchAll)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	fru.Chassis.SetType(0x02)
	fru.WriteComplete()

	if fru.Chassis.Changed || fru.Chassis.Rewrite {
		t.Fatalf("expected chassis dirty flags cleared")
	}
	if fru.HeaderChanged {
		t.Fatalf("expected header changed flag cleared")
	}
}
