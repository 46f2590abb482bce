package core

import "testing"

func TestFRUTimeRoundTrip(t *testing.T) {
	unixSeconds := int64(1000000000) // 2001-09-09
	fruMinutes := UnixToFRUTime(unixSeconds)

	buf := make([]byte, 3)
	EncodeFRUTime(buf, fruMinutes)
	decoded := DecodeFRUTime(buf)
	if decoded != fruMinutes {
		t.Fatalf("decoded %d != encoded %d", decoded, fruMinutes)
	}

	back := FRUTimeToUnix(decoded)
	if diff := back - unixSeconds; diff < -30 || diff > 30 {
		t.Fatalf("round trip drifted by %d seconds", diff)
	}
}

func TestFRUEpoch(t *testing.T) {
	// FRUEpochOffset (1996-01-01 06:00:00 UTC) is FRU minute 0.
	if got := UnixToFRUTime(FRUEpochOffset); got != 0 {
		t.Fatalf("epoch minute = %d, want 0", got)
	}
}
