package core

// FRUEpochOffset is the Unix timestamp (seconds) that the FRU time
// conversions treat as FRU minute 0: 1996-01-01 06:00:00 UTC, six hours
// after midnight UTC on that day.
const FRUEpochOffset = 820476000

// UnixToFRUTime converts a Unix timestamp (seconds) into FRU minutes
// (minutes since FRUEpochOffset), rounding to the nearest minute.
func UnixToFRUTime(unixSeconds int64) uint32 {
	return uint32((unixSeconds - FRUEpochOffset + 30) / 60)
}

// FRUTimeToUnix converts FRU minutes back into a Unix timestamp (seconds).
func FRUTimeToUnix(fruMinutes uint32) int64 {
	return int64(fruMinutes)*60 + FRUEpochOffset
}

// DecodeFRUTime reads a little-endian 24-bit FRU time field.
func DecodeFRUTime(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

// EncodeFRUTime writes a little-endian 24-bit FRU time field into b.
func EncodeFRUTime(b []byte, fruMinutes uint32) {
	b[0] = byte(fruMinutes)
	b[1] = byte(fruMinutes >> 8)
	b[2] = byte(fruMinutes >> 16)
}
