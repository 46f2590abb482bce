package fru_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	fru "github.com/liumorgan/openipmi"
)

func TestMultiRecordSetAppendAndRead(t *testing.T) {
	f := fru.New(128)
	require.NoError(t, f.AddArea(fru.AreaMultiRecord, 8, 64))

	require.NoError(t, f.SetMultiRecord(0, 0x00, 0x02, []byte{0x11, 0x22, 0x33}))
	require.Equal(t, 1, f.NumMultiRecords())

	elemType, err := f.GetMultiRecordType(0)
	require.NoError(t, err)
	require.Equal(t, byte(0x00), elemType)

	data, err := f.GetMultiRecordData(0)
	require.NoError(t, err)
	require.Equal(t, []byte{0x11, 0x22, 0x33}, data)
}

func TestMultiRecordSetRejectsGap(t *testing.T) {
	f := fru.New(128)
	require.NoError(t, f.AddArea(fru.AreaMultiRecord, 8, 64))

	require.Error(t, f.SetMultiRecord(1, 0x00, 0x02, []byte{0x01}))
}

func TestMultiRecordSetNilDataDeletes(t *testing.T) {
	f := fru.New(128)
	require.NoError(t, f.AddArea(fru.AreaMultiRecord, 8, 64))
	require.NoError(t, f.SetMultiRecord(0, 0x00, 0x02, []byte{0x01}))

	require.NoError(t, f.SetMultiRecord(0, 0, 0, nil))
	require.Equal(t, 0, f.NumMultiRecords())
}

func TestMultiRecordDataLenMatchesPayload(t *testing.T) {
	f := fru.New(128)
	require.NoError(t, f.AddArea(fru.AreaMultiRecord, 8, 64))
	require.NoError(t, f.SetMultiRecord(0, 0x00, 0x02, []byte{1, 2, 3, 4, 5}))

	n, err := f.GetMultiRecordDataLen(0)
	require.NoError(t, err)
	require.Equal(t, 5, n)
}

func TestMultiRecordAbsentAreaReportsNotPresent(t *testing.T) {
	f := fru.New(64)
	require.Error(t, f.SetMultiRecord(0, 0x00, 0x02, []byte{1}))

	_, err := f.GetMultiRecordType(0)
	require.Error(t, err)
}

func TestMultiRecordEncodeRoundTrip(t *testing.T) {
	f := fru.New(128)
	require.NoError(t, f.AddArea(fru.AreaMultiRecord, 8, 64))
	require.NoError(t, f.SetMultiRecord(0, 0x00, 0x02, []byte{1, 2, 3}))

	blob := f.Encode(nil)
	got, err := fru.Decode(blob, fru.FetchAll)
	require.NoError(t, err)
	require.Equal(t, 1, got.NumMultiRecords())

	data, err := got.GetMultiRecordData(0)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)
}
