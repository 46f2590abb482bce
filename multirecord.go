package fru

import "github.com/liumorgan/openipmi/internal/core"

// NumMultiRecords returns the number of multi-record elements present,
// or 0 if the multi-record area is absent.
func (f *FRU) NumMultiRecords() int {
	if f.core.MultiRecord == nil {
		return 0
	}
	return f.core.MultiRecord.Count()
}

// GetMultiRecordType returns the type_id byte of the nth multi-record
// element.
func (f *FRU) GetMultiRecordType(index int) (byte, error) {
	e, err := f.multiRecordElem(index)
	if err != nil {
		return 0, err
	}
	return e.Type, nil
}

// GetMultiRecordFormatVersion returns the format_version of the nth
// multi-record element (the low 4 bits of its second header byte).
func (f *FRU) GetMultiRecordFormatVersion(index int) (byte, error) {
	e, err := f.multiRecordElem(index)
	if err != nil {
		return 0, err
	}
	return e.FormatVersion, nil
}

// GetMultiRecordDataLen returns the payload length of the nth
// multi-record element.
func (f *FRU) GetMultiRecordDataLen(index int) (int, error) {
	e, err := f.multiRecordElem(index)
	if err != nil {
		return 0, err
	}
	return len(e.Data), nil
}

// GetMultiRecordData returns a copy of the nth multi-record element's
// payload.
func (f *FRU) GetMultiRecordData(index int) ([]byte, error) {
	e, err := f.multiRecordElem(index)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), e.Data...), nil
}

// SetMultiRecord replaces (or, at index == NumMultiRecords(), appends)
// one multi-record element. A nil data slice deletes the element at
// index instead, per the null-data-means-delete convention.
func (f *FRU) SetMultiRecord(index int, elemType, formatVersion byte, data []byte) error {
	if f.core.MultiRecord == nil {
		if data == nil {
			return core.NewError(core.NotPresent, "multi-record area not present")
		}
		return core.NewError(core.NotPresent, "multi-record area not present; AddArea first")
	}
	if data == nil {
		return f.core.MultiRecord.Delete(index)
	}
	return f.core.MultiRecord.Set(index, elemType, formatVersion, data)
}

func (f *FRU) multiRecordElem(index int) (*core.MultiRecordElem, error) {
	if f.core.MultiRecord == nil {
		return nil, core.NewError(core.NotPresent, "multi-record area not present")
	}
	e := f.core.MultiRecord.Get(index)
	if e == nil {
		return nil, core.NewError(core.NotPresent, "multi-record index out of range")
	}
	return e, nil
}
