package fru

import "github.com/liumorgan/openipmi/internal/core"

// StringKind identifies which of the four type/length string encodings
// a string field's Bytes should be read as or re-encoded with.
type StringKind = core.StringKind

const (
	KindBinary  = core.KindBinary
	KindBCDPlus = core.KindBCDPlus
	KindPacked6 = core.KindPacked6
	KindASCII   = core.KindASCII
	KindUnicode = core.KindUnicode
)

// FieldKind is the scalar type a typed field table entry reports.
type FieldKind int

const (
	FieldInt FieldKind = iota
	FieldTime
	FieldAsciiString
	FieldBinary
	// FieldFloat only appears on OEM multi-record sub-nodes (§18
	// payloads report scaled voltages/currents as floats); the core
	// typed field table never produces it.
	FieldFloat
	// FieldSubNode marks a FruNode field: custom-field arrays and the
	// multi-record list expose their elements this way rather than as a
	// scalar value.
	FieldSubNode
)

// String renders the field kind for diagnostics.
func (k FieldKind) String() string {
	switch k {
	case FieldInt:
		return "Int"
	case FieldTime:
		return "Time"
	case FieldAsciiString:
		return "AsciiString"
	case FieldBinary:
		return "Binary"
	case FieldFloat:
		return "Float"
	case FieldSubNode:
		return "SubNode"
	default:
		return "Unknown"
	}
}

// FieldValue is one field's value as read from or written to the typed
// field table. Which member applies depends on the entry's FieldKind:
// Int and Time use Int (FRU minutes, for Time); AsciiString and Binary
// use Bytes. On Set, StringKind selects the underlying type/length
// encoding a string field is re-encoded with.
type FieldValue struct {
	Kind       FieldKind
	Int        int64
	Float      float64
	Bytes      []byte
	StringKind StringKind
}

// fieldEntry is one row of the typed field table: a canonical name plus
// the get/set closures that reach into the right area of a FRU. This
// replaces the source library's preprocessor-expanded per-field
// accessor functions with a single data-driven table.
type fieldEntry struct {
	name  string
	kind  FieldKind
	array bool
	get   func(f *FRU, num int) (FieldValue, int, error)
	set   func(f *FRU, num int, v FieldValue) error
}

var fieldTable = buildFieldTable()

// FieldCount returns the number of entries in the typed field table.
func FieldCount() int {
	return len(fieldTable)
}

// FieldName returns the canonical name of the field at index, or "" if
// index is out of range, mirroring ipmi_fru_index_to_str.
func FieldName(index int) string {
	if index < 0 || index >= len(fieldTable) {
		return ""
	}
	return fieldTable[index].name
}

// FieldIndexByName returns the index of the field with the given
// canonical name, or -1 if none matches, mirroring
// ipmi_fru_str_to_index.
func FieldIndexByName(name string) int {
	for i, e := range fieldTable {
		if e.name == name {
			return i
		}
	}
	return -1
}

// Get reads the field at index. For array fields (the custom field
// vectors), num selects which element and the returned nextNum is the
// index to pass on the next call, or -1 once exhausted. Non-array
// fields ignore num and always report nextNum -1.
func (f *FRU) Get(index, num int) (name string, kind FieldKind, value FieldValue, nextNum int, err error) {
	if index < 0 || index >= len(fieldTable) {
		return "", 0, FieldValue{}, -1, core.NewError(core.InvalidArg, "field index out of range")
	}
	e := fieldTable[index]
	value, nextNum, err = e.get(f, num)
	return e.name, e.kind, value, nextNum, err
}

// Set writes the field at index. num selects the custom-field element
// for array fields and is ignored otherwise.
func (f *FRU) Set(index, num int, value FieldValue) error {
	if index < 0 || index >= len(fieldTable) {
		return core.NewError(core.InvalidArg, "field index out of range")
	}
	return fieldTable[index].set(f, num, value)
}

func stringFieldKind(k core.StringKind) FieldKind {
	if k == core.KindASCII {
		return FieldAsciiString
	}
	return FieldBinary
}

func readOnlyIntField(name string, get func(f *FRU) (byte, bool)) fieldEntry {
	return fieldEntry{
		name: name, kind: FieldInt,
		get: func(f *FRU, _ int) (FieldValue, int, error) {
			v, present := get(f)
			if !present {
				return FieldValue{}, -1, core.NewError(core.NotPresent, name+" area not present")
			}
			return FieldValue{Kind: FieldInt, Int: int64(v)}, -1, nil
		},
		set: func(f *FRU, _ int, _ FieldValue) error {
			return core.NewError(core.ReadOnly, name+" is read-only")
		},
	}
}

func intField(name string, get func(f *FRU) (byte, bool), set func(f *FRU, v byte)) fieldEntry {
	return fieldEntry{
		name: name, kind: FieldInt,
		get: func(f *FRU, _ int) (FieldValue, int, error) {
			v, present := get(f)
			if !present {
				return FieldValue{}, -1, core.NewError(core.NotPresent, name+" area not present")
			}
			return FieldValue{Kind: FieldInt, Int: int64(v)}, -1, nil
		},
		set: func(f *FRU, _ int, v FieldValue) error {
			if _, present := get(f); !present {
				return core.NewError(core.NotPresent, name+" area not present")
			}
			set(f, byte(v.Int))
			return nil
		},
	}
}

func timeField(name string, get func(f *FRU) (uint32, bool), set func(f *FRU, v uint32)) fieldEntry {
	return fieldEntry{
		name: name, kind: FieldTime,
		get: func(f *FRU, _ int) (FieldValue, int, error) {
			v, present := get(f)
			if !present {
				return FieldValue{}, -1, core.NewError(core.NotPresent, name+" area not present")
			}
			return FieldValue{Kind: FieldTime, Int: int64(v)}, -1, nil
		},
		set: func(f *FRU, _ int, v FieldValue) error {
			if _, present := get(f); !present {
				return core.NewError(core.NotPresent, name+" area not present")
			}
			set(f, uint32(v.Int))
			return nil
		},
	}
}

func fixedStringField(name string, getStr func(f *FRU) *core.FruString,
	setStr func(f *FRU, kind core.StringKind, value []byte) (int, error)) fieldEntry {
	return fieldEntry{
		name: name, kind: FieldAsciiString,
		get: func(f *FRU, _ int) (FieldValue, int, error) {
			s := getStr(f)
			if s == nil {
				return FieldValue{}, -1, core.NewError(core.NotPresent, name+" area not present")
			}
			return FieldValue{
				Kind:       stringFieldKind(s.Kind),
				Bytes:      append([]byte(nil), s.Value...),
				StringKind: s.Kind,
			}, -1, nil
		},
		set: func(f *FRU, _ int, v FieldValue) error {
			if getStr(f) == nil {
				return core.NewError(core.NotPresent, name+" area not present")
			}
			_, err := setStr(f, v.StringKind, v.Bytes)
			return err
		},
	}
}

func binaryField(name string, get func(f *FRU) ([]byte, bool), set func(f *FRU, data []byte) error) fieldEntry {
	return fieldEntry{
		name: name, kind: FieldBinary,
		get: func(f *FRU, _ int) (FieldValue, int, error) {
			data, present := get(f)
			if !present {
				return FieldValue{}, -1, core.NewError(core.NotPresent, name+" area not present")
			}
			return FieldValue{Kind: FieldBinary, Bytes: append([]byte(nil), data...)}, -1, nil
		},
		set: func(f *FRU, _ int, v FieldValue) error {
			if _, present := get(f); !present {
				return core.NewError(core.NotPresent, name+" area not present")
			}
			return set(f, v.Bytes)
		},
	}
}

func customStringField(name string, getVec func(f *FRU) *core.FieldVector) fieldEntry {
	return fieldEntry{
		name: name, kind: FieldAsciiString, array: true,
		get: func(f *FRU, num int) (FieldValue, int, error) {
			vec := getVec(f)
			if vec == nil {
				return FieldValue{}, -1, core.NewError(core.NotPresent, name+" area not present")
			}
			s := vec.Get(num)
			if s == nil {
				return FieldValue{}, -1, core.NewError(core.NotPresent, "custom field index out of range")
			}
			next := -1
			if num+1 < vec.Count() {
				next = num + 1
			}
			return FieldValue{
				Kind:       stringFieldKind(s.Kind),
				Bytes:      append([]byte(nil), s.Value...),
				StringKind: s.Kind,
			}, next, nil
		},
		set: func(f *FRU, num int, v FieldValue) error {
			vec := getVec(f)
			if vec == nil {
				return core.NewError(core.NotPresent, name+" area not present")
			}
			if num == vec.Count() {
				_, _, err := vec.Append(v.StringKind, v.Bytes)
				return err
			}
			if len(v.Bytes) == 0 {
				_, err := vec.Delete(num)
				return err
			}
			_, err := vec.Set(num, v.StringKind, v.Bytes)
			return err
		},
	}
}

func buildFieldTable() []fieldEntry {
	return []fieldEntry{
		readOnlyIntField("internal_use_version", func(f *FRU) (byte, bool) {
			if f.core.InternalUse == nil {
				return 0, false
			}
			return f.core.InternalUse.Version, true
		}),
		binaryField("internal_use",
			func(f *FRU) ([]byte, bool) {
				if f.core.InternalUse == nil {
					return nil, false
				}
				return f.core.InternalUse.Data, true
			},
			func(f *FRU, data []byte) error { return f.core.InternalUse.SetData(data) }),

		readOnlyIntField("chassis_info_version", func(f *FRU) (byte, bool) {
			if f.core.Chassis == nil {
				return 0, false
			}
			return f.core.Chassis.Version, true
		}),
		intField("chassis_info_type",
			func(f *FRU) (byte, bool) {
				if f.core.Chassis == nil {
					return 0, false
				}
				return f.core.Chassis.Type, true
			},
			func(f *FRU, v byte) { f.core.Chassis.SetType(v) }),
		fixedStringField("chassis_info_part_number",
			func(f *FRU) *core.FruString {
				if f.core.Chassis == nil {
					return nil
				}
				return f.core.Chassis.PartNumber
			},
			func(f *FRU, kind core.StringKind, value []byte) (int, error) {
				return f.core.Chassis.SetPartNumber(kind, value)
			}),
		fixedStringField("chassis_info_serial_number",
			func(f *FRU) *core.FruString {
				if f.core.Chassis == nil {
					return nil
				}
				return f.core.Chassis.SerialNumber
			},
			func(f *FRU, kind core.StringKind, value []byte) (int, error) {
				return f.core.Chassis.SetSerialNumber(kind, value)
			}),
		customStringField("chassis_info_custom", func(f *FRU) *core.FieldVector {
			if f.core.Chassis == nil {
				return nil
			}
			return &f.core.Chassis.Custom
		}),

		readOnlyIntField("board_info_version", func(f *FRU) (byte, bool) {
			if f.core.Board == nil {
				return 0, false
			}
			return f.core.Board.Version, true
		}),
		intField("board_info_lang_code",
			func(f *FRU) (byte, bool) {
				if f.core.Board == nil {
					return 0, false
				}
				return f.core.Board.LangCode, true
			},
			func(f *FRU, v byte) { f.core.Board.SetLangCode(v) }),
		timeField("board_info_mfg_time",
			func(f *FRU) (uint32, bool) {
				if f.core.Board == nil {
					return 0, false
				}
				return f.core.Board.MfgTime, true
			},
			func(f *FRU, v uint32) { f.core.Board.SetMfgTime(v) }),
		fixedStringField("board_info_board_manufacturer",
			func(f *FRU) *core.FruString {
				if f.core.Board == nil {
					return nil
				}
				return f.core.Board.Manufacturer
			},
			func(f *FRU, kind core.StringKind, value []byte) (int, error) {
				return f.core.Board.SetManufacturer(kind, value)
			}),
		fixedStringField("board_info_board_product_name",
			func(f *FRU) *core.FruString {
				if f.core.Board == nil {
					return nil
				}
				return f.core.Board.ProductName
			},
			func(f *FRU, kind core.StringKind, value []byte) (int, error) {
				return f.core.Board.SetProductName(kind, value)
			}),
		fixedStringField("board_info_board_serial_number",
			func(f *FRU) *core.FruString {
				if f.core.Board == nil {
					return nil
				}
				return f.core.Board.SerialNumber
			},
			func(f *FRU, kind core.StringKind, value []byte) (int, error) {
				return f.core.Board.SetSerialNumber(kind, value)
			}),
		fixedStringField("board_info_board_part_number",
			func(f *FRU) *core.FruString {
				if f.core.Board == nil {
					return nil
				}
				return f.core.Board.PartNumber
			},
			func(f *FRU, kind core.StringKind, value []byte) (int, error) {
				return f.core.Board.SetPartNumber(kind, value)
			}),
		fixedStringField("board_info_fru_file_id",
			func(f *FRU) *core.FruString {
				if f.core.Board == nil {
					return nil
				}
				return f.core.Board.FruFileID
			},
			func(f *FRU, kind core.StringKind, value []byte) (int, error) {
				return f.core.Board.SetFruFileID(kind, value)
			}),
		customStringField("board_info_custom", func(f *FRU) *core.FieldVector {
			if f.core.Board == nil {
				return nil
			}
			return &f.core.Board.Custom
		}),

		readOnlyIntField("product_info_version", func(f *FRU) (byte, bool) {
			if f.core.Product == nil {
				return 0, false
			}
			return f.core.Product.Version, true
		}),
		intField("product_info_lang_code",
			func(f *FRU) (byte, bool) {
				if f.core.Product == nil {
					return 0, false
				}
				return f.core.Product.LangCode, true
			},
			func(f *FRU, v byte) { f.core.Product.SetLangCode(v) }),
		fixedStringField("product_info_manufacturer_name",
			func(f *FRU) *core.FruString {
				if f.core.Product == nil {
					return nil
				}
				return f.core.Product.ManufacturerName
			},
			func(f *FRU, kind core.StringKind, value []byte) (int, error) {
				return f.core.Product.SetManufacturerName(kind, value)
			}),
		fixedStringField("product_info_product_name",
			func(f *FRU) *core.FruString {
				if f.core.Product == nil {
					return nil
				}
				return f.core.Product.ProductName
			},
			func(f *FRU, kind core.StringKind, value []byte) (int, error) {
				return f.core.Product.SetProductName(kind, value)
			}),
		fixedStringField("product_info_product_part_model_number",
			func(f *FRU) *core.FruString {
				if f.core.Product == nil {
					return nil
				}
				return f.core.Product.PartModelNumber
			},
			func(f *FRU, kind core.StringKind, value []byte) (int, error) {
				return f.core.Product.SetPartModelNumber(kind, value)
			}),
		fixedStringField("product_info_product_version",
			func(f *FRU) *core.FruString {
				if f.core.Product == nil {
					return nil
				}
				return f.core.Product.ProductVersion
			},
			func(f *FRU, kind core.StringKind, value []byte) (int, error) {
				return f.core.Product.SetProductVersion(kind, value)
			}),
		fixedStringField("product_info_product_serial_number",
			func(f *FRU) *core.FruString {
				if f.core.Product == nil {
					return nil
				}
				return f.core.Product.SerialNumber
			},
			func(f *FRU, kind core.StringKind, value []byte) (int, error) {
				return f.core.Product.SetSerialNumber(kind, value)
			}),
		fixedStringField("product_info_asset_tag",
			func(f *FRU) *core.FruString {
				if f.core.Product == nil {
					return nil
				}
				return f.core.Product.AssetTag
			},
			func(f *FRU, kind core.StringKind, value []byte) (int, error) {
				return f.core.Product.SetAssetTag(kind, value)
			}),
		fixedStringField("product_info_fru_file_id",
			func(f *FRU) *core.FruString {
				if f.core.Product == nil {
					return nil
				}
				return f.core.Product.FruFileID
			},
			func(f *FRU, kind core.StringKind, value []byte) (int, error) {
				return f.core.Product.SetFruFileID(kind, value)
			}),
		customStringField("product_info_custom", func(f *FRU) *core.FieldVector {
			if f.core.Product == nil {
				return nil
			}
			return &f.core.Product.Custom
		}),
	}
}
