package fru

import (
	"github.com/liumorgan/openipmi/internal/core"
	"github.com/liumorgan/openipmi/oem"
)

// FruNode is the uniform tree interface external walkers use to browse
// a decoded FRU without caring whether a field is a scalar, a custom
// field array, or an OEM-decoded multi-record.
type FruNode interface {
	// Name labels this node, e.g. for display as a tree path segment.
	Name() string
	// NumFields reports how many fields or children this node exposes.
	NumFields() int
	// GetField returns the name, kind, and either a scalar value or a
	// child sub-node for the field at index.
	GetField(index int) (name string, kind FieldKind, value FieldValue, sub FruNode, err error)
}

// RootNode returns the top-level FruNode for f: every entry in the
// typed field table, plus one trailing "multirecords" sub-node.
func (f *FRU) RootNode() FruNode {
	return &rootNode{fru: f}
}

// RegisterOEM adds a multi-record decoder for (manufacturerID, typeID),
// consulted by MultiRecordGetRootNode and the "multirecords" branch of
// RootNode.
func RegisterOEM(manufacturerID uint32, typeID byte, decode oem.Decoder) {
	oem.Register(manufacturerID, typeID, decode)
}

// DeregisterOEM removes a previously registered decoder, reporting
// whether one was found.
func DeregisterOEM(manufacturerID uint32, typeID byte) bool {
	return oem.Deregister(manufacturerID, typeID)
}

// MultiRecordGetRootNode decodes the nth multi-record element via the
// OEM registry, failing with NotPresent if no decoder claims it. The
// record's manufacturer ID, when relevant (type IDs >= 0xC0), is read
// from the first three payload bytes, little-endian, per the OEM
// multi-record convention.
func (f *FRU) MultiRecordGetRootNode(index int) (FruNode, error) {
	e, err := f.multiRecordElem(index)
	if err != nil {
		return nil, err
	}
	mfr := recordManufacturerID(e.Data)
	node, err := oem.Lookup(mfr, e.Type, e.Data)
	if err != nil {
		return nil, core.WrapError(core.NotPresent, "no OEM decoder for multi-record element", err)
	}
	return &oemNodeAdapter{node}, nil
}

func recordManufacturerID(data []byte) uint32 {
	if len(data) < 3 {
		return 0
	}
	return uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16
}

// rootNode exposes every typed field table entry, plus a trailing
// "multirecords" branch, mirroring fru_node_get_field's flat index
// space (0..NUM_FRUL_ENTRIES-1 for fields, NUM_FRUL_ENTRIES for the
// multi-record list).
type rootNode struct {
	fru *FRU
}

func (n *rootNode) Name() string   { return "" }
func (n *rootNode) NumFields() int { return len(fieldTable) + 1 }

func (n *rootNode) GetField(index int) (string, FieldKind, FieldValue, FruNode, error) {
	if index == len(fieldTable) {
		return "multirecords", FieldSubNode, FieldValue{}, &multiRecordsNode{fru: n.fru}, nil
	}
	if index < 0 || index > len(fieldTable) {
		return "", 0, FieldValue{}, nil, core.NewError(core.InvalidArg, "field index out of range")
	}
	e := fieldTable[index]
	if e.array {
		return e.name, FieldSubNode, FieldValue{}, &arrayFieldNode{fru: n.fru, fieldIndex: index}, nil
	}
	name, kind, value, _, err := n.fru.Get(index, 0)
	return name, kind, value, nil, err
}

// arrayFieldNode exposes one custom-field vector's elements as
// children. GetField indexes an element directly; NumFields counts the
// elements by following Get's nextNum chain.
type arrayFieldNode struct {
	fru        *FRU
	fieldIndex int
}

func (n *arrayFieldNode) Name() string { return fieldTable[n.fieldIndex].name }

func (n *arrayFieldNode) NumFields() int {
	count := 0
	for num := 0; num != -1; {
		_, _, _, next, err := n.fru.Get(n.fieldIndex, num)
		if err != nil {
			break
		}
		count++
		num = next
	}
	return count
}

func (n *arrayFieldNode) GetField(index int) (string, FieldKind, FieldValue, FruNode, error) {
	name, kind, value, _, err := n.fru.Get(n.fieldIndex, index)
	return name, kind, value, nil, err
}

// multiRecordsNode lists every multi-record element as a sub-node,
// mirroring fru_mr_array_get_field.
type multiRecordsNode struct {
	fru *FRU
}

func (n *multiRecordsNode) Name() string   { return "multirecords" }
func (n *multiRecordsNode) NumFields() int { return n.fru.NumMultiRecords() }

func (n *multiRecordsNode) GetField(index int) (string, FieldKind, FieldValue, FruNode, error) {
	if index < 0 || index >= n.fru.NumMultiRecords() {
		return "", 0, FieldValue{}, nil, core.NewError(core.NotPresent, "multi-record index out of range")
	}
	elem := &multiRecordElemNode{fru: n.fru, index: index}
	return elem.Name(), FieldSubNode, FieldValue{}, elem, nil
}

// multiRecordElemNode exposes one multi-record element as two fields:
// its raw payload, and (when an OEM decoder claims it) the decoded
// sub-node, mirroring fru_mr_array_idx_get_field.
type multiRecordElemNode struct {
	fru   *FRU
	index int
}

func (n *multiRecordElemNode) Name() string {
	if node, err := n.fru.MultiRecordGetRootNode(n.index); err == nil {
		return node.Name()
	}
	return "multirecord"
}

func (n *multiRecordElemNode) NumFields() int { return 2 }

func (n *multiRecordElemNode) GetField(index int) (string, FieldKind, FieldValue, FruNode, error) {
	switch index {
	case 0:
		data, err := n.fru.GetMultiRecordData(n.index)
		if err != nil {
			return "", 0, FieldValue{}, nil, err
		}
		return "raw-data", FieldBinary, FieldValue{Kind: FieldBinary, Bytes: data}, nil, nil
	case 1:
		node, err := n.fru.MultiRecordGetRootNode(n.index)
		if err != nil {
			return "", 0, FieldValue{}, nil, err
		}
		return node.Name(), FieldSubNode, FieldValue{}, node, nil
	default:
		return "", 0, FieldValue{}, nil, core.NewError(core.InvalidArg, "multi-record element field index out of range")
	}
}

// oemNodeAdapter wraps an oem.FruNode (which knows nothing about this
// package's FieldKind/FieldValue) as a FruNode.
type oemNodeAdapter struct {
	inner oem.FruNode
}

func (a *oemNodeAdapter) Name() string   { return a.inner.Name() }
func (a *oemNodeAdapter) NumFields() int { return a.inner.NumFields() }

func (a *oemNodeAdapter) GetField(index int) (string, FieldKind, FieldValue, FruNode, error) {
	name, kind, value, sub, err := a.inner.GetField(index)
	if err != nil {
		return name, 0, FieldValue{}, nil, err
	}
	fv := FieldValue{}
	var fk FieldKind
	switch kind {
	case oem.DataInt:
		fk, fv.Int = FieldInt, value.Int
	case oem.DataFloat:
		fk, fv.Float = FieldFloat, value.Float
	case oem.DataBoolean:
		fk = FieldInt
		if value.Bool {
			fv.Int = 1
		}
	case oem.DataBinary:
		fk, fv.Bytes = FieldBinary, value.Bytes
	case oem.DataSubNode:
		fk = FieldSubNode
	}
	fv.Kind = fk
	var subNode FruNode
	if sub != nil {
		subNode = &oemNodeAdapter{sub}
	}
	return name, fk, fv, subNode, nil
}
