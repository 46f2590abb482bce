// Package oem holds the pluggable multi-record decoder registry: a
// process-wide mapping from (manufacturer ID, record type ID) to a
// decoder that turns a multi-record element's payload into a FruNode
// tree. It is intentionally independent of the root fru package so
// that decoders can be registered by callers that never import fru
// directly (e.g. a vendor plugin package).
package oem

import (
	"errors"
	"sync"
)

// ErrNoDecoder is returned by Lookup when no registered decoder claims
// a given (manufacturer ID, record type ID) pair.
var ErrNoDecoder = errors.New("oem: no decoder registered for record")

// DataKind is the scalar type a FruNode field reports.
type DataKind int

const (
	DataInt DataKind = iota
	DataFloat
	DataBoolean
	DataBinary
	DataSubNode
)

// FieldValue holds one field's decoded representation. Which member is
// meaningful depends on the field's DataKind.
type FieldValue struct {
	Int   int64
	Float float64
	Bool  bool
	Bytes []byte
}

// FruNode is the uniform tree interface a decoder produces: callers walk
// it by index without needing to know the concrete record type.
type FruNode interface {
	Name() string
	NumFields() int
	GetField(index int) (name string, kind DataKind, value FieldValue, sub FruNode, err error)
}

// Decoder turns one multi-record element's raw payload into a FruNode
// root, or reports it cannot handle the record.
type Decoder func(manufacturerID uint32, typeID byte, data []byte) (FruNode, error)

type handler struct {
	manufacturerID uint32
	typeID         byte
	decode         Decoder
}

var (
	mu       sync.RWMutex
	handlers []*handler
)

// Register adds a decoder for (manufacturerID, typeID). Multiple
// decoders may be registered for the same key; Lookup stops at the
// first match in registration order, mirroring the source's
// locked-list iterate-and-stop-at-first-match semantics.
func Register(manufacturerID uint32, typeID byte, decode Decoder) {
	mu.Lock()
	defer mu.Unlock()
	handlers = append(handlers, &handler{manufacturerID, typeID, decode})
}

// Deregister removes the first registered decoder matching
// (manufacturerID, typeID). It reports whether one was found and
// removed.
func Deregister(manufacturerID uint32, typeID byte) bool {
	mu.Lock()
	defer mu.Unlock()
	for i, h := range handlers {
		if h.manufacturerID == manufacturerID && h.typeID == typeID {
			handlers = append(handlers[:i], handlers[i+1:]...)
			return true
		}
	}
	return false
}

// Lookup finds the first registered decoder matching typeID (and, for
// typeID >= 0xC0, matching manufacturerID too) and invokes it on data.
// Record types below 0xC0 are standards-defined, so manufacturerID is
// ignored when matching them.
func Lookup(manufacturerID uint32, typeID byte, data []byte) (FruNode, error) {
	mu.RLock()
	defer mu.RUnlock()
	for _, h := range handlers {
		if h.typeID != typeID {
			continue
		}
		if typeID >= 0xC0 && h.manufacturerID != manufacturerID {
			continue
		}
		return h.decode(manufacturerID, typeID, data)
	}
	return nil, ErrNoDecoder
}

func init() {
	Register(0, 0x00, decodePowerSupplyInfo)
	Register(0, 0x01, decodeDCOutput)
	Register(0, 0x02, decodeDCLoad)
}
