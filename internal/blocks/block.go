package blocks

import (
	"reflect"

	"github.com/google/uuid"
)

// ReusableRef is the block type whose attributes carry a reference to a
// reusable block definition rather than content of its own.
const ReusableRef = "core/block"

// Attributes is the free-form attribute bag of a block. Values are plain
// data (strings, numbers, bools, nested maps/slices) so they survive JSON
// round trips unchanged.
type Attributes map[string]any

// Block is the atomic editable unit of a document: a type name plus
// attributes, identified by a UID that never changes for the lifetime of
// the block instance within its document.
type Block struct {
	UID         string
	Name        string
	Attributes  Attributes
	InnerBlocks []Block
}

// NewUID mints a fresh block UID.
func NewUID() string { return uuid.NewString() }

// New builds a block of the given type with a fresh UID.
func New(name string, attrs Attributes) Block {
	return Block{UID: NewUID(), Name: name, Attributes: attrs}
}

// ValueEqual reports structural equality of two attribute values.
func ValueEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	return reflect.DeepEqual(a, b)
}

// AttributesEqual reports structural equality of two attribute bags.
// A nil bag and an empty bag are considered equal.
func AttributesEqual(a, b Attributes) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !ValueEqual(av, bv) {
			return false
		}
	}
	return true
}
