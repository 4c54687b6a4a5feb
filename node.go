package chaintable

import (
	"github.com/dolthub/maphash"
)

// Handle identifies a Node inside the arena of the Table that stored it.
// Handles are 1-based so the zero value means "no node".
type Handle uint32

// Nil is the Handle of no node. It terminates every chain.
const Nil Handle = 0

// IsNil reports whether h refers to no node.
//
//go:nosplit
func (h Handle) IsNil() bool { return h == Nil }

// slot converts h to its arena index. h must not be Nil.
//
//go:nosplit
func (h Handle) slot() int { return int(h) - 1 }

// HashFunc derives the hash code of a value. It must be deterministic for
// the lifetime of the table it is used with: equal values produce equal
// hash codes. The result is only used for bucket placement.
type HashFunc func(value string) int32

// StringHash is the default HashFunc: the classic 31-multiplier polynomial
// over the bytes of the value, with 32-bit wrap-around.
// The result may be negative.
func StringHash(value string) int32 {
	var h int32
	for i := 0; i < len(value); i++ {
		h = 31*h + int32(value[i])
	}
	return h
}

// SeededHash returns a HashFunc backed by the runtime's map hasher with a
// random seed. Every call returns a function with a new seed, so hash codes
// are stable for one returned function only.
func SeededHash() HashFunc {
	hasher := maphash.NewHasher[string]()
	return func(value string) int32 {
		h := hasher.Hash(value)
		return int32(h ^ h>>32)
	}
}

// Node is a chain element: a value, its hash code and the link to the next
// node of the same bucket. The hash code is fixed at construction.
type Node struct {
	value string
	hash  int32
	next  Handle
}

// NewNode creates a Node for value using StringHash.
func NewNode(value string) *Node {
	return NewNodeWithHash(value, nil)
}

// NewNodeWithHash creates a Node for value using hash. A nil hash falls
// back to StringHash.
func NewNodeWithHash(value string, hash HashFunc) *Node {
	if hash == nil {
		hash = StringHash
	}
	return &Node{value: value, hash: hash(value)}
}

// Value returns the payload of the node.
func (n *Node) Value() string { return n.value }

// HashCode returns the hash code computed at construction.
func (n *Node) HashCode() int32 { return n.hash }

// Next returns the link to the next node in the chain, or Nil.
func (n *Node) Next() Handle { return n.next }

// SetNext re-points the chain link. Nil is a valid argument.
func (n *Node) SetNext(next Handle) { n.next = next }

// String implements fmt.Stringer.
func (n *Node) String() string { return n.value }
