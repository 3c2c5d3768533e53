// Package CoTree implements a compact ordered tree: a sorted map from unsigned
// keys to values stored as an implicit binary tree in two flat arrays.
//
// Slot i of the arrays is a node whose place in the tree is given by the
// binary representation of i: the lowest set bit of i is the node's offset,
// the root has offset reserved/2+1 and the leaves have offset 1. Reading the
// occupied slots by increasing i visits the keys in increasing order, so
// iteration is a linear scan and lookups are binary searches on the tree
// shape. Balance is kept by density thresholds (see Densities) instead of
// rotations.
package CoTree

import (
	"unsafe"

	"github.com/tardani95/ppl-sub000/Trees"
	"golang.org/x/exp/constraints"
)

var _ Trees.SparseMap[int, uint32] = (*Tree[int, uint32])(nil)

// Unused is the key marking an empty slot. It is the largest value of S, and
// must never be stored as a real key.
func Unused[S constraints.Unsigned]() S {
	return ^S(0)
}

// Tree maps keys of type S to values of type V, in increasing key order.
// The zero value is an empty tree with DefaultDensities.
// The largest tree that can be allocated has 2^(bits(S)-1)-1 slots.
// A Tree isn't safe for concurrent use. Every mutation may move elements
// inside the arrays, so it invalidates all the iterators and all the value
// pointers previously obtained.
type Tree[V any, S constraints.Unsigned] struct {
	indexes  []S // len(indexes)=reserved+2; indexes[0] and indexes[reserved+1] are always 0.
	data     []V // len(data)=reserved+1; data[i] belongs to indexes[i], data[0] is never used.
	reserved S   // 0 or 2^maxDepth-1
	size     S
	maxDepth uint8
	dens     Densities
}

// New empty tree using DefaultDensities. No memory is allocated until the first insertion.
func New[V any, S constraints.Unsigned]() *Tree[V, S] {
	return &Tree[V, S]{dens: DefaultDensities}
}

// NewWith creates an empty tree that rebalances according to d.
func NewWith[V any, S constraints.Unsigned](d Densities) (*Tree[V, S], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Tree[V, S]{dens: d}, nil
}

// FromSlice builds a tree holding (i, vs[i]) for every i such that isZero(vs[i]) is false.
// The tree gets the smallest capacity that respects the max density.
// Time: O(len(vs)).
func FromSlice[V any, S constraints.Unsigned](vs []V, isZero func(V) bool) *Tree[V, S] {
	u := New[V, S]()
	var n S
	for _, v := range vs {
		if !isZero(v) {
			n++
		}
	}
	if n == 0 {
		return u
	}
	u.allocate(u.depthFor(n))
	i := 0
	spread(u.indexes, u.data, u.reserved/2+1, u.reserved/2+1, n, func() (S, V) {
		for isZero(vs[i]) {
			i++
		}
		i++
		return S(i - 1), vs[i-1]
	})
	u.size = n
	return u
}

// FromDense is FromSlice where the zero value of V counts as zero.
func FromDense[V comparable, S constraints.Unsigned](vs []V) *Tree[V, S] {
	var zero V
	return FromSlice[V, S](vs, func(v V) bool { return v == zero })
}

func (u *Tree[V, S]) densities() Densities {
	if u.dens == (Densities{}) {
		return DefaultDensities
	}
	return u.dens
}

// Densities the tree rebalances with.
func (u *Tree[V, S]) Densities() Densities {
	return u.densities()
}

// depthFor returns the smallest depth, at least 2, whose capacity holds n elements within the max density.
func (u *Tree[V, S]) depthFor(n S) uint8 {
	d, p := uint8(2), u.densities().MaxPercent
	for greaterThanRatio(uint64(n), uint64(1)<<d-1, p) {
		d++
	}
	return d
}

// allocate fresh arrays for a tree of the given depth, with every slot unused. The old arrays are dropped.
func (u *Tree[V, S]) allocate(depth uint8) {
	u.maxDepth = depth
	u.reserved = S(1)<<depth - 1
	u.indexes = make([]S, int(u.reserved)+2)
	for i := 1; i <= int(u.reserved); i++ {
		u.indexes[i] = Unused[S]()
	}
	u.data = make([]V, int(u.reserved)+1)
}

// Clear the tree, releasing its arrays. The densities are kept.
func (u *Tree[V, S]) Clear() {
	*u = Tree[V, S]{dens: u.dens}
}

// Swap the contents of two trees in O(1).
func (u *Tree[V, S]) Swap(o *Tree[V, S]) {
	*u, *o = *o, *u
}

// Clone returns a deep copy of the tree. Values are copied by assignment.
// Time: O(reserved).
func (u *Tree[V, S]) Clone() *Tree[V, S] {
	c := &Tree[V, S]{reserved: u.reserved, size: u.size, maxDepth: u.maxDepth, dens: u.dens}
	if u.reserved != 0 {
		c.indexes = make([]S, len(u.indexes))
		copy(c.indexes, u.indexes)
		c.data = make([]V, len(u.data))
		for i := 1; i <= int(u.reserved); i++ {
			if u.indexes[i] != Unused[S]() {
				c.data[i] = u.data[i]
			}
		}
	}
	return c
}

// MoveFrom replaces the contents of u with the elements of src, laid out in
// the smallest valid capacity. src is left empty.
// Time: O(src.reserved).
func (u *Tree[V, S]) MoveFrom(src *Tree[V, S]) {
	if u == src {
		return
	}
	u.Clear()
	if src.size != 0 {
		u.allocate(u.depthFor(src.size))
		u.moveDataFrom(src)
	}
	src.Clear()
}

// moveDataFrom spreads all of src's elements over the freshly allocated arrays of u, emptying the slots of src.
func (u *Tree[V, S]) moveDataFrom(src *Tree[V, S]) {
	var zero V
	j := S(0)
	spread(u.indexes, u.data, u.reserved/2+1, u.reserved/2+1, src.size, func() (S, V) {
		for j++; src.indexes[j] == Unused[S](); j++ {
		}
		k, v := src.indexes[j], src.data[j]
		src.indexes[j], src.data[j] = Unused[S](), zero
		return k, v
	})
	u.size = src.size
	src.size = 0
}

// Size is the number of stored elements.
func (u *Tree[V, S]) Size() S {
	return u.size
}

// Empty is Size()==0.
func (u *Tree[V, S]) Empty() bool {
	return u.size == 0
}

// Reserved is the number of slots, 0 or 2^MaxDepth()-1.
func (u *Tree[V, S]) Reserved() S {
	return u.reserved
}

// MaxDepth is the number of levels of the implicit tree.
func (u *Tree[V, S]) MaxDepth() uint8 {
	return u.maxDepth
}

type memorySizer interface {
	ExternalMemoryInBytes() uint64
}

// ExternalMemoryInBytes is the memory held by the tree besides the Tree struct itself.
// Values implementing ExternalMemoryInBytes() uint64 contribute their own amount.
func (u *Tree[V, S]) ExternalMemoryInBytes() uint64 {
	n := uint64(cap(u.indexes))*uint64(unsafe.Sizeof(S(0))) + uint64(cap(u.data))*uint64(unsafe.Sizeof(*new(V)))
	for i := 1; i <= int(u.reserved); i++ {
		if u.indexes[i] != Unused[S]() {
			if m, ok := any(u.data[i]).(memorySizer); ok {
				n += m.ExternalMemoryInBytes()
			}
		}
	}
	return n
}

// Store v at key. It's Insert without the returned iterator.
func (u *Tree[V, S]) Store(key S, v V) {
	u.Insert(key, v)
}

// Get a pointer to the value at key.
// Time: O(log n).
func (u *Tree[V, S]) Get(key S) (*V, bool) {
	if u.size == 0 {
		return nil, false
	}
	n := u.rootNode()
	n.goDownSearchingKey(key)
	if n.key() != key {
		return nil, false
	}
	return n.value(), true
}

// Has key.
func (u *Tree[V, S]) Has(key S) bool {
	_, ok := u.Get(key)
	return ok
}

// Find returns an iterator to key, or End() if key isn't stored.
func (u *Tree[V, S]) Find(key S) Iterator[V, S] {
	if u.size == 0 {
		return u.End()
	}
	n := u.rootNode()
	n.goDownSearchingKey(key)
	if n.key() != key {
		return u.End()
	}
	return Iterator[V, S]{u, n.i}
}

// LowerBound returns an iterator to the smallest key >= key, or End().
func (u *Tree[V, S]) LowerBound(key S) Iterator[V, S] {
	if u.size == 0 {
		return u.End()
	}
	n := u.rootNode()
	n.goDownSearchingKey(key)
	it := Iterator[V, S]{u, n.i}
	if it.Key() < key {
		it.Next()
	}
	return it
}

// IncreaseKeysAfter adds n to every key >= key. The largest resulting key must be less than Unused.
// Time: O(reserved).
func (u *Tree[V, S]) IncreaseKeysAfter(key, n S) {
	for i := u.reserved; i > 0; i-- {
		if k := u.indexes[i]; k != Unused[S]() {
			if k < key {
				return
			}
			u.indexes[i] = k + n
		}
	}
}

// EraseElementAndShiftLeft erases key, if present, and decrements every key greater than key.
// Time: O(reserved).
func (u *Tree[V, S]) EraseElementAndShiftLeft(key S) {
	u.Erase(key)
	for i := u.reserved; i > 0; i-- {
		if k := u.indexes[i]; k != Unused[S]() {
			if k <= key {
				return
			}
			u.indexes[i] = k - 1
		}
	}
}

// FastShift changes the key of the element at it to key without moving it.
// key must keep the order: greater than the previous key and less than the next one.
// Time: O(1).
func (u *Tree[V, S]) FastShift(key S, it Iterator[V, S]) {
	u.indexes[it.i] = key
}
