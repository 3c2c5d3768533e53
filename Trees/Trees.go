package Trees

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// SparseMap is an ordered associative container from unsigned keys of type S
// to values of type V. It is the contract that sparse rows are written
// against: keys are column indexes, values are coefficients.
// Methods that look up a key return a pointer to the stored value so that
// callers can update coefficients in place. Such pointers, like iterators,
// are invalidated by any later mutation of the container.
// Unless an implementation says otherwise, none of the methods are safe for
// concurrent use.
type SparseMap[V any, S constraints.Unsigned] interface {
	//Store v at key, overwriting the previous value if key is present.
	Store(key S, v V)
	//Erase key. Returns true if key was present.
	Erase(key S) bool
	//Get a pointer to the value at key.
	Get(key S) (*V, bool)
	//Has key.
	Has(key S) bool
	//Size is the number of stored keys.
	Size() S
	//Empty is Size()==0.
	Empty() bool
	//EraseElementAndShiftLeft erases key and then decrements every key greater than key.
	EraseElementAndShiftLeft(key S)
	//IncreaseKeysAfter adds n to every key >= key.
	IncreaseKeysAfter(key, n S)
	//All yields the stored pairs in increasing key order. The map mustn't be
	//modified during the iteration.
	All() iter.Seq2[S, *V]
	//OK reports whether the internal invariants of the implementation hold.
	//It never panics, so it can be used in assertions of test harnesses.
	OK() bool
}
