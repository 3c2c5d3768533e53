package CoTree

import (
	"testing"
)

var (
	bAddN uint32 = 1000000
	bQryN uint32 = bAddN / 2
)

var __r bool

func create(b *testing.B) (*Tree[int, uint32], []uint32) {
	b.Helper()
	keys := make([]uint32, bAddN)
	for i := range keys {
		keys[i] = uint32(rg.Int31())
	}
	u := New[int, uint32]()
	for _, k := range keys {
		u.Insert(k, int(k))
	}
	return u, keys
}

func BenchmarkInsert(b *testing.B) {
	for range b.N {
		u := New[int, uint32]()
		for range bAddN {
			u.Insert(uint32(rg.Int31()), 0)
		}
	}
}

func BenchmarkInsertIncreasing(b *testing.B) {
	for range b.N {
		u := New[int, uint32]()
		for k := range bAddN {
			u.Insert(k, 0)
		}
	}
}

func BenchmarkInsertHintIncreasing(b *testing.B) {
	for range b.N {
		u := New[int, uint32]()
		it := u.End()
		for k := range bAddN {
			it = u.InsertHint(it, k, 0)
		}
	}
}

func BenchmarkFromDense(b *testing.B) {
	vs := make([]int, bAddN)
	for i := range vs {
		if rg.Intn(4) == 0 {
			vs[i] = i
		}
	}
	b.ResetTimer()
	for range b.N {
		FromDense[int, uint32](vs)
	}
}

func BenchmarkErase(b *testing.B) {
	for range b.N {
		b.StopTimer()
		u, keys := create(b)
		b.StartTimer()
		for _, k := range keys {
			u.Erase(k)
		}
	}
}

func BenchmarkHas(b *testing.B) {
	u, keys := create(b)
	b.ResetTimer()
	for range b.N {
		for _, k := range keys[:bQryN] {
			__r = u.Has(k)
		}
	}
}

func BenchmarkIterate(b *testing.B) {
	u, _ := create(b)
	b.ResetTimer()
	for range b.N {
		var s int
		for _, v := range u.All() {
			s += *v
		}
		__r = s == 0
	}
}
