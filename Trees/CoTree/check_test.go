package CoTree

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func TestDensities_Validate(t *testing.T) {
	require.NoError(t, DefaultDensities.Validate())
	require.NoError(t, Densities{MaxPercent: 60, MinPercent: 20, MinLeafPercent: 5}.Validate())

	err := Densities{MaxPercent: 100, MinPercent: 50, MinLeafPercent: 0}.Validate()
	require.ErrorIs(t, err, ErrDensities)
	var me *multierror.Error
	require.True(t, errors.As(err, &me))
	require.Len(t, me.Errors, 3)

	require.ErrorIs(t, Densities{MaxPercent: 90, MinPercent: 10, MinLeafPercent: 11}.Validate(), ErrDensities)
	require.ErrorIs(t, Densities{MaxPercent: 80, MinPercent: 40, MinLeafPercent: 1}.Validate(), ErrDensities)

	_, err = NewWith[int, uint32](Densities{MaxPercent: 80, MinPercent: 40, MinLeafPercent: 1})
	require.ErrorIs(t, err, ErrDensities)
	u, err := NewWith[int, uint32](Densities{MaxPercent: 80, MinPercent: 30, MinLeafPercent: 1})
	require.NoError(t, err)
	require.Equal(t, uint8(80), u.Densities().MaxPercent)
}

func TestDensities_Band(t *testing.T) {
	d := DefaultDensities
	lo, hi := d.band(0, 6)
	require.Equal(t, d.MinPercent, lo)
	require.Equal(t, d.MaxPercent, hi)
	lo, hi = d.band(6, 6)
	require.Equal(t, d.MinLeafPercent, lo)
	require.Equal(t, uint8(100), hi)
	prevLo, prevHi := d.band(0, 6)
	for dm1 := uint64(1); dm1 <= 6; dm1++ {
		lo, hi = d.band(dm1, 6)
		require.LessOrEqual(t, lo, prevLo)
		require.GreaterOrEqual(t, hi, prevHi)
		prevLo, prevHi = lo, hi
	}
}

func TestTree_ZeroValue(t *testing.T) {
	var u Tree[string, uint64]
	require.True(t, u.OK())
	require.Equal(t, DefaultDensities, u.Densities())
	u.Insert(3, "c")
	u.Insert(1, "a")
	require.True(t, u.OK())
	p, ok := u.Get(1)
	require.True(t, ok)
	require.Equal(t, "a", *p)
}

func TestTree_Check(t *testing.T) {
	build := func() *Tree[int, uint32] {
		u := New[int, uint32]()
		for k := range uint32(50) {
			u.Insert(k*2+1, int(k))
		}
		require.NoError(t, u.Check())
		return u
	}

	u := build()
	u.indexes[0] = 4
	require.ErrorIs(t, u.Check(), ErrSentinel)
	require.False(t, u.OK())
	require.False(t, u.StructureOK())

	u = build()
	u.size++
	require.ErrorIs(t, u.Check(), ErrSize)

	u = build()
	it := u.Begin()
	it.Next()
	u.indexes[it.i] = 0
	require.ErrorIs(t, u.Check(), ErrOrder)

	u = build()
	r := u.rootNode()
	u.indexes[r.i] = Unused[uint32]()
	u.size--
	require.ErrorIs(t, u.Check(), ErrDetached)

	u = build()
	u.reserved = 10
	require.ErrorIs(t, u.Check(), ErrShape)

	u = build()
	u.dens = Densities{MaxPercent: 30, MinPercent: 10, MinLeafPercent: 1}
	require.True(t, u.StructureOK())
	require.ErrorIs(t, u.Check(), ErrDensity)
	require.False(t, u.OK())
}
