package rbtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFreeList_ReusesNodes(t *testing.T) {
	fl := NewFreeList[int](2)
	tr, err := New(CompareOrdered[int], NoopFree[int], WithFreeList(fl))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.NoError(t, tr.Insert(i))
	}
	require.Equal(t, 4, fl.Live())

	n := tr.find(3)
	require.NoError(t, tr.Delete(3))
	require.Equal(t, 3, fl.Live())
	require.Len(t, fl.freelist, 1)
	require.Zero(t, *n, "released node must not keep references")

	require.NoError(t, tr.Insert(10))
	require.Same(t, n, tr.find(10))
	require.Empty(t, fl.freelist)
	requireValidTree(t, tr)

	tr.Destroy()
	require.Zero(t, fl.Live())
	require.Len(t, fl.freelist, 2, "list keeps at most size nodes")
}

func TestFreeList_Shared(t *testing.T) {
	fl := NewFreeList[string](8)
	a, err := New(CompareOrdered[string], NoopFree[string], WithFreeList(fl))
	require.NoError(t, err)
	b, err := New(CompareOrdered[string], NoopFree[string], WithFreeList(fl))
	require.NoError(t, err)

	require.NoError(t, a.Insert("x"))
	require.NoError(t, a.Insert("y"))
	require.NoError(t, b.Insert("x"))
	require.Equal(t, 3, fl.Live())

	a.Destroy()
	require.Equal(t, 1, fl.Live())
	require.NoError(t, b.Insert("z"))
	require.Equal(t, []string{"x", "z"}, items(b))
}

func TestFreeList_NilOptionIgnored(t *testing.T) {
	tr, err := New(CompareOrdered[int], NoopFree[int], WithFreeList[int](nil))
	require.NoError(t, err)
	require.NotNil(t, tr.freelist)
	require.NoError(t, tr.Insert(1))
}

func TestInsert_AllocationFailureLeavesTreeUntouched(t *testing.T) {
	var freed []int
	fl := NewBoundedFreeList[int](4, 3)
	tr, err := New(CompareOrdered[int], func(i int) { freed = append(freed, i) }, WithFreeList(fl))
	require.NoError(t, err)

	require.NoError(t, tr.Insert(1))
	require.NoError(t, tr.Insert(2))
	require.NoError(t, tr.Insert(3))
	before := tr.String()

	require.ErrorIs(t, tr.Insert(4), ErrAllocation)
	require.Equal(t, 3, tr.Len())
	require.Equal(t, before, tr.String())
	require.Equal(t, []int{1, 2, 3}, items(tr))
	require.Empty(t, freed)
	requireValidTree(t, tr)

	// duplicate is reported before allocation is attempted
	require.ErrorIs(t, tr.Insert(2), ErrDuplicate)

	// releasing a node makes room again
	require.NoError(t, tr.Delete(1))
	require.NoError(t, tr.Insert(4))
	require.Equal(t, []int{2, 3, 4}, items(tr))
	requireValidTree(t, tr)
}

func TestBoundedFreeList_NonPositiveLimit(t *testing.T) {
	fl := NewBoundedFreeList[int](0, 0)
	for i := 0; i < 10; i++ {
		n, err := fl.newNode()
		require.NoError(t, err)
		require.NotNil(t, n)
	}
	require.Equal(t, 10, fl.Live())
}
