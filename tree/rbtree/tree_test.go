package rbtree

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

func TestNew(t *testing.T) {
	tr, err := New(nil, NoopFree[int])
	require.ErrorIs(t, err, ErrNilCompareFunc)
	require.Nil(t, tr)

	tr, err = New(CompareOrdered[int], nil)
	require.ErrorIs(t, err, ErrNilFreeFunc)
	require.Nil(t, tr)

	tr, err = New(CompareOrdered[int], NoopFree[int])
	require.NoError(t, err)
	require.NotNil(t, tr)
	require.Zero(t, tr.Len())
	require.False(t, tr.Contains(1))
	require.True(t, tr.ForEach(func(int) bool { return true }))
	requireValidTree(t, tr)
}

func TestInsert_AscendingRotatesLeft(t *testing.T) {
	tr := newIntTree(t, 10, 20, 30)

	requireNode(t, tr.root, 20, black)
	requireNode(t, tr.root.children[left], 10, red)
	requireNode(t, tr.root.children[right], 30, red)
	require.Equal(t, 3, tr.Len())
}

func TestInsert_DescendingRotatesRight(t *testing.T) {
	tr := newIntTree(t, 30, 20, 10)

	requireNode(t, tr.root, 20, black)
	requireNode(t, tr.root.children[left], 10, red)
	requireNode(t, tr.root.children[right], 30, red)
}

func TestInsert_ZigZag(t *testing.T) {
	t.Run("left-right", func(t *testing.T) {
		tr := newIntTree(t, 30, 10, 20)
		requireNode(t, tr.root, 20, black)
		requireNode(t, tr.root.children[left], 10, red)
		requireNode(t, tr.root.children[right], 30, red)
	})
	t.Run("right-left", func(t *testing.T) {
		tr := newIntTree(t, 10, 30, 20)
		requireNode(t, tr.root, 20, black)
		requireNode(t, tr.root.children[left], 10, red)
		requireNode(t, tr.root.children[right], 30, red)
	})
}

func TestInsert_RedUncleRecolors(t *testing.T) {
	tr := newIntTree(t, 20, 10, 30, 5)

	requireNode(t, tr.root, 20, black)
	requireNode(t, tr.root.children[left], 10, black)
	requireNode(t, tr.root.children[right], 30, black)
	requireNode(t, tr.root.children[left].children[left], 5, red)
}

func TestInsert_Duplicate(t *testing.T) {
	tr := newIntTree(t, 1, 2, 3, 4, 5)
	before := tr.String()

	require.ErrorIs(t, tr.Insert(3), ErrDuplicate)
	require.Equal(t, 5, tr.Len())
	require.Equal(t, []int{1, 2, 3, 4, 5}, items(tr))
	require.Equal(t, before, tr.String())
	requireValidTree(t, tr)
}

func TestInsert_ComparatorArgumentOrder(t *testing.T) {
	type entry struct {
		key   int
		value string
	}
	var calls int
	tr, err := New(func(inTree, key entry) int {
		calls++
		// the key argument is never the stored item
		require.NotEqual(t, "stored", key.value)
		return CompareOrdered(inTree.key, key.key)
	}, NoopFree[entry])
	require.NoError(t, err)

	require.NoError(t, tr.Insert(entry{key: 1, value: "stored"}))
	require.NoError(t, tr.Insert(entry{key: 2, value: "new"}))
	require.Positive(t, calls)

	got, ok := tr.Find(entry{key: 1})
	require.True(t, ok)
	require.Equal(t, entry{key: 1, value: "stored"}, got)
}

func TestFind(t *testing.T) {
	tr := newIntTree(t, 8, 3, 10, 1, 6, 14, 4, 7, 13)
	for _, k := range []int{8, 3, 10, 1, 6, 14, 4, 7, 13} {
		v, ok := tr.Find(k)
		require.True(t, ok)
		require.Equal(t, k, v)
		require.True(t, tr.Contains(k))
	}
	for _, k := range []int{0, 2, 5, 9, 11, 12, 15} {
		v, ok := tr.Find(k)
		require.False(t, ok)
		require.Zero(t, v)
		require.False(t, tr.Contains(k))
	}
}

func TestDelete_TwoChildNode(t *testing.T) {
	tr := newIntTree(t, 1, 2, 3, 4, 5, 6, 7)
	successor := tr.find(5)

	require.NoError(t, tr.Delete(4))
	requireValidTree(t, tr)
	require.Equal(t, []int{1, 2, 3, 5, 6, 7}, items(tr))
	require.Equal(t, 6, tr.Len())
	// the successor node was relinked, not copied
	require.Same(t, successor, tr.find(5))

	requireNode(t, tr.root, 2, black)
	requireNode(t, tr.root.children[left], 1, black)
	requireNode(t, tr.root.children[right], 5, red)
	requireNode(t, tr.root.children[right].children[left], 3, black)
	requireNode(t, tr.root.children[right].children[right], 6, black)
	requireNode(t, tr.root.children[right].children[right].children[right], 7, red)
}

func TestDelete_Root(t *testing.T) {
	tr := newIntTree(t, 1)
	require.NoError(t, tr.Delete(1))
	require.Nil(t, tr.root)
	require.Zero(t, tr.Len())

	tr = newIntTree(t, 1, 2)
	require.NoError(t, tr.Delete(1))
	requireValidTree(t, tr)
	requireNode(t, tr.root, 2, black)

	tr = newIntTree(t, 2, 1, 3)
	require.NoError(t, tr.Delete(2))
	requireValidTree(t, tr)
	requireNode(t, tr.root, 3, black)
	requireNode(t, tr.root.children[left], 1, red)
}

func TestDelete_BlackLeaf(t *testing.T) {
	// deleting 20 goes through the red sibling, near nephew and far nephew cases
	tr := newIntTree(t, 10, 5, 20, 1, 7, 8)
	requireNode(t, tr.root, 10, black)
	requireNode(t, tr.root.children[left], 5, red)
	requireNode(t, tr.root.children[right], 20, black)
	requireNode(t, tr.root.children[left].children[right], 7, black)
	requireNode(t, tr.root.children[left].children[right].children[right], 8, red)

	require.NoError(t, tr.Delete(20))
	requireValidTree(t, tr)
	// 5 rotated up by the red sibling case, 8 by the near nephew rotation
	// and then over 10 by the far nephew rotation
	requireNode(t, tr.root, 5, black)
	requireNode(t, tr.root.children[left], 1, black)
	eight := tr.root.children[right]
	requireNode(t, eight, 8, red)
	requireNode(t, eight.children[left], 7, black)
	requireNode(t, eight.children[right], 10, black)

	for _, k := range []int{1, 10, 8, 5, 7} {
		require.NoError(t, tr.Delete(k))
		requireValidTree(t, tr)
	}
	require.Zero(t, tr.Len())
}

func TestDelete_Absent(t *testing.T) {
	tr := newIntTree(t, 1, 2, 3, 4, 5)
	before := tr.String()

	require.ErrorIs(t, tr.Delete(42), ErrNotFound)
	require.Equal(t, 5, tr.Len())
	require.Equal(t, before, tr.String())

	empty := newIntTree(t)
	require.ErrorIs(t, empty.Delete(1), ErrNotFound)
}

func TestDelete_All(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	keys := rnd.Perm(500)
	tr := newIntTree(t, keys...)

	rnd.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for i, k := range keys {
		require.NoError(t, tr.Delete(k))
		require.Equal(t, len(keys)-i-1, tr.Len())
		requireValidTree(t, tr)
	}
	require.Nil(t, tr.root)
	require.True(t, tr.ForEach(func(int) bool {
		t.Fatal("visitor called on empty tree")
		return false
	}))
}

func TestInsertDelete_RoundTrip(t *testing.T) {
	tr := newIntTree(t, 50, 20, 80, 10, 30, 70, 90)
	before := items(tr)

	for _, k := range []int{5, 25, 60, 95, 15} {
		require.NoError(t, tr.Insert(k))
		require.NoError(t, tr.Delete(k))
		requireValidTree(t, tr)
		require.Equal(t, len(before), tr.Len())
		require.Equal(t, before, items(tr))
	}
}

func TestRandomOperations(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	tr := newIntTree(t)
	model := map[int]struct{}{}
	inserted, deleted := 0, 0

	for i := 0; i < 5000; i++ {
		k := rnd.Intn(300)
		_, exists := model[k]
		if rnd.Intn(3) > 0 {
			err := tr.Insert(k)
			if exists {
				require.ErrorIs(t, err, ErrDuplicate)
			} else {
				require.NoError(t, err)
				model[k] = struct{}{}
				inserted++
			}
		} else {
			err := tr.Delete(k)
			if exists {
				require.NoError(t, err)
				delete(model, k)
				deleted++
			} else {
				require.ErrorIs(t, err, ErrNotFound)
			}
		}
		if i%50 == 0 {
			requireValidTree(t, tr)
		}
	}
	requireValidTree(t, tr)
	require.Equal(t, inserted-deleted, tr.Len())

	expected := make([]int, 0, len(model))
	for k := range model {
		expected = append(expected, k)
	}
	slices.Sort(expected)
	require.Equal(t, expected, items(tr))
}

func TestForEach(t *testing.T) {
	tr := newIntTree(t, 5, 3, 8, 1, 4, 9, 7)

	t.Run("visits all in order", func(t *testing.T) {
		var sum int
		var got []int
		ok := tr.ForEach(func(item int) bool {
			got = append(got, item)
			sum += item
			return true
		})
		require.True(t, ok)
		require.Equal(t, []int{1, 3, 4, 5, 7, 8, 9}, got)
		require.Equal(t, 37, sum)
	})

	t.Run("stops when visitor fails", func(t *testing.T) {
		var got []int
		ok := tr.ForEach(func(item int) bool {
			got = append(got, item)
			return item < 4
		})
		require.False(t, ok)
		require.Equal(t, []int{1, 3, 4}, got)
	})

	t.Run("nil visitor", func(t *testing.T) {
		require.False(t, tr.ForEach(nil))
	})
}

func TestDestroy(t *testing.T) {
	var freed []int
	tr, err := New(CompareOrdered[int], func(item int) { freed = append(freed, item) })
	require.NoError(t, err)
	for _, k := range []int{2, 1, 3} {
		require.NoError(t, tr.Insert(k))
	}

	tr.Destroy()
	// children are released before their parent
	require.Equal(t, []int{1, 3, 2}, freed)
	require.Zero(t, tr.Len())
	require.Nil(t, tr.root)

	// destroying an empty tree is a no-op and the tree stays usable
	tr.Destroy()
	require.Len(t, freed, 3)
	require.NoError(t, tr.Insert(10))
	require.Equal(t, []int{10}, items(tr))
}

func TestFreeCalledOncePerItem(t *testing.T) {
	freed := map[int]int{}
	tr, err := New(CompareOrdered[int], func(item int) { freed[item]++ })
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.NoError(t, tr.Insert(i))
	}
	require.ErrorIs(t, tr.Insert(10), ErrDuplicate)
	require.Empty(t, freed, "failed insert must not free anything")

	for i := 0; i < 100; i += 2 {
		require.NoError(t, tr.Delete(i))
	}
	require.ErrorIs(t, tr.Delete(0), ErrNotFound)
	require.Len(t, freed, 50)

	tr.Destroy()
	require.Len(t, freed, 100)
	for i := 0; i < 100; i++ {
		require.Equal(t, 1, freed[i], "item %d", i)
	}
}

func TestStrings(t *testing.T) {
	tr, err := New(strings.Compare, NoopFree[string])
	require.NoError(t, err)
	for _, w := range []string{"pear", "apple", "fig", "banana", "cherry"} {
		require.NoError(t, tr.Insert(w))
	}
	requireValidTree(t, tr)
	require.Equal(t, []string{"apple", "banana", "cherry", "fig", "pear"}, items(tr))
	require.ErrorIs(t, tr.Insert("fig"), ErrDuplicate)
	require.NoError(t, tr.Delete("apple"))
	require.Equal(t, []string{"banana", "cherry", "fig", "pear"}, items(tr))
}

func TestCompareOrdered(t *testing.T) {
	require.Equal(t, -1, CompareOrdered(1, 2))
	require.Equal(t, 1, CompareOrdered(2, 1))
	require.Equal(t, 0, CompareOrdered(2, 2))
	require.Equal(t, -1, CompareOrdered("a", "b"))
	require.Equal(t, 1, CompareOrdered(2.5, 1.5))
}
