package lru_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"solidcore/internal/lru"
)

func TestSetGetRoundTrip(t *testing.T) {
	c := lru.New[int, string](3)
	c.Set(1, "a")

	var out string
	require.True(t, c.Get(1, &out))
	require.Equal(t, "a", out)
}

func TestFindDoesNotTouch(t *testing.T) {
	c := lru.New[int, string](2)
	c.Set(1, "a")
	c.Set(2, "b")

	require.NotNil(t, c.Find(1))

	// 1 was not touched by Find, so adding a third key evicts it, not 2.
	c.Set(3, "c")
	require.Nil(t, c.Find(1))
	require.NotNil(t, c.Find(2))
	require.NotNil(t, c.Find(3))
}

func TestAddDoesNotReplaceExisting(t *testing.T) {
	c := lru.New[int, string](2)
	c.Set(1, "a")

	require.False(t, c.Add(1, "b"))

	var out string
	c.Get(1, &out)
	require.Equal(t, "a", out)
}

func TestEvictionSequence(t *testing.T) {
	// Capacity 3: set(1,a), set(2,b), set(3,c), touch(1), set(4,d) evicts 2.
	c := lru.New[int, string](3)
	c.Set(1, "a")
	c.Set(2, "b")
	c.Set(3, "c")
	c.Touch(1)
	c.Set(4, "d")

	require.Equal(t, 3, c.Size())

	var out string
	require.True(t, c.Get(1, &out))
	require.True(t, c.Get(3, &out))
	require.True(t, c.Get(4, &out))
	require.False(t, c.Get(2, &out))
}

func TestSetReturnsStablePointer(t *testing.T) {
	c := lru.New[int, int](2)
	p1 := c.Set(1, 10)
	p2 := c.Set(1, 20)

	require.Same(t, p1, p2)
	require.Equal(t, 20, *p1)
}

func TestEraseAndClear(t *testing.T) {
	c := lru.New[int, int](2)
	c.Set(1, 1)
	c.Set(2, 2)

	require.True(t, c.Erase(1))
	require.False(t, c.Erase(1))
	require.Equal(t, 1, c.Size())

	c.Clear()
	require.Equal(t, 0, c.Size())
	require.Nil(t, c.Find(2))
}

func TestCapacityZeroEvictsImmediately(t *testing.T) {
	c := lru.New[int, int](0)
	c.Set(1, 1)
	require.Equal(t, 0, c.Size())
}
