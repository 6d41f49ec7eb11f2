package dualmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkInvariant verifies that the two backing tables are exact inverses.
func checkInvariant[K1 comparable, K2 comparable, V any](t *testing.T, m *DualKeyMap[K1, K2, V]) {
	t.Helper()

	require.Equal(t, len(m.primary), len(m.secondary), "table sizes diverged")
	for k1, e := range m.primary {
		owner, ok := m.secondary[e.alt]
		require.True(t, ok, "secondary entry missing for %v", e.alt)
		require.Equal(t, k1, owner, "secondary entry for %v points at wrong primary key", e.alt)
	}
}

func TestInsertAndGet(t *testing.T) {
	m := New[int, string, string]()

	m.Insert(1, "One", "Ein")
	m.Insert(2, "Two", "Zwei")

	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Ein", v)

	// Both lookup paths must resolve to the same value.
	v, ok = m.GetAlt("One")
	require.True(t, ok)
	assert.Equal(t, "Ein", v)

	v, ok = m.GetAlt("Two")
	require.True(t, ok)
	assert.Equal(t, "Zwei", v)

	assert.Equal(t, 2, m.Len())
	checkInvariant(t, m)
}

func TestGetMut(t *testing.T) {
	m := New[int, string, string]()
	m.Insert(1, "One", "Ein")

	p, ok := m.GetMut(1)
	require.True(t, ok)
	*p += "s"

	v, _ := m.Get(1)
	assert.Equal(t, "Eins", v)
	v, _ = m.GetAlt("One")
	assert.Equal(t, "Eins", v)

	_, ok = m.GetMut(99)
	assert.False(t, ok)
}

func TestGetMutAlt(t *testing.T) {
	m := New[int, string, string]()
	m.Insert(1, "One", "Ein")

	p, ok := m.GetMutAlt("One")
	require.True(t, ok)
	*p += "s"

	v, _ := m.GetAlt("One")
	assert.Equal(t, "Eins", v)

	_, ok = m.GetMutAlt("Ninety-nine")
	assert.False(t, ok)
}

func TestInsertReplacesByEitherKey(t *testing.T) {
	t.Run("same primary key, new secondary key", func(t *testing.T) {
		m := New[int, string, string]()
		m.Insert(1, "One", "Ein")

		// Rebinding k1 to a different k2 must evict the stale reverse
		// index entry, not orphan it.
		m.Insert(1, "Uno", "Ein")

		v, ok := m.GetAlt("Uno")
		require.True(t, ok)
		assert.Equal(t, "Ein", v)

		assert.False(t, m.ContainsAlt("One"))
		assert.Equal(t, 1, m.Len())
		checkInvariant(t, m)
	})

	t.Run("new primary key, same secondary key", func(t *testing.T) {
		m := New[int, string, string]()
		m.Insert(1, "One", "Ein")

		// Claiming an occupied k2 evicts the element that owned it.
		m.Insert(10, "One", "Uno")

		v, ok := m.GetAlt("One")
		require.True(t, ok)
		assert.Equal(t, "Uno", v)

		assert.False(t, m.Contains(1))
		assert.Equal(t, 1, m.Len())
		checkInvariant(t, m)
	})

	t.Run("identical key pair", func(t *testing.T) {
		m := New[int, string, string]()
		m.Insert(1, "One", "Ein")
		m.Insert(1, "One", "Uno")

		v, ok := m.Get(1)
		require.True(t, ok)
		assert.Equal(t, "Uno", v)
		assert.Equal(t, 1, m.Len())
		checkInvariant(t, m)
	})
}

func TestRemove(t *testing.T) {
	m := New[int, string, string]()
	m.Insert(1, "One", "Ein")
	m.Insert(2, "Two", "Zwei")

	v, ok := m.Remove(1)
	require.True(t, ok)
	assert.Equal(t, "Ein", v)

	// Both lookup paths must miss after removal by either key.
	_, ok = m.Get(1)
	assert.False(t, ok)
	_, ok = m.GetAlt("One")
	assert.False(t, ok)

	assert.Equal(t, 1, m.Len())
	checkInvariant(t, m)
}

func TestRemoveAlt(t *testing.T) {
	m := New[int, string, string]()
	m.Insert(1, "One", "Ein")
	m.Insert(2, "Two", "Zwei")

	v, ok := m.RemoveAlt("Two")
	require.True(t, ok)
	assert.Equal(t, "Zwei", v)

	_, ok = m.Get(2)
	assert.False(t, ok)
	_, ok = m.GetAlt("Two")
	assert.False(t, ok)

	assert.Equal(t, 1, m.Len())
	checkInvariant(t, m)
}

func TestAbsentKeys(t *testing.T) {
	m := New[int, string, string]()
	m.Insert(1, "One", "Ein")

	_, ok := m.Get(42)
	assert.False(t, ok)
	_, ok = m.GetAlt("Forty-two")
	assert.False(t, ok)

	_, ok = m.Remove(42)
	assert.False(t, ok)
	_, ok = m.RemoveAlt("Forty-two")
	assert.False(t, ok)

	assert.False(t, m.Contains(42))
	assert.False(t, m.ContainsAlt("Forty-two"))

	// Misses leave the structure unchanged.
	assert.Equal(t, 1, m.Len())
	checkInvariant(t, m)
}

func TestClear(t *testing.T) {
	m := New[int, string, string]()
	m.Insert(1, "One", "Ein")
	m.Insert(2, "Two", "Zwei")

	m.Clear()

	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Contains(1))
	assert.False(t, m.ContainsAlt("Two"))

	// The cleared map stays usable.
	m.Insert(3, "Three", "Drei")
	v, ok := m.GetAlt("Three")
	require.True(t, ok)
	assert.Equal(t, "Drei", v)
}

func TestNewWithCapacity(t *testing.T) {
	m := NewWithCapacity[int, string, string](64)

	assert.Equal(t, 0, m.Len())

	m.Insert(1, "One", "Ein")
	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Ein", v)
}

func TestStructKeys(t *testing.T) {
	type deviceID struct {
		Vendor uint16
		Serial uint32
	}

	m := New[deviceID, string, int]()
	m.Insert(deviceID{Vendor: 1, Serial: 7}, "eth0", 1500)
	m.Insert(deviceID{Vendor: 1, Serial: 8}, "eth1", 9000)

	v, ok := m.GetAlt("eth1")
	require.True(t, ok)
	assert.Equal(t, 9000, v)

	v, ok = m.Get(deviceID{Vendor: 1, Serial: 7})
	require.True(t, ok)
	assert.Equal(t, 1500, v)
	checkInvariant(t, m)
}

// TestDanglingReverseIndex covers the defensive handling of a reverse-index
// entry whose primary key is gone. The invariant rules this state out, so
// the table is corrupted by hand; the alt accessors must report not-found
// rather than panic, and RemoveAlt must clean the stale entry up.
func TestDanglingReverseIndex(t *testing.T) {
	m := New[int, string, string]()
	m.Insert(1, "One", "Ein")
	m.secondary["ghost"] = 99

	v, ok := m.GetAlt("ghost")
	assert.False(t, ok)
	assert.Zero(t, v)

	p, ok := m.GetMutAlt("ghost")
	assert.False(t, ok)
	assert.Nil(t, p)

	// ContainsAlt consults the reverse index only, so it still reports
	// the stale entry.
	assert.True(t, m.ContainsAlt("ghost"))

	v, ok = m.RemoveAlt("ghost")
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.False(t, m.ContainsAlt("ghost"))

	// The intact element is unaffected throughout.
	v, ok = m.GetAlt("One")
	require.True(t, ok)
	assert.Equal(t, "Ein", v)
	assert.Equal(t, 1, m.Len())
	checkInvariant(t, m)
}

// TestLookupMutateRemoveSequence walks one element through its whole
// lifecycle across both key paths.
func TestLookupMutateRemoveSequence(t *testing.T) {
	m := New[int, string, string]()
	m.Insert(1, "One", "Ein")
	m.Insert(2, "Two", "Zwei")
	m.Insert(3, "Three", "Drei")

	v, ok := m.Get(1)
	require.True(t, ok)
	require.Equal(t, "Ein", v)
	v, ok = m.GetAlt("One")
	require.True(t, ok)
	require.Equal(t, "Ein", v)

	p, ok := m.GetMutAlt("One")
	require.True(t, ok)
	*p += "s"
	v, _ = m.GetAlt("One")
	require.Equal(t, "Eins", v)

	_, ok = m.Remove(3)
	require.True(t, ok)
	_, ok = m.Get(3)
	require.False(t, ok)
	_, ok = m.GetAlt("Three")
	require.False(t, ok)

	v, ok = m.RemoveAlt("One")
	require.True(t, ok)
	require.Equal(t, "Eins", v)

	assert.False(t, m.Contains(1))
	assert.True(t, m.Contains(2))
	checkInvariant(t, m)
}
