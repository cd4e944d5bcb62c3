package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	a := Key("src", "genres", 15)
	assert.Len(t, a, 64)
	assert.Equal(t, a, Key("src", "genres", 15))
	assert.NotEqual(t, a, Key("src", "genres", 16))
	assert.NotEqual(t, a, Key("other", "genres", 15))
	assert.NotEqual(t, Key("src", 15), Key("src", "15"))
}

func TestMemory(t *testing.T) {
	m := NewMemory(0)
	_, err := m.Get("k")
	assert.True(t, errors.Is(err, ErrMiss))

	value := []byte("v")
	require.NoError(t, m.Set("k", value))
	value[0] = 'x'

	got, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
	assert.Equal(t, 1, m.Len())
}

func TestFetch(t *testing.T) {
	m := NewMemory(0)
	calls := 0
	compute := func() ([]byte, error) {
		calls++
		return []byte("result"), nil
	}

	for i := 0; i < 3; i++ {
		got, err := Fetch(m, "k", compute)
		require.NoError(t, err)
		assert.Equal(t, []byte("result"), got)
	}
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err := Fetch(m, "other", func() ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, m.Len())
}

func TestFetchNopAlwaysComputes(t *testing.T) {
	calls := 0
	for i := 0; i < 2; i++ {
		_, err := Fetch(Nop{}, "k", func() ([]byte, error) {
			calls++
			return []byte("x"), nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

type brokenCache struct{}

func (brokenCache) Get(string) ([]byte, error) { return nil, errors.New("disk on fire") }
func (brokenCache) Set(string, []byte) error   { return nil }

func TestFetchReadError(t *testing.T) {
	_, err := Fetch(brokenCache{}, "k", func() ([]byte, error) { return []byte("x"), nil })
	assert.Error(t, err)
}

func TestMemoryConcurrent(t *testing.T) {
	m := NewMemory(0)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := Key("src", i%4)
			Fetch(m, key, func() ([]byte, error) { return []byte(key), nil })
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 4, m.Len())
}

func TestMemoryEvictsLeastRecentlyUsed(t *testing.T) {
	m := NewMemory(2)
	require.NoError(t, m.Set("a", []byte("1")))
	require.NoError(t, m.Set("b", []byte("2")))
	_, err := m.Get("a")
	require.NoError(t, err)

	require.NoError(t, m.Set("c", []byte("3")))
	assert.Equal(t, 2, m.Len())

	_, err = m.Get("b")
	assert.ErrorIs(t, err, ErrMiss)
	for _, key := range []string{"a", "c"} {
		_, err := m.Get(key)
		assert.NoError(t, err, key)
	}
}

func TestMemoryStaysBounded(t *testing.T) {
	m := NewMemory(10)
	for i := 0; i < 1000; i++ {
		require.NoError(t, m.Set(Key("src", i), []byte("x")))
	}
	assert.Equal(t, 10, m.Len())
}
