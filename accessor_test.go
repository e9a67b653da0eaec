package bitfield

import (
	"testing"

	"github.com/pkg/errors"
	assertion "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// something mirrors a host type that keeps its flags in an int64.
type something struct{ bits int64 }

func (s *something) Bits() int64     { return s.bits }
func (s *something) SetBits(v int64) { s.bits = v }

func mustGet(t *testing.T, acc *Accessors, name string) bool {
	v, ok := acc.Get(name)
	require.True(t, ok, "getter %s", name)
	return v
}

func TestQueryUpdate(t *testing.T) {
	assert := assertion.New(t)
	w := NewWord[uint32](0)
	tx := Query[uint32](w, 1)
	setTx := Update[uint32](w, 1)

	assert.False(tx())
	setTx(true)
	assert.True(tx())
	assert.Equal(uint32(2), w.Bits())
	setTx(true)
	assert.Equal(uint32(2), w.Bits())
	setTx(false)
	assert.False(tx())
	assert.Zero(w.Bits())
}

func TestBindAliasScenario(t *testing.T) {
	assert := assertion.New(t)
	s := &something{}
	acc, err := Bind[int64](s, RWAlias("P", "SetP", "Present", "SetPresent", 0))
	require.NoError(t, err)

	acc.Setters["SetPresent"](true)
	assert.True(acc.Getters["Present"]())
	assert.True(mustGet(t, acc, "P"))

	assert.True(acc.Set("SetP", false))
	assert.False(mustGet(t, acc, "P"))
	assert.False(mustGet(t, acc, "Present"))
	assert.Zero(s.bits)

	assert.False(acc.Set("P", true), "getters are not setters")
	v, ok := acc.Get("Missing")
	assert.False(ok)
	assert.False(v)
	_, ok = acc.Get("SetP")
	assert.False(ok, "setters are not getters")
}

func TestBindNonOverlap(t *testing.T) {
	assert := assertion.New(t)
	s := &something{}
	acc, err := Bind[int64](s,
		RW("Present", "SetPresent", 0),
		RW("Dirty", "SetDirty", 3),
		RO("Locked", 5),
	)
	require.NoError(t, err)

	acc.Set("SetDirty", true)
	assert.False(mustGet(t, acc, "Present"))
	assert.True(mustGet(t, acc, "Dirty"))
	acc.Set("SetPresent", true)
	assert.True(mustGet(t, acc, "Dirty"))
	acc.Set("SetDirty", false)
	assert.True(mustGet(t, acc, "Present"))
	assert.Equal(int64(1), s.bits)

	// read-only flags see bits written by anyone else
	s.bits |= 1 << 5
	assert.True(mustGet(t, acc, "Locked"))
	_, ok := acc.Setters["SetLocked"]
	assert.False(ok)
}

func TestBindErrors(t *testing.T) {
	assert := assertion.New(t)
	s := &something{}
	_, err := Bind[int64](s, RO("A", 0), RW("B", "A", 1))
	assert.True(errors.Is(err, ErrNameCollision))
	_, err = Bind[int64](s, RO("a b", 0))
	assert.True(errors.Is(err, ErrInvalidName))
	// sharing a position is fine
	_, err = Bind[int64](s, RO("A", 0), RO("B", 0))
	assert.NoError(err)
}
