package example

import (
	"testing"

	assertion "github.com/stretchr/testify/assert"

	"github.com/Revolution1/bitfield"
)

func TestSomething(t *testing.T) {
	assert := assertion.New(t)
	something := New(0)

	something.SetPresent(true)
	assert.True(something.Present())
	assert.True(something.P())

	something.SetP(false)
	assert.False(something.P())
	assert.False(something.Present())
}

func TestSomethingNonOverlap(t *testing.T) {
	assert := assertion.New(t)
	something := New(0)

	something.SetDirty(true)
	assert.False(something.P())
	assert.True(something.Dirty())

	something.SetP(true)
	assert.True(something.Dirty())
	something.SetDirty(false)
	assert.True(something.P())
	assert.Equal(int64(1), something.Bits())
}

func TestSomethingKeepsOtherBits(t *testing.T) {
	assert := assertion.New(t)
	something := New(-1)
	something.SetDirty(false)
	assert.Equal(int64(-9), something.Bits())
	something.SetDirty(false)
	assert.Equal(int64(-9), something.Bits())
	something.SetDirty(true)
	assert.Equal(int64(-1), something.Bits())
}

// The same host works with a runtime flag set through its Storage methods.
func TestSomethingFlagSet(t *testing.T) {
	assert := assertion.New(t)
	fs := bitfield.MustFlagSet[int64](
		bitfield.RWAlias("P", "SetP", "Present", "SetPresent", 0),
		bitfield.RW("Dirty", "SetDirty", 3),
	)
	something := New(0)

	assert.NoError(fs.Set(something, "SetDirty", true))
	assert.True(something.Dirty())
	v, err := fs.Get(something, "Present")
	assert.NoError(err)
	assert.False(v)
	assert.Equal(uint(2), fs.Positions().Count())
}
