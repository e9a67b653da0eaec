// Package example shows a host type with generated flag accessors.
package example

//go:generate go run github.com/Revolution1/bitfield/cli --type Something

// Something acts like a bitfield structure.
//
// P (or Present) is bit 0, Dirty is bit 3.
//
//bitfield:rw P SetP Present SetPresent 0
//bitfield:rw Dirty SetDirty 3
type Something struct {
	bits int64
}

func New(bits int64) *Something { return &Something{bits: bits} }

func (s *Something) Bits() int64     { return s.bits }
func (s *Something) SetBits(v int64) { s.bits = v }
