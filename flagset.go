package bitfield

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

var (
	ErrUnknownFlag = errors.New("unknown flag")
	ErrNotSetter   = errors.New("flag has no setter under this name")
	ErrNotGetter   = errors.New("flag has no getter under this name")
)

type accessorKind uint8

const (
	kindGetter accessorKind = iota
	kindSetter
)

type entry struct {
	pos  uint
	kind accessorKind
	desc int // index into FlagSet.descs
}

// FlagSet is a table of descriptors for one storage type. Accessors are
// looked up by name at run time instead of being generated.
//
// A FlagSet does no locking. Register everything up front and share it
// read-only afterwards.
type FlagSet[T constraints.Integer] struct {
	descs     []Descriptor
	names     map[string]entry
	positions *bitset.BitSet
}

func NewFlagSet[T constraints.Integer](descs ...Descriptor) (*FlagSet[T], error) {
	fs := &FlagSet[T]{
		names:     make(map[string]entry),
		positions: bitset.New(0),
	}
	for _, d := range descs {
		if err := fs.Register(d); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

func MustFlagSet[T constraints.Integer](descs ...Descriptor) *FlagSet[T] {
	fs, err := NewFlagSet[T](descs...)
	if err != nil {
		panic(err)
	}
	return fs
}

// Register adds d. A name already taken by an earlier descriptor fails the
// whole registration; positions are allowed to repeat.
func (fs *FlagSet[T]) Register(d Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	for _, name := range d.Names() {
		if _, ok := fs.names[name]; ok {
			return errors.Wrapf(ErrNameCollision, "%s", name)
		}
	}
	idx := len(fs.descs)
	fs.descs = append(fs.descs, d)
	for _, name := range d.Getters() {
		fs.names[name] = entry{pos: d.Pos, kind: kindGetter, desc: idx}
	}
	for _, name := range d.Setters() {
		fs.names[name] = entry{pos: d.Pos, kind: kindSetter, desc: idx}
	}
	fs.positions.Set(d.Pos)
	return nil
}

// Lookup finds the descriptor that produced the accessor called name.
func (fs *FlagSet[T]) Lookup(name string) (Descriptor, bool) {
	e, ok := fs.names[name]
	if !ok {
		return Descriptor{}, false
	}
	return fs.descs[e.desc], true
}

// Get evaluates the getter called name against s.
func (fs *FlagSet[T]) Get(s Storage[T], name string) (bool, error) {
	e, ok := fs.names[name]
	if !ok {
		return false, errors.Wrapf(ErrUnknownFlag, "%s", name)
	}
	if e.kind != kindGetter {
		return false, errors.Wrapf(ErrNotGetter, "%s", name)
	}
	return Has(s.Bits(), e.pos), nil
}

// Set runs the setter called name against s.
func (fs *FlagSet[T]) Set(s Storage[T], name string, v bool) error {
	e, ok := fs.names[name]
	if !ok {
		return errors.Wrapf(ErrUnknownFlag, "%s", name)
	}
	if e.kind != kindSetter {
		return errors.Wrapf(ErrNotSetter, "%s", name)
	}
	s.SetBits(Assign(s.Bits(), e.pos, v))
	return nil
}

// Positions returns a copy of the set of declared bit positions.
func (fs *FlagSet[T]) Positions() *bitset.BitSet {
	return fs.positions.Clone()
}

func (fs *FlagSet[T]) Descriptors() []Descriptor {
	out := make([]Descriptor, len(fs.descs))
	copy(out, fs.descs)
	return out
}
