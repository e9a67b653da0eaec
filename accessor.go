package bitfield

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Query returns a getter for bit pos of s.
func Query[T constraints.Integer](s Storage[T], pos uint) func() bool {
	return func() bool { return Has(s.Bits(), pos) }
}

// Update returns a setter for bit pos of s. Every other bit of s is left
// as it was.
func Update[T constraints.Integer](s Storage[T], pos uint) func(bool) {
	return func(v bool) { s.SetBits(Assign(s.Bits(), pos, v)) }
}

// Accessors are the named closures produced by Bind.
type Accessors struct {
	Getters map[string]func() bool
	Setters map[string]func(bool)
}

// Bind creates the accessors of every descriptor over s. Aliases get
// separate closures that happen to address the same bit.
func Bind[T constraints.Integer](s Storage[T], descs ...Descriptor) (*Accessors, error) {
	acc := &Accessors{
		Getters: make(map[string]func() bool),
		Setters: make(map[string]func(bool)),
	}
	for _, d := range descs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		for _, name := range d.Names() {
			if acc.has(name) {
				return nil, errors.Wrapf(ErrNameCollision, "%s", name)
			}
		}
		for _, name := range d.Getters() {
			acc.Getters[name] = Query(s, d.Pos)
		}
		for _, name := range d.Setters() {
			acc.Setters[name] = Update(s, d.Pos)
		}
	}
	return acc, nil
}

func (acc *Accessors) has(name string) bool {
	_, g := acc.Getters[name]
	_, s := acc.Setters[name]
	return g || s
}

// Get calls the getter called name. ok reports whether it exists.
func (acc *Accessors) Get(name string) (v, ok bool) {
	f, ok := acc.Getters[name]
	if ok {
		v = f()
	}
	return v, ok
}

// Set calls the setter called name and reports whether it exists.
func (acc *Accessors) Set(name string, v bool) bool {
	f, ok := acc.Setters[name]
	if ok {
		f(v)
	}
	return ok
}
