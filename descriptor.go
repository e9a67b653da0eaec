package bitfield

import (
	"go/token"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidName   = errors.New("invalid flag name")
	ErrArgCount      = errors.New("wrong number of descriptor arguments")
	ErrBadPosition   = errors.New("bit position must be an unsigned integer constant")
	ErrBadMode       = errors.New("unknown flag mode")
	ErrNameCollision = errors.New("flag name already in use")
)

type Mode uint8

const (
	ReadOnly Mode = iota
	ReadWrite
)

func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "ro"
	case ReadWrite:
		return "rw"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "ro", "readonly", "read-only":
		return ReadOnly, nil
	case "rw", "readwrite", "read-write":
		return ReadWrite, nil
	}
	return 0, errors.Wrapf(ErrBadMode, "%q", s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(text []byte) (err error) {
	*m, err = ParseMode(string(text))
	return
}

// Descriptor names a single bit of a storage integer.
//
// Setter and AliasSetter are only meaningful in ReadWrite mode. Alias is
// optional; when present it gets its own, independent accessors for the
// same bit.
type Descriptor struct {
	Mode        Mode   `toml:"mode"`
	Name        string `toml:"name"`
	Setter      string `toml:"setter,omitempty"`
	Alias       string `toml:"alias,omitempty"`
	AliasSetter string `toml:"alias_setter,omitempty"`
	Pos         uint   `toml:"pos"`
}

func RO(name string, pos uint) Descriptor {
	return Descriptor{Mode: ReadOnly, Name: name, Pos: pos}
}

func ROAlias(name, alias string, pos uint) Descriptor {
	return Descriptor{Mode: ReadOnly, Name: name, Alias: alias, Pos: pos}
}

func RW(name, setter string, pos uint) Descriptor {
	return Descriptor{Mode: ReadWrite, Name: name, Setter: setter, Pos: pos}
}

func RWAlias(name, setter, alias, aliasSetter string, pos uint) Descriptor {
	return Descriptor{Mode: ReadWrite, Name: name, Setter: setter, Alias: alias, AliasSetter: aliasSetter, Pos: pos}
}

// ParseArgs builds a descriptor from its positional form, the way it is
// written in a directive:
//
//	ro: name pos | name alias pos
//	rw: name setter pos | name setter alias aliasSetter pos
func ParseArgs(mode Mode, args ...string) (Descriptor, error) {
	if len(args) == 0 {
		return Descriptor{}, errors.Wrapf(ErrArgCount, "%s flag needs at least a name and a position", mode)
	}
	pos, err := ParsePos(args[len(args)-1])
	if err != nil {
		return Descriptor{}, err
	}
	names := args[:len(args)-1]
	var d Descriptor
	switch {
	case mode == ReadOnly && len(names) == 1:
		d = RO(names[0], pos)
	case mode == ReadOnly && len(names) == 2:
		d = ROAlias(names[0], names[1], pos)
	case mode == ReadWrite && len(names) == 2:
		d = RW(names[0], names[1], pos)
	case mode == ReadWrite && len(names) == 4:
		d = RWAlias(names[0], names[1], names[2], names[3], pos)
	case mode != ReadOnly && mode != ReadWrite:
		return Descriptor{}, errors.Wrapf(ErrBadMode, "%s", mode)
	default:
		return Descriptor{}, errors.Wrapf(ErrArgCount, "%s flag got %d arguments", mode, len(args))
	}
	return d, d.Validate()
}

// ParsePos accepts decimal, 0x, 0o and 0b literals of any value a uint
// holds, the same range Descriptor.Pos takes everywhere else.
func ParsePos(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 0, strconv.IntSize)
	if err != nil {
		return 0, errors.Wrapf(ErrBadPosition, "%q", s)
	}
	return uint(n), nil
}

func (d Descriptor) Getters() []string {
	if d.Alias == "" {
		return []string{d.Name}
	}
	return []string{d.Name, d.Alias}
}

func (d Descriptor) Setters() []string {
	if d.Mode != ReadWrite {
		return nil
	}
	if d.AliasSetter == "" {
		return []string{d.Setter}
	}
	return []string{d.Setter, d.AliasSetter}
}

// Names lists every accessor name the descriptor produces.
func (d Descriptor) Names() []string {
	return append(d.Getters(), d.Setters()...)
}

func (d Descriptor) Validate() error {
	switch d.Mode {
	case ReadOnly:
		if d.Setter != "" || d.AliasSetter != "" {
			return errors.Wrapf(ErrArgCount, "read-only flag %s has a setter", d.Name)
		}
	case ReadWrite:
		if (d.Alias == "") != (d.AliasSetter == "") {
			return errors.Wrapf(ErrArgCount, "flag %s: alias and alias setter go together", d.Name)
		}
	default:
		return errors.Wrapf(ErrBadMode, "%s", d.Mode)
	}
	seen := make(map[string]struct{}, 4)
	for _, name := range d.Names() {
		if !token.IsIdentifier(name) {
			return errors.Wrapf(ErrInvalidName, "%q", name)
		}
		if _, ok := seen[name]; ok {
			return errors.Wrapf(ErrNameCollision, "%s used twice for bit %d", name, d.Pos)
		}
		seen[name] = struct{}{}
	}
	return nil
}
