package bitfield

import "golang.org/x/exp/constraints"

func Set[T constraints.Integer](b, flag T) T       { return b | flag }
func Clear[T constraints.Integer](b, flag T) T     { return b &^ flag }
func Toggle[T constraints.Integer](b, flag T) T    { return b ^ flag }
func HasAny[T constraints.Integer](b, flag T) bool { return b&flag != 0 }

// Mask returns a value with only bit pos set.
// Positions past the width of T give 0.
func Mask[T constraints.Integer](pos uint) T { return T(1) << pos }

// Has reports whether bit pos of b is set.
func Has[T constraints.Integer](b T, pos uint) bool { return b&Mask[T](pos) != 0 }

func BoolToInt[T constraints.Integer](v bool) T {
	if v {
		return 1
	}
	return 0
}

// Assign returns b with bit pos equal to v and every other bit untouched.
//
// -x is all zeros for false and all ones for true, so (-x ^ b) holds the
// bits of b that differ from the wanted value. Masking that to pos and
// xor-ing it back flips only the target bit when it is wrong.
// Go defines negation of unsigned values as wrap-around, so this works for
// unsigned storage as well.
func Assign[T constraints.Integer](b T, pos uint, v bool) T {
	x := BoolToInt[T](v)
	return b ^ ((-x ^ b) & Mask[T](pos))
}
