package bitfield

import "golang.org/x/exp/constraints"

// Storage is a host value that keeps its flags in a single integer.
type Storage[T constraints.Integer] interface {
	Bits() T
	SetBits(T)
}

// Word is the simplest Storage: a bare integer.
type Word[T constraints.Integer] struct {
	v T
}

func NewWord[T constraints.Integer](v T) *Word[T] { return &Word[T]{v: v} }

func (w *Word[T]) Bits() T     { return w.v }
func (w *Word[T]) SetBits(v T) { w.v = v }
