package util

import (
	"golang.org/x/exp/constraints"
)

// Matrix makes a 1D slice appear as a 2D slice. Rows are contiguous in Data, so a
// matrix of 4 rows by width columns is also a single 4*width buffer.
type Matrix[T constraints.Ordered] struct {
	Width  int
	Height int
	Data   []T
}

// New2DMatrix creates a new 2D matrix with the given dimensions
// Note height is the first dimension, width is the second
func New2DMatrix[T constraints.Ordered](height int, width int) *Matrix[T] {
	matrix := make([]T, width*height)
	return &Matrix[T]{Width: width, Height: height, Data: matrix}
}

// Get takes y first, matching New2DMatrix.
func (s *Matrix[T]) Get(y int, x int) T {
	return s.Data[y*s.Width+x]
}

func (s *Matrix[T]) Set(y int, x int, value T) {
	s.Data[y*s.Width+x] = value
}

func (s *Matrix[T]) GetRow(y int) []T {
	return s.Data[y*s.Width : (y+1)*s.Width]
}
