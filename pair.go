package signalz

import "fmt"

// Pair holds one value from each of two streams, as produced by
// CombineLatest, Zip, SampleWith and CombinePrevious.
type Pair[A, B any] struct {
	First  A
	Second B
}

// NewPair creates a Pair.
func NewPair[A, B any](first A, second B) Pair[A, B] {
	return Pair[A, B]{First: first, Second: second}
}

// String returns "(first, second)".
func (p Pair[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", p.First, p.Second)
}
