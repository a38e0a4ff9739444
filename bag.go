package signalz

// BagToken identifies an element inserted into a Bag.
type BagToken uint64

type bagEntry[T any] struct {
	value T
	token BagToken
}

// Bag is an insertion-ordered collection whose elements are removed by the
// token returned from Insert rather than by value. It is not safe for
// concurrent use; owners guard it with their own lock.
type Bag[T any] struct {
	entries []bagEntry[T]
	next    BagToken
}

// Insert adds value and returns the token that removes it.
func (b *Bag[T]) Insert(value T) BagToken {
	token := b.next
	b.next++
	b.entries = append(b.entries, bagEntry[T]{value: value, token: token})
	return token
}

// Remove deletes the element identified by token. It reports whether the
// element was still present.
func (b *Bag[T]) Remove(token BagToken) (T, bool) {
	// Tokens are increasing, so the entries are sorted by token.
	lo, hi := 0, len(b.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		if b.entries[mid].token < token {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(b.entries) && b.entries[lo].token == token {
		value := b.entries[lo].value
		copy(b.entries[lo:], b.entries[lo+1:])
		b.entries[len(b.entries)-1] = bagEntry[T]{}
		b.entries = b.entries[:len(b.entries)-1]
		return value, true
	}
	var zero T
	return zero, false
}

// RemoveFirst deletes the first element matching the predicate.
func (b *Bag[T]) RemoveFirst(match func(T) bool) (T, bool) {
	for _, entry := range b.entries {
		if match(entry.value) {
			return b.Remove(entry.token)
		}
	}
	var zero T
	return zero, false
}

// Len returns the number of elements.
func (b *Bag[T]) Len() int {
	return len(b.entries)
}

// Values returns a snapshot of the elements in insertion order.
func (b *Bag[T]) Values() []T {
	values := make([]T, len(b.entries))
	for i, entry := range b.entries {
		values[i] = entry.value
	}
	return values
}

// Drain returns the elements in insertion order and empties the bag.
func (b *Bag[T]) Drain() []T {
	values := b.Values()
	b.entries = nil
	return values
}
