package queue

import "errors"

var (
	// ErrEmptyQueue is returned when an operation needs an element and the queue has none.
	ErrEmptyQueue = errors.New("queue: empty queue")
	// ErrKeyNotFound is returned when no entry holds the requested value.
	ErrKeyNotFound = errors.New("queue: key not found")
)

// Entry is a value with its priority.
type Entry struct {
	Value    int
	Priority int
}

// Queue is the operation set common to every implementation. It is what the
// measurement harness drives.
type Queue interface {
	// Insert adds value with the given priority.
	Insert(value, priority int)
	// Remove discards the entry with the highest priority.
	Remove() error
	// Peek returns the value with the highest priority.
	Peek() (int, error)
	// Size returns the number of entries.
	Size() int
}
