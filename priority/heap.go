package priority

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/konradgierczak7/SD-projekt-2/queue"
)

// Heap is a max-heap of entries stored in a contiguous buffer.
//
// The buffer is allocated up front with a fixed capacity and doubled whenever
// a push would overflow it. Only the first count slots are live; removal and
// Clear shrink count but never release storage.
type Heap struct {
	entries []queue.Entry // len(entries) is the capacity
	count   int
	logger  *zap.Logger
}

var _ queue.Queue = (*Heap)(nil)

// NewHeap creates an empty heap.
func NewHeap(opts ...Option) *Heap {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity < 1 {
		o.capacity = 1
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	return &Heap{
		entries: make([]queue.Entry, o.capacity),
		logger:  o.logger,
	}
}

// Size returns the number of entries in the heap.
func (h *Heap) Size() int {
	return h.count
}

// Capacity returns the number of entries the heap can hold without growing.
func (h *Heap) Capacity() int {
	return len(h.entries)
}

// Push adds value with the given priority.
func (h *Heap) Push(value, priority int) {
	if h.count == len(h.entries) {
		h.grow()
	}

	h.entries[h.count] = queue.Entry{Value: value, Priority: priority}
	h.count++
	h.up(h.count - 1)
}

// Pop removes the entry with the highest priority.
func (h *Heap) Pop() error {
	if h.count == 0 {
		return queue.ErrEmptyQueue
	}

	h.count--
	h.entries[0] = h.entries[h.count]
	h.entries[h.count] = queue.Entry{}
	h.down(0)
	return nil
}

// Peek returns the value with the highest priority without removing it.
func (h *Heap) Peek() (int, error) {
	if h.count == 0 {
		return 0, queue.ErrEmptyQueue
	}
	return h.entries[0].Value, nil
}

// ChangePriority sets the priority of the entry holding value and moves it
// to its new position. The lookup is a linear scan.
func (h *Heap) ChangePriority(value, newPriority int) error {
	i := h.find(value)
	if i < 0 {
		return fmt.Errorf("%w: %d", queue.ErrKeyNotFound, value)
	}

	old := h.entries[i].Priority
	h.entries[i].Priority = newPriority
	if newPriority > old {
		h.up(i)
	} else {
		h.down(i)
	}
	return nil
}

// GetPriority returns the priority of the entry holding value.
func (h *Heap) GetPriority(value int) (int, error) {
	i := h.find(value)
	if i < 0 {
		return 0, fmt.Errorf("%w: %d", queue.ErrKeyNotFound, value)
	}
	return h.entries[i].Priority, nil
}

// Clear removes every entry. The storage is kept for reuse.
func (h *Heap) Clear() {
	clear(h.entries[:h.count])
	h.count = 0
}

// All returns the live entries in storage order.
func (h *Heap) All() iter.Seq[queue.Entry] {
	return func(yield func(queue.Entry) bool) {
		for i := 0; i < h.count; i++ {
			if !yield(h.entries[i]) {
				return
			}
		}
	}
}

// Insert is Push under the queue.Queue name.
func (h *Heap) Insert(value, priority int) {
	h.Push(value, priority)
}

// Remove is Pop under the queue.Queue name.
func (h *Heap) Remove() error {
	return h.Pop()
}

// grow doubles the storage, copying the live entries across.
func (h *Heap) grow() {
	grown := make([]queue.Entry, 2*len(h.entries))
	copy(grown, h.entries[:h.count])
	h.logger.Debug("heap storage grown",
		zap.Int("from", len(h.entries)),
		zap.Int("to", len(grown)),
	)
	h.entries = grown
}

// find returns the index of the first live entry holding value, or -1.
func (h *Heap) find(value int) int {
	for i := 0; i < h.count; i++ {
		if h.entries[i].Value == value {
			return i
		}
	}
	return -1
}

// swap swaps entries at index i and j.
func (h *Heap) swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}

// higher reports whether the entry at i outranks the entry at j.
func (h *Heap) higher(i, j int) bool {
	return h.entries[i].Priority > h.entries[j].Priority
}

// up moves the entry at index i toward the root until its parent outranks or equals it.
func (h *Heap) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.higher(i, parent) {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

// down moves the entry at index i toward the leaves until no child outranks it.
func (h *Heap) down(i int) {
	for {
		largest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < h.count && h.higher(left, largest) {
			largest = left
		}
		if right < h.count && h.higher(right, largest) {
			largest = right
		}

		if largest == i {
			break
		}

		h.swap(i, largest)
		i = largest
	}
}
