package sortedlist

import (
	"fmt"
	"iter"
	"strings"

	"go.uber.org/zap"

	"github.com/konradgierczak7/SD-projekt-2/queue"
)

type node struct {
	entry queue.Entry
	next  *node
}

// List is a priority queue backed by a sorted singly-linked list.
type List struct {
	head   *node
	count  int
	logger *zap.Logger
}

var _ queue.Queue = (*List)(nil)

// New creates an empty list.
func New(opts ...Option) *List {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return &List{logger: o.logger}
}

// Size returns the number of entries.
func (l *List) Size() int {
	return l.count
}

// IsEmpty reports whether the list has no entries.
func (l *List) IsEmpty() bool {
	return l.head == nil
}

// Enqueue inserts value after every entry whose priority is at least priority.
func (l *List) Enqueue(value, priority int) {
	n := &node{entry: queue.Entry{Value: value, Priority: priority}}

	if l.head == nil || priority > l.head.entry.Priority {
		n.next = l.head
		l.head = n
	} else {
		cur := l.head
		for cur.next != nil && cur.next.entry.Priority >= priority {
			cur = cur.next
		}
		n.next = cur.next
		cur.next = n
	}
	l.count++
}

// Dequeue removes the head entry. On an empty list nothing changes and
// queue.ErrEmptyQueue is returned.
func (l *List) Dequeue() error {
	if l.head == nil {
		l.logger.Warn("dequeue on empty list ignored")
		return queue.ErrEmptyQueue
	}

	old := l.head
	l.head = old.next
	old.next = nil
	l.count--
	return nil
}

// Peek returns the value at the head of the list.
func (l *List) Peek() (int, error) {
	if l.head == nil {
		return 0, queue.ErrEmptyQueue
	}
	return l.head.entry.Value, nil
}

// ChangePriority moves the first entry holding value to the position for
// newPriority. It returns false, leaving the list unchanged, when no entry
// holds value.
func (l *List) ChangePriority(value, newPriority int) bool {
	var prev *node
	cur := l.head
	for cur != nil && cur.entry.Value != value {
		prev = cur
		cur = cur.next
	}
	if cur == nil {
		return false
	}

	if prev != nil {
		prev.next = cur.next
	} else {
		l.head = cur.next
	}
	cur.next = nil
	l.count--

	l.Enqueue(value, newPriority)
	return true
}

// Clear removes every entry, unlinking the nodes from the head onward.
func (l *List) Clear() {
	for l.head != nil {
		old := l.head
		l.head = old.next
		old.next = nil
	}
	l.count = 0
}

// All returns the entries in priority order.
func (l *List) All() iter.Seq[queue.Entry] {
	return func(yield func(queue.Entry) bool) {
		for cur := l.head; cur != nil; cur = cur.next {
			if !yield(cur.entry) {
				return
			}
		}
	}
}

// String renders the chain as "(value, priority) -> ... -> NULL".
func (l *List) String() string {
	var b strings.Builder
	for e := range l.All() {
		fmt.Fprintf(&b, "(%d, %d) -> ", e.Value, e.Priority)
	}
	b.WriteString("NULL")
	return b.String()
}

// Insert is Enqueue under the queue.Queue name.
func (l *List) Insert(value, priority int) {
	l.Enqueue(value, priority)
}

// Remove is Dequeue under the queue.Queue name.
func (l *List) Remove() error {
	return l.Dequeue()
}
