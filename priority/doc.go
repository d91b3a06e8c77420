// Package priority implements a mutable max-priority queue as an array-backed
// binary heap.
//
// Entries are (value, priority) pairs held in a contiguous buffer in max-heap
// order: for every index i > 0 the priority at i is not greater than the
// priority at its parent (i-1)/2. The buffer starts at DefaultCapacity (or the
// capacity given with WithCapacity) and doubles whenever a push would overflow
// it, so pushes cost O(log n) worst case and amortize the copies to O(1).
//
// Key features:
//   - O(log n) Push and Pop
//   - O(1) Peek and Size
//   - O(n) ChangePriority and GetPriority, using a linear scan by value
//   - Clear keeps the grown storage for the next fill
//
// Basic usage:
//
//	h := priority.NewHeap(priority.WithCapacity(64))
//
//	h.Push(1, 50)
//	h.Push(2, 80)
//	h.Push(3, 10)
//
//	v, err := h.Peek() // v == 2
//	if err != nil {
//	    // queue.ErrEmptyQueue
//	}
//
//	_ = h.Pop()                  // removes 2
//	_ = h.ChangePriority(1, 5)   // 3 now has the highest priority
//
// Every failure is reported before the heap is touched: Pop and Peek return
// queue.ErrEmptyQueue on an empty heap, ChangePriority and GetPriority return
// an error wrapping queue.ErrKeyNotFound when no entry holds the value.
//
// Ties between equal priorities are resolved by position in the heap and no
// particular order among them is guaranteed.
package priority
