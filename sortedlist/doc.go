// Package sortedlist implements a mutable max-priority queue as a singly-linked
// list kept in non-increasing priority order.
//
// Each node is owned by its predecessor (the head by the List itself) and is
// reachable through exactly one link. Enqueue walks the chain to the first
// node with a strictly lower priority and splices the new node in before it,
// so entries with equal priorities leave in the order they arrived.
//
// Costs: Enqueue and ChangePriority are O(n); Dequeue, Peek, Size and IsEmpty
// are O(1).
//
// Failures follow two policies. Peek on an empty list returns
// queue.ErrEmptyQueue. Dequeue on an empty list is a recoverable no-op: it logs
// a warning, leaves the list untouched and returns queue.ErrEmptyQueue so the
// caller can tell nothing was removed. ChangePriority reports a missing value
// by returning false.
package sortedlist
