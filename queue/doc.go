// Package queue defines the contract shared by the priority queue
// implementations in this module.
//
// Entries are (value, priority) pairs of integers. The value is the externally
// meaningful identifier and doubles as the lookup key for priority updates;
// callers are expected to keep values unique. Higher priorities are served
// first.
//
// Two implementations satisfy Queue:
//   - priority.Heap, an array-backed binary max-heap with doubling storage
//   - sortedlist.List, a singly-linked list kept in non-increasing priority order
//
// They differ deliberately in how they report failures. The heap fails fast:
// every failed precondition is returned as ErrEmptyQueue or ErrKeyNotFound.
// The list treats an empty dequeue and a missing key on a priority change as
// soft failures that leave the queue untouched and are reported through a
// return value rather than aborting the caller.
//
// Neither implementation is safe for concurrent use.
package queue
