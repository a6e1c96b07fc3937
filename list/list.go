// Package list provides a circular doubly linked list with a sentinel
// head, the classic kernel-style ring expressed as a generic element
// container instead of intrusive pointer arithmetic.
package list

// Node is one element of a List.
type Node[T any] struct {
	Value      T
	prev, next *Node[T]
}

// List is a circular doubly linked list. The zero value is not ready to
// use; construct with New.
type List[T any] struct {
	root Node[T] // sentinel; root.next is the front, root.prev the back
	len  int
}

// New returns an empty list.
func New[T any]() *List[T] {
	l := &List[T]{}
	l.root.prev = &l.root
	l.root.next = &l.root
	return l
}

func (l *List[T]) insert(prev, next, n *Node[T]) {
	next.prev = n
	n.next = next
	n.prev = prev
	prev.next = n
	l.len++
}

// PushBack appends v and returns its node.
func (l *List[T]) PushBack(v T) *Node[T] {
	n := &Node[T]{Value: v}
	l.insert(l.root.prev, &l.root, n)
	return n
}

// PushFront prepends v and returns its node.
func (l *List[T]) PushFront(v T) *Node[T] {
	n := &Node[T]{Value: v}
	l.insert(&l.root, l.root.next, n)
	return n
}

// Remove unlinks n, which must belong to this list. The node's links are
// reset so a second Remove is harmless.
func (l *List[T]) Remove(n *Node[T]) {
	if n.prev == nil || n.next == nil || n.prev == n {
		return
	}
	n.next.prev = n.prev
	n.prev.next = n.next
	n.prev, n.next = n, n
	l.len--
}

// Empty reports whether the list has no elements.
func (l *List[T]) Empty() bool { return l.root.next == &l.root }

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.len }

// Front returns the first node, or nil when the list is empty.
func (l *List[T]) Front() *Node[T] {
	if l.Empty() {
		return nil
	}
	return l.root.next
}

// Back returns the last node, or nil when the list is empty.
func (l *List[T]) Back() *Node[T] {
	if l.Empty() {
		return nil
	}
	return l.root.prev
}

// Next returns the node after n, or nil at the back of the list.
func (l *List[T]) Next(n *Node[T]) *Node[T] {
	if n.next == nil || n.next == &l.root {
		return nil
	}
	return n.next
}

// Do calls fn on each node from front to back. fn must not modify the
// list; use DoSafe when it removes the node it is given.
func (l *List[T]) Do(fn func(*Node[T])) {
	for n := l.root.next; n != &l.root; n = n.next {
		fn(n)
	}
}

// DoSafe is Do, except fn may remove the node it is given.
func (l *List[T]) DoSafe(fn func(*Node[T])) {
	for n, next := l.root.next, l.root.next.next; n != &l.root; n, next = next, next.next {
		fn(n)
	}
}
