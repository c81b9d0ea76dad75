// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package structures

// Queue data struture
type cellqueuenode struct {
	row    int
	column int
	next   *cellqueuenode
}

// CellQueue is a FIFO (first in first out) queue of grid cells. It is used
// as the explicit work list for flood fills and topological passes so that
// no traversal depends on recursion depth.
type CellQueue struct {
	head  *cellqueuenode
	tail  *cellqueuenode
	count int
	free  *cellqueuenode
}

// Creates a new pointer to a new queue.
func NewCellQueue() *CellQueue {
	return &CellQueue{}
}

// Returns the number of elements in the queue (i.e. size/length)
func (q *CellQueue) Len() int {
	return q.count
}

// Pushes/inserts a value at the end/tail of the queue.
func (q *CellQueue) Push(row, column int) {
	n := q.free
	if n != nil {
		q.free = n.next
		n.row, n.column, n.next = row, column, nil
	} else {
		n = &cellqueuenode{row: row, column: column}
	}

	if q.count > 0 {
		q.tail.next = n
		q.tail = n
	} else {
		q.tail = n
		q.head = n
	}
	q.count++
}

// Pop returns the value at the front of the queue, i.e. the oldest value
// in the queue. It returns (-1, -1) when the queue is empty.
func (q *CellQueue) Pop() (int, int) {
	if q.head == nil {
		return -1, -1
	}
	n := q.head
	q.head = n.next

	if q.head == nil {
		q.tail = nil
	}
	q.count--

	row, column := n.row, n.column
	n.next = q.free
	q.free = n
	return row, column
}
