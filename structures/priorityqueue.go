// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// File created by John Lindsay, March 2015 based on code originally found at
// https://github.com/oleiade/lane/blob/master/pqueue.go

package structures

type pqItem struct {
	row, column int
	priority    float64
	seq         uint64
}

// CellPQueue is a binary min-heap of grid cells keyed on a float64
// priority. Cells of equal priority come out in the order they went in.
// It is not safe for concurrent use.
type CellPQueue struct {
	items []pqItem // items[0] is unused
	seq   uint64
}

func NewCellPQueue() *CellPQueue {
	return &CellPQueue{items: make([]pqItem, 1, 1024)}
}

func (pq *CellPQueue) Len() int {
	return len(pq.items) - 1
}

// Push adds a cell with the given priority.
func (pq *CellPQueue) Push(row, column int, priority float64) {
	pq.items = append(pq.items, pqItem{row, column, priority, pq.seq})
	pq.seq++
	pq.swim(pq.Len())
}

// Pop removes and returns the cell with the lowest priority. It panics on
// an empty queue.
func (pq *CellPQueue) Pop() (row, column int, priority float64) {
	n := pq.Len()
	top := pq.items[1]
	pq.items[1] = pq.items[n]
	pq.items = pq.items[:n]
	pq.sink(1)
	return top.row, top.column, top.priority
}

func (pq *CellPQueue) less(i, j int) bool {
	a, b := &pq.items[i], &pq.items[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.seq < b.seq
}

func (pq *CellPQueue) swim(k int) {
	for k > 1 && pq.less(k, k/2) {
		pq.items[k/2], pq.items[k] = pq.items[k], pq.items[k/2]
		k = k / 2
	}
}

func (pq *CellPQueue) sink(k int) {
	n := pq.Len()
	for 2*k <= n {
		j := 2 * k
		if j < n && pq.less(j+1, j) {
			j++
		}
		if !pq.less(j, k) {
			break
		}
		pq.items[k], pq.items[j] = pq.items[j], pq.items[k]
		k = j
	}
}
