/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package explorer

import "container/list"

// pathQueue holds the combinations still to be explored, in discovery order.
type pathQueue struct {
	list *list.List
}

func newPathQueue(initial ...Path) *pathQueue {
	q := &pathQueue{
		list: list.New(),
	}
	for _, p := range initial {
		q.push(p)
	}
	return q
}

func (q *pathQueue) push(p Path) {
	q.list.PushBack(p)
}

// pop removes and returns the oldest path, or false when the queue is empty.
func (q *pathQueue) pop() (Path, bool) {
	front := q.list.Front()
	if front == nil {
		return nil, false
	}
	return q.list.Remove(front).(Path), true
}

func (q *pathQueue) len() int {
	return q.list.Len()
}
