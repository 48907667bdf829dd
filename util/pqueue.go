package util

//**********************************************************
// priority queue
//**********************************************************

// Binary-heap priority queue ordered by the less function given at
// construction. Not thread safe, use one instance per search.
type PriorityQueue[T any] struct {
	items []T
	less  func(a, b T) bool
}

func NewPriorityQueue[T any](cap int, less func(a, b T) bool) PriorityQueue[T] {
	return PriorityQueue[T]{
		items: make([]T, 0, cap),
		less:  less,
	}
}

func (self *PriorityQueue[T]) Length() int {
	return len(self.items)
}

func (self *PriorityQueue[T]) Enqueue(item T) {
	self.items = append(self.items, item)
	index := len(self.items) - 1
	for index > 0 {
		parent := (index - 1) / 2
		if !self.less(self.items[index], self.items[parent]) {
			break
		}
		self.items[index], self.items[parent] = self.items[parent], self.items[index]
		index = parent
	}
}

func (self *PriorityQueue[T]) Dequeue() (T, bool) {
	if len(self.items) == 0 {
		var t T
		return t, false
	}
	top := self.items[0]
	last := len(self.items) - 1
	self.items[0] = self.items[last]
	self.items = self.items[:last]
	index := 0
	for {
		left := 2*index + 1
		right := 2*index + 2
		smallest := index
		if left < len(self.items) && self.less(self.items[left], self.items[smallest]) {
			smallest = left
		}
		if right < len(self.items) && self.less(self.items[right], self.items[smallest]) {
			smallest = right
		}
		if smallest == index {
			break
		}
		self.items[index], self.items[smallest] = self.items[smallest], self.items[index]
		index = smallest
	}
	return top, true
}
