package routing

// MinHeap is the open set of the A* search, ordered by the estimated
// total cost of each entry. Stale entries are not removed; the search
// skips them when popped.
type MinHeap struct {
	items []PQItem
}

// PQItem is a queue entry. Priority is the cost so far plus the heuristic
// estimate to the target.
type PQItem struct {
	Node     uint32
	Priority float32
}

func (h *MinHeap) Len() int { return len(h.items) }

func (h *MinHeap) Push(node uint32, priority float32) {
	h.items = append(h.items, PQItem{node, priority})
	h.up(len(h.items) - 1)
}

// Pop removes and returns the entry with the lowest priority. The heap must
// not be empty.
func (h *MinHeap) Pop() PQItem {
	last := len(h.items) - 1
	top := h.items[0]
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if last > 0 {
		h.down(0)
	}
	return top
}

func (h *MinHeap) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].Priority >= h.items[parent].Priority {
			return
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *MinHeap) down(i int) {
	n := len(h.items)
	for {
		smallest := i
		for _, c := range [2]int{2*i + 1, 2*i + 2} {
			if c < n && h.items[c].Priority < h.items[smallest].Priority {
				smallest = c
			}
		}
		if smallest == i {
			return
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
