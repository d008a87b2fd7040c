package scape

// notInHeap is the sentinel Triangle.heapIndex value for a triangle that
// currently has no candidate recorded in the heap.
const notInHeap = -1

// candidateHeap is a fixed-capacity binary max-heap of triangles ordered by
// candidate error, each triangle keeping its own slot index so the heap
// can update or remove an arbitrary entry in O(log n) instead of only its
// root, mirroring original_source/simplfield.H's Heap/heap_node pair. The
// bubble/trickle naming and shape follow detour/nodequeue.go's nodeQueue,
// inverted from a min-heap (smallest path cost first) to a max-heap
// (largest candidate error first).
type candidateHeap struct {
	tris []*Triangle
}

func newCandidateHeap(capacity int) *candidateHeap {
	return &candidateHeap{tris: make([]*Triangle, 0, capacity)}
}

func (h *candidateHeap) Len() int { return len(h.tris) }

func (h *candidateHeap) Empty() bool { return len(h.tris) == 0 }

// Top returns the triangle with the largest error without removing it, or
// nil if the heap is empty.
func (h *candidateHeap) Top() *Triangle {
	if len(h.tris) == 0 {
		return nil
	}
	return h.tris[0]
}

// Insert adds t to the heap with candidate error err. t must not already be
// in the heap.
func (h *candidateHeap) Insert(t *Triangle, err float32) {
	t.err = err
	t.heapIndex = len(h.tris)
	h.tris = append(h.tris, t)
	h.bubbleUp(t.heapIndex)
}

// Extract removes and returns the triangle with the largest error, or nil
// if the heap is empty.
func (h *candidateHeap) Extract() *Triangle {
	if len(h.tris) == 0 {
		return nil
	}
	top := h.tris[0]
	last := len(h.tris) - 1
	h.tris[0] = h.tris[last]
	h.tris[0].heapIndex = 0
	h.tris = h.tris[:last]
	top.heapIndex = notInHeap
	if last > 0 {
		h.trickleDown(0)
	}
	return top
}

// Update changes t's candidate error and restores heap order. t must
// already be in the heap.
func (h *candidateHeap) Update(t *Triangle, err float32) {
	old := t.err
	t.err = err
	if err > old {
		h.bubbleUp(t.heapIndex)
	} else if err < old {
		h.trickleDown(t.heapIndex)
	}
}

// Kill removes t from the heap regardless of its position. A no-op if t is
// not currently in the heap.
func (h *candidateHeap) Kill(t *Triangle) {
	i := t.heapIndex
	if i == notInHeap {
		return
	}
	last := len(h.tris) - 1
	h.tris[i] = h.tris[last]
	h.tris[i].heapIndex = i
	h.tris = h.tris[:last]
	t.heapIndex = notInHeap
	if i < len(h.tris) {
		h.bubbleUp(i)
		h.trickleDown(i)
	}
}

func (h *candidateHeap) bubbleUp(i int) {
	t := h.tris[i]
	for i > 0 {
		parent := (i - 1) / 2
		if h.tris[parent].err >= t.err {
			break
		}
		h.tris[i] = h.tris[parent]
		h.tris[i].heapIndex = i
		i = parent
	}
	h.tris[i] = t
	t.heapIndex = i
}

func (h *candidateHeap) trickleDown(i int) {
	t := h.tris[i]
	n := len(h.tris)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		child := left
		if right := left + 1; right < n && h.tris[right].err > h.tris[left].err {
			child = right
		}
		if h.tris[child].err <= t.err {
			break
		}
		h.tris[i] = h.tris[child]
		h.tris[i].heapIndex = i
		i = child
	}
	h.tris[i] = t
	t.heapIndex = i
}
