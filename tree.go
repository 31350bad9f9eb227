package huff

import "container/heap"

// Node is a node of a prefix-code tree. It is either a *Leaf or an
// *Internal.
type Node interface {
	// Weight is the leaf count, or the sum of both children for an internal
	// node. Trees read from a header carry zero weights.
	Weight() uint64
	// low is the smallest symbol below the node, used to break weight ties.
	low() Symbol
}

// Leaf is a node holding a symbol.
type Leaf struct {
	Symbol Symbol
	Count  uint64
}

func (l *Leaf) Weight() uint64 { return l.Count }
func (l *Leaf) low() Symbol    { return l.Symbol }

// Internal is a node with exactly two children. Left is reached with a 0 bit
// and Right with a 1 bit.
type Internal struct {
	Left, Right Node
	Count       uint64

	min Symbol
}

func newInternal(left, right Node) *Internal {
	m := left.low()
	if r := right.low(); r < m {
		m = r
	}
	return &Internal{
		Left:  left,
		Right: right,
		Count: left.Weight() + right.Weight(),
		min:   m,
	}
}

func (n *Internal) Weight() uint64 { return n.Count }
func (n *Internal) low() Symbol    { return n.min }

// nodeHeap orders nodes by weight, then by smallest symbol. Subtrees in the
// heap are disjoint so no two nodes compare equal.
type nodeHeap []Node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if wi, wj := h[i].Weight(), h[j].Weight(); wi != wj {
		return wi < wj
	}
	return h[i].low() < h[j].low()
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(Node))
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// BuildTree builds the Huffman tree for w. Every byte with a non-zero weight
// becomes a leaf, and an EOF leaf of weight eofWeight is always added. The
// two lightest nodes are merged until one remains, the first one taken
// becoming the left child. When only EOF is present the root is its leaf.
func BuildTree(w Weights) Node {
	h := make(nodeHeap, 0, AlphabetSize)
	for s := Symbol(0); s < EOF; s++ {
		if w[s] > 0 {
			h = append(h, &Leaf{Symbol: s, Count: w[s]})
		}
	}
	h = append(h, &Leaf{Symbol: EOF, Count: eofWeight})
	heap.Init(&h)

	for h.Len() > 1 {
		left := heap.Pop(&h).(Node)
		right := heap.Pop(&h).(Node)
		heap.Push(&h, newInternal(left, right))
	}
	return heap.Pop(&h).(Node)
}

func countLeaves(n Node) int {
	switch n := n.(type) {
	case *Internal:
		return countLeaves(n.Left) + countLeaves(n.Right)
	default:
		return 1
	}
}
