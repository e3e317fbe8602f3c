// Package interval provides an ordered index over integer time keys.
//
// Index is an AVL tree: every insert and delete rebalances with single or
// double rotations so that the heights of the two subtrees of any node differ
// by at most one. Each key carries the set of values stored under it, which
// lets several clips share a boundary frame.
package interval

import (
	"errors"
	"fmt"
)

// ErrBalanceInvariant reports a structural defect in the tree. It indicates a
// bug in this package, never bad input.
var ErrBalanceInvariant = errors.New("interval: balance invariant violated")

// Node is a key in the index.
type Node[V comparable] struct {
	key    int
	values []V
	height int
	left   *Node[V]
	right  *Node[V]
}

// Key returns the node's time key.
func (n *Node[V]) Key() int {
	return n.key
}

// Values returns a copy of the values stored under the key, in insertion order.
func (n *Node[V]) Values() []V {
	out := make([]V, len(n.values))
	copy(out, n.values)
	return out
}

// Index is an AVL tree keyed by int.
// The zero value is an empty index ready to use.
type Index[V comparable] struct {
	root *Node[V]
	keys int
}

// New returns an empty index.
func New[V comparable]() *Index[V] {
	return &Index[V]{}
}

// Len returns the number of distinct keys.
func (t *Index[V]) Len() int {
	return t.keys
}

// Insert stores v under key. Inserting the same pair twice stores it once.
func (t *Index[V]) Insert(key int, v V) {
	t.root = t.insert(t.root, key, v)
}

// Delete removes v from key, dropping the key when no values remain.
// It reports whether the pair was present.
func (t *Index[V]) Delete(key int, v V) bool {
	n := t.Search(key)
	if n == nil {
		return false
	}
	idx := -1
	for i, existing := range n.values {
		if existing == v {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	n.values = append(n.values[:idx], n.values[idx+1:]...)
	if len(n.values) == 0 {
		t.root = t.deleteKey(t.root, key)
		t.keys--
	}
	return true
}

// Search returns the node holding key, or nil.
func (t *Index[V]) Search(key int) *Node[V] {
	n := t.root
	for n != nil {
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// NextLarger returns the node with the smallest key strictly greater than key,
// or nil. key does not have to be present in the index.
func (t *Index[V]) NextLarger(key int) *Node[V] {
	var succ *Node[V]
	n := t.root
	for n != nil {
		if key < n.key {
			succ = n
			n = n.left
		} else {
			n = n.right
		}
	}
	return succ
}

// Min returns the node with the smallest key, or nil when empty.
func (t *Index[V]) Min() *Node[V] {
	if t.root == nil {
		return nil
	}
	return minNode(t.root)
}

// Ascend calls fn for every node with after < key < before, in key order,
// until fn returns false.
func (t *Index[V]) Ascend(after, before int, fn func(*Node[V]) bool) {
	for n := t.NextLarger(after); n != nil && n.key < before; n = t.NextLarger(n.key) {
		if !fn(n) {
			return
		}
	}
}

// Validate walks the whole tree and checks ordering, cached heights and the
// AVL balance condition.
func (t *Index[V]) Validate() error {
	count := 0
	if _, err := validate(t.root, nil, nil, &count); err != nil {
		return err
	}
	if count != t.keys {
		return fmt.Errorf("%w: counted %d keys, tracked %d", ErrBalanceInvariant, count, t.keys)
	}
	return nil
}

func validate[V comparable](n *Node[V], lo, hi *int, count *int) (int, error) {
	if n == nil {
		return 0, nil
	}
	*count++
	if lo != nil && n.key <= *lo {
		return 0, fmt.Errorf("%w: key %d not above %d", ErrBalanceInvariant, n.key, *lo)
	}
	if hi != nil && n.key >= *hi {
		return 0, fmt.Errorf("%w: key %d not below %d", ErrBalanceInvariant, n.key, *hi)
	}
	if len(n.values) == 0 {
		return 0, fmt.Errorf("%w: key %d has no values", ErrBalanceInvariant, n.key)
	}
	lh, err := validate(n.left, lo, &n.key, count)
	if err != nil {
		return 0, err
	}
	rh, err := validate(n.right, &n.key, hi, count)
	if err != nil {
		return 0, err
	}
	if lh-rh > 1 || rh-lh > 1 {
		return 0, fmt.Errorf("%w: key %d has subtree heights %d and %d", ErrBalanceInvariant, n.key, lh, rh)
	}
	h := 1 + max(lh, rh)
	if h != n.height {
		return 0, fmt.Errorf("%w: key %d caches height %d, actual %d", ErrBalanceInvariant, n.key, n.height, h)
	}
	return h, nil
}

func (t *Index[V]) insert(n *Node[V], key int, v V) *Node[V] {
	if n == nil {
		t.keys++
		return &Node[V]{key: key, values: []V{v}, height: 1}
	}
	switch {
	case key < n.key:
		n.left = t.insert(n.left, key, v)
	case key > n.key:
		n.right = t.insert(n.right, key, v)
	default:
		for _, existing := range n.values {
			if existing == v {
				return n
			}
		}
		n.values = append(n.values, v)
		return n
	}
	return rebalance(n)
}

func (t *Index[V]) deleteKey(n *Node[V], key int) *Node[V] {
	if n == nil {
		return nil
	}
	switch {
	case key < n.key:
		n.left = t.deleteKey(n.left, key)
	case key > n.key:
		n.right = t.deleteKey(n.right, key)
	default:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		succ := minNode(n.right)
		n.key, n.values = succ.key, succ.values
		n.right = t.deleteKey(n.right, succ.key)
	}
	return rebalance(n)
}

func rebalance[V comparable](n *Node[V]) *Node[V] {
	update(n)
	switch b := balance(n); {
	case b > 1:
		if balance(n.left) < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case b < -1:
		if balance(n.right) > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

func rotateLeft[V comparable](z *Node[V]) *Node[V] {
	y := z.right
	z.right = y.left
	y.left = z
	update(z)
	update(y)
	return y
}

func rotateRight[V comparable](y *Node[V]) *Node[V] {
	x := y.left
	y.left = x.right
	x.right = y
	update(y)
	update(x)
	return x
}

func height[V comparable](n *Node[V]) int {
	if n == nil {
		return 0
	}
	return n.height
}

func balance[V comparable](n *Node[V]) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

func update[V comparable](n *Node[V]) {
	n.height = 1 + max(height(n.left), height(n.right))
}

func minNode[V comparable](n *Node[V]) *Node[V] {
	for n.left != nil {
		n = n.left
	}
	return n
}
