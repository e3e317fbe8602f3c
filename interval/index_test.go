package interval

import (
	"errors"
	"math/rand"
	"sort"
	"testing"
)

func TestInsertKeepsBalance(t *testing.T) {
	tests := []struct {
		name string
		keys []int
	}{
		{name: "ascending", keys: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{name: "descending", keys: []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}},
		{name: "left-right", keys: []int{30, 10, 20}},
		{name: "right-left", keys: []int{10, 30, 20}},
		{name: "duplicates", keys: []int{5, 5, 5, 3, 3, 8}},
		{name: "negative", keys: []int{-4, 0, -10, 7, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := New[int]()
			for i, k := range tt.keys {
				idx.Insert(k, i)
				if err := idx.Validate(); err != nil {
					t.Fatalf("after inserting %d: %v", k, err)
				}
			}
			for _, k := range tt.keys {
				if idx.Search(k) == nil {
					t.Errorf("Search(%d) = nil, want node", k)
				}
			}
		})
	}
}

func TestRandomInsertsSearchAndSuccessor(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	idx := New[string]()
	present := map[int]bool{}

	for i := 0; i < 2000; i++ {
		k := rng.Intn(5000) - 1000
		idx.Insert(k, "v")
		present[k] = true
		if err := idx.Validate(); err != nil {
			t.Fatalf("insert #%d (%d): %v", i, k, err)
		}
	}
	if idx.Len() != len(present) {
		t.Fatalf("Len() = %d, want %d", idx.Len(), len(present))
	}

	sorted := make([]int, 0, len(present))
	for k := range present {
		sorted = append(sorted, k)
		if n := idx.Search(k); n == nil || n.Key() != k {
			t.Fatalf("Search(%d) did not find key", k)
		}
	}
	sort.Ints(sorted)

	for q := -1100; q <= 4100; q++ {
		i := sort.SearchInts(sorted, q+1)
		got := idx.NextLarger(q)
		if i == len(sorted) {
			if got != nil {
				t.Fatalf("NextLarger(%d) = %d, want nil", q, got.Key())
			}
			continue
		}
		if got == nil || got.Key() != sorted[i] {
			t.Fatalf("NextLarger(%d) = %v, want %d", q, got, sorted[i])
		}
	}
}

func TestNextLargerOnNodeWithoutRightSubtree(t *testing.T) {
	idx := New[int]()
	for _, k := range []int{50, 30, 70, 20, 40, 60, 80} {
		idx.Insert(k, k)
	}
	// 40 is a leaf; its successor is an ancestor.
	if n := idx.NextLarger(40); n == nil || n.Key() != 50 {
		t.Fatalf("NextLarger(40) = %v, want 50", n)
	}
	if n := idx.NextLarger(80); n != nil {
		t.Fatalf("NextLarger(80) = %d, want nil", n.Key())
	}
	if n := idx.NextLarger(-1); n == nil || n.Key() != 20 {
		t.Fatalf("NextLarger(-1) = %v, want 20", n)
	}
}

func TestDeleteRebalances(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	idx := New[int]()
	keys := rng.Perm(500)
	for _, k := range keys {
		idx.Insert(k, k)
	}
	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	for i, k := range keys {
		if !idx.Delete(k, k) {
			t.Fatalf("Delete(%d) = false", k)
		}
		if err := idx.Validate(); err != nil {
			t.Fatalf("after deleting %d: %v", k, err)
		}
		if idx.Search(k) != nil {
			t.Fatalf("Search(%d) found deleted key", k)
		}
		if idx.Len() != len(keys)-i-1 {
			t.Fatalf("Len() = %d, want %d", idx.Len(), len(keys)-i-1)
		}
	}
}

func TestDeleteValueKeepsSharedKey(t *testing.T) {
	idx := New[int]()
	idx.Insert(100, 1)
	idx.Insert(100, 2)
	idx.Insert(100, 2)

	if got := idx.Search(100).Values(); len(got) != 2 {
		t.Fatalf("Values() = %v, want two values", got)
	}
	if idx.Delete(100, 3) {
		t.Fatal("Delete of missing value reported true")
	}
	if !idx.Delete(100, 1) {
		t.Fatal("Delete(100, 1) = false")
	}
	if n := idx.Search(100); n == nil || len(n.Values()) != 1 || n.Values()[0] != 2 {
		t.Fatalf("key 100 should keep value 2, got %v", n)
	}
	idx.Delete(100, 2)
	if idx.Search(100) != nil || idx.Len() != 0 {
		t.Fatal("key 100 should be gone")
	}
}

func TestAscendRange(t *testing.T) {
	idx := New[int]()
	for _, k := range []int{0, 10, 20, 30, 40} {
		idx.Insert(k, k)
	}
	var got []int
	idx.Ascend(5, 35, func(n *Node[int]) bool {
		got = append(got, n.Key())
		return true
	})
	want := []int{10, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("Ascend = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Ascend = %v, want %v", got, want)
		}
	}

	got = got[:0]
	idx.Ascend(-1, 100, func(n *Node[int]) bool {
		got = append(got, n.Key())
		return len(got) < 2
	})
	if len(got) != 2 {
		t.Fatalf("Ascend did not stop early: %v", got)
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	idx := New[int]()
	for _, k := range []int{1, 2, 3} {
		idx.Insert(k, k)
	}
	idx.root.height = 7
	if err := idx.Validate(); !errors.Is(err, ErrBalanceInvariant) {
		t.Fatalf("Validate() = %v, want ErrBalanceInvariant", err)
	}
}
