package ordering

import "testing"

func entries(ranks ...int) []Entry {
	out := make([]Entry, len(ranks))
	for i, r := range ranks {
		out[i] = Entry{ID: i + 1, Rank: r}
	}
	return out
}

func TestOpenSlot(t *testing.T) {
	t.Parallel()

	changes := OpenSlot(entries(1, 2, 3, 4), 2)

	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(changes))
	}

	// Descending rank order so per-row application never collides
	expected := []Change{{ID: 4, Rank: 5}, {ID: 3, Rank: 4}, {ID: 2, Rank: 3}}
	for i, c := range changes {
		if c != expected[i] {
			t.Errorf("change %d: expected %+v, got %+v", i, expected[i], c)
		}
	}
}

func TestOpenSlot_AtEnd(t *testing.T) {
	t.Parallel()

	if changes := OpenSlot(entries(1, 2, 3), 4); len(changes) != 0 {
		t.Errorf("expected no changes appending past the end, got %v", changes)
	}
}

func TestCloseGap(t *testing.T) {
	t.Parallel()

	changes := CloseGap(entries(1, 3, 4), 2)

	expected := []Change{{ID: 2, Rank: 2}, {ID: 3, Rank: 3}}
	if len(changes) != len(expected) {
		t.Fatalf("expected %d changes, got %d", len(expected), len(changes))
	}
	for i, c := range changes {
		if c != expected[i] {
			t.Errorf("change %d: expected %+v, got %+v", i, expected[i], c)
		}
	}
}

func TestShiftOrderWithUnsortedInput(t *testing.T) {
	t.Parallel()

	unsorted := []Entry{{ID: 7, Rank: 3}, {ID: 5, Rank: 1}, {ID: 9, Rank: 4}, {ID: 6, Rank: 2}}

	changes := OpenSlot(unsorted, 2)
	expected := []Change{{ID: 9, Rank: 5}, {ID: 7, Rank: 4}, {ID: 6, Rank: 3}}
	if len(changes) != len(expected) {
		t.Fatalf("expected %d changes, got %d", len(expected), len(changes))
	}
	for i, c := range changes {
		if c != expected[i] {
			t.Errorf("open change %d: expected %+v, got %+v", i, expected[i], c)
		}
	}

	changes = CloseGap(unsorted, 2)
	expected = []Change{{ID: 7, Rank: 2}, {ID: 9, Rank: 3}}
	if len(changes) != len(expected) {
		t.Fatalf("expected %d changes, got %d", len(expected), len(changes))
	}
	for i, c := range changes {
		if c != expected[i] {
			t.Errorf("close change %d: expected %+v, got %+v", i, expected[i], c)
		}
	}
}

func TestCloseGap_LastRank(t *testing.T) {
	t.Parallel()

	if changes := CloseGap(entries(1, 2), 3); len(changes) != 0 {
		t.Errorf("expected no changes removing the last rank, got %v", changes)
	}
}

func TestRenumber(t *testing.T) {
	t.Parallel()

	changes := Renumber([]int{7, 3, 9})

	expected := []Change{{ID: 7, Rank: 1}, {ID: 3, Rank: 2}, {ID: 9, Rank: 3}}
	for i, c := range changes {
		if c != expected[i] {
			t.Errorf("change %d: expected %+v, got %+v", i, expected[i], c)
		}
	}
}

func TestNextRank(t *testing.T) {
	t.Parallel()

	if r := NextRank(entries(1, 2, 3)); r != 4 {
		t.Errorf("expected 4, got %d", r)
	}
	if r := NextRank(nil); r != 1 {
		t.Errorf("expected 1 for empty sequence, got %d", r)
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		rank, count, want int
	}{
		{0, 5, 1},
		{-3, 5, 1},
		{3, 5, 3},
		{6, 5, 6},
		{99, 5, 6},
		{1, 0, 1},
	}
	for _, c := range cases {
		if got := Clamp(c.rank, c.count); got != c.want {
			t.Errorf("Clamp(%d, %d): expected %d, got %d", c.rank, c.count, c.want, got)
		}
	}
}

func TestTotalOrder_AppendsOmitted(t *testing.T) {
	t.Parallel()

	all := []Entry{{ID: 10, Rank: 1}, {ID: 20, Rank: 2}, {ID: 30, Rank: 3}, {ID: 40, Rank: 4}}

	order := TotalOrder(all, []int{30, 10})

	expected := []int{30, 10, 20, 40}
	if len(order) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, order)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, order)
		}
	}
}

func TestTotalOrder_FullList(t *testing.T) {
	t.Parallel()

	all := []Entry{{ID: 1, Rank: 1}, {ID: 2, Rank: 2}}

	order := TotalOrder(all, []int{2, 1})

	if order[0] != 2 || order[1] != 1 || len(order) != 2 {
		t.Fatalf("expected [2 1], got %v", order)
	}
}

// Renumbering any TotalOrder output yields exactly {1..N}: no gaps, no duplicates.
func TestTotalOrder_RenumberIsGapless(t *testing.T) {
	t.Parallel()

	all := entries(2, 5, 1, 9, 4)

	changes := Renumber(TotalOrder(all, []int{4, 2}))

	seen := make(map[int]bool)
	for _, c := range changes {
		if seen[c.Rank] {
			t.Fatalf("duplicate rank %d", c.Rank)
		}
		seen[c.Rank] = true
	}
	for r := 1; r <= len(all); r++ {
		if !seen[r] {
			t.Fatalf("missing rank %d", r)
		}
	}
}
