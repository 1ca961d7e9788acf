// Package ordering implements the rank arithmetic for column ordinals and
// task positions as pure functions over in-memory sequences. Repositories
// apply the returned changes as bulk updates inside the caller's transaction,
// which keeps the shifting algorithm unit-testable independent of SQLite.
package ordering

import "sort"

// Entry is one ranked row: a column within a project, or a task within a column.
type Entry struct {
	ID   int
	Rank int
}

// Change is a rank assignment to apply to a single row.
type Change struct {
	ID   int
	Rank int
}

// OpenSlot returns the changes needed to make room at rank `at`: every entry
// with Rank >= at is incremented by one. Changes come out in descending rank
// order so they can be applied row by row without colliding with a unique
// (scope, rank) index.
func OpenSlot(entries []Entry, at int) []Change {
	var changes []Change
	for _, e := range sortedByRankDesc(entries) {
		if e.Rank >= at {
			changes = append(changes, Change{ID: e.ID, Rank: e.Rank + 1})
		}
	}
	return changes
}

// CloseGap returns the changes needed after removing the entry at rank
// `removed`: every entry with Rank > removed is decremented by one. Changes
// come out in ascending rank order, again to keep per-row application safe
// under a unique index.
func CloseGap(entries []Entry, removed int) []Change {
	var changes []Change
	for _, e := range sortedByRankAsc(entries) {
		if e.Rank > removed {
			changes = append(changes, Change{ID: e.ID, Rank: e.Rank - 1})
		}
	}
	return changes
}

// Renumber assigns ranks 1..N to ids in list order.
func Renumber(ids []int) []Change {
	changes := make([]Change, len(ids))
	for i, id := range ids {
		changes[i] = Change{ID: id, Rank: i + 1}
	}
	return changes
}

// NextRank returns the rank for appending after the existing entries:
// max(rank)+1, or 1 when there are none.
func NextRank(entries []Entry) int {
	max := 0
	for _, e := range entries {
		if e.Rank > max {
			max = e.Rank
		}
	}
	return max + 1
}

// Clamp bounds a requested rank to the valid insertion range [1, count+1].
func Clamp(rank, count int) int {
	if rank < 1 {
		return 1
	}
	if rank > count+1 {
		return count + 1
	}
	return rank
}

// TotalOrder builds a complete reordering of `all` from a caller-supplied
// prefix: listed ids keep their list order, ids missing from the list are
// appended afterwards in their previous relative order. The result always
// covers every entry exactly once, so renumbering it preserves the gapless
// uniqueness invariant unconditionally.
func TotalOrder(all []Entry, listed []int) []int {
	inList := make(map[int]bool, len(listed))
	order := make([]int, 0, len(all))
	for _, id := range listed {
		inList[id] = true
		order = append(order, id)
	}
	for _, e := range sortedByRankAsc(all) {
		if !inList[e.ID] {
			order = append(order, e.ID)
		}
	}
	return order
}

func sortedByRankAsc(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}

func sortedByRankDesc(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Rank > out[j].Rank })
	return out
}
