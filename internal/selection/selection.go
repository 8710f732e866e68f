// Package selection maintains the at-most-one-primary invariant over an
// owner's collection of items (a user's main game profile, a user's default
// payment method). It operates on in-memory collections; callers run these
// mutations inside an atomic storage update so the demote/promote sequence
// is never partially visible.
package selection

import "sort"

// Item is a collection member that can be flagged as the primary selection
type Item interface {
	SelectionID() string
	Primary() bool
	SetPrimary(bool)
}

// Promote marks the item with targetID as the sole primary of the
// collection. Every other primary is demoted first, then the target is
// promoted, so an observer inside the same transaction never sees two
// primaries (it may transiently see zero). Returns false if no item with
// targetID exists in the collection; the collection is left untouched.
func Promote[T Item](items []T, targetID string) bool {
	var target *T
	for i := range items {
		if items[i].SelectionID() == targetID {
			target = &items[i]
			break
		}
	}
	if target == nil {
		return false
	}

	// Demote happens-before promote
	for i := range items {
		if items[i].Primary() && items[i].SelectionID() != targetID {
			items[i].SetPrimary(false)
		}
	}
	(*target).SetPrimary(true)
	return true
}

// DemoteAll clears the primary flag on every item. Used when inserting a
// new item that should become primary.
func DemoteAll[T Item](items []T) {
	for i := range items {
		if items[i].Primary() {
			items[i].SetPrimary(false)
		}
	}
}

// Primary returns the single primary item of the collection. ok is false
// when the collection has no primary (a valid state; deleting the primary
// never auto-promotes a replacement). violation is true when more than one
// primary is observed, which callers must surface as an integrity error
// rather than picking one.
func Primary[T Item](items []T) (item T, ok bool, violation bool) {
	var zero T
	found := false
	for i := range items {
		if !items[i].Primary() {
			continue
		}
		if found {
			return zero, false, true
		}
		item = items[i]
		found = true
	}
	if !found {
		return zero, false, false
	}
	return item, true, false
}

// Count returns the number of primary items in the collection
func Count[T Item](items []T) int {
	n := 0
	for i := range items {
		if items[i].Primary() {
			n++
		}
	}
	return n
}

// Order returns the collection in display order: the primary item first,
// then the rest sorted by the given less function. Items that compare equal
// keep their insertion order. The input slice is not modified.
func Order[T Item](items []T, less func(a, b T) bool) []T {
	ordered := make([]T, len(items))
	copy(ordered, items)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Primary() != ordered[j].Primary() {
			return ordered[i].Primary()
		}
		return less(ordered[i], ordered[j])
	})

	return ordered
}
