package list

// SllValTeardown is called exactly once for every value the list
// destroys on its own removal paths (RemoveAt, RemoveFirst, RemoveIf,
// RemoveMatched, Clear). PopFirst hands the value back to the caller
// instead, so the teardown is skipped there.
type SllValTeardown[T any] func(v T)

// SllValComparator reports how v relates to ref. It must return 0 when
// both values are considered as equal, any other value on mismatch.
type SllValComparator[T any] func(v, ref T) int

// SllValPredicate reports whether v matches.
type SllValPredicate[T any] func(v T) bool

// SllValPrinter renders one value for the diagnostic snapshot emitted
// by Print. Without a bound printer, Print is disabled.
type SllValPrinter[T any] func(v T) string

// NoTeardown serves for values that don't need anything done on removal.
func NoTeardown[T any](v T) {}

// ThreadSafeLinkedList is a singly linked list that multiple goroutines
// operate on directly and concurrently. The list holds one
// reader/writer lock for its own metadata plus one per node, and walks
// the chain hand-over-hand, so a structural walk only ever pins the
// pair of nodes it is stepping across.
//
// Index-taking and length-returning operations report failure with -1;
// value-returning operations report failure with (zero, false). Once
// Clear or Free ran, every operation except Free fails this way and
// performs no work.
type ThreadSafeLinkedList[T any] interface {
	// Len returns the live node count, or -1 once the list was cleared.
	Len() int64
	// InsertAt links v in at index n, 0 <= n <= Len(), and returns the
	// new length.
	InsertAt(v T, n int64) int64
	InsertFirst(v T) int64
	InsertLast(v T) int64
	// RemoveAt unlinks the node at index n, 0 <= n < Len(), tears
	// the value down and returns the new length.
	RemoveAt(n int64) int64
	RemoveFirst() int64
	// PopFirst unlinks the head node and transfers the value ownership
	// back to the caller, without running the teardown.
	PopFirst() (T, bool)
	// RemoveIf unlinks the first node whose value satisfies pred,
	// tears the value down and returns the new length.
	RemoveIf(pred SllValPredicate[T]) int64
	// RemoveMatched unlinks the first node whose value compares equal
	// to ref, tears the value down and returns the new length.
	RemoveMatched(cmp SllValComparator[T], ref T) int64
	Get(n int64) (T, bool)
	GetFirst() (T, bool)
	// Find returns the first value comparing equal to ref. It never
	// mutates the list.
	Find(cmp SllValComparator[T], ref T) (T, bool)
	// Foreach runs fn on every value in chain order. Each node's own
	// lock is held in write mode around its fn call, fn may mutate the
	// value in place through the pointer.
	Foreach(fn func(idx int64, v *T)) error
	// Print logs the bracketed value snapshot through the bound
	// printer. A no-op without one.
	Print()
	// Clear tears down every value, empties the list and permanently
	// invalidates it. Calling it on an already cleared list is a no-op.
	Clear()
	// Free is Clear plus dropping the callback and logger bindings.
	// The only operation that stays legal after invalidation.
	Free()
}
