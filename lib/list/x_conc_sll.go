package list

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/benz9527/xlist/lib/infra"
	"github.com/benz9527/xlist/xlog"
)

// Lock ordering policy:
// 1. The list lock is acquired before any node lock.
// 2. Node locks are acquired strictly in traversal order,
//    hand-over-hand: lock the successor before releasing the
//    current node.
// No code path may take locks in any other order, two goroutines
// obeying the policy cannot deadlock on the chain.
//
// selectPredOf keeps the list lock for the whole index-based
// operation. The node locks would allow two structural mutations at
// different depths to proceed concurrently, but releasing the list
// lock early changes the observable semantics, so index and predicate
// based mutations stay serialized list-wide.

const sllSentinel = int64(-1)

var _ ThreadSafeLinkedList[struct{}] = (*xConcSll[struct{}])(nil)

type xConcSll[T any] struct {
	head     *xConcSllNode[T]
	teardown SllValTeardown[T]
	printer  SllValPrinter[T]
	logger   xlog.XLogger
	stats    *xConcSllStats
	len      int64
	released bool
	mu       sync.RWMutex
}

type XConcSllOption[T any] func(*xConcSll[T])

func WithSllValPrinter[T any](printer SllValPrinter[T]) XConcSllOption[T] {
	return func(sll *xConcSll[T]) {
		sll.printer = printer
	}
}

func WithSllLogger[T any](logger xlog.XLogger) XConcSllOption[T] {
	return func(sll *xConcSll[T]) {
		sll.logger = logger
	}
}

// NewThreadSafeLinkedList creates an empty, valid list bound to the
// given teardown. A nil teardown behaves like NoTeardown.
func NewThreadSafeLinkedList[T any](teardown SllValTeardown[T], opts ...XConcSllOption[T]) ThreadSafeLinkedList[T] {
	sll := &xConcSll[T]{
		teardown: teardown,
	}
	for _, o := range opts {
		if o != nil {
			o(sll)
		}
	}
	if sll.teardown == nil {
		sll.teardown = NoTeardown[T]
	}
	if sll.logger == nil {
		sll.logger = xlog.NewXLogger(xlog.WithXLoggerName("XConcSll"))
	}
	return sll
}

func (sll *xConcSll[T]) lockBy(mode sllLockMode) {
	if mode == sllWriteLock {
		sll.mu.Lock()
	} else {
		sll.mu.RLock()
	}
}

func (sll *xConcSll[T]) unlockBy(mode sllLockMode) {
	if mode == sllWriteLock {
		sll.mu.Unlock()
	} else {
		sll.mu.RUnlock()
	}
}

// lockAndCheckAlive locks the list in the requested mode and reports
// whether the list is still valid. On false the list lock is already
// released again and the caller bails out with its failure sentinel.
func (sll *xConcSll[T]) lockAndCheckAlive(mode sllLockMode) bool {
	sll.lockBy(mode)
	if sll.released {
		sll.unlockBy(mode)
		return false
	}
	return true
}

// selectPredOf walks the chain hand-over-hand and stops at the node
// just before logical index n. On success with n > 0, both the list
// lock and the predecessor's node lock are still held in the requested
// mode and the caller releases them. n == 0 needs no predecessor, so
// nothing is locked for it here and the caller handles the head edge
// under its own list lock.
func (sll *xConcSll[T]) selectPredOf(n int64, mode sllLockMode) (*xConcSllNode[T], bool) {
	if n < 0 {
		// Not checked against len, other goroutines may be growing
		// the chain while we are here.
		return nil, false
	}
	if n == 0 {
		return nil, true
	}

	if !sll.lockAndCheckAlive(mode) {
		return nil, false
	}
	pred := sll.head
	if pred == nil {
		sll.unlockBy(mode)
		return nil, false
	}
	pred.lockBy(mode)
	for step := n; step > 1; step-- {
		last := pred
		pred = last.next
		if pred == nil {
			// Another goroutine trimmed the tail mid-walk.
			last.unlockBy(mode)
			sll.unlockBy(mode)
			return nil, false
		}
		pred.lockBy(mode)
		last.unlockBy(mode)
	}
	// Keep the list locked.
	return pred, true
}

func (sll *xConcSll[T]) Len() int64 {
	if !sll.lockAndCheckAlive(sllReadLock) {
		return sllSentinel
	}
	defer sll.unlockBy(sllReadLock)
	return sll.len
}

func (sll *xConcSll[T]) InsertAt(v T, n int64) int64 {
	node := newXConcSllNode(v)
	if n == 0 {
		if !sll.lockAndCheckAlive(sllWriteLock) {
			return sllSentinel
		}
		node.next = sll.head
		sll.head = node
	} else {
		pred, ok := sll.selectPredOf(n, sllWriteLock)
		if !ok {
			return sllSentinel
		}
		node.next = pred.next
		pred.next = node
		pred.unlockBy(sllWriteLock)
	}

	sll.len++
	newLen := sll.len
	sll.stats.IncreaseInsertedCount()
	sll.stats.RecordLengthChange(1)
	sll.unlockBy(sllWriteLock)
	return newLen
}

func (sll *xConcSll[T]) InsertFirst(v T) int64 {
	return sll.InsertAt(v, 0)
}

// InsertLast reads the length before the insert, racily. Concurrent
// mutators can move the tail between the two steps, in which case the
// insert fails with -1 and the caller retries.
func (sll *xConcSll[T]) InsertLast(v T) int64 {
	return sll.InsertAt(v, sll.Len())
}

func (sll *xConcSll[T]) RemoveAt(n int64) int64 {
	var victim *xConcSllNode[T]
	if n == 0 {
		if !sll.lockAndCheckAlive(sllWriteLock) {
			return sllSentinel
		}
		victim = sll.head
		if victim == nil {
			sll.unlockBy(sllWriteLock)
			return sllSentinel
		}
		sll.head = victim.next
	} else {
		pred, ok := sll.selectPredOf(n, sllWriteLock)
		if !ok {
			return sllSentinel
		}
		victim = pred.next
		if victim == nil {
			// n equals the current length, nothing lives there.
			pred.unlockBy(sllWriteLock)
			sll.unlockBy(sllWriteLock)
			return sllSentinel
		}
		pred.next = victim.next
		pred.unlockBy(sllWriteLock)
	}

	sll.len--
	newLen := sll.len
	sll.teardown(victim.val)
	victim.next = nil
	sll.stats.IncreaseRemovedCount()
	sll.stats.IncreaseTeardownCount()
	sll.stats.RecordLengthChange(-1)
	sll.unlockBy(sllWriteLock)
	return newLen
}

func (sll *xConcSll[T]) RemoveFirst() int64 {
	return sll.RemoveAt(0)
}

func (sll *xConcSll[T]) PopFirst() (T, bool) {
	var zero T
	if !sll.lockAndCheckAlive(sllWriteLock) {
		return zero, false
	}
	defer sll.unlockBy(sllWriteLock)

	node := sll.head
	if node == nil {
		return zero, false
	}
	sll.head = node.next
	sll.len--
	node.next = nil
	sll.stats.IncreasePoppedCount()
	sll.stats.RecordLengthChange(-1)
	// Ownership of the value goes back to the caller, no teardown.
	return node.val, true
}

func (sll *xConcSll[T]) RemoveIf(pred SllValPredicate[T]) int64 {
	if pred == nil {
		return sllSentinel
	}
	return sll.removeFirstMatch(pred)
}

func (sll *xConcSll[T]) RemoveMatched(cmp SllValComparator[T], ref T) int64 {
	if cmp == nil {
		return sllSentinel
	}
	return sll.removeFirstMatch(func(v T) bool {
		return cmp(v, ref) == 0
	})
}

func (sll *xConcSll[T]) removeFirstMatch(match func(v T) bool) int64 {
	if !sll.lockAndCheckAlive(sllWriteLock) {
		return sllSentinel
	}
	defer sll.unlockBy(sllWriteLock)

	// The scan takes no node locks, only the relink below does.
	// Structural writers are already fenced off by the exclusive
	// list lock.
	var prev *xConcSllNode[T]
	node := sll.head
	for node != nil && !match(node.val) {
		prev = node
		node = node.next
	}
	if node == nil {
		return sllSentinel
	}

	if node == sll.head {
		sll.head = node.next
	} else {
		prev.lockBy(sllWriteLock)
		prev.next = node.next
		prev.unlockBy(sllWriteLock)
	}
	sll.teardown(node.val)
	sll.len--
	node.next = nil
	sll.stats.IncreaseRemovedCount()
	sll.stats.IncreaseTeardownCount()
	sll.stats.RecordLengthChange(-1)
	return sll.len
}

func (sll *xConcSll[T]) Get(n int64) (T, bool) {
	var zero T
	if n < 0 {
		return zero, false
	}
	// The node at index n is the predecessor of index n+1.
	node, ok := sll.selectPredOf(n+1, sllReadLock)
	if !ok {
		return zero, false
	}
	v := node.val
	node.unlockBy(sllReadLock)
	sll.unlockBy(sllReadLock)
	return v, true
}

func (sll *xConcSll[T]) GetFirst() (T, bool) {
	return sll.Get(0)
}

func (sll *xConcSll[T]) Find(cmp SllValComparator[T], ref T) (T, bool) {
	var zero T
	if cmp == nil {
		return zero, false
	}
	if !sll.lockAndCheckAlive(sllReadLock) {
		return zero, false
	}
	defer sll.unlockBy(sllReadLock)

	for node := sll.head; node != nil; node = node.next {
		if cmp(node.val, ref) == 0 {
			return node.val, true
		}
	}
	return zero, false
}

func (sll *xConcSll[T]) Foreach(fn func(idx int64, v *T)) error {
	if fn == nil {
		return infra.NewErrorStack("[x-conc-sll] foreach fn is nil")
	}
	if !sll.lockAndCheckAlive(sllReadLock) {
		return infra.NewErrorStack("[x-conc-sll] list was cleared")
	}
	defer sll.unlockBy(sllReadLock)
	sll.foreach(fn)
	return nil
}

// foreach must run under the list lock, at least in read mode.
func (sll *xConcSll[T]) foreach(fn func(idx int64, v *T)) {
	idx := int64(0)
	node := sll.head
	for node != nil {
		// fn may alter the value in place, so lock write.
		node.lockBy(sllWriteLock)
		next := node.next
		fn(idx, &node.val)
		node.unlockBy(sllWriteLock)
		node = next
		idx++
	}
}

func (sll *xConcSll[T]) Print() {
	if !sll.lockAndCheckAlive(sllReadLock) {
		return
	}
	defer sll.unlockBy(sllReadLock)
	if sll.printer == nil {
		return
	}

	builder := strings.Builder{}
	builder.WriteString("(ll:")
	sll.foreach(func(_ int64, v *T) {
		builder.WriteByte(' ')
		builder.WriteString(sll.printer(*v))
	})
	builder.WriteString(")")
	sll.logger.Info(builder.String(), zap.Int64("length", sll.len))
}

func (sll *xConcSll[T]) Clear() {
	if !sll.lockAndCheckAlive(sllWriteLock) {
		// Already invalidated. Stays a no-op for Free's benefit.
		return
	}
	defer sll.unlockBy(sllWriteLock)

	cleared := int64(0)
	node := sll.head
	for node != nil {
		node.lockBy(sllWriteLock)
		sll.teardown(node.val)
		next := node.next
		node.unlockBy(sllWriteLock)
		node.next = nil
		node = next
		sll.len--
		cleared++
	}
	if sll.len != 0 {
		// Structural corruption, not a recoverable state.
		panic("[x-conc-sll] chain length mismatch after clear")
	}
	sll.head = nil
	sll.teardown = nil
	sll.printer = nil
	sll.released = true
	sll.stats.IncreaseTeardownCountBy(cleared)
	sll.stats.RecordLengthChange(-cleared)
}

func (sll *xConcSll[T]) Free() {
	sll.Clear()
	sll.mu.Lock()
	sll.logger = nil
	sll.stats = nil
	sll.mu.Unlock()
}
