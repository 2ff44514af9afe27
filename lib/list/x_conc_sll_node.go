package list

import "sync"

type sllLockMode uint8

const (
	sllReadLock sllLockMode = iota
	sllWriteLock
)

// xConcSllNode owns its next pointer and value. Both are guarded by the
// node's own rwlock, distinct from the list lock, which is what lets a
// traversal pin single nodes instead of the whole chain.
type xConcSllNode[T any] struct {
	next *xConcSllNode[T]
	val  T
	mu   sync.RWMutex
}

func newXConcSllNode[T any](v T) *xConcSllNode[T] {
	return &xConcSllNode[T]{
		val: v,
	}
}

func (node *xConcSllNode[T]) lockBy(mode sllLockMode) {
	if mode == sllWriteLock {
		node.mu.Lock()
	} else {
		node.mu.RLock()
	}
}

func (node *xConcSllNode[T]) unlockBy(mode sllLockMode) {
	if mode == sllWriteLock {
		node.mu.Unlock()
	} else {
		node.mu.RUnlock()
	}
}
