package ledger

import (
	"slices"
	"sync"
)

// accountLocks hands out per-account mutexes. Keys are always acquired in
// sorted order so two transfers over the same pair in opposite directions
// cannot deadlock.
type accountLocks struct {
	mu   sync.Mutex
	held map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newAccountLocks() *accountLocks {
	return &accountLocks{held: make(map[string]*lockEntry)}
}

// Lock acquires every key and returns the function releasing them
func (l *accountLocks) Lock(keys ...string) func() {
	keys = slices.Clone(keys)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	entries := make([]*lockEntry, len(keys))
	l.mu.Lock()
	for i, k := range keys {
		e, ok := l.held[k]
		if !ok {
			e = &lockEntry{}
			l.held[k] = e
		}
		e.refs++
		entries[i] = e
	}
	l.mu.Unlock()

	for _, e := range entries {
		e.mu.Lock()
	}
	return func() {
		for i := len(entries) - 1; i >= 0; i-- {
			entries[i].mu.Unlock()
		}
		l.mu.Lock()
		for i, k := range keys {
			entries[i].refs--
			if entries[i].refs == 0 {
				delete(l.held, k)
			}
		}
		l.mu.Unlock()
	}
}

// size is the number of keys currently tracked
func (l *accountLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}
