package service

import "sync"

// sectionLocks serializes admissions per section id. Entries are reference
// counted and removed once the last holder releases, so the map stays
// bounded by the number of sections under concurrent admission.
type sectionLocks struct {
	mu    sync.Mutex
	locks map[int64]*sectionLock
}

type sectionLock struct {
	mu   sync.Mutex
	refs int
}

func newSectionLocks() *sectionLocks {
	return &sectionLocks{locks: make(map[int64]*sectionLock)}
}

// acquire blocks until the caller holds the lock for the given section.
func (l *sectionLocks) acquire(sectionID int64) {
	l.mu.Lock()
	entry, ok := l.locks[sectionID]
	if !ok {
		entry = &sectionLock{}
		l.locks[sectionID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

// release gives up the section lock and drops the entry when unused.
func (l *sectionLocks) release(sectionID int64) {
	l.mu.Lock()
	entry := l.locks[sectionID]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, sectionID)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
