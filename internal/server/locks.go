package server

import "sync"

// gameLocks serializes mutations per game ID. Entries are dropped once no
// request holds or waits on them.
type gameLocks struct {
	mu    sync.Mutex
	locks map[string]*gameLock
}

type gameLock struct {
	sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{locks: make(map[string]*gameLock)}
}

// lock blocks until id is free and returns the matching unlock.
func (g *gameLocks) lock(id string) func() {
	g.mu.Lock()
	l, ok := g.locks[id]
	if !ok {
		l = &gameLock{}
		g.locks[id] = l
	}
	l.refs++
	g.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		g.mu.Lock()
		if l.refs--; l.refs == 0 {
			delete(g.locks, id)
		}
		g.mu.Unlock()
	}
}

func (g *gameLocks) len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.locks)
}
