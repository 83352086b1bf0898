package assets

import (
	"context"
	"fmt"
	"sync"

	"github.com/milk9111/tiledworld/logger"
	"github.com/milk9111/tiledworld/tiled"
)

type loadResult struct {
	m   *tiled.Map
	err error
}

// loadCell is the state of one dispatched load. The fetch goroutine never
// takes the lock; it hands its single result over done and the polling side
// folds it in. A contended lock means two goroutines are polling.
type loadCell struct {
	mu     sync.Mutex
	status LoadStatus
	m      *tiled.Map
	done   chan loadResult
}

func (c *loadCell) lock(path string) {
	if !c.mu.TryLock() {
		panic(fmt.Sprintf("assets: load state of %s is already locked", path))
	}
}

// settle applies a pending result. Callers hold the lock.
func (c *loadCell) settle() {
	if c.status.State != StatusStarted || c.done == nil {
		return
	}
	select {
	case r := <-c.done:
		if r.err != nil {
			c.status = LoadStatus{State: StatusError, Err: r.err}
		} else {
			c.status = LoadStatus{State: StatusComplete}
			c.m = r.m
		}
	default:
	}
}

// MapLoads tracks asynchronous map loads by path. It is owned by one
// goroutine (the simulation tick); only the fetches run elsewhere.
type MapLoads struct {
	fetcher Fetcher
	cells   map[string]*loadCell
}

func NewMapLoads(fetcher Fetcher) *MapLoads {
	return &MapLoads{
		fetcher: fetcher,
		cells:   make(map[string]*loadCell),
	}
}

// Load starts fetching path in the background, replacing any state already
// tracked for it. A replaced load still runs to completion but its result is
// never observed.
func (l *MapLoads) Load(path string) {
	logger.For("assets").WithField("path", path).Trace("loading map")

	cell := &loadCell{
		status: LoadStatus{State: StatusStarted},
		done:   make(chan loadResult, 1),
	}
	l.cells[path] = cell

	fetch := l.fetcher.Fetch
	go func() {
		m, err := tiled.Load(context.Background(), path, fetch)
		cell.done <- loadResult{m: m, err: err}
	}()
}

// StatusOf reports the state of path without blocking.
func (l *MapLoads) StatusOf(path string) LoadStatus {
	cell, ok := l.cells[path]
	if !ok {
		return LoadStatus{State: StatusNone}
	}
	cell.lock(path)
	defer cell.mu.Unlock()
	cell.settle()
	return cell.status
}

// Take removes path's state and returns its map if the load completed. A
// later Load of the same path starts from scratch.
func (l *MapLoads) Take(path string) (*tiled.Map, bool) {
	cell, ok := l.cells[path]
	if !ok {
		return nil, false
	}
	delete(l.cells, path)
	cell.lock(path)
	defer cell.mu.Unlock()
	cell.settle()
	return cell.m, cell.m != nil
}

// Put records an already decoded map as a completed load.
func (l *MapLoads) Put(path string, m *tiled.Map) {
	l.cells[path] = &loadCell{status: LoadStatus{State: StatusComplete}, m: m}
}

// WhenLoaded drives path's load one step: it starts the load if none is
// tracked, calls fn and forgets the load once it completes, or forgets it
// and returns its error once it fails. It returns nil while the load is in
// flight.
func (l *MapLoads) WhenLoaded(path string, fn func(*tiled.Map)) error {
	status := l.StatusOf(path)
	switch status.State {
	case StatusNone:
		l.Load(path)
	case StatusComplete:
		if m, ok := l.Take(path); ok {
			fn(m)
		}
	case StatusError:
		l.Take(path)
		return status.Err
	}
	return nil
}

// Len returns how many paths are tracked.
func (l *MapLoads) Len() int {
	return len(l.cells)
}
