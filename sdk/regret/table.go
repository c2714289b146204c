package regret

import (
	"hash/fnv"
	"sync"
)

// shardCount mirrors the teacher's RegretTable sharding (sdk/solver/regret.go).
const shardCount = 64

type shard struct {
	mu      sync.RWMutex
	entries map[string]*LocalState
}

// Table is a sharded, concurrency-safe map from an arbitrary information-
// state key (e.g. a sorted-dice multiset, or a (dice, claim) pair rendered
// to a string) to its lazily-created LocalState. Used by MCCFR+, where the
// full key space is too large to pre-allocate and independent self-play
// workers must be able to touch disjoint keys without contending on a
// single lock.
type Table struct {
	shards [shardCount]*shard
}

// NewTable allocates an empty sharded regret table.
func NewTable() *Table {
	t := &Table{}
	for i := range t.shards {
		t.shards[i] = &shard{entries: make(map[string]*LocalState)}
	}
	return t
}

func (t *Table) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return t.shards[h.Sum32()%shardCount]
}

// Get returns the LocalState for key, creating it (with n actions and the
// given mode) on first access. Double-checked locking avoids holding the
// write lock on the common read path.
func (t *Table) Get(key string, n int, mode Mode) *LocalState {
	sh := t.shardFor(key)

	sh.mu.RLock()
	if s, ok := sh.entries[key]; ok {
		sh.mu.RUnlock()
		return s
	}
	sh.mu.RUnlock()

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if s, ok := sh.entries[key]; ok {
		return s
	}
	s := NewLocalState(n, mode)
	sh.entries[key] = s
	return s
}

// ForEach visits every (key, LocalState) pair currently in the table. The
// callback must not call back into the table (shard locks are held for the
// duration of each shard's portion of the walk).
func (t *Table) ForEach(fn func(key string, s *LocalState)) {
	for _, sh := range t.shards {
		sh.mu.RLock()
		for k, s := range sh.entries {
			fn(k, s)
		}
		sh.mu.RUnlock()
	}
}

// Size returns the total number of distinct information states seen so far.
func (t *Table) Size() int {
	n := 0
	for _, sh := range t.shards {
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}
