// Package store provides a generic, concurrency-safe in-memory container
// for entities keyed by identifier. It owns entity lifetime, assigns
// identifiers from a per-store sequence, preserves insertion order, and
// enforces at-most-one-owner invariants through named uniqueness indexes.
//
// The store is the single authoritative copy of every entity: all reads
// return snapshots, and mutations become visible only through Insert,
// Update or Remove. A reader-writer lock serializes writers while allowing
// concurrent readers; no operation blocks indefinitely.
package store

import "sync"

// KeyFunc derives an index key from an entity. Returning an empty string
// excludes the entity from that index (used for optional attributes).
type KeyFunc[T any] func(*T) string

// Index describes one uniqueness index: a name and the key derivation.
type Index[T any] struct {
	// Name identifies the index in lookups and duplicate-key errors.
	Name string

	// Key derives the index key. Key normalization (e.g. lowercasing an
	// email) belongs here so that all enforcement paths agree.
	Key KeyFunc[T]
}

// Options configures a Store.
type Options[T any] struct {
	// ID reads the entity identifier.
	ID func(*T) int64

	// SetID writes the entity identifier. Called exactly once per entity,
	// during Insert.
	SetID func(*T, int64)

	// Indexes is the ordered list of uniqueness indexes. Order matters:
	// on insert the first violated index wins, so callers that need a
	// defined precedence (email before username) get it for free.
	Indexes []Index[T]
}

// Store is a generic in-memory entity container.
type Store[T any] struct {
	mu   sync.RWMutex
	opts Options[T]
	seq  *Sequence

	byID    map[int64]*T
	order   []int64
	indexes []indexState[T]
}

// indexState is one live index: its definition plus the key → id mapping.
type indexState[T any] struct {
	def  Index[T]
	keys map[string]int64
}

// New creates an empty store with its own identifier sequence.
func New[T any](opts Options[T]) *Store[T] {
	s := &Store[T]{
		opts: opts,
		seq:  NewSequence(),
		byID: make(map[int64]*T),
	}
	for _, def := range opts.Indexes {
		s.indexes = append(s.indexes, indexState[T]{
			def:  def,
			keys: make(map[string]int64),
		})
	}
	return s
}

// Insert assigns an identifier to entity, registers it in every uniqueness
// index and stores it. If any index key is already owned the insert fails
// with a DuplicateKeyError and the store is left untouched, including the
// identifier sequence's visible effect on the entity.
func (s *Store[T]) Insert(entity *T) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// All-or-nothing: check every index before touching anything.
	keys := make([]string, len(s.indexes))
	for i := range s.indexes {
		key := s.indexes[i].def.Key(entity)
		if key == "" {
			continue
		}
		if _, taken := s.indexes[i].keys[key]; taken {
			return nil, &DuplicateKeyError{Index: s.indexes[i].def.Name, Key: key}
		}
		keys[i] = key
	}

	id := s.seq.Next()
	s.opts.SetID(entity, id)

	stored := *entity
	s.byID[id] = &stored
	s.order = append(s.order, id)
	for i := range s.indexes {
		if keys[i] != "" {
			s.indexes[i].keys[keys[i]] = id
		}
	}

	snapshot := stored
	return &snapshot, nil
}

// Get returns a snapshot of the entity with the given identifier, or
// (nil, false) if it does not exist.
func (s *Store[T]) Get(id int64) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	snapshot := *entity
	return &snapshot, true
}

// FindByIndex returns a snapshot of the entity owning key in the named
// index, or (nil, false) if no entity owns it. Lookups against an index
// name that was never registered return ErrUnknownIndex.
func (s *Store[T]) FindByIndex(index, key string) (*T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.indexes {
		if s.indexes[i].def.Name != index {
			continue
		}
		id, ok := s.indexes[i].keys[key]
		if !ok {
			return nil, false, nil
		}
		snapshot := *s.byID[id]
		return &snapshot, true, nil
	}
	return nil, false, ErrUnknownIndex
}

// Update applies mutate to a working copy of the stored entity and commits
// the result. Returns ErrNotFound if the identifier is absent. If the
// mutation changes an indexed key to a value already owned by another
// entity, the update fails with a DuplicateKeyError and nothing is
// committed. The identifier is preserved regardless of what mutate does.
func (s *Store[T]) Update(id int64, mutate func(*T)) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	next := *current
	mutate(&next)
	s.opts.SetID(&next, id)

	oldKeys := make([]string, len(s.indexes))
	newKeys := make([]string, len(s.indexes))
	for i := range s.indexes {
		oldKeys[i] = s.indexes[i].def.Key(current)
		newKeys[i] = s.indexes[i].def.Key(&next)
		if newKeys[i] == "" || newKeys[i] == oldKeys[i] {
			continue
		}
		if owner, taken := s.indexes[i].keys[newKeys[i]]; taken && owner != id {
			return nil, &DuplicateKeyError{Index: s.indexes[i].def.Name, Key: newKeys[i]}
		}
	}

	s.byID[id] = &next
	for i := range s.indexes {
		if oldKeys[i] == newKeys[i] {
			continue
		}
		if oldKeys[i] != "" {
			delete(s.indexes[i].keys, oldKeys[i])
		}
		if newKeys[i] != "" {
			s.indexes[i].keys[newKeys[i]] = id
		}
	}

	snapshot := next
	return &snapshot, nil
}

// Remove deletes the entity and all of its index entries. Returns
// ErrNotFound if the identifier is absent.
func (s *Store[T]) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}

	for i := range s.indexes {
		if key := s.indexes[i].def.Key(entity); key != "" {
			delete(s.indexes[i].keys, key)
		}
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns snapshots of all entities in insertion order.
func (s *Store[T]) List() []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*T, 0, len(s.order))
	for _, id := range s.order {
		snapshot := *s.byID[id]
		out = append(out, &snapshot)
	}
	return out
}

// Count returns the number of stored entities.
func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
