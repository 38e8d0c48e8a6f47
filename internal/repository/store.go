package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"musicstore/internal/events"
	"musicstore/internal/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidPatch = errors.New("invalid patch")
)

// Record is the constraint every stored entity satisfies through its pointer.
type Record[T any] interface {
	*T
	GetID() string
	SetID(id string)
}

type Publisher interface {
	Publish(c events.Change)
}

// Store is the in-memory ordered collection of one entity type. When a KV is
// attached, every mutation writes the whole collection under Key before it
// becomes visible; a failed write leaves the collection unchanged. Changes are
// published while the write lock is held, so subscribers see them in commit
// order. Publishers must not block or call back into the store.
//
// IDs are expected to be unique but are not verified. Lookups return the
// first match.
type Store[T any, P Record[T]] struct {
	mu    sync.RWMutex
	key   string
	items []T
	kv    storage.KV
	pub   Publisher
	newID func() string
}

type Option func(*storeOptions)

type storeOptions struct {
	kv    storage.KV
	pub   Publisher
	newID func() string
}

func WithKV(kv storage.KV) Option {
	return func(o *storeOptions) { o.kv = kv }
}

func WithPublisher(p Publisher) Option {
	return func(o *storeOptions) { o.pub = p }
}

// WithIDGenerator replaces the uuid generator. Handy in tests.
func WithIDGenerator(fn func() string) Option {
	return func(o *storeOptions) { o.newID = fn }
}

func NewStore[T any, P Record[T]](key string, opts ...Option) *Store[T, P] {
	o := storeOptions{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T, P]{
		key:   key,
		kv:    o.kv,
		pub:   o.pub,
		newID: o.newID,
	}
}

func (s *Store[T, P]) Key() string { return s.key }

// Hydrate loads the collection from the KV. When the key has never been
// written, seed becomes the collection and is persisted.
func (s *Store[T, P]) Hydrate(ctx context.Context, seed []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kv == nil {
		s.items = clone(seed)
		return nil
	}

	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		items := clone(seed)
		if err := s.persist(ctx, items); err != nil {
			return err
		}
		s.items = items
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", s.key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("decode %s: %w", s.key, err)
	}
	s.items = items
	return nil
}

// List returns a shallow copy in stored order. Nested slices and maps are
// shared with the store and must not be mutated by callers.
func (s *Store[T, P]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clone(s.items)
}

func (s *Store[T, P]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

func (s *Store[T, P]) GetByID(id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], nil
	}
	var zero T
	return zero, ErrNotFound
}

// Find returns the first record matching pred.
func (s *Store[T, P]) Find(pred func(T) bool) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		if pred(it) {
			return it, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Create assigns a fresh id, overwriting any id rec carries, and appends it.
func (s *Store[T, P]) Create(ctx context.Context, rec T) (T, error) {
	P(&rec).SetID(s.newID())

	s.mu.Lock()
	next := append(clone(s.items), rec)
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		var zero T
		return zero, err
	}
	s.publish(events.OpCreate, P(&rec).GetID())
	s.mu.Unlock()
	return rec, nil
}

// Upsert shallow-merges a JSON object into the record whose id matches the
// patch's "id". Top-level keys present in the patch win; absent keys keep
// their stored values. Without a match the patch is appended as a new record,
// generating an id if the patch has none. The bool reports creation.
//
// prepare, when not nil, sees the resulting record before it is stored and
// may normalise it; an error aborts the upsert.
func (s *Store[T, P]) Upsert(ctx context.Context, patch []byte, prepare func(*T) error) (T, bool, error) {
	var zero T

	var fields map[string]jsoniter.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil || fields == nil {
		return zero, false, fmt.Errorf("%w: expected a JSON object", ErrInvalidPatch)
	}

	var id string
	if raw, ok := fields["id"]; ok {
		if err := json.Unmarshal(raw, &id); err != nil {
			return zero, false, fmt.Errorf("%w: id must be a string", ErrInvalidPatch)
		}
	}

	s.mu.Lock()

	idx := -1
	if id != "" {
		idx = s.indexOf(id)
	}

	var rec T
	if idx < 0 {
		if err := json.Unmarshal(patch, &rec); err != nil {
			s.mu.Unlock()
			return zero, false, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
		}
		if id == "" {
			P(&rec).SetID(s.newID())
		}
		if prepare != nil {
			if err := prepare(&rec); err != nil {
				s.mu.Unlock()
				return zero, false, err
			}
		}
		next := append(clone(s.items), rec)
		if err := s.commit(ctx, next); err != nil {
			s.mu.Unlock()
			return zero, false, err
		}
		s.publish(events.OpCreate, P(&rec).GetID())
		s.mu.Unlock()
		return rec, true, nil
	}

	merged, err := mergeShallow(s.items[idx], fields)
	if err != nil {
		s.mu.Unlock()
		return zero, false, err
	}
	rec = merged
	P(&rec).SetID(id)
	if prepare != nil {
		if err := prepare(&rec); err != nil {
			s.mu.Unlock()
			return zero, false, err
		}
	}

	next := clone(s.items)
	next[idx] = rec
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return zero, false, err
	}
	s.publish(events.OpUpdate, id)
	s.mu.Unlock()
	return rec, false, nil
}

// Update replaces the first record with rec's id. A miss returns ErrNotFound
// and mutates nothing.
func (s *Store[T, P]) Update(ctx context.Context, rec T) (T, error) {
	var zero T
	id := P(&rec).GetID()

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return zero, ErrNotFound
	}
	next := clone(s.items)
	next[idx] = rec
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return zero, err
	}
	s.publish(events.OpUpdate, id)
	s.mu.Unlock()
	return rec, nil
}

// Delete removes the first record with id. A miss returns ErrNotFound.
func (s *Store[T, P]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	next := make([]T, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.publish(events.OpDelete, id)
	s.mu.Unlock()
	return nil
}

// Replace swaps the whole collection, used by seeding and imports.
func (s *Store[T, P]) Replace(ctx context.Context, recs []T) error {
	s.mu.Lock()
	if err := s.commit(ctx, clone(recs)); err != nil {
		s.mu.Unlock()
		return err
	}
	s.publish(events.OpReplace, "")
	s.mu.Unlock()
	return nil
}

// commit must be called with mu held.
func (s *Store[T, P]) commit(ctx context.Context, next []T) error {
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

func (s *Store[T, P]) persist(ctx context.Context, items []T) error {
	if s.kv == nil {
		return nil
	}
	raw, err := encode(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", s.key, err)
	}
	return nil
}

func (s *Store[T, P]) publish(op events.Op, id string) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(events.Change{Collection: s.key, Op: op, ID: id})
}

func (s *Store[T, P]) indexOf(id string) int {
	for i := range s.items {
		if P(&s.items[i]).GetID() == id {
			return i
		}
	}
	return -1
}

func mergeShallow[T any](base T, fields map[string]jsoniter.RawMessage) (T, error) {
	var zero T

	raw, err := json.Marshal(base)
	if err != nil {
		return zero, err
	}
	current := map[string]jsoniter.RawMessage{}
	if err := json.Unmarshal(raw, &current); err != nil {
		return zero, err
	}
	for k, v := range fields {
		current[k] = v
	}

	raw, err = json.Marshal(current)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return out, nil
}

func encode[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
