package dset

import (
	"iter"
	"maps"

	"github.com/puzpuzpuz/xsync/v3"
)

// MapDataset exposes a caller-supplied Go map as a mutable dataset. The map
// is used directly, never copied, so external mutations remain visible. Key
// order is unspecified. Not safe for concurrent use; see SyncMapDataset.
type MapDataset[K comparable, V any] struct {
	unscoped
	m map[K]V
}

// FromMap wraps m. A nil map is replaced by an empty one.
func FromMap[K comparable, V any](m map[K]V) *MapDataset[K, V] {
	if m == nil {
		m = make(map[K]V)
	}
	return &MapDataset[K, V]{m: m}
}

func (ds *MapDataset[K, V]) Get(key K) (V, error) {
	v, ok := ds.m[key]
	if !ok {
		var zero V
		return zero, keyNotFound(key)
	}
	return v, nil
}

func (ds *MapDataset[K, V]) Contains(key K) (bool, error) {
	_, ok := ds.m[key]
	return ok, nil
}

func (ds *MapDataset[K, V]) Keys() (iter.Seq[K], error) {
	return maps.Keys(ds.m), nil
}

func (ds *MapDataset[K, V]) Set(key K, value V) error {
	ds.m[key] = value
	return nil
}

func (ds *MapDataset[K, V]) Delete(key K) error {
	if _, ok := ds.m[key]; !ok {
		return keyNotFound(key)
	}
	delete(ds.m, key)
	return nil
}

// Len returns the number of entries.
func (ds *MapDataset[K, V]) Len() int { return len(ds.m) }

// SyncMapDataset is an in-memory mutable dataset that is safe for concurrent
// use. It is the only variant with that property: the core model is
// single-threaded, and resource-backed datasets in particular must not be
// shared across goroutines without external locking.
type SyncMapDataset[K comparable, V any] struct {
	unscoped
	m *xsync.MapOf[K, V]
}

// NewSyncMap returns an empty concurrency-safe in-memory dataset.
func NewSyncMap[K comparable, V any]() *SyncMapDataset[K, V] {
	return &SyncMapDataset[K, V]{m: xsync.NewMapOf[K, V]()}
}

func (ds *SyncMapDataset[K, V]) Get(key K) (V, error) {
	v, ok := ds.m.Load(key)
	if !ok {
		var zero V
		return zero, keyNotFound(key)
	}
	return v, nil
}

func (ds *SyncMapDataset[K, V]) Contains(key K) (bool, error) {
	_, ok := ds.m.Load(key)
	return ok, nil
}

func (ds *SyncMapDataset[K, V]) Keys() (iter.Seq[K], error) {
	return func(yield func(K) bool) {
		ds.m.Range(func(key K, _ V) bool {
			return yield(key)
		})
	}, nil
}

func (ds *SyncMapDataset[K, V]) Set(key K, value V) error {
	ds.m.Store(key, value)
	return nil
}

func (ds *SyncMapDataset[K, V]) Delete(key K) error {
	if _, ok := ds.m.LoadAndDelete(key); !ok {
		return keyNotFound(key)
	}
	return nil
}

// Len returns the number of entries.
func (ds *SyncMapDataset[K, V]) Len() int { return ds.m.Size() }
