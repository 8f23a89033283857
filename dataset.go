package dset

import (
	"errors"
	"iter"
)

// Dataset is the readable tier of the mapping contract. Concrete variants
// either wrap data held in memory, compute values on demand, derive their
// entries from other datasets, or load them from a file through a Codec.
//
// A dataset never reports the same key twice from Keys, Contains(k) is true
// exactly when k appears in Keys, and Get succeeds for every enumerated key.
// Key order is unspecified unless the variant documents one.
//
// Every dataset carries the Scoped lifecycle. Resource-free variants accept
// Open and Close as no-ops, so callers can treat any dataset uniformly:
//
//	err := dset.Using(ds, func(ds dset.Dataset[string, int]) error {
//		...
//	})
type Dataset[K comparable, V any] interface {
	Scoped

	// Get returns the value for key, or an error wrapping ErrKeyNotFound if
	// the key is absent.
	Get(key K) (V, error)

	// Contains reports whether key is present.
	Contains(key K) (bool, error)

	// Keys enumerates the dataset's keys as a finite, restartable sequence.
	Keys() (iter.Seq[K], error)
}

// MutableDataset is the writable tier: a Dataset that also accepts inserts,
// overwrites and deletions. Read-only constructors return Dataset, writable
// ones return MutableDataset; the distinction is made at construction time,
// not per call.
type MutableDataset[K comparable, V any] interface {
	Dataset[K, V]

	// Set inserts or overwrites the value for key.
	Set(key K, value V) error

	// Delete removes key, or reports an error wrapping ErrKeyNotFound if
	// the key is absent.
	Delete(key K) error
}

// Scoped is the lifecycle protocol. Open acquires whatever resource the
// dataset needs, Close releases it. Close must be idempotent when nothing is
// held. Resource-backed datasets reference-count nested Open calls and
// release on the last Close.
type Scoped interface {
	Open() error
	Close() error
}

// unscoped is embedded by datasets that own no resource.
type unscoped struct{}

func (unscoped) Open() error  { return nil }
func (unscoped) Close() error { return nil }

// Using opens ds, runs fn, and guarantees a Close on every exit path,
// including panics. If both fn and Close fail, the two errors are joined with
// fn's error first.
func Using[D Scoped](ds D, fn func(D) error) (err error) {
	if err := ds.Open(); err != nil {
		return err
	}
	defer func() {
		if cerr := ds.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(ds)
}

// Count returns the number of keys in ds.
func Count[K comparable, V any](ds Dataset[K, V]) (int, error) {
	keys, err := ds.Keys()
	if err != nil {
		return 0, err
	}
	var n int
	for range keys {
		n++
	}
	return n, nil
}

// Each invokes fn for every key-value pair, stopping at the first error.
func Each[K comparable, V any](ds Dataset[K, V], fn func(key K, value V) error) error {
	keys, err := ds.Keys()
	if err != nil {
		return err
	}
	for k := range keys {
		v, err := ds.Get(k)
		if err != nil {
			return err
		}
		if err := fn(k, v); err != nil {
			return err
		}
	}
	return nil
}

// Collect copies the entire dataset into a plain map.
func Collect[K comparable, V any](ds Dataset[K, V]) (map[K]V, error) {
	m := make(map[K]V)
	err := Each(ds, func(k K, v V) error {
		m[k] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Copy transfers every entry of src into dst. Existing keys in dst are
// skipped unless overwrite is set.
func Copy[K comparable, V any](dst MutableDataset[K, V], src Dataset[K, V], overwrite bool) error {
	keys, err := src.Keys()
	if err != nil {
		return err
	}
	for k := range keys {
		if !overwrite {
			ok, err := dst.Contains(k)
			if err != nil {
				return err
			}
			if ok {
				continue
			}
		}
		v, err := src.Get(k)
		if err != nil {
			return err
		}
		if err := dst.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadOnly narrows ds to the readable tier, hiding any write support of the
// underlying variant from the caller.
func ReadOnly[K comparable, V any](ds Dataset[K, V]) Dataset[K, V] {
	return readOnly[K, V]{ds}
}

type readOnly[K comparable, V any] struct {
	src Dataset[K, V]
}

func (ds readOnly[K, V]) Open() error                    { return ds.src.Open() }
func (ds readOnly[K, V]) Close() error                   { return ds.src.Close() }
func (ds readOnly[K, V]) Get(key K) (V, error)           { return ds.src.Get(key) }
func (ds readOnly[K, V]) Contains(key K) (bool, error)   { return ds.src.Contains(key) }
func (ds readOnly[K, V]) Keys() (iter.Seq[K], error)     { return ds.src.Keys() }
