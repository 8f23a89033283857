package dset

import (
	"errors"
	"iter"
	"slices"
)

// Subset restricts src to the given keys, in the given order. Get outside
// the subset fails with ErrKeyNotFound even if src contains the key. With
// checkPresent, Open verifies after acquiring src that every subset key is
// actually present.
func Subset[K comparable, V any](src Dataset[K, V], keys []K, checkPresent bool) Dataset[K, V] {
	return newSubset(src, keys, checkPresent)
}

// MutableSubset is Subset over a mutable source; writes outside the subset
// fail with ErrKeyNotFound.
func MutableSubset[K comparable, V any](src MutableDataset[K, V], keys []K, checkPresent bool) MutableDataset[K, V] {
	return &mutSubset[K, V]{subsetDataset: *newSubset[K, V](src, keys, checkPresent), mut: src}
}

func newSubset[K comparable, V any](src Dataset[K, V], keys []K, checkPresent bool) *subsetDataset[K, V] {
	ds := &subsetDataset[K, V]{src: src, set: make(map[K]struct{}, len(keys)), check: checkPresent}
	for _, k := range keys {
		if _, dup := ds.set[k]; dup {
			continue
		}
		ds.set[k] = struct{}{}
		ds.order = append(ds.order, k)
	}
	return ds
}

type subsetDataset[K comparable, V any] struct {
	src   Dataset[K, V]
	set   map[K]struct{}
	order []K
	check bool
}

func (ds *subsetDataset[K, V]) Open() error {
	if err := ds.src.Open(); err != nil {
		return err
	}
	if ds.check {
		for _, k := range ds.order {
			ok, err := ds.src.Contains(k)
			if err == nil && !ok {
				err = keyNotFound(k)
			}
			if err != nil {
				if cerr := ds.src.Close(); cerr != nil {
					err = errors.Join(err, cerr)
				}
				return err
			}
		}
	}
	return nil
}

func (ds *subsetDataset[K, V]) Close() error { return ds.src.Close() }

func (ds *subsetDataset[K, V]) Get(key K) (V, error) {
	if _, ok := ds.set[key]; !ok {
		var zero V
		return zero, keyNotFound(key)
	}
	return ds.src.Get(key)
}

func (ds *subsetDataset[K, V]) Contains(key K) (bool, error) {
	_, ok := ds.set[key]
	return ok, nil
}

func (ds *subsetDataset[K, V]) Keys() (iter.Seq[K], error) {
	return slices.Values(ds.order), nil
}

type mutSubset[K comparable, V any] struct {
	subsetDataset[K, V]
	mut MutableDataset[K, V]
}

func (ds *mutSubset[K, V]) Set(key K, value V) error {
	if _, ok := ds.set[key]; !ok {
		return keyNotFound(key)
	}
	return ds.mut.Set(key, value)
}

func (ds *mutSubset[K, V]) Delete(key K) error {
	if _, ok := ds.set[key]; !ok {
		return keyNotFound(key)
	}
	return ds.mut.Delete(key)
}

// FilterKeys restricts src to keys satisfying pred. Keys enumeration stays
// lazy since pred cannot fail. Read-only.
func FilterKeys[K comparable, V any](src Dataset[K, V], pred func(K) bool) Dataset[K, V] {
	return &filterDataset[K, V]{src: src, pred: pred}
}

type filterDataset[K comparable, V any] struct {
	src  Dataset[K, V]
	pred func(K) bool
}

func (ds *filterDataset[K, V]) Open() error  { return ds.src.Open() }
func (ds *filterDataset[K, V]) Close() error { return ds.src.Close() }

func (ds *filterDataset[K, V]) Get(key K) (V, error) {
	if !ds.pred(key) {
		var zero V
		return zero, keyNotFound(key)
	}
	return ds.src.Get(key)
}

func (ds *filterDataset[K, V]) Contains(key K) (bool, error) {
	if !ds.pred(key) {
		return false, nil
	}
	return ds.src.Contains(key)
}

func (ds *filterDataset[K, V]) Keys() (iter.Seq[K], error) {
	keys, err := ds.src.Keys()
	if err != nil {
		return nil, err
	}
	return func(yield func(K) bool) {
		for k := range keys {
			if ds.pred(k) && !yield(k) {
				return
			}
		}
	}, nil
}
