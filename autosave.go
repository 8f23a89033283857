package dset

import (
	"iter"
	"slices"
)

// AutoSavingDataset reads through src and persists every fetched value into
// dst, so repeated reads hit dst instead of recomputing or re-fetching. Keys
// and Contains reflect src. The dataset itself is read-only; dst absorbs the
// writes.
type AutoSavingDataset[K comparable, V any] struct {
	src Dataset[K, V]
	dst MutableDataset[K, V]
}

// AutoSaving wraps src with a persistent destination cache.
func AutoSaving[K comparable, V any](src Dataset[K, V], dst MutableDataset[K, V]) *AutoSavingDataset[K, V] {
	return &AutoSavingDataset[K, V]{src: src, dst: dst}
}

// Src returns the dataset values are fetched from.
func (ds *AutoSavingDataset[K, V]) Src() Dataset[K, V] { return ds.src }

// Dst returns the dataset fetched values are saved to.
func (ds *AutoSavingDataset[K, V]) Dst() MutableDataset[K, V] { return ds.dst }

func (ds *AutoSavingDataset[K, V]) Open() error {
	return openAll([]Scoped{ds.src, ds.dst})
}

func (ds *AutoSavingDataset[K, V]) Close() error {
	return closeAll([]Scoped{ds.src, ds.dst})
}

func (ds *AutoSavingDataset[K, V]) Get(key K) (V, error) {
	ok, err := ds.dst.Contains(key)
	if err != nil {
		var zero V
		return zero, err
	}
	if ok {
		return ds.dst.Get(key)
	}
	v, err := ds.src.Get(key)
	if err != nil {
		return v, err
	}
	if err := ds.dst.Set(key, v); err != nil {
		return v, err
	}
	return v, nil
}

func (ds *AutoSavingDataset[K, V]) Contains(key K) (bool, error) {
	return ds.src.Contains(key)
}

func (ds *AutoSavingDataset[K, V]) Keys() (iter.Seq[K], error) {
	return ds.src.Keys()
}

// Unsaved enumerates the keys of src not yet present in dst.
func (ds *AutoSavingDataset[K, V]) Unsaved() (iter.Seq[K], error) {
	keys, err := ds.src.Keys()
	if err != nil {
		return nil, err
	}
	var result []K
	for k := range keys {
		ok, err := ds.dst.Contains(k)
		if err != nil {
			return nil, err
		}
		if !ok {
			result = append(result, k)
		}
	}
	return slices.Values(result), nil
}

// SaveAll persists every entry of src into dst.
func (ds *AutoSavingDataset[K, V]) SaveAll(overwrite bool) error {
	return Copy(ds.dst, ds.src, overwrite)
}
