package dset

import (
	"iter"
	"slices"
)

// FuncDataset derives a value per key by invoking a function on every access.
// Read-only.
//
// Without an explicit key domain the dataset is consulted by key rather than
// enumerated: Contains reports true for every key, and Keys fails with
// ErrUnsupported. With a domain, Keys enumerates it in the supplied order and
// Get outside the domain fails with ErrKeyNotFound.
type FuncDataset[K comparable, V any] struct {
	unscoped
	fn     func(K) (V, error)
	domain map[K]struct{}
	order  []K
}

// Func returns a computed dataset over fn, optionally restricted to the
// given key domain.
func Func[K comparable, V any](fn func(K) (V, error), keys ...K) *FuncDataset[K, V] {
	ds := &FuncDataset[K, V]{fn: fn}
	if len(keys) > 0 {
		ds.domain = make(map[K]struct{}, len(keys))
		for _, k := range keys {
			if _, dup := ds.domain[k]; dup {
				continue
			}
			ds.domain[k] = struct{}{}
			ds.order = append(ds.order, k)
		}
	}
	return ds
}

func (ds *FuncDataset[K, V]) Get(key K) (V, error) {
	if ds.domain != nil {
		if _, ok := ds.domain[key]; !ok {
			var zero V
			return zero, keyNotFound(key)
		}
	}
	return ds.fn(key)
}

func (ds *FuncDataset[K, V]) Contains(key K) (bool, error) {
	if ds.domain == nil {
		return true, nil
	}
	_, ok := ds.domain[key]
	return ok, nil
}

func (ds *FuncDataset[K, V]) Keys() (iter.Seq[K], error) {
	if ds.domain == nil {
		return nil, unsupported("keys of computed dataset without key domain")
	}
	return slices.Values(ds.order), nil
}
