package dset

import "iter"

// MapValues wraps src, transforming every value through fn on read. Keys,
// Contains and lifecycle delegate to src unchanged. The result is read-only;
// use MapValuesInv when the transform has an inverse.
func MapValues[K comparable, V1, V2 any](src Dataset[K, V1], fn func(V1) (V2, error)) Dataset[K, V2] {
	return &valueMapped[K, V1, V2]{src: src, fn: fn}
}

type valueMapped[K comparable, V1, V2 any] struct {
	src Dataset[K, V1]
	fn  func(V1) (V2, error)
}

func (ds *valueMapped[K, V1, V2]) Open() error  { return ds.src.Open() }
func (ds *valueMapped[K, V1, V2]) Close() error { return ds.src.Close() }

func (ds *valueMapped[K, V1, V2]) Get(key K) (V2, error) {
	v, err := ds.src.Get(key)
	if err != nil {
		var zero V2
		return zero, err
	}
	return ds.fn(v)
}

func (ds *valueMapped[K, V1, V2]) Contains(key K) (bool, error) {
	return ds.src.Contains(key)
}

func (ds *valueMapped[K, V1, V2]) Keys() (iter.Seq[K], error) {
	return ds.src.Keys()
}

// MapValuesInv is MapValues for an invertible transform: writes go through
// inv into the mutable source, so Set(k, v) stores inv(v), and a subsequent
// Get(k) yields fn(inv(v)).
func MapValuesInv[K comparable, V1, V2 any](src MutableDataset[K, V1], fn func(V1) (V2, error), inv func(V2) (V1, error)) MutableDataset[K, V2] {
	return &invValueMapped[K, V1, V2]{
		valueMapped: valueMapped[K, V1, V2]{src: src, fn: fn},
		mut:         src,
		inv:         inv,
	}
}

type invValueMapped[K comparable, V1, V2 any] struct {
	valueMapped[K, V1, V2]
	mut MutableDataset[K, V1]
	inv func(V2) (V1, error)
}

func (ds *invValueMapped[K, V1, V2]) Set(key K, value V2) error {
	v, err := ds.inv(value)
	if err != nil {
		return err
	}
	return ds.mut.Set(key, v)
}

func (ds *invValueMapped[K, V1, V2]) Delete(key K) error {
	return ds.mut.Delete(key)
}

// MapKeys wraps src, translating the caller's key space K1 into the source's
// key space K2 through the bijection fwd. Keys are enumerated through inv,
// the inverse of fwd; pass a nil inv to get a dataset that is consulted by
// key only (its Keys fails with ErrUnsupported).
func MapKeys[K1, K2 comparable, V any](src Dataset[K2, V], fwd func(K1) K2, inv func(K2) K1) Dataset[K1, V] {
	return &keyMapped[K1, K2, V]{src: src, fwd: fwd, inv: inv}
}

type keyMapped[K1, K2 comparable, V any] struct {
	src Dataset[K2, V]
	fwd func(K1) K2
	inv func(K2) K1
}

func (ds *keyMapped[K1, K2, V]) Open() error  { return ds.src.Open() }
func (ds *keyMapped[K1, K2, V]) Close() error { return ds.src.Close() }

func (ds *keyMapped[K1, K2, V]) Get(key K1) (V, error) {
	v, err := ds.src.Get(ds.fwd(key))
	if err != nil {
		var zero V
		if isKeyNotFound(err) {
			return zero, keyNotFound(key)
		}
		return zero, err
	}
	return v, nil
}

func (ds *keyMapped[K1, K2, V]) Contains(key K1) (bool, error) {
	return ds.src.Contains(ds.fwd(key))
}

func (ds *keyMapped[K1, K2, V]) Keys() (iter.Seq[K1], error) {
	if ds.inv == nil {
		return nil, unsupported("keys of key-mapped dataset without inverse")
	}
	keys, err := ds.src.Keys()
	if err != nil {
		return nil, err
	}
	return func(yield func(K1) bool) {
		for k := range keys {
			if !yield(ds.inv(k)) {
				return
			}
		}
	}, nil
}

// MapKeysMutable is MapKeys over a mutable source, forwarding writes through
// the key bijection.
func MapKeysMutable[K1, K2 comparable, V any](src MutableDataset[K2, V], fwd func(K1) K2, inv func(K2) K1) MutableDataset[K1, V] {
	return &mutKeyMapped[K1, K2, V]{
		keyMapped: keyMapped[K1, K2, V]{src: src, fwd: fwd, inv: inv},
		mut:       src,
	}
}

type mutKeyMapped[K1, K2 comparable, V any] struct {
	keyMapped[K1, K2, V]
	mut MutableDataset[K2, V]
}

func (ds *mutKeyMapped[K1, K2, V]) Set(key K1, value V) error {
	return ds.mut.Set(ds.fwd(key), value)
}

func (ds *mutKeyMapped[K1, K2, V]) Delete(key K1) error {
	err := ds.mut.Delete(ds.fwd(key))
	if err != nil && isKeyNotFound(err) {
		return keyNotFound(key)
	}
	return err
}
