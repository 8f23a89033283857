package dset

import (
	"iter"
	"slices"
)

// Zip composes sources over their key intersection: Get returns the
// per-source values in source order, Keys iterates the first source's keys
// keeping those present in every other source, and Contains is the
// conjunction of all sources. A key present in fewer than all sources is
// absent. Read-only: routing a write to the right source(s) is ambiguous.
//
// Open acquires the sources in order; on a partial failure the
// already-acquired sources are released in reverse order and the failure is
// returned joined with any rollback errors. Close releases in reverse order,
// aggregating failures.
func Zip[K comparable, V any](sources ...Dataset[K, V]) Dataset[K, []V] {
	if len(sources) == 0 {
		panic("dset: Zip requires at least one source")
	}
	return &zipDataset[K, V]{sources: sources, scopes: scopesOf(sources)}
}

type zipDataset[K comparable, V any] struct {
	sources []Dataset[K, V]
	scopes  []Scoped
}

func (ds *zipDataset[K, V]) Open() error  { return openAll(ds.scopes) }
func (ds *zipDataset[K, V]) Close() error { return closeAll(ds.scopes) }

func (ds *zipDataset[K, V]) Get(key K) ([]V, error) {
	ok, err := ds.Contains(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, keyNotFound(key)
	}
	values := make([]V, len(ds.sources))
	for i, src := range ds.sources {
		values[i], err = src.Get(key)
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}

func (ds *zipDataset[K, V]) Contains(key K) (bool, error) {
	return containsAll(ds.sources, key)
}

func (ds *zipDataset[K, V]) Keys() (iter.Seq[K], error) {
	return intersectKeys(ds.sources)
}

// Pair is the result type of Zip2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is the result type of Zip3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Zip2 is Zip over two sources of different value types.
func Zip2[K comparable, A, B any](a Dataset[K, A], b Dataset[K, B]) Dataset[K, Pair[A, B]] {
	return &zip2Dataset[K, A, B]{a: a, b: b, scopes: []Scoped{a, b}}
}

type zip2Dataset[K comparable, A, B any] struct {
	a      Dataset[K, A]
	b      Dataset[K, B]
	scopes []Scoped
}

func (ds *zip2Dataset[K, A, B]) Open() error  { return openAll(ds.scopes) }
func (ds *zip2Dataset[K, A, B]) Close() error { return closeAll(ds.scopes) }

func (ds *zip2Dataset[K, A, B]) Get(key K) (Pair[A, B], error) {
	var pair Pair[A, B]
	ok, err := ds.Contains(key)
	if err != nil {
		return pair, err
	}
	if !ok {
		return pair, keyNotFound(key)
	}
	if pair.First, err = ds.a.Get(key); err != nil {
		return pair, err
	}
	if pair.Second, err = ds.b.Get(key); err != nil {
		return pair, err
	}
	return pair, nil
}

func (ds *zip2Dataset[K, A, B]) Contains(key K) (bool, error) {
	ok, err := ds.a.Contains(key)
	if err != nil || !ok {
		return false, err
	}
	return ds.b.Contains(key)
}

func (ds *zip2Dataset[K, A, B]) Keys() (iter.Seq[K], error) {
	keys, err := ds.a.Keys()
	if err != nil {
		return nil, err
	}
	var result []K
	for k := range keys {
		ok, err := ds.b.Contains(k)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, k)
		}
	}
	return slices.Values(result), nil
}

// Zip3 is Zip over three sources of different value types.
func Zip3[K comparable, A, B, C any](a Dataset[K, A], b Dataset[K, B], c Dataset[K, C]) Dataset[K, Triple[A, B, C]] {
	return &zip3Dataset[K, A, B, C]{a: a, b: b, c: c, scopes: []Scoped{a, b, c}}
}

type zip3Dataset[K comparable, A, B, C any] struct {
	a      Dataset[K, A]
	b      Dataset[K, B]
	c      Dataset[K, C]
	scopes []Scoped
}

func (ds *zip3Dataset[K, A, B, C]) Open() error  { return openAll(ds.scopes) }
func (ds *zip3Dataset[K, A, B, C]) Close() error { return closeAll(ds.scopes) }

func (ds *zip3Dataset[K, A, B, C]) Get(key K) (Triple[A, B, C], error) {
	var tr Triple[A, B, C]
	ok, err := ds.Contains(key)
	if err != nil {
		return tr, err
	}
	if !ok {
		return tr, keyNotFound(key)
	}
	if tr.First, err = ds.a.Get(key); err != nil {
		return tr, err
	}
	if tr.Second, err = ds.b.Get(key); err != nil {
		return tr, err
	}
	if tr.Third, err = ds.c.Get(key); err != nil {
		return tr, err
	}
	return tr, nil
}

func (ds *zip3Dataset[K, A, B, C]) Contains(key K) (bool, error) {
	ok, err := ds.a.Contains(key)
	if err != nil || !ok {
		return false, err
	}
	ok, err = ds.b.Contains(key)
	if err != nil || !ok {
		return false, err
	}
	return ds.c.Contains(key)
}

func (ds *zip3Dataset[K, A, B, C]) Keys() (iter.Seq[K], error) {
	keys, err := ds.a.Keys()
	if err != nil {
		return nil, err
	}
	var result []K
	for k := range keys {
		ok, err := ds.b.Contains(k)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		ok, err = ds.c.Contains(k)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, k)
		}
	}
	return slices.Values(result), nil
}

// Compound is the named flavor of Zip: Get returns a map from part name to
// that part's value. Parts are ordered by name for key enumeration and
// lifecycle purposes. Same intersection and lifecycle rules as Zip.
func Compound[K comparable, V any](parts map[string]Dataset[K, V]) Dataset[K, map[string]V] {
	if len(parts) == 0 {
		panic("dset: Compound requires at least one part")
	}
	names := sortedNames(parts)
	sources := make([]Dataset[K, V], len(names))
	for i, name := range names {
		sources[i] = parts[name]
	}
	return &compoundDataset[K, V]{names: names, sources: sources, scopes: scopesOf(sources)}
}

type compoundDataset[K comparable, V any] struct {
	names   []string
	sources []Dataset[K, V]
	scopes  []Scoped
}

func (ds *compoundDataset[K, V]) Open() error  { return openAll(ds.scopes) }
func (ds *compoundDataset[K, V]) Close() error { return closeAll(ds.scopes) }

func (ds *compoundDataset[K, V]) Get(key K) (map[string]V, error) {
	ok, err := ds.Contains(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, keyNotFound(key)
	}
	values := make(map[string]V, len(ds.sources))
	for i, src := range ds.sources {
		v, err := src.Get(key)
		if err != nil {
			return nil, err
		}
		values[ds.names[i]] = v
	}
	return values, nil
}

func (ds *compoundDataset[K, V]) Contains(key K) (bool, error) {
	return containsAll(ds.sources, key)
}

func (ds *compoundDataset[K, V]) Keys() (iter.Seq[K], error) {
	return intersectKeys(ds.sources)
}

// Union overlays sources: Get returns the value from the first source that
// contains the key, Keys is the deduplicated union in source order.
// Read-only.
func Union[K comparable, V any](sources ...Dataset[K, V]) Dataset[K, V] {
	if len(sources) == 0 {
		panic("dset: Union requires at least one source")
	}
	return &unionDataset[K, V]{sources: sources, scopes: scopesOf(sources)}
}

type unionDataset[K comparable, V any] struct {
	sources []Dataset[K, V]
	scopes  []Scoped
}

func (ds *unionDataset[K, V]) Open() error  { return openAll(ds.scopes) }
func (ds *unionDataset[K, V]) Close() error { return closeAll(ds.scopes) }

func (ds *unionDataset[K, V]) Get(key K) (V, error) {
	for _, src := range ds.sources {
		ok, err := src.Contains(key)
		if err != nil {
			var zero V
			return zero, err
		}
		if ok {
			return src.Get(key)
		}
	}
	var zero V
	return zero, keyNotFound(key)
}

func (ds *unionDataset[K, V]) Contains(key K) (bool, error) {
	for _, src := range ds.sources {
		ok, err := src.Contains(key)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

func (ds *unionDataset[K, V]) Keys() (iter.Seq[K], error) {
	seen := make(map[K]struct{})
	var result []K
	for _, src := range ds.sources {
		keys, err := src.Keys()
		if err != nil {
			return nil, err
		}
		for k := range keys {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			result = append(result, k)
		}
	}
	return slices.Values(result), nil
}

func scopesOf[K comparable, V any](sources []Dataset[K, V]) []Scoped {
	scopes := make([]Scoped, len(sources))
	for i, src := range sources {
		scopes[i] = src
	}
	return scopes
}

func containsAll[K comparable, V any](sources []Dataset[K, V], key K) (bool, error) {
	for _, src := range sources {
		ok, err := src.Contains(key)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// intersectKeys iterates the first source's keys and keeps those present in
// every other source. Membership checks can fail, so the intersection is
// computed up front; value data is never copied.
func intersectKeys[K comparable, V any](sources []Dataset[K, V]) (iter.Seq[K], error) {
	keys, err := sources[0].Keys()
	if err != nil {
		return nil, err
	}
	rest := sources[1:]
	var result []K
outer:
	for k := range keys {
		for _, src := range rest {
			ok, err := src.Contains(k)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue outer
			}
		}
		result = append(result, k)
	}
	return slices.Values(result), nil
}
