package dset

import "iter"

// GroupKey addresses an entry of a Grouped dataset: the name of the group
// plus the key within it.
type GroupKey[K comparable] struct {
	Group string
	Key   K
}

// Grouped combines named sub-datasets into one dataset over two-level keys.
// Keys enumerate group by group, groups ordered by name. Lifecycle spans all
// groups with the same acquisition rules as Zip. Read-only.
func Grouped[K comparable, V any](groups map[string]Dataset[K, V]) Dataset[GroupKey[K], V] {
	if len(groups) == 0 {
		panic("dset: Grouped requires at least one group")
	}
	names := sortedNames(groups)
	scopes := make([]Scoped, len(names))
	for i, name := range names {
		scopes[i] = groups[name]
	}
	return &groupedDataset[K, V]{names: names, groups: groups, scopes: scopes}
}

type groupedDataset[K comparable, V any] struct {
	names  []string
	groups map[string]Dataset[K, V]
	scopes []Scoped
}

func (ds *groupedDataset[K, V]) Open() error  { return openAll(ds.scopes) }
func (ds *groupedDataset[K, V]) Close() error { return closeAll(ds.scopes) }

func (ds *groupedDataset[K, V]) Get(key GroupKey[K]) (V, error) {
	g, ok := ds.groups[key.Group]
	if !ok {
		var zero V
		return zero, keyNotFound(key)
	}
	v, err := g.Get(key.Key)
	if err != nil {
		if isKeyNotFound(err) {
			return v, keyNotFound(key)
		}
		return v, err
	}
	return v, nil
}

func (ds *groupedDataset[K, V]) Contains(key GroupKey[K]) (bool, error) {
	g, ok := ds.groups[key.Group]
	if !ok {
		return false, nil
	}
	return g.Contains(key.Key)
}

func (ds *groupedDataset[K, V]) Keys() (iter.Seq[GroupKey[K]], error) {
	seqs := make([]iter.Seq[K], len(ds.names))
	for i, name := range ds.names {
		keys, err := ds.groups[name].Keys()
		if err != nil {
			return nil, err
		}
		seqs[i] = keys
	}
	return func(yield func(GroupKey[K]) bool) {
		for i, name := range ds.names {
			for k := range seqs[i] {
				if !yield(GroupKey[K]{Group: name, Key: k}) {
					return
				}
			}
		}
	}, nil
}
