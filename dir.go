package dset

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
)

// DirDataset stores one file per key under a root directory. Keys are
// slash-separated paths relative to the root, values are raw file contents.
// The dataset owns no handle, so no Open/Close ceremony is needed. Writes
// are rejected unless the dataset was constructed writable.
type DirDataset struct {
	unscoped
	root     string
	writable bool
}

// Dir returns a dataset over the files under root.
func Dir(root string, writable bool) *DirDataset {
	return &DirDataset{root: root, writable: writable}
}

// Root returns the root directory.
func (ds *DirDataset) Root() string { return ds.root }

func (ds *DirDataset) path(key string) string {
	return filepath.Join(ds.root, filepath.FromSlash(key))
}

func (ds *DirDataset) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(ds.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, keyNotFound(key)
		}
		return nil, &ResourceError{Path: ds.path(key), Err: err}
	}
	return data, nil
}

func (ds *DirDataset) Contains(key string) (bool, error) {
	st, err := os.Stat(ds.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &ResourceError{Path: ds.path(key), Err: err}
	}
	return st.Mode().IsRegular(), nil
}

func (ds *DirDataset) Keys() (iter.Seq[string], error) {
	var keys []string
	err := filepath.WalkDir(ds.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, err := filepath.Rel(ds.root, path)
			if err != nil {
				return err
			}
			keys = append(keys, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return slices.Values([]string(nil)), nil
		}
		return nil, &ResourceError{Path: ds.root, Err: err}
	}
	return slices.Values(keys), nil
}

func (ds *DirDataset) Set(key string, value []byte) error {
	if !ds.writable {
		return unsupported("set on read-only directory dataset")
	}
	path := ds.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &ResourceError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, value, 0o644); err != nil {
		return &ResourceError{Path: path, Err: err}
	}
	return nil
}

func (ds *DirDataset) Delete(key string) error {
	if !ds.writable {
		return unsupported("delete on read-only directory dataset")
	}
	err := os.Remove(ds.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return keyNotFound(key)
		}
		return &ResourceError{Path: ds.path(key), Err: err}
	}
	return nil
}
