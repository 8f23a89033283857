package dset

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

var boltRootBucket = []byte("entries")

// BoltCodec persists each key as a named entry inside a Bolt database file.
// Slash-separated keys ("a/b/c") map to nested buckets, so structured key
// spaces become a hierarchy inside the file; flat keys live in the root
// bucket. Values are msgpack-encoded.
//
// This is the lazy/partial persistence strategy: nothing is decoded eagerly,
// and every Get, Set and Delete runs its own transaction against the open
// handle, so large containers are never read or rewritten in full.
func BoltCodec[V any]() Codec[string, V] {
	return boltCodec[V]{}
}

type boltCodec[V any] struct{}

func (boltCodec[V]) Name() string               { return "bolt" }
func (boltCodec[V]) SupportsPartialWrite() bool { return true }

func (c boltCodec[V]) Open(path string, mode Mode) (Handle[string, V], error) {
	switch mode {
	case ModeRead:
		// Bolt creates missing files; reject them here to keep read mode honest.
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
	case ModeTruncate:
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	case ModeAppend:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	default:
		return nil, badMode(mode)
	}
	db, err := bbolt.Open(path, 0o666, &bbolt.Options{
		Timeout:  10 * time.Second,
		ReadOnly: mode == ModeRead,
	})
	if err != nil {
		return nil, err
	}
	if mode.writable() {
		err = db.Update(func(tx *bbolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(boltRootBucket)
			return err
		})
		if err != nil {
			db.Close()
			return nil, backendErrf("bolt", err, "preparing %s", path)
		}
	}
	return &boltHandle[V]{db: db}, nil
}

type boltHandle[V any] struct {
	db *bbolt.DB
}

func (h *boltHandle[V]) Close() error { return h.db.Close() }

func (h *boltHandle[V]) Get(key string) (V, error) {
	var v V
	err := h.db.View(func(tx *bbolt.Tx) error {
		b, leaf := boltLookup(tx, key)
		if b == nil {
			return keyNotFound(key)
		}
		data := b.Get(leaf)
		if data == nil {
			return keyNotFound(key)
		}
		return decodeValue(data, &v)
	})
	return v, err
}

func (h *boltHandle[V]) Set(key string, value V) error {
	data, err := encodeValue(value)
	if err != nil {
		return err
	}
	return h.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(boltRootBucket)
		groups, leaf := splitBoltKey(key)
		for _, g := range groups {
			b, err = b.CreateBucketIfNotExists([]byte(g))
			if err != nil {
				return err
			}
		}
		return b.Put([]byte(leaf), data)
	})
}

func (h *boltHandle[V]) Delete(key string) error {
	return h.db.Update(func(tx *bbolt.Tx) error {
		b, leaf := boltLookup(tx, key)
		if b == nil || b.Get(leaf) == nil {
			return keyNotFound(key)
		}
		return b.Delete(leaf)
	})
}

func (h *boltHandle[V]) Contains(key string) (bool, error) {
	var ok bool
	err := h.db.View(func(tx *bbolt.Tx) error {
		b, leaf := boltLookup(tx, key)
		ok = b != nil && b.Get(leaf) != nil
		return nil
	})
	return ok, err
}

func (h *boltHandle[V]) Keys() (iter.Seq[string], error) {
	var keys []string
	err := h.db.View(func(tx *bbolt.Tx) error {
		root := tx.Bucket(boltRootBucket)
		if root == nil {
			return nil
		}
		return collectBoltKeys(root, "", &keys)
	})
	if err != nil {
		return nil, err
	}
	return slices.Values(keys), nil
}

func splitBoltKey(key string) (groups []string, leaf string) {
	parts := strings.Split(key, "/")
	return parts[:len(parts)-1], parts[len(parts)-1]
}

func boltLookup(tx *bbolt.Tx, key string) (*bbolt.Bucket, []byte) {
	b := tx.Bucket(boltRootBucket)
	if b == nil {
		return nil, nil
	}
	groups, leaf := splitBoltKey(key)
	for _, g := range groups {
		b = b.Bucket([]byte(g))
		if b == nil {
			return nil, nil
		}
	}
	return b, []byte(leaf)
}

func collectBoltKeys(b *bbolt.Bucket, prefix string, keys *[]string) error {
	return b.ForEach(func(k, v []byte) error {
		name := prefix + string(k)
		if v == nil {
			if sub := b.Bucket(k); sub != nil {
				return collectBoltKeys(sub, name+"/", keys)
			}
			return nil
		}
		*keys = append(*keys, name)
		return nil
	})
}
