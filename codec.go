package dset

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"maps"
	"os"
	"path/filepath"
)

// Mode governs how a file dataset treats its backing file.
type Mode int

const (
	// ModeRead opens an existing file for reading; writes are rejected.
	ModeRead Mode = iota
	// ModeTruncate starts from an empty mapping and writes it out on close.
	ModeTruncate
	// ModeAppend loads the file if it exists, starts empty otherwise, and
	// accepts writes.
	ModeAppend
)

func (m Mode) writable() bool { return m == ModeTruncate || m == ModeAppend }
func (m Mode) valid() bool    { return m >= ModeRead && m <= ModeAppend }

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeTruncate:
		return "truncate"
	case ModeAppend:
		return "append"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Codec ties a file dataset to a concrete file representation. Open acquires
// the backing file and returns the resource handle; the dataset core never
// looks past this boundary into the file's byte layout.
//
// Open reports plain filesystem errors for acquisition failures (the core
// wraps them into ResourceError) and BackendError for decode failures.
type Codec[K comparable, V any] interface {
	// Name identifies the codec in errors and logs.
	Name() string

	// Open acquires the file at path and returns a handle over its entries.
	Open(path string, mode Mode) (Handle[K, V], error)

	// SupportsPartialWrite reports whether the codec's handle persists each
	// write as it happens. Whole-mapping codecs buffer writes in memory and
	// re-encode the full mapping on Close.
	SupportsPartialWrite() bool
}

// Handle is the resource handle behind an open file dataset. It is created
// by Codec.Open, used exclusively by one FileDataset instance during its
// scope, and released by Close. Close flushes buffered writes, if any.
type Handle[K comparable, V any] interface {
	Get(key K) (V, error)
	Set(key K, value V) error
	Delete(key K) error
	Contains(key K) (bool, error)
	Keys() (iter.Seq[K], error)
	Close() error
}

// WholeFile builds a codec out of a decode/encode pair over the entire
// mapping: opening eagerly decodes the file into memory, closing re-encodes
// it if anything was written. This is the whole-mapping persistence strategy;
// codecs over large containers should implement Codec directly instead.
func WholeFile[K comparable, V any](name string, decode func(io.Reader) (map[K]V, error), encode func(io.Writer, map[K]V) error) Codec[K, V] {
	return &wholeFileCodec[K, V]{name: name, decode: decode, encode: encode}
}

type wholeFileCodec[K comparable, V any] struct {
	name   string
	decode func(io.Reader) (map[K]V, error)
	encode func(io.Writer, map[K]V) error
}

func (c *wholeFileCodec[K, V]) Name() string               { return c.name }
func (c *wholeFileCodec[K, V]) SupportsPartialWrite() bool { return false }

func (c *wholeFileCodec[K, V]) Open(path string, mode Mode) (Handle[K, V], error) {
	var entries map[K]V
	var dirty bool
	switch mode {
	case ModeTruncate:
		// Truncation takes effect even if nothing is ever written.
		entries = make(map[K]V)
		dirty = true
	case ModeRead, ModeAppend:
		f, err := os.Open(path)
		if err != nil {
			if mode == ModeAppend && errors.Is(err, fs.ErrNotExist) {
				entries = make(map[K]V)
				break
			}
			return nil, err
		}
		entries, err = c.decode(f)
		f.Close()
		if err != nil {
			return nil, backendErrf(c.name, err, "decoding %s", path)
		}
		if entries == nil {
			entries = make(map[K]V)
		}
	default:
		return nil, badMode(mode)
	}
	return &wholeFileHandle[K, V]{codec: c, path: path, mode: mode, entries: entries, dirty: dirty}, nil
}

type wholeFileHandle[K comparable, V any] struct {
	codec   *wholeFileCodec[K, V]
	path    string
	mode    Mode
	entries map[K]V
	dirty   bool
}

func (h *wholeFileHandle[K, V]) Get(key K) (V, error) {
	v, ok := h.entries[key]
	if !ok {
		var zero V
		return zero, keyNotFound(key)
	}
	return v, nil
}

func (h *wholeFileHandle[K, V]) Set(key K, value V) error {
	h.entries[key] = value
	h.dirty = true
	return nil
}

func (h *wholeFileHandle[K, V]) Delete(key K) error {
	if _, ok := h.entries[key]; !ok {
		return keyNotFound(key)
	}
	delete(h.entries, key)
	h.dirty = true
	return nil
}

func (h *wholeFileHandle[K, V]) Contains(key K) (bool, error) {
	_, ok := h.entries[key]
	return ok, nil
}

func (h *wholeFileHandle[K, V]) Keys() (iter.Seq[K], error) {
	return maps.Keys(h.entries), nil
}

func (h *wholeFileHandle[K, V]) Close() error {
	entries := h.entries
	h.entries = nil
	if !h.mode.writable() || !h.dirty {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(h.path)
	if err != nil {
		return err
	}
	if err := h.codec.encode(f, entries); err != nil {
		f.Close()
		return backendErrf(h.codec.name, err, "encoding %s", h.path)
	}
	return f.Close()
}
