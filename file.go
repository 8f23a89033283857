package dset

import (
	"errors"
	"iter"
	"log/slog"
)

// FileDataset is a dataset whose entries live in an external file, in the
// representation defined by its Codec. The backing handle is acquired by
// Open and released by Close; any operation outside an active scope fails
// with a LifecycleError wrapping ErrNotOpen.
//
// Reentrancy policy: nested Open calls are reference-counted. Each Open
// after the first only increments the count, and the handle is released on
// the matching last Close. Close with no handle held is a no-op.
type FileDataset[K comparable, V any] struct {
	path   string
	mode   Mode
	codec  Codec[K, V]
	logger *slog.Logger

	opens  int
	handle Handle[K, V]
}

// FileOptions carries optional file dataset settings.
type FileOptions struct {
	// Logger receives lifecycle events at Debug level. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// File returns a dataset over the file at path using the given codec.
// ErrBadMode is reported for an invalid mode.
func File[K comparable, V any](path string, mode Mode, codec Codec[K, V], opt FileOptions) (*FileDataset[K, V], error) {
	if !mode.valid() {
		return nil, badMode(mode)
	}
	logger := opt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &FileDataset[K, V]{path: path, mode: mode, codec: codec, logger: logger}, nil
}

// Path returns the backing file path.
func (ds *FileDataset[K, V]) Path() string { return ds.path }

// Mode returns the mode the dataset was constructed with.
func (ds *FileDataset[K, V]) Mode() Mode { return ds.mode }

// IsOpen reports whether the backing handle is currently held.
func (ds *FileDataset[K, V]) IsOpen() bool { return ds.handle != nil }

func (ds *FileDataset[K, V]) Open() error {
	if ds.handle != nil {
		ds.opens++
		return nil
	}
	h, err := ds.codec.Open(ds.path, ds.mode)
	if err != nil {
		var be *BackendError
		if errors.As(err, &be) {
			return err
		}
		return &ResourceError{Path: ds.path, Err: err}
	}
	ds.handle = h
	ds.opens = 1
	ds.logger.Debug("dataset opened", "codec", ds.codec.Name(), "path", ds.path, "mode", ds.mode.String())
	return nil
}

func (ds *FileDataset[K, V]) Close() error {
	if ds.handle == nil {
		return nil
	}
	if ds.opens > 1 {
		ds.opens--
		return nil
	}
	h := ds.handle
	// Drop the handle before flushing so that a failed flush still leaves
	// the dataset closed and reopenable.
	ds.handle = nil
	ds.opens = 0
	err := h.Close()
	if err != nil {
		ds.logger.Debug("dataset close failed", "codec", ds.codec.Name(), "path", ds.path, "err", err)
		return ds.wrapErr(err)
	}
	ds.logger.Debug("dataset closed", "codec", ds.codec.Name(), "path", ds.path)
	return nil
}

func (ds *FileDataset[K, V]) Get(key K) (V, error) {
	if ds.handle == nil {
		var zero V
		return zero, notOpen("get")
	}
	v, err := ds.handle.Get(key)
	if err != nil {
		return v, ds.wrapErr(err)
	}
	return v, nil
}

func (ds *FileDataset[K, V]) Contains(key K) (bool, error) {
	if ds.handle == nil {
		return false, notOpen("contains")
	}
	ok, err := ds.handle.Contains(key)
	if err != nil {
		return false, ds.wrapErr(err)
	}
	return ok, nil
}

func (ds *FileDataset[K, V]) Keys() (iter.Seq[K], error) {
	if ds.handle == nil {
		return nil, notOpen("keys")
	}
	keys, err := ds.handle.Keys()
	if err != nil {
		return nil, ds.wrapErr(err)
	}
	return keys, nil
}

func (ds *FileDataset[K, V]) Set(key K, value V) error {
	if !ds.mode.writable() {
		return unsupported("set on read-only file dataset")
	}
	if ds.handle == nil {
		return notOpen("set")
	}
	if err := ds.handle.Set(key, value); err != nil {
		return ds.wrapErr(err)
	}
	return nil
}

func (ds *FileDataset[K, V]) Delete(key K) error {
	if !ds.mode.writable() {
		return unsupported("delete on read-only file dataset")
	}
	if ds.handle == nil {
		return notOpen("delete")
	}
	if err := ds.handle.Delete(key); err != nil {
		return ds.wrapErr(err)
	}
	return nil
}

// wrapErr turns codec-native errors into BackendError, leaving the core
// taxonomy and already-wrapped errors untouched.
func (ds *FileDataset[K, V]) wrapErr(err error) error {
	if isKeyNotFound(err) || errors.Is(err, ErrUnsupported) {
		return err
	}
	var be *BackendError
	if errors.As(err, &be) {
		return err
	}
	return &BackendError{Codec: ds.codec.Name(), Err: err}
}
