package dset

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound is reported by Get and Delete for keys absent from the dataset.
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnsupported is reported when an operation is structurally unavailable,
	// such as writing to a read-only dataset or enumerating a computed dataset
	// that has no key domain.
	ErrUnsupported = errors.New("operation not supported")

	// ErrNotOpen is reported when a resource-backed dataset is used outside an
	// active Open/Close scope.
	ErrNotOpen = errors.New("dataset is not open")

	// ErrBadMode is reported when a file dataset is constructed with an invalid Mode.
	ErrBadMode = errors.New("invalid mode")
)

// KeyError wraps ErrKeyNotFound with the offending key.
type KeyError struct {
	Key any
	Err error
}

func keyNotFound(key any) error {
	return &KeyError{Key: key, Err: ErrKeyNotFound}
}

func (e *KeyError) Unwrap() error { return e.Err }

func (e *KeyError) Error() string {
	return fmt.Sprintf("key %v: %v", e.Key, e.Err)
}

// LifecycleError is reported when an operation is invoked on a resource-backed
// dataset whose scope is not active.
type LifecycleError struct {
	Op  string
	Err error
}

func notOpen(op string) error {
	return &LifecycleError{Op: op, Err: ErrNotOpen}
}

func (e *LifecycleError) Unwrap() error { return e.Err }

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// ResourceError wraps a failure to acquire or release the backing resource of
// a file dataset.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Unwrap() error { return e.Err }

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource %s: %v", e.Path, e.Err)
}

// BackendError wraps a codec-level encode or decode failure. The inner error
// is the codec's native error, carried unmodified.
type BackendError struct {
	Codec string
	Err   error
}

func backendErrf(codec string, err error, format string, args ...any) error {
	if format != "" {
		err = fmt.Errorf(format+": %w", append(args, err)...)
	}
	return &BackendError{Codec: codec, Err: err}
}

func (e *BackendError) Unwrap() error { return e.Err }

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s codec: %v", e.Codec, e.Err)
}

func unsupported(op string) error {
	return fmt.Errorf("%s: %w", op, ErrUnsupported)
}

func badMode(mode Mode) error {
	return fmt.Errorf("%w: %d", ErrBadMode, mode)
}
