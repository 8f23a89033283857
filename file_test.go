package dset

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestFileLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	ds := must(File(path, ModeAppend, JSONCodec[int](), FileOptions{}))

	_, err := ds.Get("a")
	wantErrIs(t, err, ErrNotOpen)
	_, err = ds.Keys()
	wantErrIs(t, err, ErrNotOpen)
	wantErrIs(t, ds.Set("a", 1), ErrNotOpen)

	err = Using(ds, func(ds *FileDataset[string, int]) error {
		if err := ds.Set("a", 1); err != nil {
			return err
		}
		return ds.Set("b", 2)
	})
	noErr(t, err)
	deepEqual(t, ds.IsOpen(), false)

	rd := must(File(path, ModeRead, JSONCodec[int](), FileOptions{}))
	err = Using(rd, func(rd *FileDataset[string, int]) error {
		deepEqual(t, must(rd.Get("a")), 1)
		deepEqual(t, must(rd.Get("b")), 2)
		deepEqual(t, sortedKeys[string, int](t, rd), []string{"a", "b"})

		_, err := rd.Get("zzz")
		wantErrIs(t, err, ErrKeyNotFound)

		wantErrIs(t, rd.Set("c", 3), ErrUnsupported)
		wantErrIs(t, rd.Delete("a"), ErrUnsupported)
		return nil
	})
	noErr(t, err)
}

func TestFileScopeReleasedOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	ds := must(File(path, ModeAppend, JSONCodec[int](), FileOptions{}))

	bodyErr := errors.New("body failed")
	err := Using(ds, func(ds *FileDataset[string, int]) error {
		return bodyErr
	})
	wantErrIs(t, err, bodyErr)
	deepEqual(t, ds.IsOpen(), false)

	// The handle was released, so the same instance reopens cleanly.
	noErr(t, ds.Open())
	deepEqual(t, ds.IsOpen(), true)
	noErr(t, ds.Close())
	deepEqual(t, ds.IsOpen(), false)
}

func TestFileReentrantOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	ds := must(File(path, ModeAppend, JSONCodec[int](), FileOptions{}))

	noErr(t, ds.Open())
	noErr(t, ds.Open())
	noErr(t, ds.Set("a", 1))

	noErr(t, ds.Close())
	deepEqual(t, ds.IsOpen(), true)
	deepEqual(t, must(ds.Get("a")), 1)

	noErr(t, ds.Close())
	deepEqual(t, ds.IsOpen(), false)

	// Close with nothing held is a no-op.
	noErr(t, ds.Close())
}

func TestFileMissingRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	ds := must(File(path, ModeRead, JSONCodec[int](), FileOptions{}))

	err := ds.Open()
	var rerr *ResourceError
	if !errors.As(err, &rerr) {
		t.Fatalf("** got %v, wanted ResourceError", err)
	}
	wantErrIs(t, err, fs.ErrNotExist)
}

func TestFileBadMode(t *testing.T) {
	_, err := File("x.json", Mode(42), JSONCodec[int](), FileOptions{})
	wantErrIs(t, err, ErrBadMode)
}

func TestFileTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	ds := must(File(path, ModeAppend, JSONCodec[int](), FileOptions{}))
	noErr(t, Using(ds, func(ds *FileDataset[string, int]) error {
		return ds.Set("old", 1)
	}))

	tr := must(File(path, ModeTruncate, JSONCodec[int](), FileOptions{}))
	noErr(t, Using(tr, func(tr *FileDataset[string, int]) error {
		ok, err := tr.Contains("old")
		noErr(t, err)
		deepEqual(t, ok, false)
		return tr.Set("new", 2)
	}))

	rd := must(File(path, ModeRead, JSONCodec[int](), FileOptions{}))
	noErr(t, Using(rd, func(rd *FileDataset[string, int]) error {
		deepEqual(t, sortedKeys[string, int](t, rd), []string{"new"})
		return nil
	}))
}

func TestFileCorruptBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	writeTestFile(t, path, []byte("{not json"))

	ds := must(File(path, ModeRead, JSONCodec[int](), FileOptions{}))
	err := ds.Open()
	var berr *BackendError
	if !errors.As(err, &berr) {
		t.Fatalf("** got %v, wanted BackendError", err)
	}
	deepEqual(t, berr.Codec, "json")
}
