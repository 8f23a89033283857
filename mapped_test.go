package dset

import (
	"errors"
	"strings"
	"testing"
)

func TestMapValues(t *testing.T) {
	base := FromMap(map[string]int{"x": 5})
	ds := MapValues[string, int, int](base, func(v int) (int, error) {
		return v * 2, nil
	})

	deepEqual(t, must(ds.Get("x")), 10)
	deepEqual(t, sortedKeys[string, int](t, ds), []string{"x"})

	ok, err := ds.Contains("x")
	noErr(t, err)
	deepEqual(t, ok, true)

	_, err = ds.Get("y")
	wantErrIs(t, err, ErrKeyNotFound)
}

func TestMapValuesInvRoundTrip(t *testing.T) {
	base := FromMap(map[string]int{"x": 5})
	ds := MapValuesInv[string, int, int](base,
		func(v int) (int, error) { return v * 2, nil },
		func(v int) (int, error) { return v / 2, nil })

	deepEqual(t, must(ds.Get("x")), 10)

	noErr(t, ds.Set("x", 20))
	deepEqual(t, must(base.Get("x")), 10)
	deepEqual(t, must(ds.Get("x")), 20)

	noErr(t, ds.Delete("x"))
	deepEqual(t, must(base.Contains("x")), false)
}

func TestMapKeys(t *testing.T) {
	base := FromMap(map[string]int{"a": 1, "b": 2})
	ds := MapKeys[string, string, int](base,
		func(k string) string { return strings.TrimPrefix(k, "k:") },
		func(k string) string { return "k:" + k })

	deepEqual(t, must(ds.Get("k:a")), 1)
	deepEqual(t, sortedKeys[string, int](t, ds), []string{"k:a", "k:b"})

	ok, err := ds.Contains("k:b")
	noErr(t, err)
	deepEqual(t, ok, true)

	_, err = ds.Get("k:zzz")
	wantErrIs(t, err, ErrKeyNotFound)
	var kerr *KeyError
	if !errors.As(err, &kerr) || kerr.Key != "k:zzz" {
		t.Fatalf("error should carry the caller's key, got %v", err)
	}
}

func TestMapKeysWithoutInverse(t *testing.T) {
	base := FromMap(map[string]int{"a": 1})
	ds := MapKeys[string, string, int](base,
		func(k string) string { return strings.TrimPrefix(k, "k:") },
		nil)

	deepEqual(t, must(ds.Get("k:a")), 1)
	_, err := ds.Keys()
	wantErrIs(t, err, ErrUnsupported)
}

func TestMapKeysMutable(t *testing.T) {
	base := FromMap(map[string]int{"a": 1})
	ds := MapKeysMutable[string, string, int](base,
		func(k string) string { return strings.TrimPrefix(k, "k:") },
		func(k string) string { return "k:" + k })

	noErr(t, ds.Set("k:b", 2))
	deepEqual(t, must(base.Get("b")), 2)

	noErr(t, ds.Delete("k:a"))
	deepEqual(t, must(base.Contains("a")), false)

	wantErrIs(t, ds.Delete("k:zzz"), ErrKeyNotFound)
}
