package dset

import (
	"errors"
	"iter"
	"os"
	"reflect"
	"slices"
	"testing"
)

func deepEqual[T any](t testing.TB, a, e T) {
	if !reflect.DeepEqual(a, e) {
		t.Helper()
		t.Errorf("** got %v, wanted %v", a, e)
	}
}

func wantErrIs(t testing.TB, err, target error) {
	if !errors.Is(err, target) {
		t.Helper()
		t.Fatalf("** got error %v, wanted %v", err, target)
	}
}

func noErr(t testing.TB, err error) {
	if err != nil {
		t.Helper()
		t.Fatalf("** unexpected error: %v", err)
	}
}

func sortedKeys[K comparable, V any](t testing.TB, ds Dataset[K, V]) []K {
	t.Helper()
	keys, err := ds.Keys()
	noErr(t, err)
	s := slices.Collect(keys)
	slices.SortFunc(s, func(a, b K) int {
		return cmpAny(a, b)
	})
	return s
}

func cmpAny[K comparable](a, b K) int {
	switch x := any(a).(type) {
	case string:
		y := any(b).(string)
		return cmpOrd(x, y)
	case int:
		y := any(b).(int)
		return cmpOrd(x, y)
	default:
		panic("unsupported key type in test helper")
	}
}

func cmpOrd[T interface{ ~string | ~int }](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// fake wraps an in-memory dataset with scriptable lifecycle behavior and an
// event log shared between several fakes.
type fake struct {
	*MapDataset[string, int]
	name     string
	openErr  error
	closeErr error
	opens    int
	closes   int
	log      *[]string
}

func newFake(name string, m map[string]int, log *[]string) *fake {
	return &fake{MapDataset: FromMap(m), name: name, log: log}
}

func (f *fake) Open() error {
	f.opens++
	if f.log != nil {
		*f.log = append(*f.log, "open "+f.name)
	}
	return f.openErr
}

func (f *fake) Close() error {
	f.closes++
	if f.log != nil {
		*f.log = append(*f.log, "close "+f.name)
	}
	return f.closeErr
}

var _ Dataset[string, int] = (*fake)(nil)

func collectSeq[K any](seq iter.Seq[K]) []K {
	return slices.Collect(seq)
}

func writeTestFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}
