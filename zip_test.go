package dset

import (
	"errors"
	"testing"
)

func TestZipIntersection(t *testing.T) {
	d1 := FromMap(map[string]int{"a": 1, "b": 2})
	d2 := FromMap(map[string]int{"b": 20, "c": 30})
	ds := Zip[string, int](d1, d2)

	deepEqual(t, sortedKeys[string, []int](t, ds), []string{"b"})
	deepEqual(t, must(ds.Get("b")), []int{2, 20})

	_, err := ds.Get("a")
	wantErrIs(t, err, ErrKeyNotFound)
	_, err = ds.Get("c")
	wantErrIs(t, err, ErrKeyNotFound)

	ok, err := ds.Contains("b")
	noErr(t, err)
	deepEqual(t, ok, true)
	ok, err = ds.Contains("a")
	noErr(t, err)
	deepEqual(t, ok, false)
}

func TestZip2(t *testing.T) {
	d1 := FromMap(map[string]int{"a": 1, "b": 2})
	d2 := FromMap(map[string]string{"b": "y", "c": "z"})
	ds := Zip2[string, int, string](d1, d2)

	deepEqual(t, sortedKeys[string, Pair[int, string]](t, ds), []string{"b"})
	deepEqual(t, must(ds.Get("b")), Pair[int, string]{2, "y"})

	_, err := ds.Get("a")
	wantErrIs(t, err, ErrKeyNotFound)
}

func TestZip3(t *testing.T) {
	d1 := FromMap(map[string]int{"a": 1, "b": 2})
	d2 := FromMap(map[string]string{"b": "y", "a": "x"})
	d3 := FromMap(map[string]bool{"a": true})
	ds := Zip3[string, int, string, bool](d1, d2, d3)

	deepEqual(t, sortedKeys[string, Triple[int, string, bool]](t, ds), []string{"a"})
	deepEqual(t, must(ds.Get("a")), Triple[int, string, bool]{1, "x", true})
}

func TestZipOpenRollback(t *testing.T) {
	var log []string
	s1 := newFake("s1", map[string]int{}, &log)
	s2 := newFake("s2", map[string]int{}, &log)
	s3 := newFake("s3", map[string]int{}, &log)
	s3.openErr = errors.New("open s3 failed")

	ds := Zip[string, int](s1, s2, s3)
	err := ds.Open()
	wantErrIs(t, err, s3.openErr)

	deepEqual(t, log, []string{"open s1", "open s2", "open s3", "close s2", "close s1"})
}

func TestZipCloseReverseOrderAggregatesErrors(t *testing.T) {
	var log []string
	s1 := newFake("s1", map[string]int{}, &log)
	s2 := newFake("s2", map[string]int{}, &log)
	s1.closeErr = errors.New("close s1 failed")
	s2.closeErr = errors.New("close s2 failed")

	ds := Zip[string, int](s1, s2)
	noErr(t, ds.Open())
	err := ds.Close()
	wantErrIs(t, err, s1.closeErr)
	wantErrIs(t, err, s2.closeErr)

	deepEqual(t, log, []string{"open s1", "open s2", "close s2", "close s1"})
}

func TestCompound(t *testing.T) {
	ds := Compound(map[string]Dataset[string, int]{
		"x": FromMap(map[string]int{"a": 1, "b": 2}),
		"y": FromMap(map[string]int{"b": 20, "c": 30}),
	})

	deepEqual(t, sortedKeys[string, map[string]int](t, ds), []string{"b"})
	deepEqual(t, must(ds.Get("b")), map[string]int{"x": 2, "y": 20})

	_, err := ds.Get("c")
	wantErrIs(t, err, ErrKeyNotFound)
}

func TestUnion(t *testing.T) {
	d1 := FromMap(map[string]int{"a": 1})
	d2 := FromMap(map[string]int{"a": 100, "b": 2})
	ds := Union[string, int](d1, d2)

	deepEqual(t, must(ds.Get("a")), 1)
	deepEqual(t, must(ds.Get("b")), 2)
	deepEqual(t, sortedKeys[string, int](t, ds), []string{"a", "b"})

	_, err := ds.Get("c")
	wantErrIs(t, err, ErrKeyNotFound)
}
