package dset

import "testing"

func TestGrouped(t *testing.T) {
	ds := Grouped(map[string]Dataset[string, string]{
		"car":   FromMap(map[string]string{"c1": "car1.png", "c2": "car2.png"}),
		"table": FromMap(map[string]string{"t1": "t1.png"}),
	})

	deepEqual(t, must(ds.Get(GroupKey[string]{"car", "c1"})), "car1.png")
	deepEqual(t, must(ds.Get(GroupKey[string]{"table", "t1"})), "t1.png")

	_, err := ds.Get(GroupKey[string]{"boat", "b1"})
	wantErrIs(t, err, ErrKeyNotFound)
	_, err = ds.Get(GroupKey[string]{"car", "zzz"})
	wantErrIs(t, err, ErrKeyNotFound)

	ok, err := ds.Contains(GroupKey[string]{"car", "c2"})
	noErr(t, err)
	deepEqual(t, ok, true)

	n, err := Count[GroupKey[string], string](ds)
	noErr(t, err)
	deepEqual(t, n, 3)
}
