package dset

import "testing"

func TestAutoSaving(t *testing.T) {
	var calls int
	src := Func(func(k string) (int, error) {
		calls++
		return len(k), nil
	}, "hello", "hi")
	dst := FromMap(map[string]int{})
	ds := AutoSaving[string, int](src, dst)

	deepEqual(t, must(ds.Get("hello")), 5)
	deepEqual(t, must(ds.Get("hello")), 5)
	deepEqual(t, calls, 1)
	deepEqual(t, must(dst.Get("hello")), 5)

	unsaved, err := ds.Unsaved()
	noErr(t, err)
	deepEqual(t, collectSeq(unsaved), []string{"hi"})

	noErr(t, ds.SaveAll(false))
	deepEqual(t, dst.Len(), 2)

	unsaved, err = ds.Unsaved()
	noErr(t, err)
	deepEqual(t, len(collectSeq(unsaved)), 0)
}
