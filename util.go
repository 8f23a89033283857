package dset

import (
	"errors"
	"slices"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func isKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// openAll acquires scopes in order. If one fails, the already-acquired scopes
// are released in reverse order and the failure is joined with any rollback
// errors, so no resource leaks from a partial acquisition.
func openAll(scopes []Scoped) error {
	for i, s := range scopes {
		if err := s.Open(); err != nil {
			for j := i - 1; j >= 0; j-- {
				if cerr := scopes[j].Close(); cerr != nil {
					err = errors.Join(err, cerr)
				}
			}
			return err
		}
	}
	return nil
}

// closeAll releases scopes in reverse order, aggregating failures rather
// than stopping at the first one.
func closeAll(scopes []Scoped) error {
	var errs []error
	for i := len(scopes) - 1; i >= 0; i-- {
		if err := scopes[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
