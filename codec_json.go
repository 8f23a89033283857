package dset

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// JSONCodec persists the mapping as a single JSON document whose top level
// is an object keyed by string. Whole-mapping strategy: the document is
// decoded in full on open and re-encoded in full on close.
func JSONCodec[V any]() Codec[string, V] {
	return WholeFile("json",
		func(r io.Reader) (map[string]V, error) {
			var m map[string]V
			if err := json.NewDecoder(r).Decode(&m); err != nil {
				return nil, err
			}
			return m, nil
		},
		func(w io.Writer, m map[string]V) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(m)
		})
}

// YAMLCodec is JSONCodec's sibling over YAML.
func YAMLCodec[V any]() Codec[string, V] {
	return WholeFile("yaml",
		func(r io.Reader) (map[string]V, error) {
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, err
			}
			var m map[string]V
			if err := yaml.Unmarshal(data, &m); err != nil {
				return nil, err
			}
			return m, nil
		},
		func(w io.Writer, m map[string]V) error {
			data, err := yaml.Marshal(m)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		})
}
