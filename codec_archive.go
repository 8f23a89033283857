package dset

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// ArchiveCodec persists each key's value as one named entry inside a zip
// container, with the value msgpack-encoded. Suited to array-shaped values.
// Each entry carries an xxhash64 checksum of its payload in the entry
// comment, verified on decode independently of the container's own CRC.
// Whole-mapping strategy.
func ArchiveCodec[V any]() Codec[string, V] {
	return WholeFile("archive", decodeArchive[V], encodeArchive[V])
}

const archiveChecksumPrefix = "xxh64:"

func decodeArchive[V any](r io.Reader) (map[string]V, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	m := make(map[string]V, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", f.Name, err)
		}
		payload, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", f.Name, err)
		}
		if err := verifyArchiveChecksum(f.Comment, payload); err != nil {
			return nil, fmt.Errorf("entry %s: %w", f.Name, err)
		}
		var v V
		if err := decodeValue(payload, &v); err != nil {
			return nil, fmt.Errorf("entry %s: %w", f.Name, err)
		}
		m[f.Name] = v
	}
	return m, nil
}

func encodeArchive[V any](w io.Writer, m map[string]V) error {
	zw := zip.NewWriter(w)
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		payload, err := encodeValue(m[name])
		if err != nil {
			return fmt.Errorf("entry %s: %w", name, err)
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:    name,
			Method:  zip.Deflate,
			Comment: fmt.Sprintf("%s%016x", archiveChecksumPrefix, xxhash.Sum64(payload)),
		})
		if err != nil {
			return fmt.Errorf("entry %s: %w", name, err)
		}
		if _, err := fw.Write(payload); err != nil {
			return fmt.Errorf("entry %s: %w", name, err)
		}
	}
	return zw.Close()
}

func verifyArchiveChecksum(comment string, payload []byte) error {
	if len(comment) != len(archiveChecksumPrefix)+16 || comment[:len(archiveChecksumPrefix)] != archiveChecksumPrefix {
		// Entry written by an external tool; the container CRC still applies.
		return nil
	}
	var want uint64
	if _, err := fmt.Sscanf(comment[len(archiveChecksumPrefix):], "%016x", &want); err != nil {
		return fmt.Errorf("bad checksum comment %q: %w", comment, err)
	}
	if got := xxhash.Sum64(payload); got != want {
		return fmt.Errorf("checksum mismatch: have %016x, want %016x", got, want)
	}
	return nil
}
