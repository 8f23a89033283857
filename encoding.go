package dset

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// encodeValue marshals v using msgpack with pooled encoders and sorted map
// keys, so equal values always produce identical bytes.
func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.GetEncoder()
	enc.Reset(&buf)
	enc.SetSortMapKeys(true)
	err := enc.Encode(v)
	msgpack.PutEncoder(enc)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeValue(data []byte, out any) error {
	var r bytes.Reader
	r.Reset(data)
	dec := msgpack.GetDecoder()
	dec.Reset(&r)
	err := dec.Decode(out)
	msgpack.PutDecoder(dec)
	return err
}
