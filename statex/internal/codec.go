// Package internal provides snapshot encoding and the persister registry for statex.
package internal

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
)

// Snapshots are stored as gzip-compressed JSON. Decode also accepts plain
// JSON so snapshots written before compression was enabled still hydrate.

// Encode marshals v to JSON and compresses it.
func Encode(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode unmarshals a snapshot into v, transparently decompressing when the
// data carries the gzip magic header.
func Decode(data []byte, v any) error {
	if isGzip(data) {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return err
		}
		defer zr.Close()
		payload, err := io.ReadAll(zr)
		if err != nil {
			return err
		}
		return json.Unmarshal(payload, v)
	}
	return json.Unmarshal(data, v)
}

func isGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}
