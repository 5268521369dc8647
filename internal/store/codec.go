package store

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// encodeValue marshals a record to its stored binary form. Map keys are
// sorted so that equal values always encode to equal bytes; duplicate-
// capable collections remove associations by encoded value, which requires
// the encoding to be deterministic.
func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	// Compact ints make the encoding canonical: a decoded integer
	// re-encodes to the same bytes whatever Go width it decoded into.
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeValue(b []byte, dst any) error {
	if err := msgpack.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}
