package cache

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Values are msgpack-encoded using their json tags, so cached payloads keep
// the same field names as the HTTP responses.
const structTag = "json"

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag(structTag)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode cache value: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte, dst any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag(structTag)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode cache value: %w", err)
	}
	return nil
}
